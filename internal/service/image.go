package service

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/nutrilog/backend/config"
)

// S3PhotoStore uploads food photos to S3 and returns their public URLs.
type S3PhotoStore struct {
	s3Config *config.S3Config
}

// NewS3PhotoStore creates a new S3PhotoStore
func NewS3PhotoStore(s3Config *config.S3Config) *S3PhotoStore {
	return &S3PhotoStore{s3Config: s3Config}
}

// Upload stores the photo under a per-user prefix and returns its URL.
func (s *S3PhotoStore) Upload(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (string, error) {
	ext := "jpg"
	if contentType == "image/png" {
		ext = "png"
	}
	fileName := fmt.Sprintf("food-photos/%s/%s.%s", userID.String(), uuid.New().String(), ext)

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, fileName)
	log.Printf("[S3PhotoStore] Uploaded food photo to S3: %s", publicURL)

	return publicURL, nil
}
