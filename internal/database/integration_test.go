package database_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nutrilog/backend/internal/database"
	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/service"
	"github.com/nutrilog/backend/internal/types"
)

// TestPostgresSchemaAndUpsert runs the schema and the goal upsert against a
// real PostgreSQL instance. Gated behind RUN_DB_INTEGRATION because it needs
// Docker.
func TestPostgresSchemaAndUpsert(t *testing.T) {
	if os.Getenv("RUN_DB_INTEGRATION") == "" {
		t.Skip("set RUN_DB_INTEGRATION to run PostgreSQL integration tests")
	}

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "testuser",
				"POSTGRES_PASSWORD": "testpass",
				"POSTGRES_DB":       "testdb",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections"),
			).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Errorf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	mappedPort, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=testuser password=testpass dbname=testdb sslmode=disable",
		host, mappedPort.Port())
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.AutoMigrate(db))

	goals := service.NewGoalService(db)
	userID := uuid.New()

	first, err := goals.Upsert(ctx, userID, &types.SetGoalRequest{
		Date: "2025-03-10", Calories: 2000, Protein: 150, Carbs: 200, Fat: 70,
	})
	require.NoError(t, err)

	second, err := goals.Upsert(ctx, userID, &types.SetGoalRequest{
		Date: "2025-03-10", Calories: 1800, Protein: 140, Carbs: 180, Fat: 65,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	db.Model(&models.CalorieGoal{}).Where("user_id = ?", userID).Count(&count)
	assert.EqualValues(t, 1, count)

	// JSONB columns round-trip through the real dialect
	prefs := models.UserPreferences{
		ID:                  uuid.New(),
		UserID:              userID,
		DietaryRestrictions: models.JSONBStringArray{"vegan", "gluten-free"},
		Allergies:           models.JSONBStringArray{},
		CuisinePreferences:  models.JSONBStringArray{"thai"},
	}
	require.NoError(t, db.Create(&prefs).Error)

	var loaded models.UserPreferences
	require.NoError(t, db.Where("user_id = ?", userID).First(&loaded).Error)
	assert.Equal(t, models.JSONBStringArray{"vegan", "gluten-free"}, loaded.DietaryRestrictions)
}
