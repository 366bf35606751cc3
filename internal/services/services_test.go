package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/taskloom/todo-backend/internal/models"
	"github.com/taskloom/todo-backend/internal/token"
)

const testJWTSecret = "test-secret-key"

// newTestDB opens a fresh in-memory SQLite database migrated with the domain
// models. A single connection keeps every query on the same in-memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Todo{}))
	return db
}

func newTestTokens() *token.Service {
	return token.NewService(testJWTSecret)
}
