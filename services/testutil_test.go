package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/BTL5010TEJA/iproject/config"
	"github.com/BTL5010TEJA/iproject/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory database. cache=shared keeps the
// database alive across the pool's connections within the test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func testUser(t *testing.T, db *gorm.DB, trimester int, diet string) *models.UserProfile {
	t.Helper()
	user := &models.UserProfile{
		FullName:           "Test User",
		CurrentTrimester:   trimester,
		DietaryPreferences: diet,
		Region:             "North Indian",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func testFood(t *testing.T, db *gorm.DB, food models.FoodItem) *models.FoodItem {
	t.Helper()
	require.NoError(t, db.Create(&food).Error)
	return &food
}

func gormModel(id uint) gorm.Model {
	return gorm.Model{ID: id}
}
