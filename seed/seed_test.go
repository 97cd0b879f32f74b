package seed

import (
	"testing"

	"github.com/BTL5010TEJA/iproject/config"
	"github.com/BTL5010TEJA/iproject/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:seedtest?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	t.Cleanup(func() {
		db.Exec("DELETE FROM food_items")
	})
	return db
}

func TestRunSeedsCatalog(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, Run(db))

	var count int64
	require.NoError(t, db.Model(&models.FoodItem{}).Count(&count).Error)
	assert.Greater(t, count, int64(40), "the embedded catalog is substantial")

	var spinach models.FoodItem
	require.NoError(t, db.Where("name_english LIKE ?", "Spinach%").First(&spinach).Error)
	assert.Equal(t, "Vegetables", spinach.Category)
	assert.NotEmpty(t, spinach.Benefits)
	assert.NotEmpty(t, spinach.GetTrimesterSuitability())
}

func TestRunIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, Run(db))
	var first int64
	require.NoError(t, db.Model(&models.FoodItem{}).Count(&first).Error)

	require.NoError(t, Run(db))
	var second int64
	require.NoError(t, db.Model(&models.FoodItem{}).Count(&second).Error)
	assert.Equal(t, first, second, "a populated table is left alone")
}
