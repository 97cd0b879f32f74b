package services

import (
	"testing"
	"time"

	"github.com/BTL5010TEJA/iproject/config"
	"github.com/BTL5010TEJA/iproject/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTipOfTheDayRotates(t *testing.T) {
	day1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	assert.NotEmpty(t, TipOfTheDay(day1))
	assert.NotEqual(t, TipOfTheDay(day1), TipOfTheDay(day2))
	assert.Equal(t, TipOfTheDay(day1), TipOfTheDay(day1.AddDate(0, 0, len(dailyTips))),
		"the rotation wraps after one full cycle")
}

func TestRunDailyMaintenancePrunesHistory(t *testing.T) {
	db := newTestDB(t)

	prevDB, prevCfg := config.DB, config.AppConfig
	config.DB = db
	config.AppConfig = &config.Config{ChatHistoryDays: 90, RecommendationDays: 180}
	t.Cleanup(func() { config.DB, config.AppConfig = prevDB, prevCfg })

	old := models.ChatQuery{UserID: 1, Question: "old", Intent: "general", Answer: "a"}
	old.CreatedAt = time.Now().AddDate(0, 0, -120)
	require.NoError(t, db.Create(&old).Error)

	fresh := models.ChatQuery{UserID: 1, Question: "fresh", Intent: "general", Answer: "a"}
	require.NoError(t, db.Create(&fresh).Error)

	staleRec := models.Recommendation{UserID: 1, Trimester: 1}
	staleRec.CreatedAt = time.Now().AddDate(0, 0, -200)
	require.NoError(t, db.Create(&staleRec).Error)

	recommender := NewRecommender(db)
	RunDailyMaintenance(recommender, NewChatHub())

	var chats int64
	require.NoError(t, db.Model(&models.ChatQuery{}).Count(&chats).Error)
	assert.EqualValues(t, 1, chats, "only the fresh chat entry survives")

	var recs int64
	require.NoError(t, db.Model(&models.Recommendation{}).Count(&recs).Error)
	assert.EqualValues(t, 0, recs)
}

func TestRunDailyMaintenanceWithoutInit(t *testing.T) {
	prevDB, prevCfg := config.DB, config.AppConfig
	config.DB, config.AppConfig = nil, nil
	t.Cleanup(func() { config.DB, config.AppConfig = prevDB, prevCfg })

	// must be a safe no-op before InitDB
	RunDailyMaintenance(nil, nil)
}
