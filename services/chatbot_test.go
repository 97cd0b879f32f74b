package services

import (
	"strings"
	"testing"

	"github.com/BTL5010TEJA/iproject/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyIntent(t *testing.T) {
	bot := NewChatbot(nil, nil)

	tests := []struct {
		question string
		want     string
	}{
		{"Can I eat papaya during pregnancy?", "safety_check"},
		{"Which foods should I avoid?", "avoid_foods"},
		{"What are the benefits of spinach?", "benefits"},
		{"How many servings of rice per day?", "quantity"},
		{"Which nutrients does ragi contain?", "nutritional_info"},
		{"How to make ragi porridge?", "preparation"},
		{"What helps with constipation?", "health_condition"},
		{"What should I eat in the second trimester?", "trimester_diet"},
		{"Give me a meal plan for the week", "meal_planning"},
		{"Hello there", "greeting"},
		{"Tell me something about food", "general"},
	}
	for _, tt := range tests {
		intent, confidence := bot.ClassifyIntent(tt.question)
		assert.Equal(t, tt.want, intent, "question %q", tt.question)
		assert.GreaterOrEqual(t, confidence, 0.3)
		assert.LessOrEqual(t, confidence, 0.95)
	}
}

func TestClassifyIntentConfidenceGrowsWithHits(t *testing.T) {
	bot := NewChatbot(nil, nil)

	_, single := bot.ClassifyIntent("is it safe?")
	_, double := bot.ClassifyIntent("is it safe to eat this, is it ok?")
	assert.Greater(t, double, single)
}

func TestExtractFoodsLongestNameWins(t *testing.T) {
	db := newTestDB(t)
	testFood(t, db, models.FoodItem{NameEnglish: "Potato", Category: "Vegetables"})
	testFood(t, db, models.FoodItem{NameEnglish: "Sweet Potato", Category: "Vegetables"})
	bot := NewChatbot(db, nil)

	foods, err := bot.ExtractFoods("Can I eat sweet potato daily?")
	require.NoError(t, err)
	require.NotEmpty(t, foods)
	assert.Equal(t, "Sweet Potato", foods[0].NameEnglish)
}

func TestExtractFoodsIgnoresUnknownAndCaps(t *testing.T) {
	db := newTestDB(t)
	for _, name := range []string{"Spinach", "Milk", "Banana", "Dates"} {
		testFood(t, db, models.FoodItem{NameEnglish: name, Category: "Fruits"})
	}
	bot := NewChatbot(db, nil)

	foods, err := bot.ExtractFoods("dragonfruit smoothie")
	require.NoError(t, err)
	assert.Empty(t, foods)

	foods, err = bot.ExtractFoods("spinach milk banana dates together?")
	require.NoError(t, err)
	assert.Len(t, foods, 3, "mentions are capped at three")
}

func TestAnswerQuestionPersistsHistory(t *testing.T) {
	db := newTestDB(t)
	testFood(t, db, models.FoodItem{
		NameEnglish:          "Spinach",
		Category:             "Vegetables",
		Benefits:             "Rich in iron and folic acid.",
		TrimesterSuitability: `{"trimester_1":true}`,
	})
	bot := NewChatbot(db, nil)
	user := testUser(t, db, 1, "vegetarian")

	answer, err := bot.AnswerQuestion(user, "What are the benefits of spinach?")
	require.NoError(t, err)
	assert.Equal(t, "benefits", answer.Intent)
	assert.Contains(t, answer.FoodsMentioned, "Spinach")
	assert.Contains(t, answer.Answer, "iron")

	var entries []models.ChatQuery
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, "benefits", entries[0].Intent)
	assert.Equal(t, "What are the benefits of spinach?", entries[0].Question)
}

func TestAnswerQuestionRejectsEmpty(t *testing.T) {
	db := newTestDB(t)
	bot := NewChatbot(db, nil)
	user := testUser(t, db, 1, "")

	_, err := bot.AnswerQuestion(user, "   ")
	assert.Error(t, err)
}

func TestAnswerQuestionSafetyCheck(t *testing.T) {
	db := newTestDB(t)
	testFood(t, db, models.FoodItem{
		NameEnglish: "Street Chaat",
		Category:    "Street Food",
		Precautions: "Hygiene risk. Avoid during pregnancy.",
	})
	bot := NewChatbot(db, nil)
	user := testUser(t, db, 2, "")

	answer, err := bot.AnswerQuestion(user, "Is it safe to eat street chaat?")
	require.NoError(t, err)
	assert.Equal(t, "safety_check", answer.Intent)
	assert.Contains(t, answer.Answer, "avoided")
}

func TestAnswerQuestionConditionRemedy(t *testing.T) {
	db := newTestDB(t)
	bot := NewChatbot(db, nil)
	user := testUser(t, db, 3, "")

	answer, err := bot.AnswerQuestion(user, "What helps with heartburn?")
	require.NoError(t, err)
	assert.Equal(t, "health_condition", answer.Intent)
	assert.Contains(t, strings.ToLower(answer.Answer), "heartburn")
}

func TestGetSuggestedQuestions(t *testing.T) {
	bot := NewChatbot(nil, nil)

	for trimester := 1; trimester <= 3; trimester++ {
		qs := bot.GetSuggestedQuestions(trimester)
		assert.NotEmpty(t, qs, "trimester %d", trimester)
	}
	assert.Equal(t, bot.GetSuggestedQuestions(1), bot.GetSuggestedQuestions(0),
		"unknown trimester falls back to the first")
}

func TestChatHistoryPagination(t *testing.T) {
	db := newTestDB(t)
	bot := NewChatbot(db, nil)
	user := testUser(t, db, 1, "")

	for i := 0; i < 5; i++ {
		require.NoError(t, db.Create(&models.ChatQuery{
			UserID: user.ID, Question: "q", Intent: "general", Answer: "a",
		}).Error)
	}

	entries, total, err := bot.History(user.ID, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, entries, 2)

	entries, _, err = bot.History(user.ID, 3, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
