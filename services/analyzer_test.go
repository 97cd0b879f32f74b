package services

import (
	"testing"

	"github.com/BTL5010TEJA/iproject/models"

	"github.com/stretchr/testify/assert"
)

func TestCalculateNutritionalScoreMatchesTrimesterPriorities(t *testing.T) {
	analyzer := NewNutritionalAnalyzer()

	spinach := &models.FoodItem{
		NameEnglish: "Spinach",
		Benefits:    "Rich in iron and folic acid, good source of fiber.",
	}
	plain := &models.FoodItem{
		NameEnglish: "Plain Rice",
		Benefits:    "",
	}

	spinachScore := analyzer.CalculateNutritionalScore(spinach, 1)
	plainScore := analyzer.CalculateNutritionalScore(plain, 1)

	assert.Greater(t, spinachScore, plainScore,
		"iron and folate rich food should outscore an unlabelled one in trimester 1")
	assert.InDelta(t, 0.5, plainScore, 0.001, "no nutrient tags means base score")
}

func TestCalculateNutritionalScorePenalizesFried(t *testing.T) {
	analyzer := NewNutritionalAnalyzer()

	fried := &models.FoodItem{
		NameEnglish: "Fried Snack",
		Benefits:    "deep-fried festive snack",
	}
	score := analyzer.CalculateNutritionalScore(fried, 2)
	assert.Less(t, score, 0.5)
}

func TestCalculateNutritionalScoreStaysInRange(t *testing.T) {
	analyzer := NewNutritionalAnalyzer()

	loaded := &models.FoodItem{
		NameEnglish:     "Superfood",
		Benefits:        "iron calcium protein fiber folic acid folate vitamin c vitamin a potassium magnesium zinc antioxidant omega vitamin d vitamin k vitamin b6",
		NutritionalInfo: "iron calcium protein fiber",
	}
	for trimester := 1; trimester <= 3; trimester++ {
		score := analyzer.CalculateNutritionalScore(loaded, trimester)
		assert.LessOrEqual(t, score, 1.0)
		assert.GreaterOrEqual(t, score, 0.0)
	}
}

func TestCheckSafetyRejectsUnsafeTerms(t *testing.T) {
	analyzer := NewNutritionalAnalyzer()

	tests := []struct {
		name string
		food models.FoodItem
	}{
		{"alcohol in name", models.FoodItem{NameEnglish: "Cooking Wine"}},
		{"raw fish", models.FoodItem{NameEnglish: "Sushi", Precautions: "contains raw fish"}},
		{"unpasteurized", models.FoodItem{NameEnglish: "Farm Cheese", Precautions: "made from unpasteurized milk"}},
		{"flagged precaution", models.FoodItem{NameEnglish: "Raw Papaya", Precautions: "avoid during pregnancy"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			safe, warnings := analyzer.CheckSafety(&tt.food, nil)
			assert.False(t, safe)
			assert.NotEmpty(t, warnings)
		})
	}
}

func TestCheckSafetyConditionRules(t *testing.T) {
	analyzer := NewNutritionalAnalyzer()

	jaggery := &models.FoodItem{
		NameEnglish: "Jaggery Sweets",
		Precautions: "High sugar content",
	}

	safe, _ := analyzer.CheckSafety(jaggery, nil)
	assert.True(t, safe, "sugary food is fine without diabetes")

	safe, warnings := analyzer.CheckSafety(jaggery, []string{"gestational diabetes"})
	assert.False(t, safe, "sugary food is out with gestational diabetes")
	assert.NotEmpty(t, warnings)

	pickle := &models.FoodItem{
		NameEnglish: "Mango Pickle",
		Precautions: "salty, eat sparingly",
	}
	safe, warnings = analyzer.CheckSafety(pickle, []string{"hypertension"})
	assert.True(t, safe, "salty food warns but is not banned")
	assert.NotEmpty(t, warnings)

	tea := &models.FoodItem{NameEnglish: "Masala Tea"}
	safe, warnings = analyzer.CheckSafety(tea, []string{"anemia"})
	assert.True(t, safe)
	assert.NotEmpty(t, warnings, "tea with anemia gets an absorption warning")
}

func TestCheckSafetyDetailedSeverity(t *testing.T) {
	analyzer := NewNutritionalAnalyzer()

	safe, warnings := analyzer.CheckSafetyDetailed(
		&models.FoodItem{NameEnglish: "Beer Bread"}, nil)
	assert.False(t, safe)
	if assert.NotEmpty(t, warnings) {
		assert.Equal(t, High, warnings[0].Severity)
	}
}
