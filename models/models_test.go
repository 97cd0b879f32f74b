package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoodItemSuitabilityRoundTrip(t *testing.T) {
	var food FoodItem
	food.SetTrimesterSuitability(map[string]any{"trimester_1": true, "all_trimesters": false})

	got := food.GetTrimesterSuitability()
	assert.Equal(t, true, got["trimester_1"])
	assert.Equal(t, false, got["all_trimesters"])
}

func TestFoodItemDecodersTolerateBadData(t *testing.T) {
	food := FoodItem{NutritionalInfo: "not json", TrimesterSuitability: "{broken"}
	assert.Empty(t, food.GetNutritionalInfo())
	assert.Empty(t, food.GetTrimesterSuitability())

	empty := FoodItem{}
	assert.NotNil(t, empty.GetNutritionalInfo(), "callers never need a nil check")
}

func TestUserProfileHealthConditions(t *testing.T) {
	user := UserProfile{HealthConditions: " Anemia , Gestational Diabetes ,"}
	assert.Equal(t, []string{"anemia", "gestational diabetes"}, user.GetHealthConditions())

	none := UserProfile{}
	assert.Nil(t, none.GetHealthConditions())
}

func TestRecommendationFoodItemsRoundTrip(t *testing.T) {
	var rec Recommendation
	rec.SetFoodItems([]uint{5, 2, 9})
	assert.Equal(t, []uint{5, 2, 9}, rec.GetFoodItems())

	var blank Recommendation
	assert.Empty(t, blank.GetFoodItems())
}
