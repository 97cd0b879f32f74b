package services

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/BTL5010TEJA/iproject/models"

	"gorm.io/gorm"
)

const maxPlanDays = 7

// NutritionEstimate carries the per-day totals the plan reports. The
// catalog is qualitative, so values come from per-category serving
// estimates and are labelled as such in the summary note.
type NutritionEstimate struct {
	Calories  float64 `json:"calories"`
	Protein   float64 `json:"protein"`    // g
	Iron      float64 `json:"iron"`       // mg
	Calcium   float64 `json:"calcium"`    // mg
	Fiber     float64 `json:"fiber"`      // g
	FolicAcid float64 `json:"folic_acid"` // mcg
}

// MealEntry is one food slotted into a meal.
type MealEntry struct {
	FoodID   uint    `json:"food_id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

// DayPlan is one day of the plan.
type DayPlan struct {
	Day            int               `json:"day"`
	Meals          map[string][]MealEntry `json:"meals"`
	DailyNutrition NutritionEstimate `json:"daily_nutrition"`
}

// NutritionSummary averages the day totals across the plan.
type NutritionSummary struct {
	TotalDays         int     `json:"total_days"`
	AvgDailyCalories  float64 `json:"avg_daily_calories"`
	AvgDailyProtein   float64 `json:"avg_daily_protein"`
	AvgDailyIron      float64 `json:"avg_daily_iron"`
	AvgDailyCalcium   float64 `json:"avg_daily_calcium"`
	AvgDailyFiber     float64 `json:"avg_daily_fiber"`
	AvgDailyFolicAcid float64 `json:"avg_daily_folic_acid"`
	Note              string  `json:"note"`
}

// MealPlanResult is the full generated document, persisted as JSON.
type MealPlanResult struct {
	PlanID           uint               `json:"plan_id,omitempty"`
	Trimester        int                `json:"trimester"`
	DietType         string             `json:"diet_type"`
	Region           string             `json:"region"`
	MealPlan         []DayPlan          `json:"meal_plan"`
	NutritionSummary NutritionSummary   `json:"nutrition_summary"`
}

// Per-serving estimates by normalized category.
var categoryEstimates = map[string]NutritionEstimate{
	"grains":     {Calories: 180, Protein: 5, Iron: 1.5, Calcium: 20, Fiber: 3.5, FolicAcid: 40},
	"lentils":    {Calories: 160, Protein: 9, Iron: 3.0, Calcium: 35, Fiber: 6.0, FolicAcid: 90},
	"vegetables": {Calories: 60, Protein: 3, Iron: 2.0, Calcium: 60, Fiber: 3.0, FolicAcid: 80},
	"fruits":     {Calories: 80, Protein: 1, Iron: 0.5, Calcium: 20, Fiber: 2.5, FolicAcid: 30},
	"dairy":      {Calories: 120, Protein: 7, Iron: 0.2, Calcium: 250, Fiber: 0, FolicAcid: 10},
	"protein":    {Calories: 170, Protein: 15, Iron: 1.8, Calcium: 25, Fiber: 0, FolicAcid: 20},
	"nuts":       {Calories: 160, Protein: 5, Iron: 1.2, Calcium: 40, Fiber: 2.5, FolicAcid: 15},
	"soups":      {Calories: 90, Protein: 4, Iron: 1.0, Calcium: 30, Fiber: 1.5, FolicAcid: 25},
	"beverages":  {Calories: 70, Protein: 2, Iron: 0.3, Calcium: 60, Fiber: 0.5, FolicAcid: 10},
}

var defaultEstimate = NutritionEstimate{Calories: 100, Protein: 3, Iron: 1.0, Calcium: 40, Fiber: 1.5, FolicAcid: 25}

var mealSlots = []string{"breakfast", "lunch", "dinner", "snacks"}

// Items per slot in a generated day.
var slotSizes = map[string]int{"breakfast": 2, "lunch": 3, "dinner": 3, "snacks": 2}

// MealPlanner builds day-by-day plans from meal-slot recommendations.
type MealPlanner struct {
	db          *gorm.DB
	recommender *Recommender
}

func NewMealPlanner(db *gorm.DB, recommender *Recommender) *MealPlanner {
	return &MealPlanner{db: db, recommender: recommender}
}

// GenerateMealPlan builds and persists a plan. dietType and region
// override the profile values when non-empty; days is clamped to 1..7.
func (p *MealPlanner) GenerateMealPlan(user *models.UserProfile, days int, dietType, region string) (*MealPlanResult, error) {
	if days < 1 {
		days = 1
	}
	if days > maxPlanDays {
		days = maxPlanDays
	}
	if dietType == "" {
		dietType = user.DietaryPreferences
	}
	if region == "" {
		region = user.Region
	}

	// Score against the requested diet without mutating the stored profile.
	planUser := *user
	planUser.DietaryPreferences = dietType

	candidates := map[string][]ScoredFood{}
	for _, slot := range mealSlots {
		recs, err := p.recommender.GetMealSpecificRecommendations(&planUser, slot, slotSizes[slot]*days+4)
		if err != nil {
			return nil, err
		}
		candidates[slot] = preferRegion(recs, region)
	}

	result := &MealPlanResult{
		Trimester: user.CurrentTrimester,
		DietType:  dietType,
		Region:    region,
	}

	totalCandidates := 0
	for _, slot := range mealSlots {
		totalCandidates += len(candidates[slot])
	}
	if totalCandidates == 0 {
		// Nothing to plan with; don't persist an empty document.
		return result, nil
	}

	var totals NutritionEstimate
	for day := 1; day <= days; day++ {
		dayPlan := DayPlan{Day: day, Meals: map[string][]MealEntry{}}
		var dayTotals NutritionEstimate

		for _, slot := range mealSlots {
			entries := pickForDay(candidates[slot], day-1, slotSizes[slot])
			dayPlan.Meals[slot] = entries
			for _, e := range entries {
				est := estimateFor(e.Category)
				dayTotals = addEstimates(dayTotals, est)
			}
		}

		dayPlan.DailyNutrition = roundEstimate(dayTotals)
		totals = addEstimates(totals, dayTotals)
		result.MealPlan = append(result.MealPlan, dayPlan)
	}

	n := float64(days)
	result.NutritionSummary = NutritionSummary{
		TotalDays:         days,
		AvgDailyCalories:  round1(totals.Calories / n),
		AvgDailyProtein:   round1(totals.Protein / n),
		AvgDailyIron:      round1(totals.Iron / n),
		AvgDailyCalcium:   round1(totals.Calcium / n),
		AvgDailyFiber:     round1(totals.Fiber / n),
		AvgDailyFolicAcid: round1(totals.FolicAcid / n),
		Note:              "Values are estimates based on typical servings per food category.",
	}

	planJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode meal plan: %w", err)
	}
	row := models.MealPlan{
		UserID:   user.ID,
		Days:     days,
		DietType: dietType,
		Region:   region,
		Plan:     string(planJSON),
	}
	if err := p.db.Create(&row).Error; err != nil {
		return nil, fmt.Errorf("db error saving meal plan: %w", err)
	}
	result.PlanID = row.ID

	return result, nil
}

// History returns the user's saved plans, newest first.
func (p *MealPlanner) History(userID uint, page, perPage int) ([]models.MealPlan, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 50 {
		perPage = 10
	}

	var total int64
	if err := p.db.Model(&models.MealPlan{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var plans []models.MealPlan
	err := p.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&plans).Error
	return plans, total, err
}

// pickForDay rotates through the candidate list so consecutive days don't
// repeat the same foods.
func pickForDay(candidates []ScoredFood, dayIndex, count int) []MealEntry {
	if len(candidates) == 0 {
		return nil
	}
	entries := make([]MealEntry, 0, count)
	for i := 0; i < count && i < len(candidates); i++ {
		rec := candidates[(dayIndex*count+i)%len(candidates)]
		entries = append(entries, MealEntry{
			FoodID:   rec.Food.ID,
			Name:     rec.Food.NameEnglish,
			Category: rec.Food.Category,
			Score:    rec.Score,
		})
	}
	return entries
}

// preferRegion stable-sorts matching regional foods to the front without
// discarding the rest.
func preferRegion(recs []ScoredFood, region string) []ScoredFood {
	if strings.TrimSpace(region) == "" {
		return recs
	}
	region = strings.ToLower(region)
	sort.SliceStable(recs, func(i, j int) bool {
		return strings.Contains(strings.ToLower(recs[i].Food.RegionalOrigin), region) &&
			!strings.Contains(strings.ToLower(recs[j].Food.RegionalOrigin), region)
	})
	return recs
}

func estimateFor(category string) NutritionEstimate {
	if est, ok := categoryEstimates[normalizeCategory(category)]; ok {
		return est
	}
	return defaultEstimate
}

func addEstimates(a, b NutritionEstimate) NutritionEstimate {
	return NutritionEstimate{
		Calories:  a.Calories + b.Calories,
		Protein:   a.Protein + b.Protein,
		Iron:      a.Iron + b.Iron,
		Calcium:   a.Calcium + b.Calcium,
		Fiber:     a.Fiber + b.Fiber,
		FolicAcid: a.FolicAcid + b.FolicAcid,
	}
}

func roundEstimate(e NutritionEstimate) NutritionEstimate {
	return NutritionEstimate{
		Calories:  round1(e.Calories),
		Protein:   round1(e.Protein),
		Iron:      round1(e.Iron),
		Calcium:   round1(e.Calcium),
		Fiber:     round1(e.Fiber),
		FolicAcid: round1(e.FolicAcid),
	}
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
