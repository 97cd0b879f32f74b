package services

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/BTL5010TEJA/iproject/models"
	"github.com/BTL5010TEJA/iproject/utils"

	"gorm.io/gorm"
)

const (
	recommendationTTL = 180 * time.Second
	nutritionScoreTTL = 12 * time.Hour
	interactionWindow = 500 // newest interactions considered for preference
)

// Catalog categories that are guidance text rather than actual foods.
var nonFoodCategories = []string{
	"avoid", "foods to avoid", "street food", "processed foods", "fatty foods",
	"sugary foods", "leftovers", "medical", "supplements", "exercise",
	"lifestyle", "tips", "hydration", "diet", "foods in moderation", "prepared foods",
}

var nonVegKeywords = []string{
	"chicken", "mutton", "fish", "prawn", "shrimp", "beef", "pork", "meat",
	"seafood", "egg", "eggs",
}

var veganExcludeKeywords = []string{
	"milk", "dahi", "curd", "yogurt", "paneer", "cheese", "ghee", "butter",
	"cream", "egg", "eggs",
}

var categoryNormalization = map[string]string{
	"proteins":            "protein",
	"protein":             "protein",
	"meat":                "protein",
	"seafood":             "protein",
	"seafood & fish":      "protein",
	"eggs":                "protein",
	"dry_fruits":          "nuts",
	"nuts & sprouts":      "nuts",
	"seeds":               "nuts",
	"fruits & vegetables": "fruits",
	"fruits to include":   "fruits",
	"carbohydrates":       "grains",
	"soups/broths":        "soups",
	"beverages":           "beverages",
	"drinks":              "beverages",
}

var mealSlotCategories = map[string][]string{
	"breakfast": {"grains", "dairy", "fruits", "nuts", "beverages"},
	"lunch":     {"grains", "vegetables", "protein", "lentils"},
	"dinner":    {"grains", "vegetables", "lentils", "soups"},
	"snacks":    {"fruits", "nuts", "dairy", "beverages"},
}

// ScoredFood is one recommendation with its sub-scores, all in [0,1].
type ScoredFood struct {
	Food            *models.FoodItem
	Score           float64
	Warnings        []string
	NutritionScore  float64
	TrimesterScore  float64
	PreferenceScore float64
}

type recCacheEntry struct {
	items []ScoredFood
	at    time.Time
}

type nutritionCacheEntry struct {
	score float64
	at    time.Time
}

// Recommender is the weighted-scoring recommendation engine.
type Recommender struct {
	db       *gorm.DB
	analyzer *NutritionalAnalyzer

	mu             sync.RWMutex
	recCache       map[string]recCacheEntry
	nutritionCache map[string]nutritionCacheEntry

	// injectable for tests
	now func() time.Time
}

func NewRecommender(db *gorm.DB) *Recommender {
	return &Recommender{
		db:             db,
		analyzer:       NewNutritionalAnalyzer(),
		recCache:       make(map[string]recCacheEntry),
		nutritionCache: make(map[string]nutritionCacheEntry),
		now:            time.Now,
	}
}

// GetRecommendations returns up to maxItems personalized recommendations
// for the user: filter, score, sort, then enforce category variety.
func (r *Recommender) GetRecommendations(user *models.UserProfile, maxItems int) ([]ScoredFood, error) {
	if maxItems < 1 {
		maxItems = 10
	}

	cacheKey := fmt.Sprintf("%d|%d|%s|%d",
		user.ID, user.CurrentTrimester, strings.ToLower(user.DietaryPreferences), maxItems)
	if cached, ok := r.cachedRecommendations(cacheKey); ok {
		return cached, nil
	}

	var foods []models.FoodItem
	q := r.db.Where("name_english <> ''")
	q = q.Where("LOWER(category) NOT IN ?", nonFoodCategories)
	if err := q.Find(&foods).Error; err != nil {
		return nil, fmt.Errorf("db error fetching foods: %w", err)
	}
	if len(foods) == 0 {
		return nil, nil
	}

	// Preload interaction-derived preference scores; one query per batch
	// instead of one per food.
	preferenceScores, err := r.interactionScores(user.ID)
	if err != nil {
		return nil, err
	}

	conditions := user.GetHealthConditions()
	seenNames := map[string]bool{}
	var scored []ScoredFood

	for i := range foods {
		food := &foods[i]
		if !isRecommendableFood(food) {
			continue
		}

		normalized := utils.NormalizeFoodName(food.NameEnglish)
		if seenNames[normalized] {
			continue
		}

		safe, warnings := r.analyzer.CheckSafety(food, conditions)
		if !safe {
			continue
		}
		if !matchesDietaryPreference(food, user.DietaryPreferences) {
			continue
		}

		nutritionScore := r.cachedNutritionScore(food, user.CurrentTrimester)
		trimesterScore := trimesterScore(food, user.CurrentTrimester)
		preferenceScore := preferenceScoreFor(food.ID, preferenceScores)

		final := nutritionScore*0.4 + trimesterScore*0.3 + preferenceScore*0.3
		final += r.seasonBonus(food)
		if food.Benefits != "" {
			final += 0.03
		}
		if food.PreparationTips != "" {
			final += 0.02
		}
		if final > 1.0 {
			final = 1.0
		}

		scored = append(scored, ScoredFood{
			Food:            food,
			Score:           final,
			Warnings:        warnings,
			NutritionScore:  nutritionScore,
			TrimesterScore:  trimesterScore,
			PreferenceScore: preferenceScore,
		})
		seenNames[normalized] = true
	}

	sortByScore(scored)

	// Work from a wider slice so variety selection has room to swap
	// categories without dropping quality.
	top := scored
	if len(top) > maxItems*3 {
		top = top[:maxItems*3]
	}
	selected := ensureVariety(top, maxItems)

	r.setCachedRecommendations(cacheKey, selected)
	return selected, nil
}

// GetMealSpecificRecommendations filters recommendations down to the
// categories that fit a meal slot (breakfast, lunch, dinner, snacks).
func (r *Recommender) GetMealSpecificRecommendations(user *models.UserProfile, mealType string, maxItems int) ([]ScoredFood, error) {
	if maxItems < 1 {
		maxItems = 5
	}
	categories := mealSlotCategories[strings.ToLower(mealType)]

	all, err := r.GetRecommendations(user, maxItems*3)
	if err != nil {
		return nil, err
	}

	if len(categories) == 0 {
		if len(all) > maxItems {
			all = all[:maxItems]
		}
		return all, nil
	}

	var out []ScoredFood
	for _, rec := range all {
		if containsString(categories, normalizeCategory(rec.Food.Category)) {
			out = append(out, rec)
		}
		if len(out) >= maxItems {
			break
		}
	}
	return out, nil
}

// SaveRecommendation persists a served batch so history can replay it.
func (r *Recommender) SaveRecommendation(user *models.UserProfile, foodIDs []uint, reason string) (*models.Recommendation, error) {
	rec := &models.Recommendation{
		UserID:    user.ID,
		Trimester: user.CurrentTrimester,
		Reason:    reason,
	}
	rec.SetFoodItems(foodIDs)
	if err := r.db.Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

// ResetCaches drops both TTL caches. Called by the maintenance scheduler
// and after catalog writes.
func (r *Recommender) ResetCaches() {
	r.mu.Lock()
	r.recCache = make(map[string]recCacheEntry)
	r.nutritionCache = make(map[string]nutritionCacheEntry)
	r.mu.Unlock()
}

// -----------------------------
// Scoring pieces
// -----------------------------

// interactionScores aggregates the newest interactions into per-food
// preference scores. Everyone starts at 0.5; likes push up, dislikes down.
func (r *Recommender) interactionScores(userID uint) (map[uint]float64, error) {
	var interactions []models.UserInteraction
	if err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(interactionWindow).
		Find(&interactions).Error; err != nil {
		return nil, fmt.Errorf("db error fetching interactions: %w", err)
	}
	if len(interactions) == 0 {
		return nil, nil
	}

	scores := map[uint]float64{}
	for _, interaction := range interactions {
		if interaction.FoodItemID == 0 {
			continue
		}
		score, ok := scores[interaction.FoodItemID]
		if !ok {
			score = 0.5
		}
		switch interaction.InteractionType {
		case models.InteractionLike:
			score += 0.1
		case models.InteractionDislike:
			score -= 0.2
		case models.InteractionBookmark:
			score += 0.05
		case models.InteractionView:
			score += 0.01
		default:
			// feedback and recommendation_feedback_* variants
			if strings.Contains(interaction.InteractionType, "feedback") {
				score += 0.02
			}
		}
		scores[interaction.FoodItemID] = clamp01(score)
	}
	return scores, nil
}

func preferenceScoreFor(foodID uint, scores map[uint]float64) float64 {
	if scores == nil {
		return 0.5
	}
	if s, ok := scores[foodID]; ok {
		return s
	}
	return 0.5
}

func trimesterScore(food *models.FoodItem, trimester int) float64 {
	suitability := food.GetTrimesterSuitability()
	if len(suitability) == 0 {
		return 0.5
	}

	key := fmt.Sprintf("trimester_%d", trimester)
	if value, ok := suitability[key]; ok {
		switch v := value.(type) {
		case bool:
			if v {
				return 0.9
			}
			return 0.2
		case string:
			switch strings.ToLower(v) {
			case "yes", "true", "recommended":
				return 0.9
			}
			return 0.8
		case float64:
			if v < 0.2 {
				return 0.2
			}
			if v > 1.0 {
				return 1.0
			}
			return v
		}
		return 0.8
	}

	if all, ok := suitability["all_trimesters"].(bool); ok && all {
		return 0.7
	}
	return 0.5
}

// seasonBonus gives in-season foods a small push; season-agnostic foods
// get a token bonus so they never lose to unlisted ones.
func (r *Recommender) seasonBonus(food *models.FoodItem) float64 {
	season := strings.ToLower(food.SeasonalAvailability)
	if season == "" || season == "all" {
		return 0.02
	}
	if strings.Contains(season, utils.CurrentSeason(r.now())) {
		return 0.04
	}
	return 0.0
}

// -----------------------------
// Filters
// -----------------------------

func isRecommendableFood(food *models.FoodItem) bool {
	category := normalizeCategory(food.Category)
	name := strings.ToLower(strings.TrimSpace(food.NameEnglish))

	if len(name) < 3 {
		return false
	}
	if containsString(nonFoodCategories, category) {
		return false
	}
	if strings.Contains(category, "avoid") {
		return false
	}
	if utils.ContainsAny(name, "alcohol", "beer", "wine", "smoked", "raw") {
		return false
	}
	return true
}

func matchesDietaryPreference(food *models.FoodItem, preference string) bool {
	preference = strings.ToLower(strings.TrimSpace(preference))
	name := strings.ToLower(food.NameEnglish)
	category := normalizeCategory(food.Category)

	switch preference {
	case "vegetarian", "veg":
		if category == "protein" && utils.ContainsAny(name, nonVegKeywords...) {
			return false
		}
	case "vegan":
		if category == "dairy" || category == "protein" {
			return false
		}
		if utils.ContainsAny(name, veganExcludeKeywords...) {
			return false
		}
	}
	return true
}

func normalizeCategory(category string) string {
	if category == "" {
		return ""
	}
	key := strings.ToLower(strings.TrimSpace(category))
	if normalized, ok := categoryNormalization[key]; ok {
		return normalized
	}
	return key
}

// ensureVariety caps how many foods of one category make the final list,
// then backfills by score if the cap left holes.
func ensureVariety(scored []ScoredFood, maxItems int) []ScoredFood {
	maxPerCategory := maxItems / 4
	if maxPerCategory < 2 {
		maxPerCategory = 2
	}

	var selected []ScoredFood
	picked := map[uint]bool{}
	categoryCounts := map[string]int{}

	for _, item := range scored {
		category := normalizeCategory(item.Food.Category)
		if categoryCounts[category] < maxPerCategory {
			selected = append(selected, item)
			picked[item.Food.ID] = true
			categoryCounts[category]++
		}
		if len(selected) >= maxItems {
			return selected
		}
	}

	for _, item := range scored {
		if len(selected) >= maxItems {
			break
		}
		if !picked[item.Food.ID] {
			selected = append(selected, item)
			picked[item.Food.ID] = true
		}
	}
	return selected
}

// -----------------------------
// Caches
// -----------------------------

func (r *Recommender) cachedRecommendations(key string) ([]ScoredFood, bool) {
	r.mu.RLock()
	entry, ok := r.recCache[key]
	r.mu.RUnlock()
	if !ok || r.now().Sub(entry.at) > recommendationTTL {
		return nil, false
	}
	return entry.items, true
}

func (r *Recommender) setCachedRecommendations(key string, items []ScoredFood) {
	r.mu.Lock()
	r.recCache[key] = recCacheEntry{items: items, at: r.now()}
	r.mu.Unlock()
}

func (r *Recommender) cachedNutritionScore(food *models.FoodItem, trimester int) float64 {
	key := fmt.Sprintf("%d|%d", food.ID, trimester)

	r.mu.RLock()
	entry, ok := r.nutritionCache[key]
	r.mu.RUnlock()
	if ok && r.now().Sub(entry.at) <= nutritionScoreTTL {
		return entry.score
	}

	score := r.analyzer.CalculateNutritionalScore(food, trimester)
	r.mu.Lock()
	r.nutritionCache[key] = nutritionCacheEntry{score: score, at: r.now()}
	r.mu.Unlock()
	return score
}

// -----------------------------
// Helpers
// -----------------------------

func sortByScore(items []ScoredFood) {
	// stable sort keeps equal-score items in catalog order
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
