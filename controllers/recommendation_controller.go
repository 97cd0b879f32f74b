package controllers

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/BTL5010TEJA/iproject/config"
	"github.com/BTL5010TEJA/iproject/middlewares"
	"github.com/BTL5010TEJA/iproject/models"
	"github.com/BTL5010TEJA/iproject/services"

	"github.com/gin-gonic/gin"
)

type RecommendationHandler struct {
	recommender *services.Recommender
}

func NewRecommendationHandler(recommender *services.Recommender) *RecommendationHandler {
	return &RecommendationHandler{recommender: recommender}
}

// GET /recommendations/api/recommendations?meal_type=&max_items=
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	maxItems, _ := strconv.Atoi(c.DefaultQuery("max_items", "10"))
	if maxItems < 1 || maxItems > 50 {
		maxItems = 10
	}
	mealType := c.Query("meal_type")

	var recs []services.ScoredFood
	var err error
	if mealType != "" {
		recs, err = h.recommender.GetMealSpecificRecommendations(user, mealType, maxItems)
	} else {
		recs, err = h.recommender.GetRecommendations(user, maxItems)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if len(recs) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"error":           "No recommendations available",
			"recommendations": []any{},
			"trimester":       user.CurrentTrimester,
		})
		return
	}

	// Persist what we served before returning it.
	foodIDs := make([]uint, 0, len(recs))
	for _, rec := range recs {
		foodIDs = append(foodIDs, rec.Food.ID)
	}
	saved, err := h.recommender.SaveRecommendation(user, foodIDs,
		fmt.Sprintf("Personalized recommendations for trimester %d", user.CurrentTrimester))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recommendation_id":  saved.ID,
		"trimester":          user.CurrentTrimester,
		"dietary_preference": user.DietaryPreferences,
		"recommendations":    formatRecommendations(recs, true),
	})
}

// GET /recommendations/api/recommendations/by-category
func (h *RecommendationHandler) GetRecommendationsByCategory(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	recs, err := h.recommender.GetRecommendations(user, 20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(recs) == 0 {
		c.JSON(http.StatusOK, gin.H{"error": "No recommendations available", "categories": gin.H{}})
		return
	}

	byCategory := map[string][]gin.H{}
	for _, rec := range recs {
		category := rec.Food.Category
		if category == "" {
			category = "other"
		}
		byCategory[category] = append(byCategory[category], gin.H{
			"food":     rec.Food,
			"score":    roundPct(rec.Score),
			"warnings": warningsOrEmpty(rec.Warnings),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"trimester":  user.CurrentTrimester,
		"categories": byCategory,
	})
}

// POST /recommendations/api/recommendations/feedback  { "food_id": 3, "feedback": "helpful", "notes": "" }
func (h *RecommendationHandler) SubmitFeedback(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	var req struct {
		FoodID   uint   `json:"food_id"`
		Feedback string `json:"feedback"` // helpful | not_helpful | tried
		Notes    string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.FoodID == 0 || req.Feedback == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	details := ""
	if req.Notes != "" {
		b, _ := json.Marshal(map[string]string{"notes": req.Notes})
		details = string(b)
	}

	interaction := models.UserInteraction{
		UserID:          user.ID,
		FoodItemID:      req.FoodID,
		InteractionType: "recommendation_feedback_" + req.Feedback,
		Details:         details,
	}
	if err := config.DB.Create(&interaction).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Feedback saved"})
}

// GET /recommendations/api/recommendations/history?page=&per_page=
func (h *RecommendationHandler) GetHistory(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	var total int64
	if err := config.DB.Model(&models.Recommendation{}).Where("user_id = ?", user.ID).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var recs []models.Recommendation
	if err := config.DB.
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&recs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	pages := total / int64(perPage)
	if total%int64(perPage) != 0 {
		pages++
	}

	c.JSON(http.StatusOK, gin.H{
		"recommendations": recs,
		"total":           total,
		"pages":           pages,
		"current_page":    page,
	})
}

func formatRecommendations(recs []services.ScoredFood, withSubScores bool) []gin.H {
	out := make([]gin.H, 0, len(recs))
	for _, rec := range recs {
		item := gin.H{
			"food":     rec.Food,
			"score":    roundPct(rec.Score),
			"warnings": warningsOrEmpty(rec.Warnings),
		}
		if withSubScores {
			item["nutrition_score"] = roundPct(rec.NutritionScore)
			item["trimester_score"] = roundPct(rec.TrimesterScore)
			item["preference_score"] = roundPct(rec.PreferenceScore)
		}
		out = append(out, item)
	}
	return out
}

// roundPct converts a [0,1] score to a percentage with one decimal.
func roundPct(score float64) float64 {
	return math.Round(score*1000) / 10
}

func warningsOrEmpty(warnings []string) []string {
	if warnings == nil {
		return []string{}
	}
	return warnings
}
