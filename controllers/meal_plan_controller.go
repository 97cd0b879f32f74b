package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/BTL5010TEJA/iproject/middlewares"
	"github.com/BTL5010TEJA/iproject/services"

	"github.com/gin-gonic/gin"
)

type MealPlanHandler struct {
	planner *services.MealPlanner
}

func NewMealPlanHandler(planner *services.MealPlanner) *MealPlanHandler {
	return &MealPlanHandler{planner: planner}
}

// POST /meal-plans/api/generate  { "days": 3, "diet_type": "vegetarian", "region": "North Indian" }
func (h *MealPlanHandler) Generate(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	var req struct {
		Days     int    `json:"days"`
		DietType string `json:"diet_type"`
		Region   string `json:"region"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if req.Days == 0 {
		req.Days = 3
	}

	plan, err := h.planner.GenerateMealPlan(user, req.Days, req.DietType, req.Region)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(plan.MealPlan) == 0 {
		c.JSON(http.StatusOK, gin.H{"error": "No foods available to build a plan", "meal_plan": []any{}})
		return
	}
	c.JSON(http.StatusOK, plan)
}

// GET /meal-plans/api/history?page=&per_page=
func (h *MealPlanHandler) History(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	plans, total, err := h.planner.History(user.ID, page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Decode stored plan documents so clients get structure, not strings.
	out := make([]gin.H, 0, len(plans))
	for _, p := range plans {
		var doc services.MealPlanResult
		_ = json.Unmarshal([]byte(p.Plan), &doc)
		out = append(out, gin.H{
			"id":         p.ID,
			"created_at": p.CreatedAt,
			"days":       p.Days,
			"diet_type":  p.DietType,
			"region":     p.Region,
			"plan":       doc,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"meal_plans":   out,
		"total":        total,
		"current_page": page,
	})
}
