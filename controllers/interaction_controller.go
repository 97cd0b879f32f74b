package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/BTL5010TEJA/iproject/config"
	"github.com/BTL5010TEJA/iproject/middlewares"
	"github.com/BTL5010TEJA/iproject/models"

	"github.com/gin-gonic/gin"
)

var allowedInteractions = map[string]bool{
	models.InteractionLike:     true,
	models.InteractionDislike:  true,
	models.InteractionBookmark: true,
	models.InteractionView:     true,
	models.InteractionFeedback: true,
}

// POST /foods/api/interactions  { "food_id": 12, "interaction_type": "like", "notes": "..." }
func RecordInteraction(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	var req struct {
		FoodID          uint   `json:"food_id" binding:"required"`
		InteractionType string `json:"interaction_type" binding:"required"`
		Notes           string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "food_id and interaction_type are required"})
		return
	}
	if !allowedInteractions[req.InteractionType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown interaction_type"})
		return
	}

	var food models.FoodItem
	if err := config.DB.First(&food, req.FoodID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "food not found"})
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
		InteractionType: req.InteractionType,
		Details:         details,
	}
	if err := config.DB.Create(&interaction).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "interaction_id": interaction.ID})
}
