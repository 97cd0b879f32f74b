package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/BTL5010TEJA/iproject/config"
	"github.com/BTL5010TEJA/iproject/models"
	"github.com/BTL5010TEJA/iproject/utils"

	"github.com/gin-gonic/gin"
)

type foodRequest struct {
	NameEnglish          string `json:"name_english" binding:"required"`
	NameHindi            string `json:"name_hindi"`
	Category             string `json:"category"`
	RegionalOrigin       string `json:"regional_origin"`
	NutritionalInfo      string `json:"nutritional_info"`
	TrimesterSuitability string `json:"trimester_suitability"`
	SeasonalAvailability string `json:"seasonal_availability"`
	Benefits             string `json:"benefits"`
	Precautions          string `json:"precautions"`
	PreparationTips      string `json:"preparation_tips"`
}

// GET /foods/api/foods?category=&trimester=&search=&page=&per_page=
func ListFoods(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	q := config.DB.Model(&models.FoodItem{})
	if category := c.Query("category"); category != "" {
		q = q.Where("LOWER(category) = ?", strings.ToLower(category))
	}
	if search := c.Query("search"); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(name_english) LIKE ? OR LOWER(name_hindi) LIKE ?", like, like)
	}
	if t := c.Query("trimester"); t != "" {
		trimester, err := strconv.Atoi(t)
		if err != nil || !utils.ValidTrimester(trimester) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "trimester must be 1, 2 or 3"})
			return
		}
		// suitability is a JSON text column; match the flag or the
		// all-trimesters marker
		key := "%\"trimester_" + t + "\":true%"
		q = q.Where("trimester_suitability LIKE ? OR trimester_suitability LIKE ?", key, "%\"all_trimesters\":true%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var foods []models.FoodItem
	if err := q.Order("name_english ASC").Offset((page - 1) * perPage).Limit(perPage).Find(&foods).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"foods":        foods,
		"total":        total,
		"current_page": page,
		"per_page":     perPage,
	})
}

// GET /foods/api/foods/:id
func GetFood(c *gin.Context) {
	var food models.FoodItem
	if err := config.DB.First(&food, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "food not found"})
		return
	}
	c.JSON(http.StatusOK, food)
}

// POST /foods/api/foods
func CreateFood(c *gin.Context) {
	var req foodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name_english is required"})
		return
	}

	food := models.FoodItem{
		NameEnglish:          req.NameEnglish,
		NameHindi:            req.NameHindi,
		Category:             req.Category,
		RegionalOrigin:       req.RegionalOrigin,
		NutritionalInfo:      req.NutritionalInfo,
		TrimesterSuitability: req.TrimesterSuitability,
		SeasonalAvailability: req.SeasonalAvailability,
		Benefits:             req.Benefits,
		Precautions:          req.Precautions,
		PreparationTips:      req.PreparationTips,
	}
	if err := config.DB.Create(&food).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, food)
}

// PUT /foods/api/foods/:id
func UpdateFood(c *gin.Context) {
	var food models.FoodItem
	if err := config.DB.First(&food, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "food not found"})
		return
	}

	var req foodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name_english is required"})
		return
	}

	food.NameEnglish = req.NameEnglish
	food.NameHindi = req.NameHindi
	food.Category = req.Category
	food.RegionalOrigin = req.RegionalOrigin
	food.NutritionalInfo = req.NutritionalInfo
	food.TrimesterSuitability = req.TrimesterSuitability
	food.SeasonalAvailability = req.SeasonalAvailability
	food.Benefits = req.Benefits
	food.Precautions = req.Precautions
	food.PreparationTips = req.PreparationTips

	if err := config.DB.Save(&food).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, food)
}

// DELETE /foods/api/foods/:id
func DeleteFood(c *gin.Context) {
	var food models.FoodItem
	if err := config.DB.First(&food, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "food not found"})
		return
	}
	if err := config.DB.Delete(&food).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /foods/api/categories
func ListCategories(c *gin.Context) {
	type categoryCount struct {
		Category string `json:"category"`
		Count    int64  `json:"count"`
	}
	var rows []categoryCount
	err := config.DB.Model(&models.FoodItem{}).
		Select("category, COUNT(*) as count").
		Where("category <> ''").
		Group("category").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": rows})
}
