package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/BTL5010TEJA/iproject/config"
	"github.com/BTL5010TEJA/iproject/middlewares"
	"github.com/BTL5010TEJA/iproject/models"
	"github.com/BTL5010TEJA/iproject/utils"

	"github.com/gin-gonic/gin"
)

type profileRequest struct {
	FullName           string `json:"full_name"`
	DueDate            string `json:"due_date"` // YYYY-MM-DD
	CurrentTrimester   int    `json:"current_trimester"`
	DietaryPreferences string `json:"dietary_preferences"`
	Region             string `json:"region"`
	HealthConditions   string `json:"health_conditions"`
}

// resolveTrimester prefers an explicit trimester, otherwise derives one
// from the due date.
func resolveTrimester(req *profileRequest) (int, time.Time, error) {
	var dueDate time.Time
	if req.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return 0, time.Time{}, err
		}
		dueDate = parsed
	}

	if req.CurrentTrimester != 0 {
		if !utils.ValidTrimester(req.CurrentTrimester) {
			return 0, dueDate, errInvalidTrimester
		}
		return req.CurrentTrimester, dueDate, nil
	}

	trimester, err := utils.TrimesterFromDueDate(dueDate, time.Now())
	if err != nil {
		return 0, dueDate, err
	}
	return trimester, dueDate, nil
}

var errInvalidTrimester = errors.New("current_trimester must be 1, 2 or 3")

// POST /profile/api/profiles
func CreateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	trimester, dueDate, err := resolveTrimester(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile := models.UserProfile{
		FullName:           req.FullName,
		DueDate:            dueDate,
		CurrentTrimester:   trimester,
		DietaryPreferences: req.DietaryPreferences,
		Region:             req.Region,
		HealthConditions:   req.HealthConditions,
	}
	if err := config.DB.Create(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, profile)
}

// GET /profile/api/profile
func GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, middlewares.CurrentUser(c))
}

// PUT /profile/api/profile
func UpdateProfile(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.DietaryPreferences != "" {
		user.DietaryPreferences = req.DietaryPreferences
	}
	if req.Region != "" {
		user.Region = req.Region
	}
	if req.HealthConditions != "" {
		user.HealthConditions = req.HealthConditions
	}

	// A due-date change re-derives the trimester unless one was given
	// explicitly.
	if req.DueDate != "" || req.CurrentTrimester != 0 {
		trimester, dueDate, err := resolveTrimester(&req)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !dueDate.IsZero() {
			user.DueDate = dueDate
		}
		user.CurrentTrimester = trimester
	}

	if err := config.DB.Save(user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}
