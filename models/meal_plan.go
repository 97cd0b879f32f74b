package models

import "gorm.io/gorm"

// A generated meal plan. Plan stores the full day-by-day document as JSON
// so history can replay exactly what was served.
type MealPlan struct {
	gorm.Model
	UserID   uint   `gorm:"index" json:"user_id"`
	Days     int    `json:"days"`
	DietType string `json:"diet_type"`
	Region   string `json:"region"`
	Plan     string `json:"plan"`
}
