package models

import "gorm.io/gorm"

// One answered chatbot question, kept for the history panel.
type ChatQuery struct {
	gorm.Model
	UserID     uint    `gorm:"index" json:"user_id"`
	Question   string  `json:"question"`
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Answer     string  `json:"answer"`
}
