package models

import "gorm.io/gorm"

// Interaction types that feed the preference score.
const (
	InteractionLike     = "like"
	InteractionDislike  = "dislike"
	InteractionBookmark = "bookmark"
	InteractionView     = "view"
	InteractionFeedback = "feedback"
)

// One user action on a food (like, dislike, bookmark, view, feedback,
// recommendation_feedback_*). Details carries optional JSON payload such
// as feedback notes.
type UserInteraction struct {
	gorm.Model
	UserID          uint   `gorm:"index" json:"user_id"`
	FoodItemID      uint   `gorm:"index" json:"food_item_id"`
	InteractionType string `json:"interaction_type"`
	Details         string `json:"details"`
}
