package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

// One served recommendation batch. FoodItems holds the recommended food
// IDs as a JSON array, in served order.
type Recommendation struct {
	gorm.Model
	UserID    uint   `gorm:"index" json:"user_id"`
	Trimester int    `json:"trimester"`
	Reason    string `json:"reason"`
	FoodItems string `json:"food_items"`
}

func (r *Recommendation) SetFoodItems(ids []uint) {
	b, err := json.Marshal(ids)
	if err != nil {
		return
	}
	r.FoodItems = string(b)
}

func (r *Recommendation) GetFoodItems() []uint {
	var ids []uint
	if r.FoodItems == "" {
		return ids
	}
	_ = json.Unmarshal([]byte(r.FoodItems), &ids)
	return ids
}
