package models

import (
	"encoding/json"
	"strings"

	"gorm.io/gorm"
)

// A catalog entry for one food. NutritionalInfo and TrimesterSuitability
// are stored as JSON text the way the seed datasets ship them.
type FoodItem struct {
	gorm.Model
	NameEnglish          string `gorm:"index;not null" json:"name_english"`
	NameHindi            string `json:"name_hindi"`
	Category             string `gorm:"index" json:"category"`
	RegionalOrigin       string `json:"regional_origin"`
	NutritionalInfo      string `json:"nutritional_info"`
	TrimesterSuitability string `json:"trimester_suitability"`
	SeasonalAvailability string `json:"seasonal_availability"` // "all", "summer", "monsoon,winter", …
	Benefits             string `json:"benefits"`
	Precautions          string `json:"precautions"`
	PreparationTips      string `json:"preparation_tips"`
}

// GetNutritionalInfo decodes the JSON column. Returns an empty map on
// malformed or missing data so callers never have to nil-check.
func (f *FoodItem) GetNutritionalInfo() map[string]any {
	out := map[string]any{}
	if strings.TrimSpace(f.NutritionalInfo) == "" {
		return out
	}
	if err := json.Unmarshal([]byte(f.NutritionalInfo), &out); err != nil {
		return map[string]any{}
	}
	return out
}

// GetTrimesterSuitability decodes the JSON column, e.g.
// {"trimester_1": true, "trimester_2": true, "all_trimesters": false}.
func (f *FoodItem) GetTrimesterSuitability() map[string]any {
	out := map[string]any{}
	if strings.TrimSpace(f.TrimesterSuitability) == "" {
		return out
	}
	if err := json.Unmarshal([]byte(f.TrimesterSuitability), &out); err != nil {
		return map[string]any{}
	}
	return out
}

// SetTrimesterSuitability encodes and stores the suitability map.
func (f *FoodItem) SetTrimesterSuitability(s map[string]any) {
	b, err := json.Marshal(s)
	if err != nil {
		return
	}
	f.TrimesterSuitability = string(b)
}
