// Package seed loads the embedded food catalog on first boot. The
// original datasets were CSV files; here the curated catalog ships inside
// the binary and loading stays idempotent.
package seed

import (
	"embed"
	"encoding/json"
	"fmt"
	"log"

	"github.com/BTL5010TEJA/iproject/models"
	"github.com/BTL5010TEJA/iproject/utils"

	"gorm.io/gorm"
)

//go:embed foods.json
var dataFS embed.FS

type seedFood struct {
	NameEnglish          string         `json:"name_english"`
	NameHindi            string         `json:"name_hindi"`
	Category             string         `json:"category"`
	RegionalOrigin       string         `json:"regional_origin"`
	NutritionalInfo      map[string]any `json:"nutritional_info"`
	TrimesterSuitability map[string]any `json:"trimester_suitability"`
	SeasonalAvailability string         `json:"seasonal_availability"`
	Benefits             string         `json:"benefits"`
	Precautions          string         `json:"precautions"`
	PreparationTips      string         `json:"preparation_tips"`
}

// Run seeds the catalog when the foods table is empty. Duplicate names
// (after normalization) are skipped, mirroring the dataset loader's
// dedup rule.
func Run(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.FoodItem{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count foods: %w", err)
	}
	if count > 0 {
		log.Printf("Food catalog already seeded (%d items)", count)
		return nil
	}

	raw, err := dataFS.ReadFile("foods.json")
	if err != nil {
		return fmt.Errorf("read seed data: %w", err)
	}
	var entries []seedFood
	if err := json.Unmarshal(raw, &entries); err != nil {
		return fmt.Errorf("decode seed data: %w", err)
	}

	seen := map[string]bool{}
	added := 0
	for _, e := range entries {
		normalized := utils.NormalizeFoodName(e.NameEnglish)
		if normalized == "" || seen[normalized] {
			continue
		}

		nutritionalInfo, _ := json.Marshal(e.NutritionalInfo)
		suitability, _ := json.Marshal(e.TrimesterSuitability)

		food := models.FoodItem{
			NameEnglish:          e.NameEnglish,
			NameHindi:            e.NameHindi,
			Category:             e.Category,
			RegionalOrigin:       e.RegionalOrigin,
			NutritionalInfo:      string(nutritionalInfo),
			TrimesterSuitability: string(suitability),
			SeasonalAvailability: e.SeasonalAvailability,
			Benefits:             e.Benefits,
			Precautions:          e.Precautions,
			PreparationTips:      e.PreparationTips,
		}
		if err := db.Create(&food).Error; err != nil {
			return fmt.Errorf("seed %q: %w", e.NameEnglish, err)
		}
		seen[normalized] = true
		added++
	}

	log.Printf("Seeded %d food items", added)
	return nil
}
