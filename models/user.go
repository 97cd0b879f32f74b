package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type UserProfile struct {
	gorm.Model
	FullName           string    `json:"full_name"`
	DueDate            time.Time `json:"due_date"`
	CurrentTrimester   int       `json:"current_trimester"` // 1..3
	DietaryPreferences string    `json:"dietary_preferences"` // "vegetarian" | "vegan" | "non-vegetarian" | ""
	Region             string    `json:"region"`
	HealthConditions   string    `json:"health_conditions"` // comma-separated, e.g. "anemia,gestational diabetes"
}

// GetHealthConditions splits the comma-separated column into trimmed,
// lowercased entries. Empty column yields a nil slice.
func (u *UserProfile) GetHealthConditions() []string {
	if strings.TrimSpace(u.HealthConditions) == "" {
		return nil
	}
	var out []string
	for _, c := range strings.Split(u.HealthConditions, ",") {
		c = strings.ToLower(strings.TrimSpace(c))
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}
