package services

import (
	"fmt"
	"strings"

	"github.com/BTL5010TEJA/iproject/models"
	"github.com/BTL5010TEJA/iproject/utils"
)

// WarningSeverity categorizes how serious the flag is.
type WarningSeverity string

const (
	Info    WarningSeverity = "info"
	Caution WarningSeverity = "caution"
	High    WarningSeverity = "high"
)

// SafetyWarning is a structured finding you can show in the API / UI.
type SafetyWarning struct {
	Code     string          `json:"code"`
	Severity WarningSeverity `json:"severity"`
	Message  string          `json:"message"`
}

// NutritionalAnalyzer scores foods against trimester nutrient priorities
// and flags safety issues from precautions and health conditions.
type NutritionalAnalyzer struct{}

func NewNutritionalAnalyzer() *NutritionalAnalyzer {
	return &NutritionalAnalyzer{}
}

// Nutrient priorities per trimester. Weights are relative boosts applied
// when the nutrient shows up in a food's benefits or nutrient tags.
var trimesterPriorities = map[int]map[string]float64{
	1: {
		"folic acid": 0.20, "folate": 0.20, "iron": 0.12,
		"vitamin b6": 0.10, "vitamin b": 0.06,
	},
	2: {
		"calcium": 0.15, "iron": 0.15, "protein": 0.12,
		"vitamin d": 0.10, "omega": 0.06,
	},
	3: {
		"iron": 0.18, "calcium": 0.12, "fiber": 0.12,
		"omega": 0.10, "vitamin k": 0.06,
	},
}

// Always-relevant staples, counted at half weight next to the
// trimester-specific priorities.
var stapleNutrients = map[string]float64{
	"protein": 0.08, "fiber": 0.06, "vitamin c": 0.05,
	"vitamin a": 0.04, "potassium": 0.04, "magnesium": 0.04,
	"zinc": 0.04, "antioxidant": 0.04,
}

// Hard-unsafe terms in a food's name or precautions. These never reach a
// recommendation list regardless of the user's conditions.
var unsafeTerms = []string{
	"alcohol", "beer", "wine", "unpasteurized", "raw sprouts",
	"raw egg", "raw fish", "raw meat", "undercooked", "high mercury",
}

// Condition keyword rules: if the user reports the condition and the food
// text matches, a warning is emitted. Entries marked unsafe knock the food
// out entirely.
type conditionRule struct {
	condition string
	keywords  []string
	unsafe    bool
	message   string
}

var conditionRules = []conditionRule{
	{"gestational diabetes", []string{"sugar", "sugary", "jaggery", "sweet", "dessert", "honey"}, true,
		"High in sugars: not suitable with gestational diabetes."},
	{"diabetes", []string{"sugar", "sugary", "jaggery", "sweet", "dessert", "honey"}, true,
		"High in sugars: not suitable with diabetes."},
	{"hypertension", []string{"salt", "salted", "salty", "pickle", "pickled", "papad", "fried"}, false,
		"Salty or fried item: limit intake with high blood pressure."},
	{"gestational hypertension", []string{"salt", "salted", "salty", "pickle", "pickled", "papad", "fried"}, false,
		"Salty or fried item: limit intake with high blood pressure."},
	{"heartburn", []string{"spicy", "chilli", "chili", "fried", "citrus", "tomato"}, false,
		"May aggravate heartburn: prefer milder preparations."},
	{"nausea", []string{"fried", "greasy", "oily", "strong smell"}, false,
		"Greasy foods can worsen nausea: eat small, bland portions."},
	{"constipation", []string{"white rice", "maida", "refined flour", "cheese"}, false,
		"Low-fiber item: pair with fiber-rich foods if constipated."},
	{"anemia", []string{"tea", "coffee"}, false,
		"Tea and coffee hinder iron absorption; keep them away from iron-rich meals."},
}

// CalculateNutritionalScore returns a [0,1] score for how well the food's
// nutrient profile matches the given trimester. The seed catalog carries
// qualitative nutrient tags rather than lab macros, so the score is a
// keyword scan over benefits and nutrient tags on top of a 0.5 base.
func (a *NutritionalAnalyzer) CalculateNutritionalScore(food *models.FoodItem, trimester int) float64 {
	text := strings.ToLower(food.Benefits + " " + food.NutritionalInfo + " " + food.NameEnglish)
	score := 0.5

	if priorities, ok := trimesterPriorities[trimester]; ok {
		for nutrient, weight := range priorities {
			if strings.Contains(text, nutrient) {
				score += weight
			}
		}
	}
	for nutrient, weight := range stapleNutrients {
		if strings.Contains(text, nutrient) {
			score += weight / 2
		}
	}

	// Penalize items whose own record flags them.
	if utils.ContainsAny(text, "fried", "deep-fried", "processed", "packaged") {
		score -= 0.15
	}

	return clamp01(score)
}

// CheckSafety evaluates a food against the user's health conditions.
// Returns false when the food must not be recommended at all; survivable
// findings come back as warning messages.
func (a *NutritionalAnalyzer) CheckSafety(food *models.FoodItem, conditions []string) (bool, []string) {
	name := strings.ToLower(food.NameEnglish)
	precautions := strings.ToLower(food.Precautions)
	text := name + " " + precautions

	var warnings []string

	for _, term := range unsafeTerms {
		if strings.Contains(text, term) {
			return false, []string{fmt.Sprintf("Contains %s: avoid during pregnancy.", term)}
		}
	}
	if utils.ContainsAny(precautions, "avoid during pregnancy", "not recommended during pregnancy") {
		return false, []string{"Flagged as unsuitable during pregnancy."}
	}

	for _, rule := range conditionRules {
		if !containsCondition(conditions, rule.condition) {
			continue
		}
		if utils.ContainsAny(text, rule.keywords...) {
			if rule.unsafe {
				return false, []string{rule.message}
			}
			warnings = append(warnings, rule.message)
		}
	}

	// Surface the food's own precautions as a caution when conditions are
	// present; the original app shows them alongside the score.
	if len(conditions) > 0 && strings.TrimSpace(food.Precautions) != "" {
		warnings = append(warnings, food.Precautions)
	}

	return true, warnings
}

// CheckSafetyDetailed is CheckSafety with structured warnings, for callers
// that want severity levels.
func (a *NutritionalAnalyzer) CheckSafetyDetailed(food *models.FoodItem, conditions []string) (bool, []SafetyWarning) {
	safe, msgs := a.CheckSafety(food, conditions)
	out := make([]SafetyWarning, 0, len(msgs))
	for _, m := range msgs {
		sev := Caution
		if !safe {
			sev = High
		}
		out = append(out, SafetyWarning{Code: "safety_check", Severity: sev, Message: m})
	}
	return safe, out
}

func containsCondition(conditions []string, want string) bool {
	for _, c := range conditions {
		if strings.Contains(c, want) || strings.Contains(want, c) {
			return true
		}
	}
	return false
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
