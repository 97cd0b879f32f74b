package services

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/BTL5010TEJA/iproject/models"
	"github.com/BTL5010TEJA/iproject/utils"

	"gorm.io/gorm"
)

// Chatbot answers pregnancy nutrition questions with keyword intent
// matching over the food catalog. When a FLAN generator is configured it
// handles general questions the templates cannot.
type Chatbot struct {
	db   *gorm.DB
	flan *FlanGenerator // nil when HUGGINGFACE_TOKEN is unset
}

func NewChatbot(db *gorm.DB, flan *FlanGenerator) *Chatbot {
	return &Chatbot{db: db, flan: flan}
}

// ChatAnswer is one answered question.
type ChatAnswer struct {
	Intent         string   `json:"intent"`
	Confidence     float64  `json:"confidence"`
	FoodsMentioned []string `json:"foods_mentioned"`
	Answer         string   `json:"answer"`
}

type intentPattern struct {
	intent   string
	keywords []string
}

// Checked in order; the first intent whose keywords score highest wins.
var intentPatterns = []intentPattern{
	{"safety_check", []string{"can i eat", "can i have", "is it safe", "safe to eat", "safe during", "safe in", "is it ok", "harmful"}},
	{"avoid_foods", []string{"avoid", "should not eat", "shouldn't eat", "not eat", "stay away", "bad for pregnancy"}},
	{"benefits", []string{"benefit", "benefits", "why should i", "advantage", "good for", "what does", "why is", "important"}},
	{"nutritional_info", []string{"nutrient", "nutrients", "nutrition", "nutritional", "vitamin", "vitamins", "iron content", "protein", "calcium", "contain"}},
	{"preparation", []string{"prepare", "preparation", "cook", "cooking", "recipe", "how to make", "how should i"}},
	{"quantity", []string{"how much", "how many", "quantity", "serving", "servings", "per day", "daily intake"}},
	{"health_condition", []string{"morning sickness", "nausea", "vomiting", "constipation", "heartburn", "acidity", "anemia", "swelling", "cramps", "diabetes", "blood pressure", "helps with"}},
	{"trimester_diet", []string{"trimester", "first trimester", "second trimester", "third trimester", "early pregnancy", "late pregnancy"}},
	{"meal_planning", []string{"meal plan", "diet plan", "diet chart", "menu", "what should i eat today"}},
	{"greeting", []string{"hello", "hi ", "hey", "good morning", "good evening", "namaste"}},
}

// Per-condition guidance used for health_condition answers.
var conditionRemedies = map[string]string{
	"morning sickness": "Eat small, frequent meals. Ginger tea, dry toast, crackers, and bananas are gentle on the stomach. Avoid greasy and strongly spiced foods, and sip fluids between meals instead of with them.",
	"nausea":           "Eat small, frequent meals. Ginger tea, dry toast, crackers, and bananas are gentle on the stomach. Avoid greasy and strongly spiced foods, and sip fluids between meals instead of with them.",
	"constipation":     "Increase fiber gradually: whole grains, oats, fruits with skin, leafy vegetables, and soaked prunes or raisins. Drink plenty of water and stay lightly active.",
	"heartburn":        "Prefer smaller meals and milder spices. Avoid lying down right after eating, and limit fried, citrus, and tomato-heavy dishes. Cold milk can ease the burn for many women.",
	"acidity":          "Prefer smaller meals and milder spices. Avoid lying down right after eating, and limit fried, citrus, and tomato-heavy dishes. Cold milk can ease the burn for many women.",
	"anemia":           "Focus on iron-rich foods: lentils, spinach, dates, jaggery in moderation, and lean meats if you eat them. Pair them with vitamin C sources like lemon or amla for better absorption, and avoid tea or coffee with meals.",
	"swelling":         "Reduce salty and processed foods, keep hydrated, and include potassium-rich foods like bananas and coconut water. Persistent swelling should be discussed with your doctor.",
	"cramps":           "Calcium and magnesium help: milk, curd, bananas, nuts, and leafy greens. Gentle stretching and hydration matter as much as diet.",
}

var trimesterFocus = map[int]string{
	1: "folic acid and vitamin B6: leafy greens, lentils, citrus fruits, and fortified grains support early neural development and help with nausea",
	2: "calcium, iron, and protein: dairy, lentils, eggs (if you eat them), and green vegetables support the baby's rapid growth",
	3: "iron, fiber, and omega-3: dates, whole grains, leafy greens, and nuts help with energy, digestion, and brain development before birth",
}

var suggestedQuestions = map[int][]string{
	1: {
		"Which foods are rich in folic acid?",
		"What helps with morning sickness?",
		"Can I eat papaya during pregnancy?",
		"How much water should I drink daily?",
		"Which fruits are best in the first trimester?",
	},
	2: {
		"Which foods are rich in calcium?",
		"What are the benefits of spinach?",
		"How much protein do I need daily?",
		"What snacks are healthy in the second trimester?",
		"Can I eat fish during pregnancy?",
	},
	3: {
		"Which foods give energy in the third trimester?",
		"What helps with heartburn?",
		"What are the benefits of dates?",
		"Which foods help with constipation?",
		"What should I eat before delivery?",
	},
}

// ClassifyIntent matches the question against the keyword patterns and
// returns the best intent with a confidence in [0,1].
func (c *Chatbot) ClassifyIntent(question string) (string, float64) {
	q := strings.ToLower(question)

	bestIntent := "general"
	bestHits := 0
	for _, p := range intentPatterns {
		hits := 0
		for _, kw := range p.keywords {
			if strings.Contains(q, kw) {
				hits++
			}
		}
		if hits > bestHits {
			bestHits = hits
			bestIntent = p.intent
		}
	}

	if bestHits == 0 {
		return "general", 0.3
	}
	confidence := 0.55 + 0.15*float64(bestHits)
	if confidence > 0.95 {
		confidence = 0.95
	}
	return bestIntent, confidence
}

// ExtractFoods finds catalog foods mentioned in the question, longest
// name first so "sweet potato" wins over "potato".
func (c *Chatbot) ExtractFoods(question string) ([]models.FoodItem, error) {
	var foods []models.FoodItem
	if err := c.db.Where("name_english <> ''").Find(&foods).Error; err != nil {
		return nil, fmt.Errorf("db error fetching foods: %w", err)
	}

	sort.SliceStable(foods, func(i, j int) bool {
		return len(foods[i].NameEnglish) > len(foods[j].NameEnglish)
	})

	q := " " + utils.NormalizeFoodName(question) + " "
	seen := map[string]bool{}
	var matched []models.FoodItem
	for _, f := range foods {
		name := utils.NormalizeFoodName(f.NameEnglish)
		if name == "" || seen[name] {
			continue
		}
		if strings.Contains(q, " "+name+" ") {
			matched = append(matched, f)
			seen[name] = true
		}
		if len(matched) >= 3 {
			break
		}
	}
	return matched, nil
}

// AnswerQuestion classifies, answers, and records the exchange.
func (c *Chatbot) AnswerQuestion(user *models.UserProfile, question string) (*ChatAnswer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("question is required")
	}

	intent, confidence := c.ClassifyIntent(question)
	foods, err := c.ExtractFoods(question)
	if err != nil {
		return nil, err
	}

	trimester := user.CurrentTrimester
	if !utils.ValidTrimester(trimester) {
		trimester = 1
	}

	answer := c.buildAnswer(intent, question, foods, trimester, user)
	names := make([]string, 0, len(foods))
	for _, f := range foods {
		names = append(names, f.NameEnglish)
	}

	result := &ChatAnswer{
		Intent:         intent,
		Confidence:     confidence,
		FoodsMentioned: names,
		Answer:         answer,
	}

	entry := models.ChatQuery{
		UserID:     user.ID,
		Question:   question,
		Intent:     intent,
		Confidence: confidence,
		Answer:     answer,
	}
	if err := c.db.Create(&entry).Error; err != nil {
		log.Printf("failed to record chat query: %v", err)
	}

	return result, nil
}

// GetSuggestedQuestions returns starter questions for the trimester.
func (c *Chatbot) GetSuggestedQuestions(trimester int) []string {
	if qs, ok := suggestedQuestions[trimester]; ok {
		return qs
	}
	return suggestedQuestions[1]
}

// History returns the user's newest chat entries, paginated.
func (c *Chatbot) History(userID uint, page, perPage int) ([]models.ChatQuery, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	var total int64
	if err := c.db.Model(&models.ChatQuery{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []models.ChatQuery
	err := c.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&entries).Error
	return entries, total, err
}

// -----------------------------
// Answer templates
// -----------------------------

func (c *Chatbot) buildAnswer(intent, question string, foods []models.FoodItem, trimester int, user *models.UserProfile) string {
	switch intent {
	case "greeting":
		return fmt.Sprintf("Hello! I'm your maternal nutrition assistant. You're in trimester %d: ask me about food safety, benefits, preparation, or what to eat this week.", trimester)
	case "safety_check":
		if len(foods) > 0 {
			return c.safetyAnswer(&foods[0], trimester, user)
		}
	case "benefits":
		if len(foods) > 0 {
			return c.benefitsAnswer(&foods[0], trimester)
		}
	case "nutritional_info":
		if len(foods) > 0 {
			return c.nutritionAnswer(&foods[0])
		}
	case "preparation":
		if len(foods) > 0 {
			return c.preparationAnswer(&foods[0])
		}
	case "quantity":
		if len(foods) > 0 {
			return c.quantityAnswer(&foods[0], trimester)
		}
	case "health_condition":
		return c.conditionAnswer(question)
	case "avoid_foods":
		return c.avoidAnswer(trimester)
	case "trimester_diet":
		return c.trimesterDietAnswer(trimester)
	case "meal_planning":
		return fmt.Sprintf("For trimester %d, focus on %s.\n\nUse the meal-plan feature to generate a full day-by-day plan matched to your dietary preference: it balances breakfast, lunch, dinner, and snacks automatically.", trimester, trimesterFocus[trimester])
	}

	// Fall through: general question, or an intent that needed a food we
	// could not find in the catalog.
	return c.generalAnswer(question, trimester)
}

func (c *Chatbot) safetyAnswer(food *models.FoodItem, trimester int, user *models.UserProfile) string {
	analyzer := NewNutritionalAnalyzer()
	var conditions []string
	if user != nil {
		conditions = user.GetHealthConditions()
	}
	safe, warnings := analyzer.CheckSafety(food, conditions)

	var b strings.Builder
	if safe {
		fmt.Fprintf(&b, "**%s** is generally safe during pregnancy. ✅\n", food.NameEnglish)
	} else {
		fmt.Fprintf(&b, "**%s** is best avoided during pregnancy. ⚠️\n", food.NameEnglish)
	}
	if food.Benefits != "" {
		fmt.Fprintf(&b, "\n**Why it matters:** %s\n", food.Benefits)
	}
	for _, w := range warnings {
		fmt.Fprintf(&b, "\n• %s", w)
	}
	if safe && food.Precautions != "" && len(conditions) == 0 {
		fmt.Fprintf(&b, "\n**Precautions:** %s\n", food.Precautions)
	}
	fmt.Fprintf(&b, "\n_%s_", trimesterNote(food, trimester))
	return b.String()
}

func (c *Chatbot) benefitsAnswer(food *models.FoodItem, trimester int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Benefits of %s during pregnancy:**\n", food.NameEnglish)
	if food.Benefits != "" {
		fmt.Fprintf(&b, "\n%s\n", food.Benefits)
	} else {
		b.WriteString("\nA wholesome addition to a balanced pregnancy diet.\n")
	}
	if food.Category != "" {
		fmt.Fprintf(&b, "\n• Category: %s", food.Category)
	}
	if food.RegionalOrigin != "" {
		fmt.Fprintf(&b, "\n• Popular in: %s cuisine", food.RegionalOrigin)
	}
	fmt.Fprintf(&b, "\n\n_%s_", trimesterNote(food, trimester))
	return b.String()
}

func (c *Chatbot) nutritionAnswer(food *models.FoodItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Nutritional profile of %s:**\n", food.NameEnglish)

	info := food.GetNutritionalInfo()
	wrote := false
	for _, key := range []string{"nutrients", "benefits", "meal_type", "meal_types"} {
		if v, ok := info[key]; ok {
			fmt.Fprintf(&b, "\n• %s: %v", strings.ReplaceAll(key, "_", " "), v)
			wrote = true
		}
	}
	if !wrote && food.Benefits != "" {
		fmt.Fprintf(&b, "\n%s", food.Benefits)
	}
	if food.Precautions != "" {
		fmt.Fprintf(&b, "\n\n**Precautions:** %s", food.Precautions)
	}
	return b.String()
}

func (c *Chatbot) preparationAnswer(food *models.FoodItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Preparing %s safely:**\n", food.NameEnglish)
	if food.PreparationTips != "" {
		fmt.Fprintf(&b, "\n%s\n", food.PreparationTips)
	}
	b.WriteString("\n• Wash thoroughly before cooking\n• Cook fresh and eat warm\n• Avoid reheating more than once")
	if food.Precautions != "" {
		fmt.Fprintf(&b, "\n\n**Keep in mind:** %s", food.Precautions)
	}
	return b.String()
}

func (c *Chatbot) quantityAnswer(food *models.FoodItem, trimester int) string {
	return fmt.Sprintf(
		"**How much %s?**\n\nModeration is the rule: one standard serving per meal is a safe default, worked into a varied diet rather than eaten daily in large amounts.\n\n%s\n\n_%s_",
		food.NameEnglish,
		orDefault(food.Precautions, "Follow the recommended quantity for your stage of pregnancy."),
		trimesterNote(food, trimester),
	)
}

func (c *Chatbot) conditionAnswer(question string) string {
	q := strings.ToLower(question)
	for condition, remedy := range conditionRemedies {
		if strings.Contains(q, condition) {
			return fmt.Sprintf("**Managing %s through diet:**\n\n%s", condition, remedy)
		}
	}
	return "**Managing pregnancy discomforts through diet:**\n\nSmall frequent meals, plenty of fluids, and fiber-rich whole foods handle most common issues. Tell me the specific problem (nausea, constipation, heartburn, anemia, swelling, or cramps) and I can be more precise."
}

func (c *Chatbot) avoidAnswer(trimester int) string {
	var foods []models.FoodItem
	c.db.Where("LOWER(category) IN ?", []string{"avoid", "foods to avoid"}).Limit(8).Find(&foods)

	var b strings.Builder
	b.WriteString("**Foods to avoid during pregnancy:**\n\n• Alcohol in any form\n• Raw or undercooked eggs, meat, and seafood\n• Unpasteurized milk and soft cheeses\n• High-mercury fish\n• Excess caffeine and street food of uncertain hygiene")
	for _, f := range foods {
		fmt.Fprintf(&b, "\n• %s", f.NameEnglish)
		if f.Precautions != "" {
			fmt.Fprintf(&b, ": %s", f.Precautions)
		}
	}
	fmt.Fprintf(&b, "\n\n_In trimester %d, also go easy on anything your doctor has flagged for your own health conditions._", trimester)
	return b.String()
}

func (c *Chatbot) trimesterDietAnswer(trimester int) string {
	return fmt.Sprintf(
		"**Trimester %d nutrition focus:**\n\nPrioritize %s.\n\nAsk for recommendations to see catalog foods scored for this trimester, or generate a meal plan for the full week.",
		trimester, trimesterFocus[trimester],
	)
}

func (c *Chatbot) generalAnswer(question string, trimester int) string {
	if c.flan != nil && c.flan.Enabled() {
		if text, err := c.flan.GenerateGeneralAnswer(question, trimester); err == nil && text != "" {
			return text
		} else if err != nil {
			log.Printf("flan generation failed, falling back to template: %v", err)
		}
	}
	return fmt.Sprintf(
		"**Pregnancy nutrition basics for trimester %d:**\n\nFocus on %s.\n\n• Eat small, frequent, freshly cooked meals\n• Stay hydrated through the day\n• Include one iron-rich and one calcium-rich food daily\n\nAsk me about any specific food and I can tell you whether it's safe, its benefits, and how to prepare it.",
		trimester, trimesterFocus[trimester],
	)
}

func trimesterNote(food *models.FoodItem, trimester int) string {
	score := trimesterScore(food, trimester)
	switch {
	case score >= 0.9:
		return fmt.Sprintf("Recommended for trimester %d.", trimester)
	case score <= 0.2:
		return fmt.Sprintf("Not the best choice for trimester %d; there are better-suited alternatives.", trimester)
	default:
		return fmt.Sprintf("Fine in moderation during trimester %d.", trimester)
	}
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
