package config

import (
	"log"
	"os"
	"strconv"

	"github.com/BTL5010TEJA/iproject/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Config holds application configuration
type Config struct {
	Port   string
	DBPath string

	// Optional generative answers via HuggingFace Inference API.
	// Empty token disables the FLAN path entirely.
	HFToken string
	HFModel string

	ChatHistoryDays    int // prune chat queries older than this
	RecommendationDays int // prune recommendation rows older than this
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:   getEnv("PORT", "8080"),
		DBPath: getEnv("DB_PATH", "instance/database.db"),

		HFToken: getEnv("HUGGINGFACE_TOKEN", ""),
		HFModel: getEnv("HUGGINGFACE_MODEL", "google/flan-t5-base"),

		ChatHistoryDays:    getEnvInt("CHAT_HISTORY_DAYS", 90),
		RecommendationDays: getEnvInt("RECOMMENDATION_HISTORY_DAYS", 180),
	}

	if AppConfig.HFToken == "" {
		log.Println("HUGGINGFACE_TOKEN not set; chatbot runs with template answers only.")
	}
}

func InitDB() {
	if AppConfig == nil {
		LoadConfig()
	}

	db, err := gorm.Open(sqlite.Open(AppConfig.DBPath), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	DB = db
	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
}

// Migrate runs schema migration on the given connection. Split out so
// tests can migrate an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.UserProfile{},
		&models.FoodItem{},
		&models.Recommendation{},
		&models.UserInteraction{},
		&models.MealPlan{},
		&models.ChatQuery{},
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
