package routes

import (
	"net/http"
	"time"

	"github.com/BTL5010TEJA/iproject/config"
	"github.com/BTL5010TEJA/iproject/controllers"
	"github.com/BTL5010TEJA/iproject/middlewares"
	"github.com/BTL5010TEJA/iproject/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps carries the long-lived services the routes need. The recommender
// holds caches and must outlive individual requests.
type Deps struct {
	Recommender *services.Recommender
	Chatbot     *services.Chatbot
	Planner     *services.MealPlanner
	Hub         *services.ChatHub
}

func NewDeps() *Deps {
	var flan *services.FlanGenerator
	if config.AppConfig != nil && config.AppConfig.HFToken != "" {
		flan = services.NewFlanGenerator(config.AppConfig.HFToken, config.AppConfig.HFModel)
	}
	recommender := services.NewRecommender(config.DB)
	return &Deps{
		Recommender: recommender,
		Chatbot:     services.NewChatbot(config.DB, flan),
		Planner:     services.NewMealPlanner(config.DB, recommender),
		Hub:         services.NewChatHub(),
	}
}

func SetupRouter(deps *Deps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-User-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	recHandler := controllers.NewRecommendationHandler(deps.Recommender)
	chatHandler := controllers.NewChatbotHandler(deps.Chatbot, deps.Hub)
	planHandler := controllers.NewMealPlanHandler(deps.Planner)

	// Public catalog + profile creation
	foods := r.Group("/foods/api")
	{
		foods.GET("/foods", controllers.ListFoods)
		foods.GET("/foods/:id", controllers.GetFood)
		foods.POST("/foods", controllers.CreateFood)
		foods.PUT("/foods/:id", controllers.UpdateFood)
		foods.DELETE("/foods/:id", controllers.DeleteFood)
		foods.GET("/categories", controllers.ListCategories)
	}
	r.POST("/profile/api/profiles", controllers.CreateProfile)

	// Per-user routes resolve the caller's profile first
	profile := r.Group("/profile/api")
	profile.Use(middlewares.ProfileMiddleware())
	{
		profile.GET("/profile", controllers.GetProfile)
		profile.PUT("/profile", controllers.UpdateProfile)
	}

	interactions := r.Group("/foods/api")
	interactions.Use(middlewares.ProfileMiddleware())
	{
		interactions.POST("/interactions", controllers.RecordInteraction)
	}

	chatbot := r.Group("/chatbot")
	chatbot.Use(middlewares.ProfileMiddleware())
	{
		chatbot.POST("/api/ask", chatHandler.Ask)
		chatbot.GET("/api/suggestions", chatHandler.SuggestedQuestions)
		chatbot.GET("/api/history", chatHandler.History)
		chatbot.GET("/ws", chatHandler.ChatWS)
	}

	recommendations := r.Group("/recommendations/api")
	recommendations.Use(middlewares.ProfileMiddleware())
	{
		recommendations.GET("/recommendations", recHandler.GetRecommendations)
		recommendations.GET("/recommendations/by-category", recHandler.GetRecommendationsByCategory)
		recommendations.POST("/recommendations/feedback", recHandler.SubmitFeedback)
		recommendations.GET("/recommendations/history", recHandler.GetHistory)
	}

	mealPlans := r.Group("/meal-plans/api")
	mealPlans.Use(middlewares.ProfileMiddleware())
	{
		mealPlans.POST("/generate", planHandler.Generate)
		mealPlans.GET("/history", planHandler.History)
	}

	return r
}
