package services

import (
	"log"
	"time"

	"github.com/BTL5010TEJA/iproject/config"
	"github.com/BTL5010TEJA/iproject/models"
	"github.com/BTL5010TEJA/iproject/utils"

	"github.com/robfig/cron/v3"
)

// Daily nutrition tips broadcast to connected chat sessions, rotated by
// day of year.
var dailyTips = []string{
	"Start the day with a glass of water before tea or coffee; hydration fights fatigue and constipation.",
	"Pair iron-rich foods like spinach and lentils with a squeeze of lemon: vitamin C boosts absorption.",
	"Two servings of dairy a day cover most of your calcium needs; curd counts.",
	"Soaked almonds and dates make a better snack than packaged biscuits.",
	"Seasonal fruit is cheaper, fresher, and usually better matched to what your body needs right now.",
	"Small frequent meals beat three heavy ones, especially when nausea or heartburn visits.",
	"Whole grains over refined: brown rice, whole wheat, oats and millets keep energy steady.",
}

// InitializeMaintenanceScheduler starts the daily housekeeping job:
// prune old chat and recommendation history, reset recommendation caches,
// and push the day's tip to connected chat sessions.
func InitializeMaintenanceScheduler(recommender *Recommender, hub *ChatHub) *cron.Cron {
	log.Println("[MAINTENANCE-SCHEDULER] Initializing maintenance scheduler...")

	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		loc = time.FixedZone("IST", 5*60*60+30*60)
	}

	c := cron.New(cron.WithLocation(loc))

	// Run daily at 6 AM IST
	c.AddFunc("0 6 * * *", func() {
		log.Println("[MAINTENANCE-SCHEDULER] Running daily maintenance...")
		RunDailyMaintenance(recommender, hub)
	})

	c.Start()
	log.Println("[MAINTENANCE-SCHEDULER] Maintenance scheduler started - runs daily at 6 AM IST")
	return c
}

// RunDailyMaintenance does one pass of the housekeeping work. Split out
// so it is callable directly (and testable) without the cron wrapper.
func RunDailyMaintenance(recommender *Recommender, hub *ChatHub) {
	db := config.DB
	cfg := config.AppConfig
	if db == nil || cfg == nil {
		log.Println("[MAINTENANCE-SCHEDULER] Skipping maintenance: app not initialized")
		return
	}

	chatCutoff := time.Now().AddDate(0, 0, -cfg.ChatHistoryDays)
	res := db.Unscoped().Where("created_at < ?", chatCutoff).Delete(&models.ChatQuery{})
	if res.Error != nil {
		log.Printf("[MAINTENANCE-SCHEDULER] Error pruning chat history: %v", res.Error)
	} else if res.RowsAffected > 0 {
		log.Printf("[MAINTENANCE-SCHEDULER] Pruned %d old chat queries", res.RowsAffected)
	}

	recCutoff := time.Now().AddDate(0, 0, -cfg.RecommendationDays)
	res = db.Unscoped().Where("created_at < ?", recCutoff).Delete(&models.Recommendation{})
	if res.Error != nil {
		log.Printf("[MAINTENANCE-SCHEDULER] Error pruning recommendations: %v", res.Error)
	} else if res.RowsAffected > 0 {
		log.Printf("[MAINTENANCE-SCHEDULER] Pruned %d old recommendations", res.RowsAffected)
	}

	if recommender != nil {
		recommender.ResetCaches()
	}

	if hub != nil && hub.ActiveSessions() > 0 {
		hub.Broadcast(map[string]any{
			"type":   "daily_tip",
			"tip":    TipOfTheDay(time.Now()),
			"season": utils.CurrentSeason(time.Now()),
		})
	}
}

// TipOfTheDay rotates through the tip list by day of year.
func TipOfTheDay(t time.Time) string {
	return dailyTips[t.YearDay()%len(dailyTips)]
}
