package main

import (
	"log"

	"github.com/BTL5010TEJA/iproject/config"
	"github.com/BTL5010TEJA/iproject/routes"
	"github.com/BTL5010TEJA/iproject/seed"
	"github.com/BTL5010TEJA/iproject/services"
)

func main() {
	config.LoadConfig()
	config.InitDB()

	if err := seed.Run(config.DB); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	deps := routes.NewDeps()
	services.InitializeMaintenanceScheduler(deps.Recommender, deps.Hub)

	r := routes.SetupRouter(deps)
	log.Printf("Maternal nutrition API listening on :%s", config.AppConfig.Port)
	r.Run(":" + config.AppConfig.Port)
}
