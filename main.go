package main

import (
	"fmt"
	"log"
	"os"

	"detaildesk-backend/config"
	"detaildesk-backend/models"
	"detaildesk-backend/routes"
	"detaildesk-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Lead{},
		&models.FollowupLog{},
	)
}

func main() {
	store := services.NewGormClientStore(config.DB)
	reminders := services.NewReminderService(config.DB, store)
	reminders.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
