package routes

import (
	"detaildesk-backend/config"
	"detaildesk-backend/controllers"
	"detaildesk-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Client roster routes
		clients := api.Group("/clients")
		{
			clients.POST("", controllers.CreateClient)
			clients.GET("", controllers.GetClients)
			clients.GET("/:id", controllers.GetClient)
			clients.PUT("/:id", controllers.UpdateClient)
			clients.DELETE("/:id", controllers.DeleteClient)
		}

		// Lead routes
		leads := api.Group("/leads")
		{
			leads.GET("", controllers.GetLeads)
			leads.GET("/:id", controllers.GetLead)
			leads.POST("/:id/convert", controllers.ConvertLead)
		}

		// Markdown batch import
		api.POST("/imports/markdown", controllers.ImportMarkdown)

		// Google Ads customer-match export
		api.GET("/exports/google-ads", controllers.ExportGoogleAdsCSV)

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboard)

		// Manual trigger for the daily follow-up run
		api.POST("/reminders/run", controllers.RunReminders)
	}

	return r
}
