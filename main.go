package main

import (
	"fmt"
	"log"
	"os"
	"userpulse-backend/config"
	"userpulse-backend/models"
	"userpulse-backend/routes"
	"userpulse-backend/services"

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
		&models.Account{},
		&models.User{},
		&models.Brand{},
		&models.Location{},
		&models.Contact{},
		&models.Tag{},
		&models.ContactTag{},
		&models.SurveyEvent{},
		&models.SurveyInvitation{},
		&models.SurveyResponse{},
		&models.ShareLink{},
		&models.SftpSource{},
		&models.TeamInvitation{},
	)
}

func main() {

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	services.NewDispatchService(config.DB).StartScheduler()
	services.NewSftpImportService(config.DB).StartScheduler()

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
