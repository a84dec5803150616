package main

import (
	"esd/config"
	"esd/database"
	adminRoutes "esd/routers/adminRoutes"
	attendanceRoutes "esd/routers/attendanceRoutes"
	authRoutes "esd/routers/authRoutes"
	communityRoutes "esd/routers/communityRoutes"
	eventRoutes "esd/routers/eventRoutes"
	examScheduleRoutes "esd/routers/examScheduleRoutes"
	milestoneRoutes "esd/routers/milestoneRoutes"
	resourceRoutes "esd/routers/resourceRoutes"
	teamRoutes "esd/routers/teamRoutes"
	"esd/services"
	"esd/utils"

	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New(fiber.Config{
		BodyLimit: 25 * 1024 * 1024, // uploads
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",  // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded files
	app.Static("/uploads", config.AppConfig.UploadDir)

	// Realtime socket endpoint
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(services.WebSocketHandler))

	authRoutes.SetupAuthRoutes(app)
	adminRoutes.SetupAdminRoutes(app)
	teamRoutes.SetupTeamRoutes(app)
	eventRoutes.SetupEventRoutes(app)
	milestoneRoutes.SetupMilestoneRoutes(app)
	examScheduleRoutes.SetupExamScheduleRoutes(app)
	resourceRoutes.SetupResourceRoutes(app)
	communityRoutes.SetupCommunityRoutes(app)
	attendanceRoutes.SetupAttendanceRoutes(app)

	utils.StartSchedulers()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
