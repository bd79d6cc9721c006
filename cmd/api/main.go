package main

import (
	"log"
	"os"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SAIMANIDEEP29/donor-network/internal/config"
	"github.com/SAIMANIDEEP29/donor-network/internal/domain"
	"github.com/SAIMANIDEEP29/donor-network/internal/handler"
	"github.com/SAIMANIDEEP29/donor-network/internal/middleware"
	"github.com/SAIMANIDEEP29/donor-network/internal/repository"
	"github.com/SAIMANIDEEP29/donor-network/internal/service"
	"github.com/SAIMANIDEEP29/donor-network/internal/service/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (license uploads will not work)", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, minioClient, cfg)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health" || c.Path() == "/metrics"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)
	authGroup.Post("/logout", h.Auth.Logout)
	authGroup.Post("/forgot-password", h.Auth.ForgotPassword)
	authGroup.Post("/reset-password", h.Auth.ResetPassword)
	authGroup.Get("/verify-email", h.Auth.VerifyEmail)
	authGroup.Post("/resend-verification", h.Auth.ResendVerification)

	protected := v1.Group("", middleware.AuthRequired(authService))

	protected.Get("/auth/me", h.Auth.Me)

	profiles := protected.Group("/profiles")
	profiles.Get("/me", h.Profile.GetMe)
	profiles.Put("/me", h.Profile.UpdateMe)
	profiles.Put("/me/availability", h.Profile.SetAvailability)
	profiles.Get("/me/eligibility", h.Profile.GetEligibility)
	profiles.Get("/search", h.Profile.SearchDonors)
	profiles.Get("/:id", h.Profile.GetByID)

	requests := protected.Group("/requests")
	requests.Post("/", h.Request.Create)
	requests.Get("/", h.Request.List)
	requests.Get("/mine", h.Request.ListMine)
	requests.Get("/feed", h.Request.Feed)
	requests.Get("/:id", h.Request.GetByID)
	requests.Get("/:id/eligibility", h.Request.CheckEligibility)
	requests.Post("/:id/accept", h.Request.Accept)
	requests.Get("/:id/acceptances", h.Request.ListAcceptances)
	requests.Put("/:id/accepted", h.Request.MarkAccepted)
	requests.Put("/:id/fulfilled", h.Request.MarkFulfilled)
	requests.Put("/:id/cancel", h.Request.Cancel)

	acceptances := protected.Group("/acceptances")
	acceptances.Get("/mine", h.Request.ListMyAcceptances)
	acceptances.Put("/:id/status", h.Request.UpdateAcceptanceStatus)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/stream", h.Notification.Stream)
	notifications.Get("/unread-count", h.Notification.UnreadCount)
	notifications.Put("/read-all", h.Notification.MarkAllAsRead)
	notifications.Put("/:id/read", h.Notification.MarkAsRead)
	notifications.Put("/:id/action-taken", h.Notification.MarkActionTaken)
	notifications.Delete("/:id", h.Notification.Delete)

	donations := protected.Group("/donations")
	donations.Get("/mine", h.Donation.ListMine)

	bloodBanks := protected.Group("/blood-banks")
	bloodBanks.Get("/", h.BloodBank.List)
	bloodBanks.Get("/me", middleware.RequireRole(domain.RoleBloodBank), h.BloodBank.GetMine)
	bloodBanks.Put("/me/inventory", middleware.RequireRole(domain.RoleBloodBank), h.BloodBank.UpdateInventory)
	bloodBanks.Post("/me/license", middleware.RequireRole(domain.RoleBloodBank), h.BloodBank.UploadLicenseDoc)
	bloodBanks.Get("/:id", h.BloodBank.GetByID)
	bloodBanks.Get("/:id/license", middleware.RequireRole(domain.RoleAdmin), h.BloodBank.GetLicenseDoc)
	bloodBanks.Put("/:id/verify", middleware.RequireRole(domain.RoleAdmin), h.BloodBank.Verify)

	adminGroup := protected.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	adminGroup.Get("/users", h.Admin.ListUsers)
	adminGroup.Post("/users/assign-role", h.Admin.AssignRole)
	adminGroup.Put("/users/:id/availability", h.Admin.SetDonorAvailability)
	adminGroup.Get("/dashboard", h.Admin.Dashboard)
	adminGroup.Get("/audit-logs", h.Admin.AuditTrail)
}
