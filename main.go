package main

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"home-service-server/config"
	"home-service-server/database"
	"home-service-server/jobs"
	"home-service-server/middleware"
	"home-service-server/models"
	"home-service-server/repository"
	"home-service-server/routes"
	"home-service-server/services"
	ws "home-service-server/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	config.Load()

	// Stores: Postgres when DB_URL is set, otherwise in-memory with demo data
	var (
		users       repository.UserRepository
		technicians repository.TechnicianRepository
		requests    repository.ServiceRequestRepository
	)
	if config.AppConfig.Database.URL != "" {
		if err := database.Initialize(config.AppConfig.Database.URL); err != nil {
			log.Fatal("Failed to initialize database:", err)
		}
		users = repository.NewGormUserStore(database.GetDB())
		technicians = repository.NewGormTechnicianStore(database.GetDB())
		requests = repository.NewGormServiceRequestStore(database.GetDB())
	} else {
		log.Println("💾 No DB_URL configured, running on in-memory stores")
		memUsers := repository.NewMemoryUserStore()
		memTechnicians := repository.NewMemoryTechnicianStore()
		memRequests := repository.NewMemoryServiceRequestStore()
		seedDemoData(memUsers, memTechnicians, memRequests)
		users = memUsers
		technicians = memTechnicians
		requests = memRequests
	}

	// WebSocket hub and the lifecycle notifier built on it
	hub := ws.NewHub()
	go hub.Run()
	notifier := ws.NewRequestBroadcaster(hub)

	// Cost estimator
	var pricing services.Pricing
	switch config.AppConfig.Pricing.Mode {
	case "random":
		pricing = services.NewRandomEstimator()
	default:
		pricing = services.NewFlatRateEstimator()
	}

	// Domain services
	identity := services.NewIdentity(users, technicians)
	lifecycle := services.NewLifecycle(requests, technicians, identity, pricing, notifier)

	// Set Gin mode
	if config.AppConfig.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Disable automatic redirects for trailing slashes
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.InputValidationMiddleware())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(middleware.AuditLogMiddleware())

	corsConfig := cors.DefaultConfig()
	if config.AppConfig.CORS.AllowedOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(config.AppConfig.CORS.AllowedOrigins, ",")
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Home Service Server is running",
			"time":    time.Now().UTC(),
		})
	})

	// Handlers
	authHandler := routes.NewAuthHandler(identity)
	profileHandler := routes.NewProfileHandler(identity)
	requestHandler := routes.NewServiceRequestHandler(lifecycle)
	technicianHandler := routes.NewTechnicianHandler(lifecycle)
	adminHandler := routes.NewAdminHandler(lifecycle, identity)
	mediaHandler := routes.NewMediaHandler()

	api := router.Group("/api/v1")
	{
		authHandler.Register(api)
		profileHandler.RegisterPublic(api)

		// WebSocket endpoint authenticates via ?token= because browsers
		// cannot set headers on the upgrade request
		events := api.Group("/ws")
		events.Use(middleware.WebSocketAuthMiddleware(identity))
		events.GET("/events", func(c *gin.Context) {
			user := middleware.CurrentUser(c)
			ws.ServeWebSocket(hub, c.Writer, c.Request, user.ID, string(user.Role))
		})

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(identity))
		{
			profileHandler.RegisterProtected(protected)
			requestHandler.Register(protected)
			mediaHandler.Register(protected)

			technicianGroup := protected.Group("")
			technicianGroup.Use(middleware.RequireRole(models.RoleTechnician))
			technicianHandler.Register(technicianGroup)

			adminGroup := protected.Group("")
			adminGroup.Use(middleware.RequireRole(models.RoleAdmin))
			adminHandler.Register(adminGroup)
		}
	}

	// Background job: resurface pending requests nobody picked up
	reminderJob := jobs.NewReminderJob(
		requests,
		notifier,
		time.Duration(config.AppConfig.Jobs.ReminderIntervalMinutes)*time.Minute,
		time.Duration(config.AppConfig.Jobs.StaleAfterMinutes)*time.Minute,
	)
	reminderJob.Start()
	defer reminderJob.Stop()

	port := config.AppConfig.Server.Port
	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
