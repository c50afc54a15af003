package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/pellerin-apps/detailing-api/config"
	"github.com/pellerin-apps/detailing-api/controllers"
	"github.com/pellerin-apps/detailing-api/middleware"
	"github.com/pellerin-apps/detailing-api/permissions"
	"github.com/pellerin-apps/detailing-api/services"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	logger.Info("Starting Detailing API server...")

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	if err := config.MigrateDatabase(db); err != nil {
		logger.WithError(err).Fatal("Failed to migrate database")
	}
	logger.Info("Database migration completed successfully")

	s3Service, err := services.NewS3Service(cfg)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize S3 service")
	}

	deps := routerDeps{
		cfg:      cfg,
		db:       db,
		logger:   logger,
		s3:       s3Service,
		vision:   services.NewOpenAIVisionService(cfg.OpenAIAPIKey),
		reports:  services.NewPDFReportService(),
		identity: services.NewIdentityService(cfg),
		registry: prometheus.NewRegistry(),
	}

	router := setupRouter(deps)

	addr := ":" + cfg.Port
	logger.WithField("addr", addr).Info("Server is running")
	if err := router.Run(addr); err != nil {
		logger.WithError(err).Fatal("Failed to start server")
	}
}

// routerDeps carries everything the route tree needs. Tests construct this
// with an in-memory database and mock services.
type routerDeps struct {
	cfg      *config.Config
	db       *gorm.DB
	logger   *logrus.Logger
	s3       services.S3Interface
	vision   services.VisionService
	reports  services.ReportService
	identity *services.IdentityService
	registry *prometheus.Registry
	// authMiddleware overrides JWT validation in tests; nil means the real
	// JWKS-backed validator.
	authMiddleware gin.HandlerFunc
}

func setupRouter(deps routerDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.logger))
	router.Use(cors.Default())

	metrics := middleware.NewMetrics(deps.registry)
	router.Use(metrics.Handler())
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.registry, promhttp.HandlerOpts{})))

	home := controllers.NewHomeController(deps.db)
	users := controllers.NewUserController(deps.db, deps.identity)
	tenants := controllers.NewTenantController(deps.db, deps.cfg.AppBaseURL, deps.logger)
	clients := controllers.NewClientController(deps.db)
	estimates := controllers.NewEstimateController(deps.db)
	appointments := controllers.NewAppointmentController(deps.db)
	messages := controllers.NewMessageController(deps.db)
	ongoing := controllers.NewServiceController(deps.db)
	assessments := controllers.NewAssessmentController(deps.db, deps.s3, deps.vision, deps.logger)
	reports := controllers.NewReportController(deps.db, deps.s3, deps.reports, deps.logger)

	v1 := router.Group("/api/v1")

	// Public endpoints
	v1.GET("/health", healthCheck)
	v1.GET("/database/status", databaseStatus(deps.db))

	auth := deps.authMiddleware
	if auth == nil {
		auth = middleware.EnsureValidToken(deps.cfg)
	}

	authed := v1.Group("")
	authed.Use(auth)

	// Any authenticated identity; the handlers themselves dispatch on role
	authed.GET("/me", home.Me)
	authed.POST("/users", users.CreateProfile)
	authed.GET("/users/me", users.GetMyProfile)

	// Staff surface: members and up
	member := authed.Group("")
	member.Use(middleware.RequireRole(permissions.RoleMember))
	{
		member.GET("/tenants/me", tenants.GetMyTenant)

		member.POST("/clients", clients.CreateClient)
		member.GET("/clients", clients.ListClients)
		member.GET("/clients/:id", clients.GetClient)
		member.POST("/clients/:id/vehicles", clients.CreateVehicle)
		member.GET("/clients/:id/vehicles", clients.ListVehicles)

		member.POST("/estimates", estimates.GenerateEstimate)
		member.GET("/estimates/recent", estimates.RecentEstimates)

		member.POST("/appointments", appointments.ScheduleAppointment)
		member.GET("/appointments/upcoming", appointments.UpcomingAppointments)

		member.POST("/services", ongoing.StartService)
		member.GET("/services/ongoing", ongoing.OngoingServices)

		member.GET("/assessments/:id/similar", assessments.SimilarAssessments)
		member.GET("/reports/:id", reports.GetReport)
	}

	// Conversation and assessment endpoints are shared with clients
	shared := authed.Group("")
	shared.Use(middleware.RequireRole(permissions.RoleMember, permissions.RoleClient))
	{
		shared.POST("/clients/:id/messages", messages.SendMessage)
		shared.GET("/clients/:id/messages", messages.ListMessages)

		shared.POST("/assessments", assessments.CreateAssessment)
		shared.GET("/assessments/:id", assessments.GetAssessment)
	}

	// Management decisions
	manager := authed.Group("")
	manager.Use(middleware.RequireRole(permissions.RoleManager))
	{
		manager.POST("/tenants", tenants.EnsureTenant)
		manager.PUT("/tenants/settings", tenants.UpdateSettings)

		manager.PATCH("/estimates/:id/status", estimates.UpdateStatus)
		manager.PATCH("/appointments/:id/status", appointments.UpdateStatus)
		manager.PATCH("/appointments/:id/deposit", appointments.MarkDepositPaid)
		manager.PATCH("/services/:id/status", ongoing.UpdateStatus)

		manager.POST("/reports", reports.GenerateReport)
	}

	// Role-gated home surfaces
	admin := authed.Group("/admin")
	admin.Use(middleware.RequireRole(permissions.RoleAdmin))
	admin.GET("", home.AdminDashboard)

	managerHome := authed.Group("/manager")
	managerHome.Use(middleware.RequireRole(permissions.RoleManager))
	managerHome.GET("", home.ManagerDashboard)

	clientHome := authed.Group("/client")
	clientHome.Use(middleware.RequireRole(permissions.RoleClient))
	clientHome.GET("", home.ClientPortal)

	dashboard := authed.Group("/dashboard")
	dashboard.Use(middleware.RequireRole(permissions.RoleMember))
	dashboard.GET("", home.Dashboard)

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Detailing API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to get database instance",
				},
			})
			return
		}

		if err := sqlDB.Ping(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_CONNECTION_ERROR",
					"message": "Database connection failed",
				},
			})
			return
		}

		tables, err := db.Migrator().GetTables()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_QUERY_ERROR",
					"message": "Failed to query tables",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Database connected",
			"tables":  tables,
		})
	}
}
