// Package server is the PawCare gateway: it owns the browser session
// cookies, enforces role-based section authorization, and proxies page data
// to the PawCare REST API.
package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pawcare-dev/pawcare/internal/apiclient"
	"github.com/pawcare-dev/pawcare/internal/audit"
	"github.com/pawcare-dev/pawcare/internal/capability"
	"github.com/pawcare-dev/pawcare/internal/config"
	"github.com/pawcare-dev/pawcare/internal/models"
	"github.com/pawcare-dev/pawcare/internal/policy"
	"github.com/pawcare-dev/pawcare/internal/session"
)

// Server represents the HTTP gateway
type Server struct {
	router    *gin.Engine
	db        *gorm.DB
	config    *config.Config
	logger    zerolog.Logger
	validator *validator.Validate
	sessions  *session.Manager
	api       *apiclient.Client
	audits    *audit.Service
	routes    policy.Routes
	version   string
}

// New creates a new gateway instance
func New(cfg *config.Config, zlog zerolog.Logger, version string) (*Server, error) {
	db, err := initDatabase(cfg, zlog)
	if err != nil {
		return nil, err
	}

	if err := models.AutoMigrate(db); err != nil {
		return nil, err
	}

	routes, err := policy.LoadRoutes(cfg.Server.RoutesFile)
	if err != nil {
		return nil, err
	}

	validate := validator.New()

	// Provider sub-types are a closed enum; empty is allowed (consumer and
	// admin accounts carry none)
	validate.RegisterValidation("providertype", func(fl validator.FieldLevel) bool {
		switch session.ProviderType(fl.Field().String()) {
		case "", session.ProviderVet, session.ProviderShop, session.ProviderBabysitter:
			return true
		}
		return false
	})

	server := &Server{
		db:        db,
		config:    cfg,
		logger:    zlog,
		validator: validate,
		sessions:  session.NewManager(cfg.Auth.TokenMaxAge, cfg.Auth.LogoutGrace, zlog),
		api:       apiclient.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout),
		audits:    audit.NewService(db, zlog),
		routes:    routes,
		version:   version,
	}

	server.setupRouter()

	return server, nil
}

// initDatabase initializes the database connection with production settings
func initDatabase(cfg *config.Config, zlog zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Database.URL), &gorm.Config{
		Logger: logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			logger.Config{
				LogLevel:                  logger.Error,
				IgnoreRecordNotFoundError: true,
				SlowThreshold:             200 * time.Millisecond,
			},
		),
	})
	if err != nil {
		return nil, err
	}

	// The audit log is append-mostly; WAL keeps writers out of readers' way
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=1",
	}
	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			zlog.Warn().Str("pragma", pragma).Err(err).Msg("Failed to apply pragma")
		}
	}

	return db, nil
}

// setupRouter configures the Gin router with routes and middleware
func (s *Server) setupRouter() {
	gin.SetMode(gin.ReleaseMode)

	s.router = gin.New()

	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())

	s.router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{s.config.Server.AllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Session hydration heals corrupt cookie pairs, so it runs first; the
	// edge gate then decides from the raw request cookies alone, before any
	// handler, and the section guards re-derive the same decision from the
	// hydrated session. Deliberate defense in depth.
	s.router.Use(s.hydrateSession())
	s.router.Use(s.edgeGate())

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/", s.landing)

	// Public auth pages: the inverse guard bounces already-authenticated
	// visitors to their role home
	pages := s.router.Group("/")
	pages.Use(s.authPagesGuard())
	{
		pages.GET("/login", s.pageShell("login"))
		pages.GET("/register", s.pageShell("register"))
		pages.GET("/forgot-password", s.pageShell("forgot-password"))
	}

	// Auth API
	s.router.POST("/api/auth/login", s.login)
	s.router.POST("/api/auth/register", s.register)
	s.router.POST("/api/auth/forgot-password", s.forgotPassword)
	s.router.POST("/api/auth/logout", s.logout)
	s.router.GET("/api/auth/me", s.requireAuthenticated(), s.currentUser)

	// Consumer section
	user := s.router.Group("/user")
	user.Use(s.sectionGuard(policy.ClassUser))
	{
		user.GET("/home", s.userHome)
		user.GET("/bookings", s.listBookings)
		user.POST("/bookings", s.createBooking)
		user.GET("/profile", s.getProfile)
		user.PUT("/profile", s.updateProfile)
	}

	// Provider section; feature routes are additionally capability-gated
	// on the provider sub-type
	provider := s.router.Group("/provider")
	provider.Use(s.sectionGuard(policy.ClassProvider))
	{
		provider.GET("/dashboard", s.providerDashboard)
		provider.GET("/nav", s.providerNav)

		services := provider.Group("/services")
		services.Use(s.requireCapability(capability.CanManageServices, "services"))
		{
			services.GET("", s.listServices)
			services.POST("", s.createService)
			services.PUT("/:id", s.updateService)
			services.DELETE("/:id", s.deleteService)
		}

		bookings := provider.Group("/bookings")
		bookings.Use(s.requireCapability(capability.CanManageBookings, "bookings"))
		{
			bookings.GET("", s.providerBookings)
			bookings.PUT("/:id", s.updateBookingStatus)
		}

		inventory := provider.Group("/inventory")
		inventory.Use(s.requireCapability(capability.CanManageInventory, "inventory"))
		{
			inventory.GET("", s.listInventory)
			inventory.POST("", s.createInventoryItem)
			inventory.PUT("/:id", s.updateInventoryItem)
			inventory.DELETE("/:id", s.deleteInventoryItem)
		}

		vet := provider.Group("/vet")
		vet.Use(s.requireCapability(capability.CanAccessVetFeatures, "vet"))
		{
			vet.GET("/records", s.vetRecords)
		}
	}

	// Admin console
	admin := s.router.Group("/admin")
	admin.Use(s.sectionGuard(policy.ClassAdmin))
	{
		admin.GET("", s.adminOverview)
		admin.GET("/users", s.adminListUsers)
		admin.DELETE("/users/:id", s.adminDeleteUser)
		admin.GET("/providers/pending", s.adminPendingProviders)
		admin.PUT("/providers/:id/verify", s.adminVerifyProvider)
		admin.GET("/audit", s.adminAuditLog)
	}
}

// loggingMiddleware creates a custom logging middleware using zerolog
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("HTTP request")
	}
}

// @Router /health [get]
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "online",
		"timestamp": time.Now().UTC(),
		"service":   "pawcare-gateway",
	})
}

// landing serves the public landing route logout navigates to
func (s *Server) landing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "PawCare",
		"version": s.version,
	})
}

// pageShell answers the app shell request for a public auth page. The
// content is rendered client-side; what matters here is that the guard
// chain ran.
func (s *Server) pageShell(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"page": name})
	}
}

// GetDB returns the database connection for use by workers and tests
func (s *Server) GetDB() *gorm.DB {
	return s.db
}

// Handler exposes the router, for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	srv := &http.Server{
		Addr:              s.config.Server.ListenAddr,
		Handler:           s.router,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		ReadHeaderTimeout: 30 * time.Second,
		IdleTimeout:       300 * time.Second,
	}

	go func() {
		s.logger.Info().Str("addr", s.config.Server.ListenAddr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error().Err(err).Msg("HTTP server error")
		}
	}()

	<-sigChan
	s.logger.Info().Msg("Received shutdown signal, shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg("Error shutting down HTTP server")
		return err
	}

	s.logger.Info().Msg("Server shutdown complete")

	// Close database connection to flush WAL writes
	if sqlDB, err := s.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			s.logger.Error().Err(err).Msg("Error closing database")
		}
	}

	return nil
}
