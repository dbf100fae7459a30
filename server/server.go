package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dinerozz/landing-analytics-backend/config"
	"github.com/dinerozz/landing-analytics-backend/docs"
	adminHandler "github.com/dinerozz/landing-analytics-backend/internal/handler/admin"
	analyticsHandler "github.com/dinerozz/landing-analytics-backend/internal/handler/analytics"
	leadsHandler "github.com/dinerozz/landing-analytics-backend/internal/handler/leads"
	trackHandler "github.com/dinerozz/landing-analytics-backend/internal/handler/track"
	"github.com/dinerozz/landing-analytics-backend/internal/repository"
	adminService "github.com/dinerozz/landing-analytics-backend/internal/service/admin"
	analyticsService "github.com/dinerozz/landing-analytics-backend/internal/service/analytics"
	redisService "github.com/dinerozz/landing-analytics-backend/internal/service/redis"
	sessionService "github.com/dinerozz/landing-analytics-backend/internal/service/session"
	submissionService "github.com/dinerozz/landing-analytics-backend/internal/service/submission"
	visitService "github.com/dinerozz/landing-analytics-backend/internal/service/visit"
	waitlistService "github.com/dinerozz/landing-analytics-backend/internal/service/waitlist"
	"github.com/dinerozz/landing-analytics-backend/middleware"
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterHandler struct {
	trackHandler     *trackHandler.TrackHandler
	leadsHandler     *leadsHandler.LeadsHandler
	analyticsHandler *analyticsHandler.AnalyticsHandler
	adminHandler     *adminHandler.AdminHandler
}

func RunServer(config *config.Config) {
	env := config.Env
	switch env {
	case "prod", "production":
		gin.SetMode(gin.ReleaseMode)
		log.Println("🚀 Starting server in PRODUCTION mode")
	case "dev", "development":
		gin.SetMode(gin.DebugMode)
		log.Println("🔧 Starting server in DEVELOPMENT mode")
	default:
		gin.SetMode(gin.DebugMode)
		log.Println("🔧 Starting server in DEVELOPMENT mode (default)")
	}

	db, err := repository.NewRepository(config.DB)
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}
	defer db.Close()

	// cache is optional: a nil service means analytics reads go straight
	// to Postgres
	var cache redisService.ServiceInterface
	if rs := redisService.NewRedisService(redisService.RedisConfig{
		Host:     config.Redis.Host,
		Port:     config.Redis.Port,
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	}); rs != nil {
		cache = rs
		defer rs.Close()
	}

	aggregateRepo := repository.NewAggregateRepository(db)
	visitRepo := repository.NewVisitRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	waitlistRepo := repository.NewWaitlistRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	visitSrv := visitService.NewVisitService(aggregateRepo, visitRepo, sessionRepo)
	analyticsSrv := analyticsService.NewAnalyticsService(aggregateRepo, visitRepo, waitlistRepo, submissionRepo, cache, config.AnalyticsCacheTTL)
	sessionSrv := sessionService.NewSessionService(sessionRepo)
	waitlistSrv := waitlistService.NewWaitlistService(waitlistRepo)
	submissionSrv := submissionService.NewSubmissionService(submissionRepo)
	adminSrv := adminService.NewAdminService(adminRepo)

	if err := adminSrv.Bootstrap(context.Background(), config.Admin.Username, config.Admin.Password); err != nil {
		log.Fatal("❌ Failed to bootstrap admin user:", err)
	}

	routerHandler := &RouterHandler{
		trackHandler:     trackHandler.NewTrackHandler(visitSrv),
		leadsHandler:     leadsHandler.NewLeadsHandler(waitlistSrv, submissionSrv),
		analyticsHandler: analyticsHandler.NewAnalyticsHandler(analyticsSrv, sessionSrv),
		adminHandler:     adminHandler.NewAdminHandler(adminSrv),
	}

	r := setupRouter(routerHandler)

	srv := &http.Server{
		Addr:    ":" + config.Server.Port,
		Handler: r,
	}

	go func() {
		log.Printf("✅ Server starting on port %s", config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	gracefulShutdown(srv)
}

func gracefulShutdown(srv *http.Server) {
	quit := make(chan os.Signal, 1)

	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("🔄 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
		return
	}

	select {
	case <-ctx.Done():
		log.Println("⚠️ Server shutdown timeout exceeded")
	default:
		log.Println("✅ Server gracefully stopped")
	}
}

func setupRouter(routerHandler *RouterHandler) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if origin != "" && (strings.HasPrefix(origin, "http://localhost:") ||
			strings.HasPrefix(origin, "http://127.0.0.1:")) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else if strings.HasSuffix(origin, ".ahau.space") || origin == "https://ahau.space" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"service":   "landing-analytics",
		})
	})

	docs.SwaggerInfo.Host = "127.0.0.1:8080"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}
	docs.SwaggerInfo.Title = "Landing analytics API"
	docs.SwaggerInfo.Description = "Visit tracking and aggregation API for the landing page portfolio"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.BasePath = "/"

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	publicRoutes := r.Group("/api/public")
	{
		publicRoutes.POST("/trackVisit", routerHandler.trackHandler.TrackVisit)
		publicRoutes.POST("/trackExit", routerHandler.trackHandler.TrackExit)
		publicRoutes.POST("/waitlist", routerHandler.leadsHandler.JoinWaitlist)
		publicRoutes.POST("/submit", routerHandler.leadsHandler.CreateSubmission)
	}

	publicAdminRoutes := r.Group("/api/admin")
	{
		publicAdminRoutes.POST("/auth", routerHandler.adminHandler.Auth)
	}

	privateRoutes := r.Group("/api/admin")
	privateRoutes.Use(middleware.AdminAuthMiddleware())
	{
		privateRoutes.POST("/analytics", routerHandler.analyticsHandler.ProjectAnalytics)
		privateRoutes.GET("/global-stats", routerHandler.analyticsHandler.GlobalStats)
		privateRoutes.POST("/clearAnalytics", routerHandler.analyticsHandler.ClearAnalytics)
		privateRoutes.POST("/cleanupSessions", routerHandler.analyticsHandler.CleanupSessions)
	}

	return r
}
