package main

import (
	"log"

	"storepulse/ai"
	"storepulse/analytics"
	"storepulse/cache"
	"storepulse/config"
	"storepulse/db"
	_ "storepulse/docs" // Swagger docs
	"storepulse/handlers"
	"storepulse/service"
	"storepulse/validation"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	cfg := config.GetConfig()

	// Initialize audit database
	database, err := db.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize cache
	appCache := cache.New()

	// Initialize DashScope AI client
	aiService, err := ai.New(cfg.DashScopeAPIKey, cfg.ModelName, cfg.MaxQueryRows, appCache)
	if err != nil {
		log.Fatalf("Failed to initialize AI service: %v", err)
	}
	defer aiService.Close()

	// Initialize PostgreSQL service
	sqlService, err := service.NewPostgresService(cfg.Postgres, cfg.ResultsDir)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL service: %v", err)
	}
	defer sqlService.Close()

	// Assemble the analytics pipeline
	validator := validation.New(cfg.MaxQueryRows)
	engine := analytics.NewEngine(aiService, validator, sqlService, database)

	// Initialize handlers
	h := handlers.New(database, engine, sqlService)

	// Setup Gin router
	r := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "X-User-ID")
	r.Use(cors.New(corsConfig))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Routes
	r.GET("/health", h.HealthHandler)
	r.POST("/api/analytics/ask", h.AskHandler)
	r.GET("/api/analytics/audit", h.AuditHandler)
	r.GET("/api/analytics/schema", h.SchemaHandler)

	// Result file routes
	r.GET("/api/results/files", h.ListResultFilesHandler)
	r.GET("/api/results/file/:filename", h.GetResultFileHandler)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
