package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"anvi/internal/config"
	"anvi/internal/handler"
	"anvi/internal/memory"
	"anvi/internal/repository"
	"anvi/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	log.Printf("Anvi AI Backend")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize database connection
	repo, err := repository.NewPostgresRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	log.Println("✅ Connected to PostgreSQL database")

	// Initialize Groq client
	groqClient := service.NewGroqClient(&cfg.Groq)
	if cfg.Groq.Enabled {
		log.Printf("✅ Groq client initialized")
		log.Printf("   - API Base: %s", cfg.Groq.APIBase)
		log.Printf("   - Chat model: %s", cfg.Groq.ChatModel)
		log.Printf("   - Temperature: %.2f", cfg.Groq.Temperature)
		log.Printf("   - TopP: %.2f", cfg.Groq.TopP)
	} else {
		log.Println("⚠️  Groq is disabled - answers will fall back to the unavailable message")
		log.Println("   Set GROQ_API_KEY environment variable to enable generation")
	}

	// Initialize services
	sessionCache := memory.NewSessionCache(cfg.Memory.SessionLimit)
	askService := service.NewAskService(
		repo,
		repo,
		groqClient,
		sessionCache,
		cfg.Retrieval,
		cfg.Memory.HistoryLimit,
		cfg.CDN.BaseURL,
	)

	log.Println("✅ Services initialized")

	// Initialize handlers
	askHandler := handler.NewAskHandler(askService)
	embeddingHandler := handler.NewEmbeddingHandler(repo)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/ask", handler.AuthRequired(cfg.Auth.JWTSecret), askHandler.Ask)
		apiV1.POST("/embeddings/batch", embeddingHandler.BatchUpdate)
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("🚀 Starting server on %s", addr)

	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	log.Println("✅ Server stopped")
}
