package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/metascope/backend/analyzer"
	"github.com/metascope/backend/logging"
	"github.com/metascope/backend/metrics"
	"github.com/metascope/backend/middleware"
	"github.com/metascope/backend/stats"
)

var (
	metaAnalyzer   *analyzer.Analyzer
	serviceMetrics *metrics.ServiceMetrics
)

func loadEnv() {
	// Try to load .env.development first (for local development)
	if err := godotenv.Load(".env.development"); err != nil {
		// If .env.development doesn't exist, try regular .env
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, using environment variables")
		}
	}
}

func setupGinMode() {
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		// Default to release mode if not specified
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
}

func main() {
	loadEnv()
	setupGinMode()

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	usage, err := stats.NewStorage(dataDir)
	if err != nil {
		log.Fatal("Failed to initialize usage storage:", err)
	}

	metaAnalyzer = analyzer.New(analyzer.WithUsageStorage(usage))
	serviceMetrics = metrics.NewServiceMetrics("metascope")

	// Initialize service statistics
	requestStats := logging.Initialize()

	r := gin.Default()

	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RequestStats(requestStats))

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// API routes
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})

		api.POST("/analyze", analyzeURL)

		api.GET("/statistics", func(c *gin.Context) {
			c.JSON(http.StatusOK, requestStats.GetStatistics())
		})
	}

	r.GET("/metrics", serviceMetrics.Handler())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8082" // Default port
	}

	log.Printf("Server starting on http://localhost:%s\n", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func analyzeURL(c *gin.Context) {
	log.Printf("Analyze request received from: %s\n", c.ClientIP())
	var request struct {
		URL string `json:"url" binding:"required,url"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid URL provided",
		})
		return
	}

	// Bound the whole analysis and abandon it if the client disconnects.
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	serviceMetrics.AnalysesInFlight.Inc()
	defer serviceMetrics.AnalysesInFlight.Dec()
	start := time.Now()

	analysis, err := metaAnalyzer.AnalyzeWithContext(ctx, request.URL)
	if err != nil {
		serviceMetrics.RecordAnalysis("error", time.Since(start), 0)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	serviceMetrics.RecordAnalysis("ok", time.Since(start), analysis.TotalSuggestions)
	c.JSON(http.StatusOK, analysis)
}
