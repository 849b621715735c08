package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/thejas-1999/Assets-Management/cmd"
	"github.com/thejas-1999/Assets-Management/internal/container"
	"github.com/thejas-1999/Assets-Management/internal/database"
	"github.com/thejas-1999/Assets-Management/internal/logger"
	"github.com/thejas-1999/Assets-Management/internal/middleware"
	"github.com/thejas-1999/Assets-Management/internal/routes"
)

func init() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load .env file, but don't overwrite system environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}

	cmd.Execute(ctx)
}

func main() {
	appLogger := logger.NewLogger()
	defer appLogger.Sync()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		appLogger.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := database.NewPostgresConnection(dbURL)
	if err != nil {
		appLogger.Fatal("failed to connect to the database", zap.Error(err))
	}
	defer db.Close()

	appLogger.Info("connected to the database")

	appContainer := container.NewAppContainer(db, appLogger)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.RecoveryMiddleware(appLogger))
	router.Use(middleware.TimeoutMiddleware(30 * time.Second))

	routes.RegisterPublicRoutes(router, appContainer)
	routes.RegisterProtectedRoutes(router, appContainer)
	routes.RegisterUtilityRoutes(router)

	if err := router.Run(os.Getenv("APP_HOST")); err != nil {
		appLogger.Fatal("server stopped", zap.Error(err))
	}
}
