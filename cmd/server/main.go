package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/medidir/doctor-directory-api/internal/api"
	"github.com/medidir/doctor-directory-api/internal/config"
	"github.com/medidir/doctor-directory-api/internal/database"
	"github.com/medidir/doctor-directory-api/internal/database/repository"
	"github.com/medidir/doctor-directory-api/internal/database/service"
	"github.com/medidir/doctor-directory-api/internal/handler"
	"github.com/medidir/doctor-directory-api/internal/logger"
	"github.com/medidir/doctor-directory-api/internal/middleware"
	"github.com/medidir/doctor-directory-api/internal/storage"
)

func main() {
	// 1. Config (.env is optional, real environment variables win)
	_ = godotenv.Load()
	cfg := config.LoadConfig()

	// 2. Logger
	appLogger := logger.New(cfg)

	appLogger.Info("🚀 [API] Starting doctor directory...",
		"environment", cfg.AppEnv,
	)

	// 3. Connect to Database
	if err := database.ConnectDatabase(cfg, appLogger); err != nil {
		appLogger.Error("❌ Failed to connect to database", "error", err)
		os.Exit(1)
	}

	db := database.GetDatabase()

	// 4. Initialize Repositories
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewAccessTokenRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)

	// 5. Initialize Blob Store
	blobStore, err := storage.NewS3Store(cfg, appLogger)
	if err != nil {
		appLogger.Error("❌ Failed to initialize blob store", "error", err)
		os.Exit(1)
	}

	// 6. Initialize Services
	authService := service.NewAuthService(userRepo, tokenRepo, cfg, appLogger)
	doctorService := service.NewDoctorService(doctorRepo, blobStore, appLogger)

	// 7. Initialize Handlers & Middleware
	authHandler := handler.NewAuthHandler(authService, appLogger)
	doctorHandler := handler.NewDoctorHandler(doctorService, cfg, appLogger)
	authMiddleware := middleware.NewAuthMiddleware(authService, appLogger)

	// 8. Setup Router and start HTTP Server
	r := api.SetupRouter(authHandler, doctorHandler, authMiddleware)

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	appLogger.Info("🌍 [API] HTTP Server running...", "port", addr)
	if err := r.Run(addr); err != nil {
		appLogger.Error("❌ HTTP Server failed to start", "error", err)
		os.Exit(1)
	}
}
