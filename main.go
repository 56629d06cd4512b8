package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/FeyzullahTeklik/esantiyem-backend/config"
	"github.com/FeyzullahTeklik/esantiyem-backend/cron"
	"github.com/FeyzullahTeklik/esantiyem-backend/database"
	jobRepoPkg "github.com/FeyzullahTeklik/esantiyem-backend/database/repository/job"
	proposalRepoPkg "github.com/FeyzullahTeklik/esantiyem-backend/database/repository/proposal"
	reviewRepoPkg "github.com/FeyzullahTeklik/esantiyem-backend/database/repository/review"
	userRepoPkg "github.com/FeyzullahTeklik/esantiyem-backend/database/repository/user"
	"github.com/FeyzullahTeklik/esantiyem-backend/handlers"
	"github.com/FeyzullahTeklik/esantiyem-backend/routes"
	"github.com/FeyzullahTeklik/esantiyem-backend/services/job"
	"github.com/FeyzullahTeklik/esantiyem-backend/services/maintenance"
	"github.com/FeyzullahTeklik/esantiyem-backend/services/notification"
	"github.com/FeyzullahTeklik/esantiyem-backend/services/review"
	"github.com/FeyzullahTeklik/esantiyem-backend/services/stats"
	"github.com/FeyzullahTeklik/esantiyem-backend/services/storage"
	"github.com/FeyzullahTeklik/esantiyem-backend/services/user"
	"github.com/FeyzullahTeklik/esantiyem-backend/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()
	utils.InitOTPCache()

	storageService, err := storage.NewCloudinaryStorageService(
		config.AppConfig.CloudinaryCloudName,
		config.AppConfig.CloudinaryAPIKey,
		config.AppConfig.CloudinaryAPISecret,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	jobRepo := jobRepoPkg.NewMongoJobRepo()
	proposalRepo := proposalRepoPkg.NewMongoProposalRepo()
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo()

	// Services.
	notifier := notification.NewAsynqDispatcher()
	defer notifier.Close()

	statsReconciler := stats.NewStatsReconciler(jobRepo, proposalRepo, reviewRepo, userRepo)

	userService := &user.DefaultUserService{
		Repo:     userRepo,
		Notifier: notifier,
	}
	jobService := &job.DefaultJobService{
		Jobs:      jobRepo,
		Proposals: proposalRepo,
		Reviews:   reviewRepo,
		Users:     userRepo,
		Stats:     statsReconciler,
		Notifier:  notifier,
		Storage:   storageService,
	}
	reviewService := &review.DefaultReviewService{
		Jobs:      jobRepo,
		Proposals: proposalRepo,
		Reviews:   reviewRepo,
		Users:     userRepo,
		Stats:     statsReconciler,
	}
	maintenanceService := &maintenance.DefaultMaintenanceService{
		Jobs:      jobRepo,
		Proposals: proposalRepo,
		Reviews:   reviewRepo,
		Users:     userRepo,
		Stats:     statsReconciler,
	}

	// Background worker: queued emails and the periodic orphan sweep.
	cron.InitWorker(notification.NewSMTPMailer(), maintenanceService)

	// Router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	handlerBundle := handlers.NewHandlerBundle(
		userRepo, userService, jobService, reviewService, maintenanceService, storageService,
	)
	routes.RegisterRoutes(router, handlerBundle)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("Server listening on port %s", config.AppConfig.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("Forced shutdown: %v", err)
	}
	if err := database.MongoClient.Disconnect(ctx); err != nil {
		logger.Sugar().Errorf("Failed to disconnect MongoDB: %v", err)
	}
	logger.Info("Server stopped")
}
