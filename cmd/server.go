package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"task-track-system.com/task-track-system/internal/cache"
	config "task-track-system.com/task-track-system/internal/configs"
	httpapi "task-track-system.com/task-track-system/internal/http"
	repository "task-track-system.com/task-track-system/internal/repositories"
	"task-track-system.com/task-track-system/internal/services"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP API server",
	Long:  "Starts the task tracking HTTP API, notification fan-out, and overdue scanner",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()

		redisClient := config.NewRedisClient(cfg.RedisAddr, cfg.RedisDB)
		defer redisClient.Close()

		db := config.New(cfg.DatabaseDSN)

		taskRepo := repository.NewTaskRepository(db)
		projectRepo := repository.NewProjectRepository(db)
		userRepo := repository.NewUserRepository(db)
		memberRepo := repository.NewMembershipRepository(db)
		commentRepo := repository.NewCommentRepository(db)
		depRepo := repository.NewDependencyRepository(db)
		notificationRepo := repository.NewNotificationRepository(db)

		badges := cache.NewRedisBadgeCache(redisClient, cfg.BadgeCacheKeyPrefix)
		badgeTTL := time.Duration(cfg.BadgeCacheTTLSeconds) * time.Second

		notificationService := services.NewNotificationService(notificationRepo, badges, badgeTTL)
		audience := services.NewAudienceResolver(memberRepo)
		fanout := services.NewFanoutService(audience, notificationService, cfg.FanoutWorkers)
		gate := services.NewStatusGate(db)
		depService := services.NewDependencyService(depRepo, taskRepo, cfg.DependencyCycleCheck)
		overdue := services.NewOverdueService(
			taskRepo,
			memberRepo,
			fanout,
			time.Duration(cfg.OverduePollIntervalSeconds)*time.Second,
		)
		taskService := services.NewTaskService(taskRepo, userRepo, memberRepo, commentRepo, depService, gate, fanout, notificationService, overdue)
		projectService := services.NewProjectService(projectRepo, userRepo, memberRepo, fanout, notificationService)
		userService := services.NewUserService(userRepo)

		overdue.Start()

		e := echo.New()
		handler := httpapi.NewHandler(taskService, projectService, depService, notificationService, userService)
		httpapi.Register(e, handler, cfg.RateLimit)

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				log.Printf("server stopped: %v", err)
			}
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		ctx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()

		_ = e.Shutdown(ctx)
		overdue.Shutdown()

		log.Println("HTTP server and overdue scanner shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
