package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"auth-server/internal/config"
	apphttp "auth-server/internal/http"
	"auth-server/internal/reaper"
	"auth-server/internal/repository/sqlite"
	"auth-server/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	roleRepo := sqlite.NewRoleRepository(db)
	sessionRepo := sqlite.NewSessionRepository(db)
	taskRepo := sqlite.NewTaskRepository(db)
	requestRepo := sqlite.NewRequestRepository(db)

	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	if err := roleRepo.Init(ctx); err != nil {
		logger.Fatalf("init role repository: %v", err)
	}
	if err := sessionRepo.Init(ctx); err != nil {
		logger.Fatalf("init session repository: %v", err)
	}
	if err := taskRepo.Init(ctx); err != nil {
		logger.Fatalf("init task repository: %v", err)
	}
	if err := requestRepo.Init(ctx); err != nil {
		logger.Fatalf("init request repository: %v", err)
	}

	userService := service.NewUserService(userRepo, logger)
	sessionService := service.NewSessionService(sessionRepo, cfg.Session.TTL)
	roleService := service.NewRoleService(roleRepo)
	taskService := service.NewTaskService(taskRepo)
	requestService := service.NewRequestService(requestRepo)

	sessionReaper := reaper.New(reaper.Config{
		Interval: cfg.Session.ReapInterval,
		Logger:   logger,
	}, sessionService)
	sessionReaper.Start(ctx)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(userService, sessionService, roleService, taskService, requestService)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}
	sessionReaper.Shutdown()

	logger.Info("bye")
}
