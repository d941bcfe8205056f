package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"drivingschool/config"
	"drivingschool/database"
	"drivingschool/logger"
	"drivingschool/routers"
	"drivingschool/utils"

	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig

	flush := logger.Init(cfg.AppEnv)
	defer flush()

	if err := database.ConnectDb(cfg); err != nil {
		zap.L().Fatal("database connection failed", zap.Error(err))
	}

	utils.SetNotifier(utils.NewNotifier(cfg))

	scheduler, err := utils.StartLessonScheduler(database.Database.Db, cfg.ReminderCron)
	if err != nil {
		zap.L().Fatal("starting lesson scheduler failed", zap.Error(err))
	}

	app := routers.NewApp(cfg)

	go func() {
		zap.L().Info("server is running", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
		if err := app.Listen(":" + cfg.Port); err != nil {
			zap.L().Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("shutting down")

	<-scheduler.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		zap.L().Error("server shutdown failed", zap.Error(err))
	}

	if sqlDB, err := database.Database.Db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
