package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bitwise74/social-api/app"
	"bitwise74/social-api/aws"
	"bitwise74/social-api/config"
	"bitwise74/social-api/db"
	"bitwise74/social-api/internal"
	"bitwise74/social-api/internal/service"
	"bitwise74/social-api/internal/store"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

func openStore(ctx context.Context, cfg config.Storage) (*store.Store, error) {
	if cfg.Driver != "mongo" {
		conn, err := db.New(cfg)
		if err != nil {
			return nil, err
		}

		return store.NewGorm(conn), nil
	}

	client, database, err := db.NewMongo(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := store.EnsureIndexes(ctx, database); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to create indexes, %w", err)
	}

	return store.NewMongo(client, database), nil
}

func main() {
	gin.SetMode(gin.ReleaseMode)

	cfg, err := config.Setup()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := app.NewLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := openStore(ctx, cfg.Storage)
	if err != nil {
		zap.L().Fatal("Failed to open storage", zap.Error(err), zap.String("driver", cfg.Storage.Driver))
	}

	mailer, err := service.NewMailer(cfg.Mail)
	if err != nil {
		zap.L().Fatal("Failed to set up mailer", zap.Error(err))
	}

	var uploader service.ObjectUploader
	if cfg.S3.Enabled {
		s3, err := aws.NewS3(ctx, cfg.S3)
		if err != nil {
			zap.L().Fatal("Failed to connect to S3", zap.Error(err))
		}

		uploader = service.NewS3Uploader(s3)
	} else {
		zap.L().Warn("S3 is disabled, photo uploads will be rejected")
	}

	d := internal.NewDeps(cfg, s, mailer, uploader)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           app.NewRouter(ctx, d),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zap.L().Info("Server starting", zap.Int("port", cfg.Port))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zap.L().Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("Failed to shut down server", zap.Error(err))
	}

	if err := s.Close(shutdownCtx); err != nil {
		zap.L().Error("Failed to close storage", zap.Error(err))
	}
}
