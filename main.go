package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"visitor-registration/pkg/api"
	"visitor-registration/pkg/clients/feishu"
	"visitor-registration/pkg/config"
	"visitor-registration/pkg/logger"
	"visitor-registration/pkg/services"
)

func main() {
	envErr := godotenv.Load()

	// Initialize configuration
	cfg := config.LoadConfig()

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat, "visitor-registration")
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer zlog.Sync()

	if envErr != nil {
		zlog.Info("no .env file loaded", zap.Error(envErr))
	}
	if !cfg.TableConfigured() || !cfg.CredentialsConfigured() {
		zlog.Warn("feishu not fully configured, bitable writes will be skipped",
			zap.Bool("table", cfg.TableConfigured()),
			zap.Bool("credentials", cfg.CredentialsConfigured()),
		)
	}

	// Initialize API clients
	feishuClient := feishu.NewClient(feishu.Options{
		BaseURL:    cfg.FeishuBaseURL,
		AppID:      cfg.FeishuAppID,
		AppSecret:  cfg.FeishuAppSecret,
		AppToken:   cfg.FeishuAppToken,
		TableToken: cfg.FeishuTableToken,
		Timeout:    cfg.FeishuTimeout,
	}, zlog)

	// Initialize services
	submissionService := services.NewSubmissionService(feishuClient, cfg, zlog)

	gin.SetMode(cfg.GinMode)

	handlers := api.NewHandlers(submissionService, zlog)
	router := api.NewRouter(handlers, zlog)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2*cfg.FeishuTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zlog.Info("server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("error starting server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("server forced to shut down", zap.Error(err))
	}
}
