// Command edge hosts the stateless edge handler locally, the way a function
// runtime would invoke it: one handler, no router, no shared state.
package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"visitor-registration/pkg/config"
	"visitor-registration/pkg/edge"
	"visitor-registration/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadConfig()

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat, "visitor-registration-edge")
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer zlog.Sync()

	zlog.Info("edge handler listening", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, edge.New(cfg, zlog)); err != nil {
		zlog.Fatal("edge handler stopped", zap.Error(err))
	}
}
