package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"wastelink-checkout-gateway/internal/client"
	"wastelink-checkout-gateway/internal/config"
	"wastelink-checkout-gateway/internal/repository"
	"wastelink-checkout-gateway/internal/server"
	"wastelink-checkout-gateway/internal/service"
	"wastelink-checkout-gateway/internal/session"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	db := client.InitSqliteClient(cfg.DatabasePath)
	upstream := client.NewUpstreamClient(&cfg.Upstream)

	recordRepo := repository.NewCheckoutRecordRepository(db)
	checkoutService := service.NewCheckoutService(upstream, recordRepo, cfg.Payment)

	sessions := session.NewManager(cfg.Session.Secret, cfg.Session.TTL)
	sweepCtx, sweepCancel := context.WithCancel(context.Background())
	defer sweepCancel()
	sessions.StartSweeper(sweepCtx, cfg.Session.TTL/2)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	srv := server.NewServer(sessions, checkoutService, upstream)

	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error")
	}
}
