package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"HKStockBot/internal/advisor"
	"HKStockBot/internal/collector"
	"HKStockBot/internal/config"
	"HKStockBot/internal/notifier"
	"HKStockBot/internal/scheduler"
	"HKStockBot/internal/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] HKStockBot starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var fetcher collector.Fetcher
	switch {
	case os.Getenv("USE_MOCK_DATA") == "true":
		fetcher = &collector.MockFetcher{}
	case cfg.Market.BaseURL != "":
		fetcher = collector.NewRESTFetcher(cfg.Market.BaseURL, cfg.Market.APIKey, cfg.Proxy)
	default:
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init pipeline
	col := collector.NewCollector(fetcher)
	adv := advisor.New(col, cfg.Market.DefaultDays, cfg.Market.MaxSymbols)

	// Init WhatsApp Cloud sender
	var wa *notifier.WhatsAppClient
	if cfg.WhatsAppEnabled() {
		wa = notifier.NewWhatsAppClient(cfg.WhatsApp.APIBase, cfg.WhatsApp.PhoneNumberID, cfg.WhatsApp.Token, cfg.Proxy)
	} else {
		log.Println("[WARN] WhatsApp credentials not set, Cloud API replies disabled")
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init digest scheduler
	sched := scheduler.NewScheduler(ctx, adv.HandleCommand, wa, cfg.Digest.Watchlist, cfg.Digest.To)
	if err := sched.Register(cfg.Digest.Cron); err != nil {
		log.Fatalf("[FATAL] register digest task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Init HTTP server
	srv := &server.Server{
		Handler:     adv.HandleCommand,
		WhatsApp:    wa,
		VerifyToken: cfg.WhatsApp.VerifyToken,
	}
	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("[INFO] listening on %s", cfg.Server.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()

	// Optional: run the digest immediately on start
	if os.Getenv("RUN_ON_START") == "true" && cfg.Digest.Cron != "" {
		log.Println("[INFO] RUN_ON_START enabled, executing digest now")
		go sched.RunDigestNow()
	}

	log.Println("[INFO] HKStockBot is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] http shutdown: %v", err)
	}
	log.Println("[INFO] HKStockBot stopped")
}
