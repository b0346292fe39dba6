// Package scheduler runs the optional watchlist digest on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/robfig/cron/v3"

	"HKStockBot/internal/advisor"
	"HKStockBot/internal/notifier"
)

// Scheduler periodically runs the configured watchlist through the command
// handler and delivers the summary over the Cloud API.
type Scheduler struct {
	Cron      *cron.Cron
	Handler   advisor.CommandHandler
	Sender    *notifier.WhatsAppClient
	Watchlist []string
	To        string
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, handler advisor.CommandHandler, sender *notifier.WhatsAppClient, watchlist []string, to string) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Handler:   handler,
		Sender:    sender,
		Watchlist: watchlist,
		To:        to,
		Ctx:       ctx,
	}
}

// Register schedules the digest task. An empty spec disables the digest.
func (s *Scheduler) Register(spec string) error {
	if spec == "" {
		return nil
	}
	if _, err := s.Cron.AddFunc(spec, s.digestTask); err != nil {
		return fmt.Errorf("register digest task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunDigestNow executes the digest immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunDigestNow() {
	s.digestTask()
}

func (s *Scheduler) digestTask() {
	log.Println("[INFO] running watchlist digest")
	summary := s.Handler(s.Ctx, strings.Join(s.Watchlist, " "))
	if s.Sender == nil || s.To == "" {
		log.Println("[WARN] digest sender not configured, skipping delivery")
		return
	}
	if err := s.Sender.SendText(s.Ctx, s.To, summary); err != nil {
		log.Printf("[ERROR] send digest: %v", err)
	}
}
