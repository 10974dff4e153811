package cleanup

import (
	"context"
	"log"
	"time"

	"github.com/iamasit07/flexfour/internal/service/game"
)

// IdleSweeper drops sessions that saw no activity for longer than maxIdle
type IdleSweeper interface {
	CleanupIdle(maxIdle time.Duration) int
}

type Worker struct {
	Sessions IdleSweeper
	MaxIdle  time.Duration
	Interval time.Duration
}

func NewWorker(sm *game.SessionManager, maxIdle time.Duration) *Worker {
	interval := maxIdle / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	return &Worker{Sessions: sm, MaxIdle: maxIdle, Interval: interval}
}

// Start runs one sweep immediately and then one per interval until ctx is done
func (w *Worker) Start(ctx context.Context) {
	go func() {
		w.runCleanup()

		ticker := time.NewTicker(w.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Println("[CLEANUP] Background worker stopped")
				return
			case <-ticker.C:
				w.runCleanup()
			}
		}
	}()
	log.Printf("[CLEANUP] Background worker started (idle limit %s, every %s)", w.MaxIdle, w.Interval)
}

func (w *Worker) runCleanup() int {
	removed := w.Sessions.CleanupIdle(w.MaxIdle)
	if removed > 0 {
		log.Printf("[CLEANUP] Removed %d idle sessions", removed)
	}
	return removed
}
