package cleanup

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/iamasit07/flexfour/internal/domain"
	"github.com/iamasit07/flexfour/internal/service/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSweeper struct {
	calls atomic.Int32
}

func (s *countingSweeper) CleanupIdle(maxIdle time.Duration) int {
	s.calls.Add(1)
	return 0
}

func TestNewWorker_IntervalFloor(t *testing.T) {
	w := NewWorker(game.NewSessionManager(nil, nil, nil), time.Minute)
	assert.Equal(t, time.Minute, w.Interval)

	w = NewWorker(game.NewSessionManager(nil, nil, nil), time.Hour)
	assert.Equal(t, 15*time.Minute, w.Interval)
}

func TestRunCleanup_RemovesIdleSessions(t *testing.T) {
	sm := game.NewSessionManager(nil, nil, nil)
	stale, err := sm.CreateSession(domain.Player1, "")
	require.NoError(t, err)
	stale.UpdatedAt = time.Now().Add(-3 * time.Hour)

	w := NewWorker(sm, time.Hour)
	assert.Equal(t, 1, w.runCleanup())
	assert.Equal(t, 0, sm.Count())
}

func TestStart_SweepsUntilCancelled(t *testing.T) {
	sweeper := &countingSweeper{}
	w := &Worker{Sessions: sweeper, MaxIdle: time.Hour, Interval: 10 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)

	require.Eventually(t, func() bool { return sweeper.calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()
}
