package bot

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/iamasit07/flexfour/internal/domain"
)

const cacheTimeout = 200 * time.Millisecond

// MoveCache is the key-value store behind CachedStrategy (redis in production)
type MoveCache interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
}

// CachedStrategy memoizes decisions by board. Only deterministic decisions are
// reproducible, so WithCache leaves any other strategy unwrapped.
type CachedStrategy struct {
	Inner Strategy
	Cache MoveCache
	TTL   time.Duration
}

func WithCache(inner Strategy, cache MoveCache, ttl time.Duration) Strategy {
	if cache == nil || inner.Name() != StrategyDeterministic {
		return inner
	}
	return &CachedStrategy{Inner: inner, Cache: cache, TTL: ttl}
}

func (c *CachedStrategy) Name() string {
	return c.Inner.Name()
}

func (c *CachedStrategy) ChooseMove(board domain.Board, player domain.PlayerID) (domain.Position, bool, error) {
	key := MoveCacheKey(c.Inner.Name(), &board, player)

	ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
	defer cancel()

	if value, ok, err := c.Cache.Get(ctx, key); err != nil {
		log.Printf("[BOT] Move cache lookup failed: %v", err)
	} else if ok {
		var pos domain.Position
		if _, err := fmt.Sscanf(value, "%d,%d", &pos.Column, &pos.Row); err == nil {
			if row, err := board.DropRow(pos.Column); err == nil && row == pos.Row {
				return pos, true, nil
			}
		}
		log.Printf("[BOT] Ignoring stale cache entry %q for %s", value, key)
	}

	pos, found, err := c.Inner.ChooseMove(board, player)
	if err != nil || !found {
		return pos, found, err
	}

	if err := c.Cache.Set(ctx, key, fmt.Sprintf("%d,%d", pos.Column, pos.Row), c.TTL); err != nil {
		log.Printf("[BOT] Move cache store failed: %v", err)
	}
	return pos, true, nil
}

func MoveCacheKey(strategy string, board *domain.Board, player domain.PlayerID) string {
	return fmt.Sprintf("flexfour:move:%s:%d:%s", strategy, player, board.Key())
}
