package game

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/iamasit07/flexfour/internal/domain"
	"github.com/iamasit07/flexfour/internal/service/bot"
)

// StrategyFactory builds the bot strategy for a strategy name
type StrategyFactory func(name string) bot.Strategy

// SessionManager manages active game sessions
type SessionManager struct {
	Session map[string]*GameSession // gameID → GameSession
	mu      sync.RWMutex

	strategies StrategyFactory
	recorder   ResultRecorder
	emitter    EventEmitter
}

func NewSessionManager(strategies StrategyFactory, recorder ResultRecorder, emitter EventEmitter) *SessionManager {
	if strategies == nil {
		strategies = func(name string) bot.Strategy {
			return bot.NewStrategy(name, false, time.Now().UnixNano())
		}
	}
	return &SessionManager{
		Session:    make(map[string]*GameSession),
		strategies: strategies,
		recorder:   recorder,
		emitter:    emitter,
	}
}

func (sm *SessionManager) CreateSession(humanSide domain.PlayerID, strategyName string) (*GameSession, error) {
	session, err := NewGameSession(humanSide, sm.strategies(strategyName), sm.recorder, sm.emitter)
	if err != nil {
		return nil, err
	}

	sm.mu.Lock()
	sm.Session[session.GameID] = session
	sm.mu.Unlock()

	log.Printf("[SESSION] Created session %s: human plays %d against %s bot",
		session.GameID, humanSide, session.Strategy.Name())
	return session, nil
}

func (sm *SessionManager) GetSession(gameID string) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.Session[gameID]
	return session, exists
}

func (sm *SessionManager) RemoveSession(gameID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.Session[gameID]; !exists {
		return fmt.Errorf("session not found")
	}

	log.Printf("[SESSION] Removing session %s", gameID)
	delete(sm.Session, gameID)
	return nil
}

// Count returns the number of live sessions
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.Session)
}

// CleanupIdle drops sessions without activity for longer than maxIdle
func (sm *SessionManager) CleanupIdle(maxIdle time.Duration) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	count := 0
	now := time.Now()

	for gameID, session := range sm.Session {
		if now.Sub(session.lastActivity()) > maxIdle {
			delete(sm.Session, gameID)
			count++
		}
	}

	if count > 0 {
		log.Printf("[SESSION] Memory cleanup: Removed %d idle game sessions", count)
	}
	return count
}
