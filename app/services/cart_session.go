package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Rakhulsr/go-ecommerce-cart/app/repositories"
	"go.uber.org/zap"
)

// CartSession bundles everything one shopper's cart owns.
type CartSession struct {
	ID          string
	Cart        *Cart
	Promotion   *Promotion
	Persistence *CartPersistence

	// checkoutMu allows one order submission per cart at a time.
	checkoutMu sync.Mutex

	ready    chan struct{}
	lastUsed time.Time
}

// CartSessions hands out one CartSession per cart id, hydrating it from the
// snapshot store on first use. Idle sessions are flushed and dropped by
// EvictIdle.
type CartSessions struct {
	store    repositories.CartSnapshotRepository
	debounce time.Duration
	notifier Notifier
	log      *zap.SugaredLogger
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*CartSession
}

func NewCartSessions(store repositories.CartSnapshotRepository, debounce time.Duration, notifier Notifier, log *zap.SugaredLogger) *CartSessions {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &CartSessions{
		store:    store,
		debounce: debounce,
		notifier: notifier,
		log:      log,
		now:      time.Now,
		sessions: make(map[string]*CartSession),
	}
}

// Get returns the session for cartID. The first caller for an id hydrates
// it without holding the registry lock; concurrent callers for the same id
// wait for that hydration to finish.
func (s *CartSessions) Get(ctx context.Context, cartID string) *CartSession {
	s.mu.Lock()
	if session, ok := s.sessions[cartID]; ok {
		session.lastUsed = s.now()
		s.mu.Unlock()
		<-session.ready
		return session
	}

	session := &CartSession{
		ID:          cartID,
		Cart:        NewCart(),
		Promotion:   NewPromotion(),
		Persistence: NewCartPersistence(s.store, cartID, s.debounce, s.log),
		ready:       make(chan struct{}),
		lastUsed:    s.now(),
	}
	s.sessions[cartID] = session
	s.mu.Unlock()

	s.open(ctx, session)
	return session
}

func (s *CartSessions) open(ctx context.Context, session *CartSession) {
	defer close(session.ready)

	loaded := session.Persistence.Hydrate(ctx, session.Cart)
	session.Persistence.Attach(session.Cart)
	if s.notifier != nil {
		notifier, cartID := s.notifier, session.ID
		session.Cart.Subscribe(func(change Change) {
			notifier.Notify(cartID, change)
		})
	}
	s.log.Debugf("CartSessions: opened cart %s with %d lines", session.ID, loaded)
}

// Len reports how many sessions are held in memory.
func (s *CartSessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// EvictIdle flushes and drops sessions unused for longer than idle. A cart
// that is asked for again is hydrated from the store.
func (s *CartSessions) EvictIdle(ctx context.Context, idle time.Duration) int {
	cutoff := s.now().Add(-idle)

	s.mu.Lock()
	var evicted []*CartSession
	for id, session := range s.sessions {
		if session.lastUsed.Before(cutoff) {
			evicted = append(evicted, session)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, session := range evicted {
		<-session.ready
		if err := session.Persistence.Flush(ctx); err != nil {
			s.log.Warnf("EvictIdle: failed to save cart %s before eviction: %v", session.ID, err)
		}
		session.Persistence.Close()
	}
	if len(evicted) > 0 {
		s.log.Debugf("EvictIdle: evicted %d idle carts", len(evicted))
	}
	return len(evicted)
}

// RunEvictor calls EvictIdle every interval until ctx is done. A zero
// interval or idle disables eviction.
func (s *CartSessions) RunEvictor(ctx context.Context, interval, idle time.Duration) {
	if interval <= 0 || idle <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.EvictIdle(ctx, idle)
		}
	}
}

// FlushAll writes every pending snapshot now.
func (s *CartSessions) FlushAll(ctx context.Context) error {
	s.mu.Lock()
	sessions := make([]*CartSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	s.mu.Unlock()

	var errs []error
	for _, session := range sessions {
		<-session.ready
		if err := session.Persistence.Flush(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// CloseAll cancels pending writes and forgets every session.
func (s *CartSessions) CloseAll() {
	s.mu.Lock()
	sessions := make([]*CartSession, 0, len(s.sessions))
	for id, session := range s.sessions {
		sessions = append(sessions, session)
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	for _, session := range sessions {
		<-session.ready
		session.Persistence.Close()
	}
}
