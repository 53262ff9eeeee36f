package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Rakhulsr/go-ecommerce-cart/app/models"
	"github.com/Rakhulsr/go-ecommerce-cart/app/repositories"
	"go.uber.org/zap"
)

const DefaultSaveDebounce = 300 * time.Millisecond

// CartPersistence hydrates a cart from its snapshot store and writes the
// snapshot back after changes settle. At most one write is scheduled at a
// time; a newer change cancels and replaces the pending one. Writes always
// store the cart's lines as they are when the write runs.
type CartPersistence struct {
	store    repositories.CartSnapshotRepository
	cartID   string
	debounce time.Duration
	log      *zap.SugaredLogger

	mu      sync.Mutex
	cart    *Cart
	timer   *time.Timer
	gen     uint64
	dirty   bool
	closed  bool
	lastErr error

	writeMu sync.Mutex
}

func NewCartPersistence(store repositories.CartSnapshotRepository, cartID string, debounce time.Duration, log *zap.SugaredLogger) *CartPersistence {
	if debounce <= 0 {
		debounce = DefaultSaveDebounce
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &CartPersistence{
		store:    store,
		cartID:   cartID,
		debounce: debounce,
		log:      log,
	}
}

// Hydrate loads the stored snapshot into cart. A missing or unreadable
// snapshot leaves the cart empty and is only logged.
func (p *CartPersistence) Hydrate(ctx context.Context, cart *Cart) int {
	payload, err := p.store.ReadSnapshot(ctx, p.cartID)
	if err != nil {
		if errors.Is(err, repositories.ErrSnapshotNotFound) {
			p.log.Debugf("Hydrate: no stored cart for %s", p.cartID)
		} else {
			p.log.Warnf("Hydrate: failed to read cart %s: %v", p.cartID, err)
		}
		return 0
	}

	lines, err := DecodeSnapshot(payload)
	if err != nil {
		p.log.Warnf("Hydrate: stored cart %s is unreadable, starting empty: %v", p.cartID, err)
		return 0
	}

	kept, dropped := SanitizeSnapshot(lines)
	if dropped > 0 {
		p.log.Warnf("Hydrate: dropped %d invalid lines from stored cart %s", dropped, p.cartID)
	}
	cart.Load(kept)
	return len(kept)
}

// Attach subscribes the writer to cart changes. Loads are not written back.
func (p *CartPersistence) Attach(cart *Cart) {
	p.mu.Lock()
	p.cart = cart
	p.mu.Unlock()

	cart.Subscribe(func(change Change) {
		if change.Kind == TransitionLoad {
			return
		}
		p.Schedule()
	})
}

// Schedule replaces any pending write with a new one after the quiet period.
func (p *CartPersistence) Schedule() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || p.cart == nil {
		return
	}

	if p.timer != nil {
		p.timer.Stop()
	}
	p.gen++
	gen := p.gen
	p.dirty = true
	p.timer = time.AfterFunc(p.debounce, func() {
		p.fire(gen)
	})
}

// Flush writes the pending snapshot now, if there is one.
func (p *CartPersistence) Flush(ctx context.Context) error {
	p.mu.Lock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.gen++
	if !p.dirty {
		p.mu.Unlock()
		return nil
	}
	p.dirty = false
	p.mu.Unlock()

	return p.write(ctx)
}

// Close cancels the pending write and stops accepting new ones.
func (p *CartPersistence) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.gen++
	p.dirty = false
	p.closed = true
}

// Pending reports whether a write is scheduled but not yet done.
func (p *CartPersistence) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dirty
}

// LastWriteError returns the error from the most recent write, nil after a
// successful one.
func (p *CartPersistence) LastWriteError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

func (p *CartPersistence) fire(gen uint64) {
	p.mu.Lock()
	if gen != p.gen || !p.dirty {
		p.mu.Unlock()
		return
	}
	p.dirty = false
	p.timer = nil
	p.mu.Unlock()

	_ = p.write(context.Background())
}

// write reads the lines under writeMu, so a write that starts later never
// stores an older cart than one that started earlier.
func (p *CartPersistence) write(ctx context.Context) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	p.mu.Lock()
	cart := p.cart
	p.mu.Unlock()
	lines := cart.Lines()

	payload, err := EncodeSnapshot(lines)
	if err == nil {
		err = p.store.WriteSnapshot(ctx, p.cartID, payload)
	}

	p.mu.Lock()
	p.lastErr = err
	p.mu.Unlock()

	if err != nil {
		p.log.Errorf("CartPersistence: failed to save cart %s: %v", p.cartID, err)
		return fmt.Errorf("failed to save cart snapshot: %w", err)
	}
	p.log.Debugf("CartPersistence: saved cart %s (%d lines)", p.cartID, len(lines))
	return nil
}

func EncodeSnapshot(lines []models.CartLine) ([]byte, error) {
	if lines == nil {
		lines = []models.CartLine{}
	}
	return json.Marshal(lines)
}

func DecodeSnapshot(payload []byte) ([]models.CartLine, error) {
	var lines []models.CartLine
	if err := json.Unmarshal(payload, &lines); err != nil {
		return nil, fmt.Errorf("failed to decode cart snapshot: %w", err)
	}
	return lines, nil
}

// SanitizeSnapshot drops stored lines that break the cart rules: no
// id, quantity below 1, non-positive price, a quantity above a tracked
// ceiling, a negative GST rate, or a repeated id.
func SanitizeSnapshot(lines []models.CartLine) ([]models.CartLine, int) {
	seen := make(map[string]struct{}, len(lines))
	kept := make([]models.CartLine, 0, len(lines))
	for _, line := range lines {
		if line.ID == "" || line.Quantity < 1 || !line.UnitPrice.IsPositive() {
			continue
		}
		if line.StockTracked() && line.Quantity > line.StockCeiling {
			continue
		}
		if line.GSTRate.IsNegative() {
			continue
		}
		if _, dup := seen[line.ID]; dup {
			continue
		}
		seen[line.ID] = struct{}{}
		kept = append(kept, line)
	}
	return kept, len(lines) - len(kept)
}
