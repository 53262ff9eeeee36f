package services

import (
	"fmt"
	"sync"

	"github.com/Rakhulsr/go-ecommerce-cart/app/models"
)

type TransitionKind string

const (
	TransitionLoad           TransitionKind = "load"
	TransitionAdd            TransitionKind = "add"
	TransitionRemove         TransitionKind = "remove"
	TransitionUpdateQuantity TransitionKind = "update_quantity"
	TransitionClear          TransitionKind = "clear"
)

// ClearReason only tells the notification layer why a cart was emptied.
type ClearReason string

const (
	ClearReasonUser  ClearReason = "user"
	ClearReasonOrder ClearReason = "order"
)

// Change describes one committed transition.
type Change struct {
	Kind   TransitionKind
	Line   models.CartLine
	Reason ClearReason
	Lines  []models.CartLine
}

type ChangeListener func(Change)

// Cart owns the ordered cart lines. Every mutation goes through one of the
// transitions below and either commits fully or leaves the lines untouched.
type Cart struct {
	mu        sync.RWMutex
	lines     []models.CartLine
	listeners []ChangeListener
}

func NewCart() *Cart {
	return &Cart{}
}

// Subscribe registers fn for every committed transition. Listeners run after
// the cart lock is released, in registration order.
func (c *Cart) Subscribe(fn ChangeListener) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// Load replaces the whole cart. Lines are trusted as given except that only
// the first line for a given id is kept.
func (c *Cart) Load(lines []models.CartLine) {
	seen := make(map[string]struct{}, len(lines))
	next := make([]models.CartLine, 0, len(lines))
	for _, line := range lines {
		if _, dup := seen[line.ID]; dup {
			continue
		}
		seen[line.ID] = struct{}{}
		next = append(next, line)
	}

	c.mu.Lock()
	change := c.commitLocked(next, Change{Kind: TransitionLoad})
	c.mu.Unlock()
	c.notify(change)
}

// Add appends line, or merges its quantity into the line with the same id.
// The merged line takes the incoming line's fields.
func (c *Cart) Add(line models.CartLine) (models.CartLine, error) {
	if line.ID == "" || line.Quantity < 1 {
		return models.CartLine{}, fmt.Errorf("%w: id %q quantity %d", ErrInvalidLine, line.ID, line.Quantity)
	}
	if !line.UnitPrice.IsPositive() {
		return models.CartLine{}, fmt.Errorf("%w: %s", ErrInvalidPrice, line.UnitPrice)
	}

	c.mu.Lock()
	next := c.copyLines()
	idx := indexOf(next, line.ID)
	merged := line
	if idx >= 0 {
		merged = line.WithQuantity(next[idx].Quantity + line.Quantity)
	}
	if merged.StockTracked() && merged.Quantity > merged.StockCeiling {
		c.mu.Unlock()
		return models.CartLine{}, &StockError{Name: merged.Name, Requested: merged.Quantity, Available: merged.StockCeiling}
	}
	if idx >= 0 {
		next[idx] = merged
	} else {
		next = append(next, merged)
	}
	change := c.commitLocked(next, Change{Kind: TransitionAdd, Line: merged})
	c.mu.Unlock()

	c.notify(change)
	return merged, nil
}

// Remove is a no-op when id is not in the cart.
func (c *Cart) Remove(id string) {
	c.mu.Lock()
	idx := indexOf(c.lines, id)
	if idx < 0 {
		c.mu.Unlock()
		return
	}
	removed := c.lines[idx]
	next := make([]models.CartLine, 0, len(c.lines)-1)
	next = append(next, c.lines[:idx]...)
	next = append(next, c.lines[idx+1:]...)
	change := c.commitLocked(next, Change{Kind: TransitionRemove, Line: removed})
	c.mu.Unlock()

	c.notify(change)
}

// UpdateQuantity sets a line's quantity. Zero or less removes the line; a
// quantity above the stock ceiling is rejected with a *StockError.
func (c *Cart) UpdateQuantity(id string, quantity int) error {
	if quantity <= 0 {
		c.Remove(id)
		return nil
	}

	c.mu.Lock()
	idx := indexOf(c.lines, id)
	if idx < 0 {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrLineNotFound, id)
	}
	current := c.lines[idx]
	if current.StockTracked() && quantity > current.StockCeiling {
		c.mu.Unlock()
		return &StockError{Name: current.Name, Requested: quantity, Available: current.StockCeiling}
	}
	next := c.copyLines()
	next[idx] = current.WithQuantity(quantity)
	change := c.commitLocked(next, Change{Kind: TransitionUpdateQuantity, Line: next[idx]})
	c.mu.Unlock()

	c.notify(change)
	return nil
}

func (c *Cart) Clear(reason ClearReason) {
	c.mu.Lock()
	change := c.commitLocked([]models.CartLine{}, Change{Kind: TransitionClear, Reason: reason})
	c.mu.Unlock()
	c.notify(change)
}

// RemoveOrdered takes the ordered quantities out of the cart. Lines added
// after the order snapshot was taken stay, as does any quantity above the
// ordered one.
func (c *Cart) RemoveOrdered(ordered []models.CartLine) {
	orderedQty := make(map[string]int, len(ordered))
	for _, line := range ordered {
		orderedQty[line.ID] += line.Quantity
	}

	c.mu.Lock()
	next := make([]models.CartLine, 0, len(c.lines))
	for _, line := range c.lines {
		qty, wasOrdered := orderedQty[line.ID]
		if !wasOrdered {
			next = append(next, line)
			continue
		}
		if remaining := line.Quantity - qty; remaining > 0 {
			next = append(next, line.WithQuantity(remaining))
		}
	}
	change := c.commitLocked(next, Change{Kind: TransitionClear, Reason: ClearReasonOrder})
	c.mu.Unlock()
	c.notify(change)
}

// Lines returns a copy in insertion order.
func (c *Cart) Lines() []models.CartLine {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.copyLines()
}

func (c *Cart) Line(id string) (models.CartLine, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx := indexOf(c.lines, id)
	if idx < 0 {
		return models.CartLine{}, false
	}
	return c.lines[idx], true
}

func (c *Cart) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return c.Len() == 0
}

// commitLocked swaps in next. Caller holds c.mu.
func (c *Cart) commitLocked(next []models.CartLine, change Change) pendingChange {
	c.lines = next
	change.Lines = copyOf(next)
	listeners := make([]ChangeListener, len(c.listeners))
	copy(listeners, c.listeners)
	return pendingChange{change: change, listeners: listeners}
}

func (c *Cart) notify(p pendingChange) {
	for _, fn := range p.listeners {
		fn(p.change)
	}
}

type pendingChange struct {
	change    Change
	listeners []ChangeListener
}

func (c *Cart) copyLines() []models.CartLine {
	return copyOf(c.lines)
}

func copyOf(lines []models.CartLine) []models.CartLine {
	out := make([]models.CartLine, len(lines))
	copy(out, lines)
	return out
}

func indexOf(lines []models.CartLine, id string) int {
	for i := range lines {
		if lines[i].ID == id {
			return i
		}
	}
	return -1
}
