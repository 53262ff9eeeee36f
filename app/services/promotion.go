package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/Rakhulsr/go-ecommerce-cart/app/models"
	"github.com/shopspring/decimal"
)

var promotionTable = map[string]decimal.Decimal{
	"SAVE10":    decimal.NewFromInt(10),
	"SAVE15":    decimal.NewFromInt(15),
	"SAVE20":    decimal.NewFromInt(20),
	"WELCOME25": decimal.NewFromInt(25),
}

// Promotion holds at most one active code for a cart. Applying a new code
// replaces the previous one.
type Promotion struct {
	mu     sync.RWMutex
	table  map[string]decimal.Decimal
	active *models.PromotionCode
}

func NewPromotion() *Promotion {
	return &Promotion{table: promotionTable}
}

func (p *Promotion) Apply(code string) (models.PromotionCode, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	percent, ok := p.table[normalized]
	if !ok {
		return models.PromotionCode{}, fmt.Errorf("%w: %s", ErrInvalidPromoCode, code)
	}

	applied := models.PromotionCode{Code: normalized, PercentOff: percent}
	p.mu.Lock()
	p.active = &applied
	p.mu.Unlock()
	return applied, nil
}

func (p *Promotion) Remove() {
	p.mu.Lock()
	p.active = nil
	p.mu.Unlock()
}

func (p *Promotion) Active() (models.PromotionCode, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.active == nil {
		return models.PromotionCode{}, false
	}
	return *p.active, true
}

func (p *Promotion) CurrentDiscountPercent() decimal.Decimal {
	active, ok := p.Active()
	if !ok {
		return decimal.Zero
	}
	return active.PercentOff
}
