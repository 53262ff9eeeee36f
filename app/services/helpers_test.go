package services

import (
	"context"
	"errors"
	"sync"

	"github.com/Rakhulsr/go-ecommerce-cart/app/models"
	"github.com/Rakhulsr/go-ecommerce-cart/app/repositories"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func testLine(id, price string, qty int) models.CartLine {
	return models.CartLine{
		ID:           id,
		Name:         "Product " + id,
		Category:     "General",
		UnitPrice:    dec(price),
		Quantity:     qty,
		StockCeiling: models.DefaultStockCeiling,
		GSTRate:      decimal.NewFromInt(models.DefaultGSTRate),
	}
}

// failingStore rejects every write.
type failingStore struct{}

func (failingStore) ReadSnapshot(ctx context.Context, cartID string) ([]byte, error) {
	return nil, errors.New("store unavailable")
}

func (failingStore) WriteSnapshot(ctx context.Context, cartID string, payload []byte) error {
	return errors.New("store unavailable")
}

type fakeSubmitter struct {
	mu       sync.Mutex
	err      error
	requests []OrderRequest
	onSubmit func(OrderRequest)
}

func (f *fakeSubmitter) SubmitOrder(ctx context.Context, req OrderRequest) (*OrderReceipt, error) {
	if f.onSubmit != nil {
		f.onSubmit(req)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &OrderReceipt{OrderID: "order-1", OrderCode: "INV-TEST", GrandTotal: req.Totals.GrandTotal}, nil
}

type fakeProducts struct {
	products map[string]*models.Product
}

func (f *fakeProducts) GetByID(ctx context.Context, id string) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, repositories.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeProducts) GetProducts(ctx context.Context, limit int) ([]models.Product, error) {
	out := make([]models.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProducts) Create(ctx context.Context, product *models.Product) error {
	f.products[product.ID] = product
	return nil
}
