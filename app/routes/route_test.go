package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Rakhulsr/go-ecommerce-cart/app/handlers"
	"github.com/Rakhulsr/go-ecommerce-cart/app/models"
	"github.com/Rakhulsr/go-ecommerce-cart/app/repositories"
	"github.com/Rakhulsr/go-ecommerce-cart/app/services"
	"github.com/Rakhulsr/go-ecommerce-cart/app/utils/renderer"
	"github.com/Rakhulsr/go-ecommerce-cart/app/utils/sessions"
	"github.com/gorilla/securecookie"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSubmitter struct {
	mu  sync.Mutex
	err error
}

func (s *stubSubmitter) SubmitOrder(ctx context.Context, req services.OrderRequest) (*services.OrderReceipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return &services.OrderReceipt{OrderID: "o1", OrderCode: "INV-TEST", GrandTotal: req.Totals.GrandTotal}, nil
}

type stubCatalog struct {
	products map[string]*models.Product
}

func (s *stubCatalog) GetByID(ctx context.Context, id string) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, repositories.ErrProductNotFound
	}
	return p, nil
}

func (s *stubCatalog) GetProducts(ctx context.Context, limit int) ([]models.Product, error) {
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, *p)
	}
	return out, nil
}

func (s *stubCatalog) Create(ctx context.Context, product *models.Product) error {
	s.products[product.ID] = product
	return nil
}

type stubOrders struct{}

func (stubOrders) FindOrder(ctx context.Context, code string) (*models.Order, error) {
	if code != "INV-TEST" {
		return nil, repositories.ErrOrderNotFound
	}
	return &models.Order{ID: "o1", OrderCode: code, Status: models.OrderStatusPending}, nil
}

type apiClient struct {
	t      *testing.T
	server *httptest.Server
	client *http.Client
}

func newAPI(t *testing.T, submitter services.OrderSubmitter) *apiClient {
	t.Helper()
	log := zap.NewNop().Sugar()
	store := repositories.NewMemoryCartSnapshotRepository()
	calc, err := services.NewCheckoutCalculator(models.TaxModelGST)
	require.NoError(t, err)

	cartSessions := services.NewCartSessions(store, time.Hour, nil, log)
	catalog := &stubCatalog{products: map[string]*models.Product{
		"mug": {ID: "mug", Name: "Mug", Category: "Home", Price: decimal.NewFromInt(8), Stock: 10, GSTRate: decimal.NewFromInt(12)},
	}}
	cartSvc := services.NewCartService(cartSessions, services.NewItemValidator(nil), catalog, calc, log)
	checkoutSvc := services.NewCheckoutService(cartSessions, calc, submitter, nil, log)
	rnd := renderer.New(false)

	handler := NewRouter(RouterDeps{
		CartHandler:     handlers.NewCartHandler(cartSvc, rnd, log),
		CheckoutHandler: handlers.NewCheckoutHandler(checkoutSvc, rnd, log),
		CatalogHandler:  handlers.NewCatalogHandler(catalog, rnd, log),
		OrderHandler:    handlers.NewOrderHandler(stubOrders{}, rnd, log),
		CartIDStore:     sessions.NewCartIDStore(false, securecookie.GenerateRandomKey(32), securecookie.GenerateRandomKey(32)),
		Log:             log,
	})

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &apiClient{t: t, server: server, client: &http.Client{Jar: jar}}
}

func (a *apiClient) do(method, path, body string, headers ...string) (int, map[string]interface{}) {
	a.t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, a.server.URL+path, reader)
	require.NoError(a.t, err)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := a.client.Do(req)
	require.NoError(a.t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(a.t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

const lampLine = `{"line":{"id":"lamp","name":"Desk lamp","category":"Home","price":20,"quantity":2,"stock":5}}`

func TestCartFlow(t *testing.T) {
	api := newAPI(t, &stubSubmitter{})

	status, body := api.do(http.MethodPost, "/cart/items", lampLine)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Desk lamp added to cart (quantity: 2)", body["message"])

	status, body = api.do(http.MethodGet, "/cart", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["lines"], 1)

	status, body = api.do(http.MethodPatch, "/cart/items/lamp", `{"quantity":9}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "insufficient_stock", body["code"])

	status, body = api.do(http.MethodPatch, "/cart/items/lamp", `{"quantity":3}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Desk lamp quantity updated to 3", body["message"])

	status, body = api.do(http.MethodPost, "/cart/promo", `{"code":"nope"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "invalid_promo_code", body["code"])

	status, body = api.do(http.MethodPost, "/cart/promo", `{"code":"save20"}`)
	require.Equal(t, http.StatusOK, status)
	summary := body["summary"].(map[string]interface{})
	assert.Equal(t, "SAVE20", summary["promoCode"])

	status, body = api.do(http.MethodPost, "/cart/items/lamp", "", "X-HTTP-Method-Override", "DELETE")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Desk lamp removed from cart", body["message"])
	assert.Empty(t, body["lines"])
}

func TestAddToCartBadRequests(t *testing.T) {
	api := newAPI(t, &stubSubmitter{})

	status, _ := api.do(http.MethodPost, "/cart/items", `{}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = api.do(http.MethodPost, "/cart/items", `not json`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := api.do(http.MethodPost, "/cart/items", `{"line":{"id":"x","price":0,"quantity":1}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "invalid_price", body["code"])

	status, body = api.do(http.MethodPatch, "/cart/items/ghost", `{"quantity":2}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not_found", body["code"])
}

func TestCheckoutFlow(t *testing.T) {
	api := newAPI(t, &stubSubmitter{})

	status, body := api.do(http.MethodGet, "/checkout/summary", "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "empty_cart", body["code"])

	_, _ = api.do(http.MethodPost, "/cart/items", lampLine)

	status, body = api.do(http.MethodPost, "/checkout", `{"first_name":"Asha"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "validation_failed", body["code"])
	assert.NotEmpty(t, body["fields"])

	status, body = api.do(http.MethodPost, "/checkout", `{"first_name":"Asha","email":"asha@example.com","phone":"98765","address1":"12 MG Road","city":"Pune","post_code":"411001"}`)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Order placed successfully, your cart has been cleared", body["message"])

	_, body = api.do(http.MethodGet, "/cart", "")
	assert.Empty(t, body["lines"])
}

func TestCheckoutFailureKeepsCart(t *testing.T) {
	api := newAPI(t, &stubSubmitter{err: errors.New("gateway down")})
	_, _ = api.do(http.MethodPost, "/cart/items", lampLine)

	status, body := api.do(http.MethodPost, "/checkout", `{"first_name":"Asha","email":"asha@example.com","phone":"98765","address1":"12 MG Road","city":"Pune","post_code":"411001"}`)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal_error", body["code"])

	_, body = api.do(http.MethodGet, "/cart", "")
	assert.Len(t, body["lines"], 1)
}

func TestSeparateShoppersGetSeparateCarts(t *testing.T) {
	api := newAPI(t, &stubSubmitter{})
	_, _ = api.do(http.MethodPost, "/cart/items", lampLine)

	other := &apiClient{t: t, server: api.server, client: &http.Client{}}
	_, body := other.do(http.MethodGet, "/cart", "")
	assert.Empty(t, body["lines"])
}

func TestCatalogAndFormAdd(t *testing.T) {
	api := newAPI(t, &stubSubmitter{})

	resp, err := api.client.Get(api.server.URL + "/products")
	require.NoError(t, err)
	defer resp.Body.Close()
	var products []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&products))
	require.Len(t, products, 1)
	assert.Equal(t, "mug", products[0]["id"])

	status, body := api.do(http.MethodPost, "/cart/items", "product_id=mug&qty=3", "Content-Type", "application/x-www-form-urlencoded")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Mug added to cart (quantity: 3)", body["message"])

	status, body = api.do(http.MethodPost, "/cart/items", "product_id=mug&qty=8", "Content-Type", "application/x-www-form-urlencoded")
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "insufficient_stock", body["code"])

	status, body = api.do(http.MethodPost, "/cart/items", `{"productId":"ghost","quantity":1}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not_found", body["code"])
}

func TestOrderLookup(t *testing.T) {
	api := newAPI(t, &stubSubmitter{})

	status, body := api.do(http.MethodGet, "/orders/INV-TEST", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "INV-TEST", body["order_code"])

	status, _ = api.do(http.MethodGet, "/checkout/finish?order_code=INV-TEST", "")
	assert.Equal(t, http.StatusOK, status)

	status, body = api.do(http.MethodGet, "/orders/INV-NOPE", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not_found", body["code"])

	status, _ = api.do(http.MethodGet, "/checkout/finish", "")
	assert.Equal(t, http.StatusBadRequest, status)
}
