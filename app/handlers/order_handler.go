package handlers

import (
	"context"
	"net/http"

	"github.com/Rakhulsr/go-ecommerce-cart/app/models"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type OrderFinder interface {
	FindOrder(ctx context.Context, orderCode string) (*models.Order, error)
}

type OrderHandler struct {
	orders OrderFinder
	render *render.Render
	log    *zap.SugaredLogger
}

func NewOrderHandler(orders OrderFinder, render *render.Render, log *zap.SugaredLogger) *OrderHandler {
	return &OrderHandler{orders: orders, render: render, log: log}
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	h.renderOrder(w, r, mux.Vars(r)["code"])
}

// PaymentFinish is where the payment page sends the shopper back.
func (h *OrderHandler) PaymentFinish(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("order_code")
	if code == "" {
		badRequest(h.render, w, "order_code is required")
		return
	}
	h.renderOrder(w, r, code)
}

func (h *OrderHandler) renderOrder(w http.ResponseWriter, r *http.Request, code string) {
	order, err := h.orders.FindOrder(r.Context(), code)
	if err != nil {
		writeError(h.render, h.log, w, "OrderHandler.GetOrder", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, order)
}
