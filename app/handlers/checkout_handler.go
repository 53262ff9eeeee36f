package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Rakhulsr/go-ecommerce-cart/app/middlewares"
	"github.com/Rakhulsr/go-ecommerce-cart/app/models"
	"github.com/Rakhulsr/go-ecommerce-cart/app/services"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	checkoutSvc *services.CheckoutService
	render      *render.Render
	log         *zap.SugaredLogger
}

func NewCheckoutHandler(checkoutSvc *services.CheckoutService, render *render.Render, log *zap.SugaredLogger) *CheckoutHandler {
	return &CheckoutHandler{checkoutSvc: checkoutSvc, render: render, log: log}
}

func (h *CheckoutHandler) Summary(w http.ResponseWriter, r *http.Request) {
	cartID := middlewares.CartIDFromContext(r.Context())

	totals, err := h.checkoutSvc.Summary(r.Context(), cartID)
	if err != nil {
		writeError(h.render, h.log, w, "CheckoutHandler.Summary", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, totals)
}

func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cartID := middlewares.CartIDFromContext(ctx)

	var customer models.OrderCustomer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		badRequest(h.render, w, "invalid request body")
		return
	}

	receipt, err := h.checkoutSvc.PlaceOrder(ctx, cartID, customer)
	if err != nil {
		writeError(h.render, h.log, w, "CheckoutHandler.PlaceOrder", err)
		return
	}

	_ = h.render.JSON(w, http.StatusCreated, map[string]interface{}{
		"order":   receipt,
		"message": services.ChangeMessage(services.Change{Kind: services.TransitionClear, Reason: services.ClearReasonOrder}),
	})
}
