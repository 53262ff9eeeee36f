package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Rakhulsr/go-ecommerce-cart/app/middlewares"
	"github.com/Rakhulsr/go-ecommerce-cart/app/models"
	"github.com/Rakhulsr/go-ecommerce-cart/app/services"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type CartHandler struct {
	cartSvc *services.CartService
	render  *render.Render
	log     *zap.SugaredLogger
}

func NewCartHandler(cartSvc *services.CartService, render *render.Render, log *zap.SugaredLogger) *CartHandler {
	return &CartHandler{cartSvc: cartSvc, render: render, log: log}
}

// addItemRequest carries either a catalog product id or a pre-formatted
// line, never both.
type addItemRequest struct {
	ProductID string                   `json:"productId"`
	Quantity  int                      `json:"quantity"`
	Line      *models.PreformattedLine `json:"line"`
}

type updateQtyRequest struct {
	Quantity *int `json:"quantity"`
}

type promoRequest struct {
	Code string `json:"code"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cartID := middlewares.CartIDFromContext(r.Context())
	_ = h.render.JSON(w, http.StatusOK, h.cartSvc.GetUserCart(r.Context(), cartID))
}

func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cartID := middlewares.CartIDFromContext(ctx)

	var req addItemRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			badRequest(h.render, w, "invalid form")
			return
		}
		req.ProductID = r.FormValue("product_id")
		req.Quantity = services.ParseQuantity(r.FormValue("qty"))
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(h.render, w, "invalid request body")
		return
	}

	var (
		view *services.CartView
		err  error
	)
	switch {
	case req.Line != nil && req.ProductID == "":
		view, err = h.cartSvc.AddPreformattedLine(ctx, cartID, *req.Line)
	case req.Line == nil && req.ProductID != "":
		view, err = h.cartSvc.AddItemToCart(ctx, cartID, req.ProductID, req.Quantity)
	default:
		badRequest(h.render, w, "provide exactly one of productId or line")
		return
	}
	if err != nil {
		writeError(h.render, h.log, w, "CartHandler.AddToCart", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, view)
}

func (h *CartHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cartID := middlewares.CartIDFromContext(ctx)
	lineID := mux.Vars(r)["id"]

	var req updateQtyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity == nil {
		badRequest(h.render, w, "quantity is required")
		return
	}

	view, err := h.cartSvc.UpdateCartItemQty(ctx, cartID, lineID, *req.Quantity)
	if err != nil {
		writeError(h.render, h.log, w, "CartHandler.UpdateCartItem", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, view)
}

func (h *CartHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	cartID := middlewares.CartIDFromContext(r.Context())
	_ = h.render.JSON(w, http.StatusOK, h.cartSvc.RemoveItemFromCart(r.Context(), cartID, mux.Vars(r)["id"]))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	cartID := middlewares.CartIDFromContext(r.Context())
	_ = h.render.JSON(w, http.StatusOK, h.cartSvc.ClearCart(r.Context(), cartID))
}

func (h *CartHandler) ApplyPromo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cartID := middlewares.CartIDFromContext(ctx)

	var req promoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(h.render, w, "invalid request body")
		return
	}

	view, err := h.cartSvc.ApplyPromoCode(ctx, cartID, req.Code)
	if err != nil {
		writeError(h.render, h.log, w, "CartHandler.ApplyPromo", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, view)
}

func (h *CartHandler) RemovePromo(w http.ResponseWriter, r *http.Request) {
	cartID := middlewares.CartIDFromContext(r.Context())
	_ = h.render.JSON(w, http.StatusOK, h.cartSvc.RemovePromoCode(r.Context(), cartID))
}
