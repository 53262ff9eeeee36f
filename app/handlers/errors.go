package handlers

import (
	"errors"
	"net/http"

	"github.com/Rakhulsr/go-ecommerce-cart/app/helpers"
	"github.com/Rakhulsr/go-ecommerce-cart/app/repositories"
	"github.com/Rakhulsr/go-ecommerce-cart/app/services"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

// writeError maps service errors onto status codes. Validation failures are
// the shopper's to fix and are not logged as errors.
func writeError(rnd *render.Render, log *zap.SugaredLogger, w http.ResponseWriter, where string, err error) {
	resp := errorResponse{Error: err.Error()}
	status := http.StatusInternalServerError

	var stockErr *services.StockError
	switch {
	case errors.As(err, &stockErr):
		status, resp.Code = http.StatusUnprocessableEntity, "insufficient_stock"
	case errors.Is(err, services.ErrInvalidPrice):
		status, resp.Code = http.StatusUnprocessableEntity, "invalid_price"
	case errors.Is(err, services.ErrInvalidPromoCode):
		status, resp.Code = http.StatusUnprocessableEntity, "invalid_promo_code"
	case errors.Is(err, services.ErrInvalidLine), errors.Is(err, services.ErrInvalidCustomer):
		status, resp.Code = http.StatusUnprocessableEntity, "validation_failed"
		resp.Fields = helpers.ValidationFields(err)
	case errors.Is(err, services.ErrLineNotFound), errors.Is(err, repositories.ErrProductNotFound),
		errors.Is(err, repositories.ErrOrderNotFound):
		status, resp.Code = http.StatusNotFound, "not_found"
	case errors.Is(err, services.ErrEmptyCart):
		status, resp.Code = http.StatusConflict, "empty_cart"
	default:
		resp.Code = "internal_error"
		resp.Error = "something went wrong, please try again"
		log.Errorf("%s: %v", where, err)
	}

	_ = rnd.JSON(w, status, resp)
}

func badRequest(rnd *render.Render, w http.ResponseWriter, msg string) {
	_ = rnd.JSON(w, http.StatusBadRequest, errorResponse{Error: msg, Code: "bad_request"})
}
