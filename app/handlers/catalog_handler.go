package handlers

import (
	"net/http"
	"strconv"

	"github.com/Rakhulsr/go-ecommerce-cart/app/models"
	"github.com/Rakhulsr/go-ecommerce-cart/app/repositories"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

const maxCatalogPage = 100

type CatalogHandler struct {
	productRepo repositories.ProductRepositoryImpl
	render      *render.Render
	log         *zap.SugaredLogger
}

func NewCatalogHandler(productRepo repositories.ProductRepositoryImpl, render *render.Render, log *zap.SugaredLogger) *CatalogHandler {
	return &CatalogHandler{productRepo: productRepo, render: render, log: log}
}

// ListProducts returns the newest products in the shape the cart accepts.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	if limit > maxCatalogPage {
		limit = maxCatalogPage
	}

	products, err := h.productRepo.GetProducts(r.Context(), limit)
	if err != nil {
		writeError(h.render, h.log, w, "CatalogHandler.ListProducts", err)
		return
	}

	out := make([]models.CatalogProduct, 0, len(products))
	for i := range products {
		out = append(out, products[i].ToCatalogProduct())
	}
	_ = h.render.JSON(w, http.StatusOK, out)
}
