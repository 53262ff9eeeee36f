package routes

import (
	"net/http"

	"github.com/Rakhulsr/go-ecommerce-cart/app/handlers"
	"github.com/Rakhulsr/go-ecommerce-cart/app/middlewares"
	"github.com/Rakhulsr/go-ecommerce-cart/app/utils/sessions"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type RouterDeps struct {
	CartHandler     *handlers.CartHandler
	CheckoutHandler *handlers.CheckoutHandler
	CatalogHandler  *handlers.CatalogHandler
	OrderHandler    *handlers.OrderHandler
	CartIDStore     *sessions.CartIDStore
	Log             *zap.SugaredLogger

	// CSRFKey enables CSRF protection on mutating routes when set.
	CSRFKey       []byte
	SecureCookies bool
}

// NewRouter mounts the cart API. Method override wraps the router so it
// applies before route matching.
func NewRouter(deps RouterDeps) http.Handler {
	router := mux.NewRouter()
	router.Use(middlewares.RequestLogger(deps.Log))
	router.Use(middlewares.CartSessionMiddleware(deps.CartIDStore, deps.Log))
	if len(deps.CSRFKey) > 0 {
		router.Use(csrf.Protect(deps.CSRFKey, csrf.Secure(deps.SecureCookies), csrf.Path("/")))
		router.Use(exposeCSRFToken)
	}

	router.HandleFunc("/cart", deps.CartHandler.GetCart).Methods(http.MethodGet)
	router.HandleFunc("/cart", deps.CartHandler.ClearCart).Methods(http.MethodDelete)
	router.HandleFunc("/cart/items", deps.CartHandler.AddToCart).Methods(http.MethodPost)
	router.HandleFunc("/cart/items/{id}", deps.CartHandler.UpdateCartItem).Methods(http.MethodPatch)
	router.HandleFunc("/cart/items/{id}", deps.CartHandler.RemoveCartItem).Methods(http.MethodDelete)
	router.HandleFunc("/cart/promo", deps.CartHandler.ApplyPromo).Methods(http.MethodPost)
	router.HandleFunc("/cart/promo", deps.CartHandler.RemovePromo).Methods(http.MethodDelete)

	router.HandleFunc("/checkout/summary", deps.CheckoutHandler.Summary).Methods(http.MethodGet)
	router.HandleFunc("/checkout", deps.CheckoutHandler.PlaceOrder).Methods(http.MethodPost)

	if deps.CatalogHandler != nil {
		router.HandleFunc("/products", deps.CatalogHandler.ListProducts).Methods(http.MethodGet)
	}
	if deps.OrderHandler != nil {
		router.HandleFunc("/checkout/finish", deps.OrderHandler.PaymentFinish).Methods(http.MethodGet)
		router.HandleFunc("/orders/{code}", deps.OrderHandler.GetOrder).Methods(http.MethodGet)
	}

	return middlewares.MethodOverrideMiddleware(router)
}

func exposeCSRFToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-CSRF-Token", csrf.Token(r))
		next.ServeHTTP(w, r)
	})
}
