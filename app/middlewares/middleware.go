package middlewares

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Rakhulsr/go-ecommerce-cart/app/helpers"
	"github.com/Rakhulsr/go-ecommerce-cart/app/utils/sessions"
	"go.uber.org/zap"
)

// CartSessionMiddleware resolves the shopper's cart id from the session
// cookie and puts it on the request context.
func CartSessionMiddleware(store *sessions.CartIDStore, log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cartID, err := store.GetCartID(w, r)
			if err != nil {
				log.Errorf("CartSessionMiddleware: error getting cart id for %s: %v", r.URL.Path, err)
				http.Error(w, "cart session unavailable", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), helpers.ContextKeyCartID, cartID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func CartIDFromContext(ctx context.Context) string {
	cartID, _ := ctx.Value(helpers.ContextKeyCartID).(string)
	return cartID
}

func RequestLogger(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Debugw("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
		})
	}
}

func MethodOverrideMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if override := r.Header.Get("X-HTTP-Method-Override"); override != "" {
				r.Method = strings.ToUpper(override)
			}
		}
		next.ServeHTTP(w, r)
	})
}
