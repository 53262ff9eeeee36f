package sessions

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	SessionCartKey   = "cart_session"
	CartSessionIDKey = "cart_id"
)

// CartIDStore keeps the shopper's cart id in a signed, encrypted cookie.
type CartIDStore struct {
	store *sessions.CookieStore
}

func NewCartIDStore(secure bool, keyPairs ...[]byte) *CartIDStore {
	store := sessions.NewCookieStore(keyPairs...)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(30 * 24 * time.Hour / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &CartIDStore{store: store}
}

// GetCartID returns the cart id from the cookie, issuing a new one when the
// cookie is missing or cannot be decoded.
func (c *CartIDStore) GetCartID(w http.ResponseWriter, r *http.Request) (string, error) {
	session, err := c.store.Get(r, SessionCartKey)
	if err != nil {
		session, _ = c.store.New(r, SessionCartKey)
	}

	if cartID, ok := session.Values[CartSessionIDKey].(string); ok && cartID != "" {
		return cartID, nil
	}

	newCartID := uuid.New().String()
	session.Values[CartSessionIDKey] = newCartID
	if err := session.Save(r, w); err != nil {
		return "", err
	}

	return newCartID, nil
}
