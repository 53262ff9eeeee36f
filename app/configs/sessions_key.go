package configs

import (
	"encoding/base64"
	"fmt"
	"io"

	"github.com/gorilla/securecookie"
)

type SessionKeys struct {
	AuthKey []byte
	EncKey  []byte
}

// LoadSessionKeys decodes the cookie keys. In development, missing keys are
// replaced by random ones so carts survive only until restart.
func LoadSessionKeys(env ENV) (*SessionKeys, error) {
	if env.AppAuthKey == "" || env.AppEncKey == "" {
		if !env.IsDevelopment() {
			return nil, fmt.Errorf("APP_AUTH_KEY and APP_ENC_KEY must be set outside development")
		}
		return &SessionKeys{
			AuthKey: securecookie.GenerateRandomKey(64),
			EncKey:  securecookie.GenerateRandomKey(32),
		}, nil
	}

	authKey, err := base64.URLEncoding.DecodeString(env.AppAuthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode APP_AUTH_KEY from Base64: %w", err)
	}
	encKey, err := base64.URLEncoding.DecodeString(env.AppEncKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode APP_ENC_KEY from Base64: %w", err)
	}

	if len(encKey) != 16 && len(encKey) != 24 && len(encKey) != 32 {
		return nil, fmt.Errorf("APP_ENC_KEY has invalid length %d after decoding. Must be 16, 24, or 32 bytes for AES encryption", len(encKey))
	}

	return &SessionKeys{AuthKey: authKey, EncKey: encKey}, nil
}

func GenerateSessionKeys(w io.Writer) error {
	authKey := securecookie.GenerateRandomKey(64)
	if authKey == nil {
		return fmt.Errorf("error: could not generate authentication key")
	}

	encKey := securecookie.GenerateRandomKey(32)
	if encKey == nil {
		return fmt.Errorf("error: could not generate encryption key")
	}

	_, err := fmt.Fprintf(w, "APP_AUTH_KEY=%s\nAPP_ENC_KEY=%s\n",
		base64.URLEncoding.EncodeToString(authKey),
		base64.URLEncoding.EncodeToString(encKey))
	return err
}
