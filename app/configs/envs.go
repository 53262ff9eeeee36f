package configs

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type ENV struct {
	Port     string `envconfig:"APP_PORT" default:":8080"`
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	AppURL   string `envconfig:"APP_URL" default:"http://localhost:8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	DBHost       string        `envconfig:"DB_HOST" default:"127.0.0.1"`
	DBUser       string        `envconfig:"DB_USER" default:"root"`
	DBPassword   string        `envconfig:"DB_PASSWORD"`
	DBName       string        `envconfig:"DB_NAME" default:"ecommerce"`
	DBPort       string        `envconfig:"DB_PORT" default:"3306"`
	DBRetries    int           `envconfig:"DB_CONNECT_RETRIES" default:"10"`
	DBRetryDelay time.Duration `envconfig:"DB_RETRY_DELAY" default:"5s"`

	CartStore        string        `envconfig:"CART_STORE" default:"mysql"`
	CartSaveDebounce time.Duration `envconfig:"CART_SAVE_DEBOUNCE" default:"300ms"`
	CartSnapshotTTL  time.Duration `envconfig:"CART_SNAPSHOT_TTL" default:"720h"`
	CheckoutTaxModel string        `envconfig:"CHECKOUT_TAX_MODEL" default:"gst"`
	CartSessionIdle  time.Duration `envconfig:"CART_SESSION_IDLE" default:"30m"`
	CartEvictEvery   time.Duration `envconfig:"CART_EVICT_INTERVAL" default:"1m"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	CSRFEnabled bool   `envconfig:"CSRF_ENABLED" default:"false"`
	AppAuthKey  string `envconfig:"APP_AUTH_KEY"`
	AppEncKey   string `envconfig:"APP_ENC_KEY"`

	MidtransServerKey string `envconfig:"MIDTRANS_SERVER_KEY"`
	MidtransClientKey string `envconfig:"MIDTRANS_CLIENT_KEY"`
}

const (
	CartStoreMySQL  = "mysql"
	CartStoreRedis  = "redis"
	CartStoreMemory = "memory"
)

// LoadEnv reads .env when present and overlays the process environment.
func LoadEnv() (ENV, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	var env ENV
	if err := envconfig.Process("", &env); err != nil {
		return ENV{}, fmt.Errorf("failed to load environment: %w", err)
	}

	switch env.CartStore {
	case CartStoreMySQL, CartStoreRedis, CartStoreMemory:
	default:
		return ENV{}, fmt.Errorf("CART_STORE must be one of mysql, redis, memory (got %q)", env.CartStore)
	}
	return env, nil
}

func (e ENV) IsDevelopment() bool {
	return e.AppEnv == "development"
}
