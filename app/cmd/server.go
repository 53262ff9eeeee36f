package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rakhulsr/go-ecommerce-cart/app/configs"
	"github.com/Rakhulsr/go-ecommerce-cart/app/handlers"
	"github.com/Rakhulsr/go-ecommerce-cart/app/models"
	"github.com/Rakhulsr/go-ecommerce-cart/app/repositories"
	"github.com/Rakhulsr/go-ecommerce-cart/app/routes"
	"github.com/Rakhulsr/go-ecommerce-cart/app/services"
	"github.com/Rakhulsr/go-ecommerce-cart/app/utils/renderer"
	"github.com/Rakhulsr/go-ecommerce-cart/app/utils/sessions"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newSnapshotRepository(ctx context.Context, env configs.ENV, db *gorm.DB) (repositories.CartSnapshotRepository, func(), error) {
	switch env.CartStore {
	case configs.CartStoreRedis:
		client, err := configs.OpenRedis(ctx, env)
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewRedisCartSnapshotRepository(client, env.CartSnapshotTTL), func() { _ = client.Close() }, nil
	case configs.CartStoreMemory:
		return repositories.NewMemoryCartSnapshotRepository(), func() {}, nil
	default:
		return repositories.NewCartSnapshotRepository(db), func() {}, nil
	}
}

func runServer(ctx context.Context, env configs.ENV, logger *zap.Logger) error {
	log := logger.Sugar()
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The catalog and orders live in MySQL whatever CART_STORE says;
	// CART_STORE only picks where cart snapshots go.
	db, err := configs.OpenConnection(env, log)
	if err != nil {
		return err
	}

	snapshots, closeSnapshots, err := newSnapshotRepository(ctx, env, db)
	if err != nil {
		return err
	}
	defer closeSnapshots()

	calculator, err := services.NewCheckoutCalculator(models.TaxModel(env.CheckoutTaxModel))
	if err != nil {
		return err
	}

	keys, err := configs.LoadSessionKeys(env)
	if err != nil {
		return err
	}

	validate := validator.New()
	cartSessions := services.NewCartSessions(snapshots, env.CartSaveDebounce, services.NewLogNotifier(log), log)

	go cartSessions.RunEvictor(ctx, env.CartEvictEvery, env.CartSessionIdle)

	var gateway services.PaymentGateway
	if snapClient := configs.NewMidtransSnapClient(env); snapClient != nil {
		gateway = services.NewMidtransGateway(snapClient, env.AppURL)
		log.Info("Midtrans Snap client initialized")
	}

	productRepo := repositories.NewProductRepository(db)
	orderSvc := services.NewOrderService(db, repositories.NewOrderRepository(db), gateway, log)
	cartSvc := services.NewCartService(cartSessions, services.NewItemValidator(validate), productRepo, calculator, log)
	checkoutSvc := services.NewCheckoutService(cartSessions, calculator, orderSvc, validate, log)

	rnd := renderer.New(env.IsDevelopment())
	deps := routes.RouterDeps{
		CartHandler:     handlers.NewCartHandler(cartSvc, rnd, log),
		CheckoutHandler: handlers.NewCheckoutHandler(checkoutSvc, rnd, log),
		CatalogHandler:  handlers.NewCatalogHandler(productRepo, rnd, log),
		OrderHandler:    handlers.NewOrderHandler(orderSvc, rnd, log),
		CartIDStore:     sessions.NewCartIDStore(!env.IsDevelopment(), keys.AuthKey, keys.EncKey),
		Log:             log,
		SecureCookies:   !env.IsDevelopment(),
	}
	if env.CSRFEnabled {
		if len(keys.AuthKey) < 32 {
			return fmt.Errorf("CSRF_ENABLED needs an APP_AUTH_KEY of at least 32 bytes")
		}
		deps.CSRFKey = keys.AuthKey[:32]
	}

	server := &http.Server{
		Addr:              env.Port,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Server starting on %s (cart store: %s, tax model: %s)", server.Addr, env.CartStore, calculator.TaxModel())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("Shutting down, flushing pending carts")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warnf("Server shutdown: %v", err)
	}
	if err := cartSessions.FlushAll(shutdownCtx); err != nil {
		log.Errorf("Failed to flush carts on shutdown: %v", err)
	}
	cartSessions.CloseAll()
	return nil
}
