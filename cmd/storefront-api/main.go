// storefront api: product, listing, suggestion and cart endpoints over VTEX
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vtex-storefront/internal/adapters/vtex"
	"vtex-storefront/internal/app/usecases"
	"vtex-storefront/internal/cart"
	"vtex-storefront/internal/config"
	"vtex-storefront/internal/infra/cache"
	infrahttp "vtex-storefront/internal/infra/http"
	"vtex-storefront/internal/logging"
	"vtex-storefront/internal/server"
	"vtex-storefront/internal/transform"
)

const (
	cartSweepEvery = time.Minute
	cartMaxIdle    = 30 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("error %v\n", err)
		os.Exit(1)
	}
	logger := logging.NewLogger(cfg.Log, cfg.TelegramBot)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.LogError("storefront api error", err)
		stop()
		logger.Close()
		os.Exit(1)
	}
	logger.Log("Storefront api stopped")
	logger.Close()
}

func run(ctx context.Context, cfg *config.Config, logger logging.LoggerService) error {
	store, err := cache.New(cfg.Redis)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer store.Close()

	httpClient := infrahttp.NewClient(cfg.Vtex.Timeout)
	vtexClient := vtex.NewClient(cfg.Vtex, httpClient, store, logger)
	opts := transform.Options{
		BaseURL:       cfg.Vtex.PublicUrl,
		PriceCurrency: cfg.Vtex.Currency,
	}

	carts := cart.NewManager(vtexClient, opts, logger)
	defer carts.Close()
	go sweepCarts(ctx, carts, logger)

	srv := server.New(cfg.Server, server.Services{
		Products:    usecases.NewProductDetails(vtexClient, opts, logger),
		Listing:     usecases.NewProductListing(vtexClient, cfg.Storefront, opts, logger),
		Suggestions: usecases.NewSuggestions(vtexClient, opts, logger),
		Carts:       carts,
	}, logger)

	logger.Log(fmt.Sprintf("Storefront api started for account %s", cfg.Vtex.Account))
	return srv.Run(ctx)
}

func sweepCarts(ctx context.Context, carts *cart.Manager, logger logging.LoggerService) {
	ticker := time.NewTicker(cartSweepEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := carts.Sweep(cartMaxIdle); n > 0 {
				logger.Log(fmt.Sprintf("closed %d idle carts, %d live", n, carts.Len()))
			}
		}
	}
}
