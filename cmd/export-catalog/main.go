// daily job: copy the VTEX catalog into the reporting database
package main

import (
	"context"
	"fmt"
	"os"

	"vtex-storefront/internal/adapters/vtex"
	"vtex-storefront/internal/app/usecases"
	"vtex-storefront/internal/config"
	"vtex-storefront/internal/infra/cache"
	"vtex-storefront/internal/infra/db"
	infrahttp "vtex-storefront/internal/infra/http"
	"vtex-storefront/internal/logging"
	"vtex-storefront/internal/transform"
)

func main() {
	cfg, err := config.LoadForExport()
	if err != nil {
		fmt.Printf("error %v\n", err)
		os.Exit(1)
	}
	logger := logging.NewLogger(cfg.Log, cfg.TelegramBot)

	logger.Log("Export initialized start work..")

	conn, err := db.Open(cfg.Database)
	if err != nil {
		logger.LogError("database open error", err)
		logger.Close()
		os.Exit(1)
	}

	httpClient := infrahttp.NewClient(cfg.Vtex.Timeout)
	// a run reads every page once, so the cache stays in process
	vtexClient := vtex.NewClient(cfg.Vtex, httpClient, cache.NewMemory(), logger)

	export := usecases.NewExportCatalog(
		vtexClient,
		db.NewProductStore(conn, cfg.Database.Driver),
		cfg.Storefront,
		transform.Options{BaseURL: cfg.Vtex.PublicUrl, PriceCurrency: cfg.Vtex.Currency},
		logger,
	)
	err = export.Run(context.Background())
	conn.Close()
	if err != nil {
		logger.LogError("exportCatalog error", err)
		logger.Close()
		os.Exit(1)
	}
	logger.Close()
}
