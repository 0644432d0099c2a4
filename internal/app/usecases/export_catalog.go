package usecases

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"vtex-storefront/internal/adapters/vtex"
	"vtex-storefront/internal/adapters/vtex/dto"
	"vtex-storefront/internal/config"
	"vtex-storefront/internal/domain/model"
	"vtex-storefront/internal/infra/db"
	"vtex-storefront/internal/logging"
	"vtex-storefront/internal/transform"
)

const (
	exportPageSize = 50
	// intelligent search stops paginating past this page
	exportMaxPages = 50
)

type ExportCatalogService interface {
	Run(ctx context.Context) error
}

type ExportCatalog struct {
	catalog    vtex.CatalogService
	store      db.ProductStore
	storefront config.StorefrontConfig
	opts       transform.Options
	logger     logging.LoggerService
}

func NewExportCatalog(catalog vtex.CatalogService, store db.ProductStore, storefront config.StorefrontConfig, opts transform.Options, logger logging.LoggerService) ExportCatalogService {
	return &ExportCatalog{
		catalog:    catalog,
		store:      store,
		storefront: storefront,
		opts:       opts,
		logger:     logger,
	}
}

func (c *ExportCatalog) Run(ctx context.Context) error {
	if c.logger != nil {
		c.logger.Log("Catalog export started")
	}

	if err := c.store.EnsureSchema(ctx); err != nil {
		if c.logger != nil {
			c.logger.LogError("Error ensure catalog schema", err)
		}
		return err
	}

	first, err := c.catalog.ProductSearch(ctx, c.searchParams(1))
	if err != nil {
		if c.logger != nil {
			c.logger.LogError("Error fetch catalog page 1", err)
		}
		return err
	}

	pages := (first.RecordsFiltered + exportPageSize - 1) / exportPageSize
	if pages > exportMaxPages {
		if c.logger != nil {
			c.logger.LogWarning(fmt.Sprintf("Catalog has %d pages, exporting the first %d", pages, exportMaxPages))
		}
		pages = exportMaxPages
	}

	var (
		exported atomic.Int64
		done     atomic.Int64
	)
	write := func(ctx context.Context, page int, products []dto.Product) error {
		rows := c.toRows(products)
		if err := c.store.Upsert(ctx, rows); err != nil {
			return fmt.Errorf("upsert page %d: %w", page, err)
		}
		exported.Add(int64(len(rows)))
		if n := done.Add(1); c.logger != nil && (n%10 == 0 || int(n) == pages) {
			c.logger.Log(fmt.Sprintf("Catalog export progress: %d/%d pages", n, pages))
		}
		return nil
	}

	if err := write(ctx, 1, first.Products); err != nil {
		if c.logger != nil {
			c.logger.LogError("Error export catalog", err)
		}
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers())
	for page := 2; page <= pages; page++ {
		g.Go(func() error {
			result, err := c.catalog.ProductSearch(gctx, c.searchParams(page))
			if err != nil {
				return fmt.Errorf("fetch page %d: %w", page, err)
			}
			return write(gctx, page, result.Products)
		})
	}
	if err := g.Wait(); err != nil {
		if c.logger != nil {
			c.logger.LogError("Error export catalog", err)
		}
		return err
	}

	if c.logger != nil {
		c.logger.LogSuccess(fmt.Sprintf(
			"Catalog export finished: pages=%d skus=%d records=%d",
			pages,
			exported.Load(),
			first.RecordsFiltered,
		))
	}
	return nil
}

func (c *ExportCatalog) searchParams(page int) vtex.SearchParams {
	return vtex.SearchParams{
		Query: c.storefront.ExportQuery,
		Page:  page,
		Count: exportPageSize,
	}
}

func (c *ExportCatalog) workers() int {
	if c.storefront.ExportWorkers > 0 {
		return c.storefront.ExportWorkers
	}
	return 4
}

// toRows maps every sku at level 1. The store keys rows by sku.
func (c *ExportCatalog) toRows(products []dto.Product) []model.Product {
	var rows []model.Product
	for i := range products {
		product := &products[i]
		items := product.Base().Items
		for j := range items {
			rows = append(rows, transform.ToProduct(product, &items[j], 1, c.opts))
		}
	}
	return rows
}
