package usecases

import (
	"context"
	"fmt"
	"strings"

	"vtex-storefront/internal/adapters/vtex"
	"vtex-storefront/internal/domain/model"
	"vtex-storefront/internal/logging"
	"vtex-storefront/internal/transform"
)

type ProductDetailsService interface {
	Load(ctx context.Context, slug, skuID string) (model.ProductDetailsPage, error)
}

type ProductDetails struct {
	catalog vtex.CatalogService
	opts    transform.Options
	logger  logging.LoggerService
}

func NewProductDetails(catalog vtex.CatalogService, opts transform.Options, logger logging.LoggerService) ProductDetailsService {
	return &ProductDetails{
		catalog: catalog,
		opts:    opts,
		logger:  logger,
	}
}

// Load builds the detail page of slug at skuID, or at the default sku when
// skuID is empty.
func (c *ProductDetails) Load(ctx context.Context, slug, skuID string) (model.ProductDetailsPage, error) {
	slug = strings.Trim(strings.TrimSpace(slug), "/")
	slug = strings.TrimSuffix(slug, "/p")

	product, err := c.catalog.ProductBySlug(ctx, slug)
	if err != nil {
		if c.logger != nil {
			c.logger.LogError(fmt.Sprintf("Error fetch product %s", slug), err)
		}
		return model.ProductDetailsPage{}, err
	}

	sku, err := transform.PickSKU(product, skuID)
	if err != nil {
		return model.ProductDetailsPage{}, err
	}

	return transform.ToProductDetailsPage(product, sku, c.opts), nil
}
