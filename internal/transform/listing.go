package transform

import (
	"vtex-storefront/internal/adapters/vtex/dto"
	"vtex-storefront/internal/domain/model"
)

// ListingPage is what a product listing page is assembled from.
type ListingPage struct {
	Products   []dto.AnyProduct
	Filters    []model.Filter
	PageInfo   model.PageInfo
	Breadcrumb model.BreadcrumbList
	SortLabels map[string]string
	SEO        *model.SEO
}

func ToProductListingPage(page ListingPage, opts Options) model.ProductListingPage {
	filters := page.Filters
	if filters == nil {
		filters = []model.Filter{}
	}
	breadcrumb := page.Breadcrumb
	if breadcrumb.Type == "" {
		breadcrumb.Type = "BreadcrumbList"
	}
	if breadcrumb.ItemListElement == nil {
		breadcrumb.ItemListElement = []model.ListItem{}
	}
	return model.ProductListingPage{
		Type:           "ProductListingPage",
		BreadcrumbList: breadcrumb,
		Filters:        filters,
		Products:       ToListingProducts(page.Products, opts),
		PageInfo:       page.PageInfo,
		SortOptions:    SortOptions(page.SortLabels),
		SEO:            page.SEO,
	}
}

// SearchProducts exposes intelligent search results through AnyProduct.
func SearchProducts(products []dto.Product) []dto.AnyProduct {
	out := make([]dto.AnyProduct, 0, len(products))
	for i := range products {
		out = append(out, &products[i])
	}
	return out
}
