package usecases

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vtex-storefront/internal/adapters/vtex"
	"vtex-storefront/internal/adapters/vtex/dto"
	"vtex-storefront/internal/config"
)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestProductListing_IntelligentSearch(t *testing.T) {
	catalog := &fakeCatalog{
		search: func(vtex.SearchParams) (dto.ProductSearchResult, error) {
			return dto.ProductSearchResult{
				Products:        []dto.Product{isProduct("1", item("11", 1)), isProduct("2", item("21", 1))},
				RecordsFiltered: 30,
			}, nil
		},
		facets: dto.FacetsResult{
			Facets: []dto.Facet{
				{Type: dto.FacetTypeText, Name: "Marca", Key: "brand", Values: []dto.FacetValue{{Name: "Acme", Key: "brand", Value: "acme"}}},
				{Type: dto.FacetTypeText, Name: "Vendedor", Key: "sellerId", Values: []dto.FacetValue{{Name: "1", Key: "sellerId", Value: "1"}}},
			},
			Breadcrumb: []dto.FacetBreadcrumb{{Name: "Roupas", Href: "/roupas"}, {Name: "Camisas", Href: "/roupas/camisas"}},
		},
	}
	svc := NewProductListing(catalog, config.StorefrontConfig{
		PageSize:        2,
		DefaultSort:     "price:asc",
		HiddenFacets:    []string{"sellerId"},
		HideUnavailable: true,
	}, testOpts, nil)

	page, err := svc.Load(context.Background(), ListingQuery{
		Path: "/roupas/camisas",
		Page: 2,
		URL:  mustURL(t, "/roupas/camisas?filter.brand=acme&page=2"),
	})
	require.NoError(t, err)

	require.Len(t, catalog.searches, 1)
	params := catalog.searches[0]
	assert.Equal(t, []vtex.FacetParam{
		{Key: "category-1", Value: "roupas"},
		{Key: "category-2", Value: "camisas"},
		{Key: "brand", Value: "acme"},
	}, params.Facets)
	assert.Equal(t, "price:asc", params.Sort)
	assert.Equal(t, 2, params.Page)
	assert.Equal(t, 2, params.Count)
	assert.True(t, params.HideUnavailable)
	assert.Equal(t, catalog.facetCalls[0], params)

	assert.Equal(t, "ProductListingPage", page.Type)
	assert.Len(t, page.Products, 2)
	require.Len(t, page.Filters, 1)
	assert.Equal(t, "brand", page.Filters[0].FilterKey())
	assert.Equal(t, 2, page.PageInfo.CurrentPage)
	assert.NotEmpty(t, page.PageInfo.NextPage)
	assert.NotEmpty(t, page.PageInfo.PreviousPage)
	assert.Equal(t, 2, page.BreadcrumbList.NumberOfItems)
	require.NotNil(t, page.SEO)
	assert.Equal(t, "Camisas", page.SEO.Title)
	assert.Equal(t, "https://www.acme.com/roupas/camisas", page.SEO.Canonical)
	assert.False(t, page.SEO.NoIndexing)
	assert.NotEmpty(t, page.SortOptions)
}

func TestProductListing_SearchTermIsNotIndexed(t *testing.T) {
	catalog := &fakeCatalog{}
	svc := NewProductListing(catalog, config.StorefrontConfig{}, testOpts, nil)

	page, err := svc.Load(context.Background(), ListingQuery{Term: " tenis ", Sort: "bogus"})
	require.NoError(t, err)

	assert.Equal(t, "tenis", catalog.searches[0].Query)
	assert.Equal(t, "", catalog.searches[0].Sort)
	assert.Equal(t, 12, catalog.searches[0].Count)
	assert.Equal(t, 1, catalog.searches[0].Page)
	assert.Empty(t, page.Products)
	assert.NotNil(t, page.Filters)
	require.NotNil(t, page.SEO)
	assert.True(t, page.SEO.NoIndexing)
}

func TestProductListing_Legacy(t *testing.T) {
	legacy := &dto.LegacyProduct{ProductBase: dto.ProductBase{ProductID: "1", LinkText: "camisa", Items: []dto.Item{item("11", 1)}}}
	catalog := &fakeCatalog{
		legacy: vtex.LegacySearchResult{Products: []dto.AnyProduct{legacy}, Total: 40},
		pageTypes: map[string]dto.PageType{
			"roupas":         {Name: "Roupas", PageType: dto.PageTypeDepartment},
			"roupas/camisas": {Name: "Camisas", Title: "Camisas | Acme", MetaTagDescription: "As melhores", PageType: dto.PageTypeCategory},
		},
	}
	svc := NewProductListing(catalog, config.StorefrontConfig{Legacy: true, PageSize: 10}, testOpts, nil)

	page, err := svc.Load(context.Background(), ListingQuery{Path: "roupas/camisas", Sort: "price:desc", Page: 3})
	require.NoError(t, err)

	require.Len(t, catalog.legacyCalls, 1)
	params := catalog.legacyCalls[0]
	assert.Equal(t, "roupas/camisas", params.Path)
	assert.Equal(t, "c,c", params.Map)
	assert.Equal(t, "OrderByPriceDESC", params.Sort)
	assert.Equal(t, 20, params.From)
	assert.Equal(t, 10, params.Count)
	assert.Empty(t, params.FullText)
	assert.Equal(t, []string{"roupas/camisas?map=c,c"}, catalog.legacyFacetQs)
	assert.ElementsMatch(t, []string{"roupas", "roupas/camisas"}, catalog.pageTypeCalls)

	assert.Len(t, page.Products, 1)
	assert.Equal(t, 40, page.PageInfo.Records)
	assert.Equal(t, []string{dto.PageTypeDepartment, dto.PageTypeCategory}, page.PageInfo.PageTypes)
	assert.Equal(t, 2, page.BreadcrumbList.NumberOfItems)
	require.NotNil(t, page.SEO)
	assert.Equal(t, "Camisas | Acme", page.SEO.Title)
	assert.Equal(t, "As melhores", page.SEO.Description)
}

func TestProductListing_LegacyFullText(t *testing.T) {
	catalog := &fakeCatalog{}
	svc := NewProductListing(catalog, config.StorefrontConfig{Legacy: true}, testOpts, nil)

	page, err := svc.Load(context.Background(), ListingQuery{Term: "camisa"})
	require.NoError(t, err)

	assert.Equal(t, "camisa", catalog.legacyCalls[0].FullText)
	assert.Empty(t, catalog.legacyFacetQs)
	assert.Empty(t, catalog.pageTypeCalls)
	require.NotNil(t, page.SEO)
	assert.True(t, page.SEO.NoIndexing)
}

func TestProductListing_LegacyNotFound(t *testing.T) {
	svc := NewProductListing(&fakeCatalog{}, config.StorefrontConfig{Legacy: true}, testOpts, nil)

	_, err := svc.Load(context.Background(), ListingQuery{Path: "nada"})
	require.ErrorIs(t, err, vtex.ErrNotFound)
}
