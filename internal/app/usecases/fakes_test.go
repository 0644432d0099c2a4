package usecases

import (
	"context"
	"sort"
	"sync"

	"vtex-storefront/internal/adapters/vtex"
	"vtex-storefront/internal/adapters/vtex/dto"
	"vtex-storefront/internal/domain/model"
)

type fakeCatalog struct {
	mu sync.Mutex

	product     dto.AnyProduct
	productErr  error
	search      func(params vtex.SearchParams) (dto.ProductSearchResult, error)
	facets      dto.FacetsResult
	suggestions dto.SuggestionsResult
	legacy      vtex.LegacySearchResult
	legacyFacet dto.LegacyFacets
	pageTypes   map[string]dto.PageType

	slugs         []string
	searches      []vtex.SearchParams
	facetCalls    []vtex.SearchParams
	legacyCalls   []vtex.LegacySearchParams
	legacyFacetQs []string
	pageTypeCalls []string
}

func (f *fakeCatalog) ProductBySlug(_ context.Context, slug string) (dto.AnyProduct, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slugs = append(f.slugs, slug)
	if f.productErr != nil {
		return nil, f.productErr
	}
	return f.product, nil
}

func (f *fakeCatalog) LegacySearch(_ context.Context, params vtex.LegacySearchParams) (vtex.LegacySearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.legacyCalls = append(f.legacyCalls, params)
	return f.legacy, nil
}

func (f *fakeCatalog) LegacyFacets(_ context.Context, path, mapParam string) (dto.LegacyFacets, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.legacyFacetQs = append(f.legacyFacetQs, path+"?map="+mapParam)
	return f.legacyFacet, nil
}

func (f *fakeCatalog) PageType(_ context.Context, path string) (dto.PageType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pageTypeCalls = append(f.pageTypeCalls, path)
	if page, ok := f.pageTypes[path]; ok {
		return page, nil
	}
	return dto.PageType{PageType: dto.PageTypeNotFound}, nil
}

func (f *fakeCatalog) ProductSearch(_ context.Context, params vtex.SearchParams) (dto.ProductSearchResult, error) {
	f.mu.Lock()
	f.searches = append(f.searches, params)
	search := f.search
	f.mu.Unlock()
	if search == nil {
		return dto.ProductSearchResult{}, nil
	}
	return search(params)
}

func (f *fakeCatalog) Facets(_ context.Context, params vtex.SearchParams) (dto.FacetsResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.facetCalls = append(f.facetCalls, params)
	return f.facets, nil
}

func (f *fakeCatalog) Suggestions(_ context.Context, _ string) (dto.SuggestionsResult, error) {
	return f.suggestions, nil
}

func (f *fakeCatalog) searchedPages() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	pages := make([]int, 0, len(f.searches))
	for _, s := range f.searches {
		pages = append(pages, s.Page)
	}
	sort.Ints(pages)
	return pages
}

type fakeStore struct {
	mu        sync.Mutex
	ensured   bool
	ensureErr error
	upsertErr error
	rows      map[string]model.Product
	batches   int
}

func (s *fakeStore) EnsureSchema(context.Context) error {
	s.ensured = true
	return s.ensureErr
}

func (s *fakeStore) Upsert(_ context.Context, products []model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.upsertErr != nil {
		return s.upsertErr
	}
	if s.rows == nil {
		s.rows = map[string]model.Product{}
	}
	for _, p := range products {
		s.rows[p.SKU] = p
	}
	s.batches++
	return nil
}

func item(id string, quantity int) dto.Item {
	return dto.Item{
		ItemID: id,
		Name:   "Item " + id,
		Sellers: []dto.Seller{{
			SellerID:      "1",
			SellerName:    "Acme",
			SellerDefault: true,
			CommertialOffer: dto.CommertialOffer{
				Price:             100,
				ListPrice:         120,
				AvailableQuantity: quantity,
			},
		}},
	}
}

func isProduct(id string, items ...dto.Item) dto.Product {
	return dto.Product{ProductBase: dto.ProductBase{
		ProductID:   id,
		ProductName: "Product " + id,
		Brand:       "Acme",
		LinkText:    "product-" + id,
		Categories:  []string{"/roupas/camisas/", "/roupas/"},
		Items:       items,
		Origin:      "intelligent-search",
	}}
}
