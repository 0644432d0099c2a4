package usecases

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"vtex-storefront/internal/adapters/vtex"
	"vtex-storefront/internal/adapters/vtex/dto"
	"vtex-storefront/internal/config"
	"vtex-storefront/internal/domain/model"
	"vtex-storefront/internal/logging"
	"vtex-storefront/internal/transform"
)

// ListingQuery is a listing request. Path is the category or brand path of
// the page (/roupas/camisas), Map the catalog search map param for it and
// URL the request url links are built against.
type ListingQuery struct {
	Term string
	Path string
	Map  string
	Sort string
	Page int
	URL  *url.URL
}

type ProductListingService interface {
	Load(ctx context.Context, query ListingQuery) (model.ProductListingPage, error)
}

type ProductListing struct {
	catalog    vtex.CatalogService
	storefront config.StorefrontConfig
	opts       transform.Options
	logger     logging.LoggerService
}

func NewProductListing(catalog vtex.CatalogService, storefront config.StorefrontConfig, opts transform.Options, logger logging.LoggerService) ProductListingService {
	return &ProductListing{
		catalog:    catalog,
		storefront: storefront,
		opts:       opts,
		logger:     logger,
	}
}

func (c *ProductListing) Load(ctx context.Context, query ListingQuery) (model.ProductListingPage, error) {
	query = c.normalize(query)

	var (
		page transform.ListingPage
		err  error
	)
	if c.storefront.Legacy {
		page, err = c.loadLegacy(ctx, query)
	} else {
		page, err = c.loadIntelligentSearch(ctx, query)
	}
	if err != nil {
		if c.logger != nil {
			c.logger.LogError(fmt.Sprintf("Error load listing path=%q term=%q", query.Path, query.Term), err)
		}
		return model.ProductListingPage{}, err
	}

	page.SortLabels = c.storefront.SortLabels
	return transform.ToProductListingPage(page, c.opts), nil
}

func (c *ProductListing) normalize(query ListingQuery) ListingQuery {
	query.Term = strings.TrimSpace(query.Term)
	query.Path = strings.Trim(strings.TrimSpace(query.Path), "/")
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Sort == "" || !transform.IsValidSort(query.Sort) {
		query.Sort = c.storefront.DefaultSort
	}
	if !transform.IsValidSort(query.Sort) {
		query.Sort = ""
	}
	if query.URL == nil {
		query.URL = &url.URL{Path: "/" + query.Path}
	}
	return query
}

func (c *ProductListing) pageSize() int {
	if c.storefront.PageSize > 0 {
		return c.storefront.PageSize
	}
	return 12
}

func (c *ProductListing) hidden() map[string]bool {
	hidden := make(map[string]bool, len(c.storefront.HiddenFacets))
	for _, key := range c.storefront.HiddenFacets {
		hidden[key] = true
	}
	return hidden
}

func (c *ProductListing) loadIntelligentSearch(ctx context.Context, query ListingQuery) (transform.ListingPage, error) {
	selected := transform.FiltersFromURL(query.URL)

	// the page path selects categories ahead of any filter.* params
	facets := make([]vtex.FacetParam, 0, len(selected)+4)
	for i, segment := range splitSegments(query.Path) {
		facets = append(facets, vtex.FacetParam{Key: fmt.Sprintf("category-%d", i+1), Value: segment})
	}
	for _, f := range selected {
		facets = append(facets, vtex.FacetParam{Key: f.Key, Value: f.Value})
	}

	params := vtex.SearchParams{
		Query:           query.Term,
		Facets:          facets,
		Sort:            query.Sort,
		Page:            query.Page,
		Count:           c.pageSize(),
		HideUnavailable: c.storefront.HideUnavailable,
	}

	var (
		search    dto.ProductSearchResult
		facetsRes dto.FacetsResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		search, err = c.catalog.ProductSearch(gctx, params)
		return err
	})
	g.Go(func() error {
		var err error
		facetsRes, err = c.catalog.Facets(gctx, params)
		return err
	})
	if err := g.Wait(); err != nil {
		return transform.ListingPage{}, err
	}

	seo := &model.SEO{
		Title:      query.Term,
		Canonical:  c.canonical(query.Path),
		NoIndexing: query.Term != "",
	}
	if len(facetsRes.Breadcrumb) > 0 && query.Term == "" {
		seo.Title = facetsRes.Breadcrumb[len(facetsRes.Breadcrumb)-1].Name
	}

	return transform.ListingPage{
		Products:   transform.SearchProducts(search.Products),
		Filters:    transform.ToFilters(facetsRes.Facets, selected, query.URL, c.hidden()),
		PageInfo:   transform.ToPageInfo(query.Page, c.pageSize(), search.RecordsFiltered, query.URL),
		Breadcrumb: transform.FacetBreadcrumbToList(facetsRes.Breadcrumb, c.opts),
		SEO:        seo,
	}, nil
}

func (c *ProductListing) loadLegacy(ctx context.Context, query ListingQuery) (transform.ListingPage, error) {
	segments := splitSegments(query.Path)
	mapParam := query.Map
	if mapParam == "" && len(segments) > 0 {
		mapParam = strings.TrimSuffix(strings.Repeat("c,", len(segments)), ",")
	}

	size := c.pageSize()
	from := (query.Page - 1) * size
	params := vtex.LegacySearchParams{
		Path:  query.Path,
		Map:   mapParam,
		Sort:  transform.LegacySort(query.Sort),
		From:  from,
		Count: size,
	}
	if query.Term != "" && query.Path == "" {
		params.FullText = query.Term
	}

	var (
		result legacyResult
		pages  = make([]dto.PageType, len(segments))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		result.search, err = c.catalog.LegacySearch(gctx, params)
		return err
	})
	if query.Path != "" {
		g.Go(func() error {
			var err error
			result.facets, err = c.catalog.LegacyFacets(gctx, query.Path, mapParam)
			return err
		})
	}
	// one page type per path prefix, root first
	for i := range segments {
		g.Go(func() error {
			page, err := c.catalog.PageType(gctx, strings.Join(segments[:i+1], "/"))
			if err != nil {
				return err
			}
			pages[i] = page
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return transform.ListingPage{}, err
	}

	var seo *model.SEO
	if len(pages) > 0 {
		last := pages[len(pages)-1]
		if last.PageType == dto.PageTypeNotFound && query.Term == "" {
			return transform.ListingPage{}, fmt.Errorf("%w: listing %s", vtex.ErrNotFound, query.Path)
		}
		pageSEO := transform.PageTypeToSEO(last, c.canonical(query.Path))
		seo = &pageSEO
	} else if query.Term != "" {
		seo = &model.SEO{Title: query.Term, Canonical: c.canonical(""), NoIndexing: true}
	}

	pageInfo := transform.ToPageInfo(query.Page, size, result.search.Total, query.URL)
	for _, page := range pages {
		pageInfo.PageTypes = append(pageInfo.PageTypes, page.PageType)
	}

	return transform.ListingPage{
		Products:   result.search.Products,
		Filters:    transform.LegacyFacetsToFilters(result.facets, query.URL, mapParam, c.hidden()),
		PageInfo:   pageInfo,
		Breadcrumb: transform.PageTypesToBreadcrumbList(pages, c.opts),
		SEO:        seo,
	}, nil
}

type legacyResult struct {
	search vtex.LegacySearchResult
	facets dto.LegacyFacets
}

func (c *ProductListing) canonical(path string) string {
	base := strings.TrimRight(c.opts.BaseURL, "/")
	if path == "" {
		return base + "/"
	}
	return base + "/" + path
}

func splitSegments(path string) []string {
	var out []string
	for _, s := range strings.Split(path, "/") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
