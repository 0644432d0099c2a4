package vtex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"vtex-storefront/internal/adapters/vtex/dto"
)

const (
	catalogSearchPath   = "/api/catalog_system/pub/products/search/"
	catalogFacetsPath   = "/api/catalog_system/pub/facets/search/"
	catalogPageTypePath = "/api/catalog_system/pub/portal/pagetype/"
)

// LegacySearchParams query catalog search. Path and Map carry the
// selection as /seg/seg?map=a,b. From is the 0-based first product and
// Count the page size; a zero Count leaves the range to VTEX.
type LegacySearchParams struct {
	Path     string
	Map      string
	FullText string
	Fq       []string
	Sort     string
	From     int
	Count    int
}

type LegacySearchResult struct {
	Products []dto.AnyProduct
	Total    int
}

func (c *Client) ProductBySlug(ctx context.Context, slug string) (dto.AnyProduct, error) {
	slug = strings.Trim(strings.TrimSpace(slug), "/")
	if slug == "" {
		return nil, fmt.Errorf("%w: empty product slug", ErrNotFound)
	}

	resp, err := c.get(ctx, catalogSearchPath+url.PathEscape(slug)+"/p", c.salesChannel(nil), true)
	if err != nil {
		return nil, err
	}
	products, err := dto.DecodeProducts(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, slug)
	}
	return products[0], nil
}

func (c *Client) LegacySearch(ctx context.Context, params LegacySearchParams) (LegacySearchResult, error) {
	query := c.salesChannel(nil)
	if params.Map != "" {
		query.Set("map", params.Map)
	}
	if params.FullText != "" {
		query.Set("ft", params.FullText)
	}
	for _, fq := range params.Fq {
		query.Add("fq", fq)
	}
	if params.Sort != "" {
		query.Set("O", params.Sort)
	}
	if params.Count > 0 {
		from := max(params.From, 0)
		query.Set("_from", strconv.Itoa(from))
		query.Set("_to", strconv.Itoa(from+params.Count-1))
	}

	resp, err := c.get(ctx, catalogSearchPath+escapePath(params.Path), query, true)
	if err != nil {
		return LegacySearchResult{}, err
	}
	products, err := dto.DecodeProducts(resp.Body)
	if err != nil {
		return LegacySearchResult{}, err
	}

	total, ok := parseResources(resp.Resources)
	if !ok {
		total = len(products)
	}
	return LegacySearchResult{Products: products, Total: total}, nil
}

// parseResources reads the total out of catalog search's "0-11/120" header.
func parseResources(header string) (int, bool) {
	_, total, found := strings.Cut(strings.TrimSpace(header), "/")
	if !found {
		return 0, false
	}
	n, err := strconv.Atoi(total)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (c *Client) LegacyFacets(ctx context.Context, path, mapParam string) (dto.LegacyFacets, error) {
	query := c.salesChannel(nil)
	if mapParam != "" {
		query.Set("map", mapParam)
	}

	resp, err := c.get(ctx, catalogFacetsPath+escapePath(path), query, true)
	if err != nil {
		return dto.LegacyFacets{}, err
	}
	var facets dto.LegacyFacets
	if err := json.Unmarshal(resp.Body, &facets); err != nil {
		return dto.LegacyFacets{}, fmt.Errorf("decode legacy facets: %w", err)
	}
	return facets, nil
}

// PageType resolves what a storefront path points at. Unknown paths come
// back as a NotFound page type, not an error.
func (c *Client) PageType(ctx context.Context, path string) (dto.PageType, error) {
	resp, err := c.get(ctx, catalogPageTypePath+escapePath(path), nil, true)
	if err != nil {
		return dto.PageType{}, err
	}
	var page dto.PageType
	if err := json.Unmarshal(resp.Body, &page); err != nil {
		return dto.PageType{}, fmt.Errorf("decode page type: %w", err)
	}
	return page, nil
}
