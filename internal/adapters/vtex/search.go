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

const intelligentSearchPath = "/api/io/_v/api/intelligent-search"

type FacetParam struct {
	Key   string
	Value string
}

// SearchParams query intelligent search. Page is 1-based.
type SearchParams struct {
	Query           string
	Facets          []FacetParam
	Sort            string
	Page            int
	Count           int
	HideUnavailable bool
}

// facetPath renders the selection as /key/value/key/value.
func facetPath(facets []FacetParam) string {
	var b strings.Builder
	for _, f := range facets {
		if f.Key == "" || f.Value == "" {
			continue
		}
		b.WriteString("/")
		b.WriteString(url.PathEscape(f.Key))
		b.WriteString("/")
		b.WriteString(url.PathEscape(f.Value))
	}
	return b.String()
}

func (c *Client) searchQuery(params SearchParams) url.Values {
	query := url.Values{}
	if params.Query != "" {
		query.Set("query", params.Query)
	}
	if c.config.Locale != "" {
		query.Set("locale", c.config.Locale)
	}
	return query
}

func (c *Client) ProductSearch(ctx context.Context, params SearchParams) (dto.ProductSearchResult, error) {
	query := c.searchQuery(params)
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Count > 0 {
		query.Set("count", strconv.Itoa(params.Count))
	}
	if params.Sort != "" {
		query.Set("sort", params.Sort)
	}
	if params.HideUnavailable {
		query.Set("hideUnavailableItems", "true")
	}

	resp, err := c.get(ctx, intelligentSearchPath+"/product_search"+facetPath(params.Facets), query, true)
	if err != nil {
		return dto.ProductSearchResult{}, err
	}
	var result dto.ProductSearchResult
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return dto.ProductSearchResult{}, fmt.Errorf("decode product search: %w", err)
	}
	return result, nil
}

func (c *Client) Facets(ctx context.Context, params SearchParams) (dto.FacetsResult, error) {
	resp, err := c.get(ctx, intelligentSearchPath+"/facets"+facetPath(params.Facets), c.searchQuery(params), true)
	if err != nil {
		return dto.FacetsResult{}, err
	}
	var result dto.FacetsResult
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return dto.FacetsResult{}, fmt.Errorf("decode facets: %w", err)
	}
	return result, nil
}

func (c *Client) Suggestions(ctx context.Context, term string) (dto.SuggestionsResult, error) {
	resp, err := c.get(ctx, intelligentSearchPath+"/search_suggestions", c.searchQuery(SearchParams{Query: term}), true)
	if err != nil {
		return dto.SuggestionsResult{}, err
	}
	var result dto.SuggestionsResult
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return dto.SuggestionsResult{}, fmt.Errorf("decode suggestions: %w", err)
	}
	return result, nil
}
