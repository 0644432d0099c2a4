package transform

import (
	"net/url"
	"sort"
	"strings"

	"vtex-storefront/internal/adapters/vtex/dto"
	"vtex-storefront/internal/domain/model"
)

// Catalog search encodes a selection as parallel lists: the path segments
// and the comma separated map query param, e.g. /roupas/azul?map=c,specificationFilter_15.

type legacyPair struct {
	Map   string
	Value string
}

func (p legacyPair) matches(other legacyPair) bool {
	return p.Map == other.Map && strings.EqualFold(p.Value, other.Value)
}

type legacySelection []legacyPair

func parseLegacySelection(path, mapParam string) legacySelection {
	segments := splitPath(path)
	var maps []string
	for _, m := range strings.Split(mapParam, ",") {
		if m = strings.TrimSpace(m); m != "" {
			maps = append(maps, m)
		}
	}
	n := min(len(segments), len(maps))
	sel := make(legacySelection, 0, n)
	for i := 0; i < n; i++ {
		sel = append(sel, legacyPair{Map: maps[i], Value: segments[i]})
	}
	return sel
}

func (s legacySelection) has(pair legacyPair) bool {
	for _, p := range s {
		if p.matches(pair) {
			return true
		}
	}
	return false
}

// toggle returns a new selection with pair removed when present, appended
// otherwise.
func (s legacySelection) toggle(pair legacyPair) legacySelection {
	if s.has(pair) {
		out := make(legacySelection, 0, len(s))
		for _, p := range s {
			if !p.matches(pair) {
				out = append(out, p)
			}
		}
		return out
	}
	out := make(legacySelection, 0, len(s)+1)
	out = append(out, s...)
	return append(out, pair)
}

// link renders the selection against current, keeping unrelated query
// params and dropping pagination.
func (s legacySelection) link(current *url.URL) string {
	segments := make([]string, 0, len(s))
	maps := make([]string, 0, len(s))
	for _, p := range s {
		segments = append(segments, url.PathEscape(p.Value))
		maps = append(maps, url.QueryEscape(p.Map))
	}

	query := url.Values{}
	if current != nil {
		query = current.Query()
	}
	query.Del("map")
	query.Del("page")

	parts := make([]string, 0, 2)
	if encoded := query.Encode(); encoded != "" {
		parts = append(parts, encoded)
	}
	if len(maps) > 0 {
		parts = append(parts, "map="+strings.Join(maps, ","))
	}

	link := "/" + strings.Join(segments, "/")
	if len(parts) > 0 {
		link += "?" + strings.Join(parts, "&")
	}
	return link
}

// LegacyFacetToFilter builds a toggle filter whose values link to the
// current selection with that value flipped. Its Quantity counts the values.
func LegacyFacetToFilter(name string, facets []dto.LegacyFacet, current *url.URL, mapParam string) model.FilterToggle {
	path := ""
	if current != nil {
		path = current.Path
	}
	sel := parseLegacySelection(path, mapParam)

	return model.FilterToggle{
		Type:     "FilterToggle",
		Key:      name,
		Label:    name,
		Quantity: len(facets),
		Values:   legacyFacetValues(facets, sel, current),
	}
}

func legacyFacetValues(facets []dto.LegacyFacet, sel legacySelection, current *url.URL) []model.FilterToggleValue {
	values := make([]model.FilterToggleValue, 0, len(facets))
	for _, facet := range facets {
		pair := legacyPair{Map: facet.Map, Value: facet.Value}
		value := model.FilterToggleValue{
			Value:    facet.Value,
			Label:    facet.Name,
			Quantity: facet.Quantity,
			Selected: sel.has(pair),
			URL:      sel.toggle(pair).link(current),
		}
		if len(facet.Children) > 0 {
			value.Children = &model.FilterToggle{
				Type:   "FilterToggle",
				Key:    facet.Name,
				Label:  facet.Name,
				Values: legacyFacetValues(facet.Children, sel, current),
			}
		}
		values = append(values, value)
	}
	return values
}

// LegacyFacetsToFilters lists categories (or departments), brands,
// specification filters sorted by name and price ranges. Empty groups and
// hidden keys are left out.
func LegacyFacetsToFilters(facets dto.LegacyFacets, current *url.URL, mapParam string, hidden map[string]bool) []model.Filter {
	var filters []model.Filter
	add := func(name string, values []dto.LegacyFacet) {
		if len(values) == 0 || hidden[name] {
			return
		}
		filters = append(filters, LegacyFacetToFilter(name, values, current, mapParam))
	}

	if len(facets.CategoriesTrees) > 0 {
		add("Categories", facets.CategoriesTrees)
	} else {
		add("Departments", facets.Departments)
	}
	add("Brands", facets.Brands)

	names := make([]string, 0, len(facets.SpecificationFilters))
	for name := range facets.SpecificationFilters {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		add(name, facets.SpecificationFilters[name])
	}

	prices := make([]dto.LegacyFacet, 0, len(facets.PriceRanges))
	for _, r := range facets.PriceRanges {
		prices = append(prices, dto.LegacyFacet{
			Quantity: r.Quantity,
			Name:     r.Name,
			Map:      dto.LegacyPriceMap,
			Value:    r.Slug,
		})
	}
	add("PriceRanges", prices)

	return filters
}
