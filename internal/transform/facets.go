package transform

import (
	"net/url"
	"strconv"
	"strings"

	"vtex-storefront/internal/adapters/vtex/dto"
	"vtex-storefront/internal/domain/model"
)

const filterParamPrefix = "filter."

// SelectedFacet is one active intelligent search filter, carried in the
// query as filter.{key}={value}.
type SelectedFacet struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// FiltersFromURL returns the selected facets in query order.
func FiltersFromURL(u *url.URL) []SelectedFacet {
	if u == nil {
		return nil
	}
	var out []SelectedFacet
	for _, part := range strings.Split(u.RawQuery, "&") {
		rawKey, rawValue, _ := strings.Cut(part, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil || !strings.HasPrefix(key, filterParamPrefix) {
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil || value == "" {
			continue
		}
		out = append(out, SelectedFacet{Key: strings.TrimPrefix(key, filterParamPrefix), Value: value})
	}
	return out
}

// FiltersToSearchParams replaces the filter params in base with selected
// and resets pagination.
func FiltersToSearchParams(selected []SelectedFacet, base url.Values) url.Values {
	out := url.Values{}
	for k, v := range base {
		if strings.HasPrefix(k, filterParamPrefix) || k == "page" {
			continue
		}
		out[k] = append([]string(nil), v...)
	}
	for _, f := range selected {
		out.Add(filterParamPrefix+f.Key, f.Value)
	}
	return out
}

func containsFacet(selected []SelectedFacet, facet SelectedFacet) bool {
	for _, s := range selected {
		if s.Key == facet.Key && s.Value == facet.Value {
			return true
		}
	}
	return false
}

func toggleFacet(selected []SelectedFacet, facet SelectedFacet) []SelectedFacet {
	if containsFacet(selected, facet) {
		out := make([]SelectedFacet, 0, len(selected))
		for _, s := range selected {
			if s.Key != facet.Key || s.Value != facet.Value {
				out = append(out, s)
			}
		}
		return out
	}
	out := make([]SelectedFacet, 0, len(selected)+1)
	out = append(out, selected...)
	return append(out, facet)
}

// ToFilter maps an intelligent search facet. Price ranges collapse into a
// single range spanning the lowest from and the highest to.
func ToFilter(facet dto.Facet, selected []SelectedFacet, current *url.URL) model.Filter {
	if facet.Type == dto.FacetTypePriceRange {
		return toFilterRange(facet)
	}
	return model.FilterToggle{
		Type:     "FilterToggle",
		Key:      facet.Key,
		Label:    facet.Name,
		Quantity: facet.Quantity,
		Values:   facetValues(facet.Key, facet.Values, selected, current),
	}
}

func toFilterRange(facet dto.Facet) model.FilterRange {
	var values model.FilterRangeValue
	first := true
	for _, v := range facet.Values {
		if v.Range == nil {
			continue
		}
		if first {
			values = model.FilterRangeValue{Min: v.Range.From, Max: v.Range.To}
			first = false
			continue
		}
		values.Min = min(values.Min, v.Range.From)
		values.Max = max(values.Max, v.Range.To)
	}
	return model.FilterRange{
		Type:   "FilterRange",
		Key:    facet.Key,
		Label:  facet.Name,
		Values: values,
	}
}

func facetValues(key string, values []dto.FacetValue, selected []SelectedFacet, current *url.URL) []model.FilterToggleValue {
	path := ""
	var query url.Values
	if current != nil {
		path = current.Path
		query = current.Query()
	}

	out := make([]model.FilterToggleValue, 0, len(values))
	for _, v := range values {
		facet := SelectedFacet{Key: firstNonEmpty(v.Key, key), Value: v.Value}
		inURL := containsFacet(selected, facet)
		isSelected := inURL || v.Selected

		linkPath := path
		next := FiltersToSearchParams(toggleFacet(selected, facet), query)
		if isSelected && !inURL {
			linkPath = dropPathFacet(path, facet)
			next = FiltersToSearchParams(selected, query)
		}

		link := linkPath
		if encoded := next.Encode(); encoded != "" {
			link += "?" + encoded
		}

		value := model.FilterToggleValue{
			Value:    v.Value,
			Label:    v.Name,
			Quantity: v.Quantity,
			Selected: isSelected,
			URL:      link,
		}
		if len(v.Children) > 0 {
			value.Children = &model.FilterToggle{
				Type:   "FilterToggle",
				Key:    facet.Key,
				Label:  v.Name,
				Values: facetValues(facet.Key, v.Children, selected, current),
			}
		}
		out = append(out, value)
	}
	return out
}

// dropPathFacet deselects a facet the page path selects. A category-N
// value cuts the path before its level, any other value removes its
// segment.
func dropPathFacet(path string, facet SelectedFacet) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	cut := -1
	if level, ok := strings.CutPrefix(facet.Key, "category-"); ok {
		if n, err := strconv.Atoi(level); err == nil && n >= 1 && n <= len(segments) && strings.EqualFold(segments[n-1], facet.Value) {
			cut = n - 1
			segments = segments[:cut]
		}
	}
	if cut < 0 {
		kept := segments[:0]
		for _, seg := range segments {
			if seg != "" && !strings.EqualFold(seg, facet.Value) {
				kept = append(kept, seg)
			}
		}
		segments = kept
	}
	return "/" + strings.Join(segments, "/")
}

// ToFilters maps every visible facet.
func ToFilters(facets []dto.Facet, selected []SelectedFacet, current *url.URL, hidden map[string]bool) []model.Filter {
	filters := make([]model.Filter, 0, len(facets))
	for _, facet := range facets {
		if facet.Hidden || hidden[facet.Key] {
			continue
		}
		filters = append(filters, ToFilter(facet, selected, current))
	}
	return filters
}
