package transform

import "vtex-storefront/internal/domain/model"

var sortOrder = []string{
	"",
	"orders:desc",
	"price:desc",
	"price:asc",
	"name:asc",
	"name:desc",
	"release:desc",
	"discount:desc",
}

var defaultSortLabels = map[string]string{
	"":              "Relevance",
	"orders:desc":   "Best sellers",
	"price:desc":    "Price: high to low",
	"price:asc":     "Price: low to high",
	"name:asc":      "Name: A to Z",
	"name:desc":     "Name: Z to A",
	"release:desc":  "Newest",
	"discount:desc": "Biggest discount",
}

var legacySorts = map[string]string{
	"":              "OrderByScoreDESC",
	"orders:desc":   "OrderByTopSaleDESC",
	"price:desc":    "OrderByPriceDESC",
	"price:asc":     "OrderByPriceASC",
	"name:asc":      "OrderByNameASC",
	"name:desc":     "OrderByNameDESC",
	"release:desc":  "OrderByReleaseDateDESC",
	"discount:desc": "OrderByBestDiscountDESC",
}

// SortOptions lists the supported sorts; labels overrides the defaults.
func SortOptions(labels map[string]string) []model.SortOption {
	out := make([]model.SortOption, 0, len(sortOrder))
	for _, value := range sortOrder {
		label := defaultSortLabels[value]
		if custom, ok := labels[value]; ok && custom != "" {
			label = custom
		}
		out = append(out, model.SortOption{Value: value, Label: label})
	}
	return out
}

func IsValidSort(sort string) bool {
	_, ok := legacySorts[sort]
	return ok
}

// LegacySort translates an intelligent search sort into catalog search's O
// param. Unknown sorts fall back to relevance.
func LegacySort(sort string) string {
	if v, ok := legacySorts[sort]; ok {
		return v
	}
	return legacySorts[""]
}
