package dto

// LegacyPriceMap is the map segment catalog search uses for price ranges.
const LegacyPriceMap = "priceFrom"

type LegacyFacet struct {
	ID          int           `json:"Id,omitempty"`
	Quantity    int           `json:"Quantity"`
	Name        string        `json:"Name"`
	Link        string        `json:"Link"`
	LinkEncoded string        `json:"LinkEncoded"`
	Map         string        `json:"Map"`
	Value       string        `json:"Value"`
	Children    []LegacyFacet `json:"Children,omitempty"`
}

type LegacyPriceRange struct {
	Slug        string `json:"Slug"`
	Quantity    int    `json:"Quantity"`
	Name        string `json:"Name"`
	Link        string `json:"Link"`
	LinkEncoded string `json:"LinkEncoded"`
}

type LegacyFacets struct {
	Departments          []LegacyFacet            `json:"Departments"`
	Brands               []LegacyFacet            `json:"Brands"`
	SpecificationFilters map[string][]LegacyFacet `json:"SpecificationFilters"`
	CategoriesTrees      []LegacyFacet            `json:"CategoriesTrees"`
	PriceRanges          []LegacyPriceRange       `json:"PriceRanges"`
}
