package dto

type PageRef struct {
	Index int    `json:"index"`
	Proxy string `json:"proxyUrl,omitempty"`
}

type Pagination struct {
	Count    int       `json:"count"`
	Current  PageRef   `json:"current"`
	Before   []PageRef `json:"before"`
	After    []PageRef `json:"after"`
	PerPage  int       `json:"perPage"`
	Next     PageRef   `json:"next"`
	Previous PageRef   `json:"previous"`
	First    PageRef   `json:"first"`
	Last     PageRef   `json:"last"`
}

type Correction struct {
	Misspelled bool `json:"misspelled"`
}

type ProductSearchResult struct {
	Products        []Product   `json:"products"`
	RecordsFiltered int         `json:"recordsFiltered"`
	Correction      *Correction `json:"correction,omitempty"`
	Fuzzy           string      `json:"fuzzy"`
	Operator        string      `json:"operator"`
	Translated      bool        `json:"translated"`
	Pagination      Pagination  `json:"pagination"`
}

const (
	FacetTypeText       = "TEXT"
	FacetTypePriceRange = "PRICERANGE"
)

type FacetRange struct {
	From float64 `json:"from"`
	To   float64 `json:"to"`
}

type FacetValue struct {
	ID       string       `json:"id,omitempty"`
	Quantity int          `json:"quantity"`
	Name     string       `json:"name"`
	Key      string       `json:"key"`
	Value    string       `json:"value"`
	Selected bool         `json:"selected"`
	Href     string       `json:"href"`
	Range    *FacetRange  `json:"range,omitempty"`
	Children []FacetValue `json:"children,omitempty"`
}

type Facet struct {
	Type     string       `json:"type"`
	Name     string       `json:"name"`
	Hidden   bool         `json:"hidden"`
	Key      string       `json:"key"`
	Quantity int          `json:"quantity"`
	Values   []FacetValue `json:"values"`
}

type FacetBreadcrumb struct {
	Name string `json:"name"`
	Href string `json:"href"`
}

type FacetsResult struct {
	Facets     []Facet           `json:"facets"`
	Breadcrumb []FacetBreadcrumb `json:"breadcrumb"`
	Sampling   bool              `json:"sampling"`
}

type SearchTerm struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

type SuggestionsResult struct {
	Searches []SearchTerm `json:"searches"`
}
