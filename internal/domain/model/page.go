package model

type BreadcrumbList struct {
	Type            string     `json:"@type"`
	ItemListElement []ListItem `json:"itemListElement"`
	NumberOfItems   int        `json:"numberOfItems"`
}

type ListItem struct {
	Type     string `json:"@type"`
	Name     string `json:"name"`
	Item     string `json:"item"`
	Position int    `json:"position"`
}

type SEO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Canonical   string `json:"canonical"`
	NoIndexing  bool   `json:"noIndexing,omitempty"`
}

type ProductDetailsPage struct {
	Type           string         `json:"@type"`
	BreadcrumbList BreadcrumbList `json:"breadcrumbList"`
	Product        Product        `json:"product"`
	SEO            SEO            `json:"seo"`
}

type PageInfo struct {
	CurrentPage   int      `json:"currentPage"`
	NextPage      string   `json:"nextPage,omitempty"`
	PreviousPage  string   `json:"previousPage,omitempty"`
	RecordPerPage int      `json:"recordPerPage"`
	Records       int      `json:"records"`
	PageTypes     []string `json:"pageTypes,omitempty"`
}

type SortOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type ProductListingPage struct {
	Type           string         `json:"@type"`
	BreadcrumbList BreadcrumbList `json:"breadcrumb"`
	Filters        []Filter       `json:"filters"`
	Products       []Product      `json:"products"`
	PageInfo       PageInfo       `json:"pageInfo"`
	SortOptions    []SortOption   `json:"sortOptions"`
	SEO            *SEO           `json:"seo,omitempty"`
}

type Search struct {
	Term string `json:"term"`
	Href string `json:"href"`
	Hits int    `json:"hits,omitempty"`
}

type Suggestion struct {
	Searches []Search  `json:"searches"`
	Products []Product `json:"products,omitempty"`
}
