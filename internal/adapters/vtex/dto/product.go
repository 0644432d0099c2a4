package dto

import (
	"encoding/json"
	"fmt"
)

// ProductBase holds the fields both search APIs return under the same
// keys and types.
type ProductBase struct {
	ProductID          string   `json:"productId"`
	ProductName        string   `json:"productName"`
	Brand              string   `json:"brand"`
	BrandID            int      `json:"brandId"`
	BrandImageURL      string   `json:"brandImageUrl"`
	LinkText           string   `json:"linkText"`
	ProductReference   string   `json:"productReference"`
	CategoryID         string   `json:"categoryId"`
	ProductTitle       string   `json:"productTitle"`
	MetaTagDescription string   `json:"metaTagDescription"`
	ReleaseDate        string   `json:"releaseDate"`
	Categories         []string `json:"categories"`
	CategoriesIds      []string `json:"categoriesIds"`
	Link               string   `json:"link"`
	Description        string   `json:"description"`
	Items              []Item   `json:"items"`
	Origin             string   `json:"origin,omitempty"`
}

// AnyProduct is implemented by *LegacyProduct and *Product.
type AnyProduct interface {
	Base() *ProductBase
}

// LegacyProduct is a catalog_system search result. Specification values are
// top-level keys named by AllSpecifications.
type LegacyProduct struct {
	ProductBase
	ClusterHighlights       map[string]string   `json:"clusterHighlights"`
	ProductClusters         map[string]string   `json:"productClusters"`
	AllSpecifications       []string            `json:"allSpecifications"`
	AllSpecificationsGroups []string            `json:"allSpecificationsGroups"`
	Specifications          map[string][]string `json:"-"`
}

func (p *LegacyProduct) Base() *ProductBase { return &p.ProductBase }

func (p *LegacyProduct) UnmarshalJSON(data []byte) error {
	type alias LegacyProduct
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	if len(a.AllSpecifications) > 0 {
		var dynamic map[string]json.RawMessage
		if err := json.Unmarshal(data, &dynamic); err != nil {
			return err
		}
		a.Specifications = make(map[string][]string, len(a.AllSpecifications))
		for _, name := range a.AllSpecifications {
			values, err := stringList(dynamic[name])
			if err != nil {
				return fmt.Errorf("product %s specification %q: %w", a.ProductID, name, err)
			}
			a.Specifications[name] = values
		}
	}

	*p = LegacyProduct(a)
	return nil
}

type Cluster struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Property struct {
	Name         string   `json:"name"`
	OriginalName string   `json:"originalName"`
	Values       []string `json:"values"`
}

type Specification struct {
	Name         string   `json:"name"`
	OriginalName string   `json:"originalName"`
	Values       []string `json:"values"`
}

type SpecificationGroup struct {
	Name           string          `json:"name"`
	OriginalName   string          `json:"originalName"`
	Specifications []Specification `json:"specifications"`
}

type PriceBounds struct {
	HighPrice float64 `json:"highPrice"`
	LowPrice  float64 `json:"lowPrice"`
}

type PriceRange struct {
	SellingPrice PriceBounds `json:"sellingPrice"`
	ListPrice    PriceBounds `json:"listPrice"`
}

type SelectedProperty struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Product is an intelligent search result.
type Product struct {
	ProductBase
	ClusterHighlights   []Cluster            `json:"clusterHighlights"`
	ProductClusters     []Cluster            `json:"productClusters"`
	Properties          []Property           `json:"properties"`
	SpecificationGroups []SpecificationGroup `json:"specificationGroups"`
	PriceRange          PriceRange           `json:"priceRange"`
	SelectedProperties  []SelectedProperty   `json:"selectedProperties"`
}

func (p *Product) Base() *ProductBase { return &p.ProductBase }
