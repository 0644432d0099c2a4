// Package model holds the canonical, schema.org aligned shapes the
// storefront serves. Every type carries its schema.org @type.
package model

type Product struct {
	Type                 string          `json:"@type"`
	ProductID            string          `json:"productID"`
	SKU                  string          `json:"sku"`
	Name                 string          `json:"name,omitempty"`
	Description          string          `json:"description,omitempty"`
	URL                  string          `json:"url"`
	GTIN                 string          `json:"gtin,omitempty"`
	Category             string          `json:"category,omitempty"`
	ReleaseDate          string          `json:"releaseDate,omitempty"`
	InProductGroupWithID string          `json:"inProductGroupWithID"`
	Brand                *Brand          `json:"brand,omitempty"`
	Image                []ImageObject   `json:"image,omitempty"`
	AdditionalProperty   []PropertyValue `json:"additionalProperty,omitempty"`
	IsVariantOf          *ProductGroup   `json:"isVariantOf,omitempty"`
	Offers               *AggregateOffer `json:"offers,omitempty"`
}

type ProductGroup struct {
	Type               string          `json:"@type"`
	ProductGroupID     string          `json:"productGroupID"`
	Name               string          `json:"name"`
	URL                string          `json:"url"`
	Model              string          `json:"model,omitempty"`
	Description        string          `json:"description,omitempty"`
	HasVariant         []Product       `json:"hasVariant"`
	AdditionalProperty []PropertyValue `json:"additionalProperty,omitempty"`
}

type Brand struct {
	Type string `json:"@type"`
	ID   string `json:"@id"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

type ImageObject struct {
	Type          string `json:"@type"`
	AlternateName string `json:"alternateName,omitempty"`
	URL           string `json:"url"`
	Name          string `json:"name,omitempty"`
}

// Value references used to tell additional properties apart.
const (
	ValueReferenceSpecification = "SPECIFICATION"
	ValueReferenceProperty      = "PROPERTY"
	ValueReferenceTag           = "TAG"
	ValueReferenceID            = "ReferenceID"
)

type PropertyValue struct {
	Type           string `json:"@type"`
	Name           string `json:"name"`
	Value          string `json:"value"`
	PropertyID     string `json:"propertyID,omitempty"`
	ValueReference string `json:"valueReference,omitempty"`
}
