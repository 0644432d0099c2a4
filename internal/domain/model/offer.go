package model

const (
	InStock    = "https://schema.org/InStock"
	OutOfStock = "https://schema.org/OutOfStock"

	PriceTypeList = "https://schema.org/ListPrice"
	PriceTypeSale = "https://schema.org/SalePrice"

	PriceComponentInstallment = "https://schema.org/Installment"
)

type AggregateOffer struct {
	Type          string  `json:"@type"`
	HighPrice     float64 `json:"highPrice"`
	LowPrice      float64 `json:"lowPrice"`
	OfferCount    int     `json:"offerCount"`
	PriceCurrency string  `json:"priceCurrency,omitempty"`
	Offers        []Offer `json:"offers"`
}

type Offer struct {
	Type               string                   `json:"@type"`
	Identifier         string                   `json:"identifier,omitempty"`
	Price              float64                  `json:"price"`
	PriceCurrency      string                   `json:"priceCurrency,omitempty"`
	Seller             string                   `json:"seller"`
	SellerName         string                   `json:"sellerName,omitempty"`
	PriceValidUntil    string                   `json:"priceValidUntil,omitempty"`
	InventoryLevel     QuantitativeValue        `json:"inventoryLevel"`
	GiftSkuIDs         []string                 `json:"giftSkuIds,omitempty"`
	Teasers            []string                 `json:"teasers,omitempty"`
	Availability       string                   `json:"availability"`
	PriceSpecification []UnitPriceSpecification `json:"priceSpecification"`
}

func (o Offer) InStock() bool {
	return o.Availability == InStock
}

type QuantitativeValue struct {
	Value int `json:"value"`
}

type UnitPriceSpecification struct {
	Type               string  `json:"@type"`
	PriceType          string  `json:"priceType"`
	PriceComponentType string  `json:"priceComponentType,omitempty"`
	Name               string  `json:"name,omitempty"`
	Description        string  `json:"description,omitempty"`
	BillingDuration    int     `json:"billingDuration,omitempty"`
	BillingIncrement   float64 `json:"billingIncrement,omitempty"`
	Price              float64 `json:"price"`
}
