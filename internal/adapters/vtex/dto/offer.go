package dto

type Seller struct {
	SellerID        string          `json:"sellerId"`
	SellerName      string          `json:"sellerName"`
	AddToCartLink   string          `json:"addToCartLink,omitempty"`
	SellerDefault   bool            `json:"sellerDefault"`
	CommertialOffer CommertialOffer `json:"commertialOffer"`
}

type CommertialOffer struct {
	Installments         []Installment `json:"Installments"`
	GiftSkuIds           []string      `json:"GiftSkuIds"`
	Teasers              []Teaser      `json:"Teasers"`
	Price                float64       `json:"Price"`
	ListPrice            float64       `json:"ListPrice"`
	SpotPrice            *float64      `json:"spotPrice,omitempty"`
	PriceWithoutDiscount float64       `json:"PriceWithoutDiscount"`
	RewardValue          float64       `json:"RewardValue"`
	PriceValidUntil      string        `json:"PriceValidUntil"`
	AvailableQuantity    int           `json:"AvailableQuantity"`
	IsAvailable          bool          `json:"IsAvailable"`
	Tax                  float64       `json:"Tax"`
}

type Installment struct {
	Value                      float64 `json:"Value"`
	InterestRate               float64 `json:"InterestRate"`
	TotalValuePlusInterestRate float64 `json:"TotalValuePlusInterestRate"`
	NumberOfInstallments       int     `json:"NumberOfInstallments"`
	PaymentSystemName          string  `json:"PaymentSystemName"`
	PaymentSystemGroupName     string  `json:"PaymentSystemGroupName"`
	Name                       string  `json:"Name"`
}

// Teaser is a promotion label. Catalog search serializes it with .NET
// backing-field keys, intelligent search with plain ones.
type Teaser struct {
	Name       string `json:"name,omitempty"`
	LegacyName string `json:"<Name>k__BackingField,omitempty"`
}

func (t Teaser) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return t.LegacyName
}
