package dto

// Monetary values in the checkout API are integer cents.

type OrderForm struct {
	OrderFormID          string             `json:"orderFormId"`
	Value                int64              `json:"value"`
	LoggedIn             bool               `json:"loggedIn"`
	CanEditData          bool               `json:"canEditData"`
	Items                []OrderFormItem    `json:"items"`
	Totalizers           []Totalizer        `json:"totalizers"`
	MarketingData        *MarketingData     `json:"marketingData"`
	StorePreferencesData StorePreferences   `json:"storePreferencesData"`
	ClientProfileData    *ClientProfileData `json:"clientProfileData"`
	Messages             []OrderFormMessage `json:"messages"`
}

type OrderFormItem struct {
	UniqueID           string         `json:"uniqueId"`
	ID                 string         `json:"id"`
	ProductID          string         `json:"productId"`
	RefID              string         `json:"refId"`
	Ean                string         `json:"ean"`
	Name               string         `json:"name"`
	SkuName            string         `json:"skuName"`
	Quantity           int            `json:"quantity"`
	Seller             string         `json:"seller"`
	Price              int64          `json:"price"`
	ListPrice          int64          `json:"listPrice"`
	SellingPrice       int64          `json:"sellingPrice"`
	ImageURL           string         `json:"imageUrl"`
	DetailURL          string         `json:"detailUrl"`
	Availability       string         `json:"availability"`
	ProductCategoryIds string         `json:"productCategoryIds"`
	AdditionalInfo     AdditionalInfo `json:"additionalInfo"`
	Attachments        []Attachment   `json:"attachments"`
}

type AdditionalInfo struct {
	BrandName string `json:"brandName"`
	BrandID   string `json:"brandId"`
}

type Attachment struct {
	Name    string            `json:"name"`
	Content map[string]string `json:"content"`
}

type Totalizer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type MarketingData struct {
	Coupon string `json:"coupon"`
}

type StorePreferences struct {
	CountryCode    string `json:"countryCode"`
	CurrencyCode   string `json:"currencyCode"`
	CurrencySymbol string `json:"currencySymbol"`
}

type ClientProfileData struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type OrderFormMessage struct {
	Code   string `json:"code"`
	Text   string `json:"text"`
	Status string `json:"status"`
}

type OrderItemInput struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
	Seller   string `json:"seller"`
}

type OrderItemUpdate struct {
	Index    int `json:"index"`
	Quantity int `json:"quantity"`
}
