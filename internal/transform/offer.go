package transform

import (
	"cmp"
	"slices"
	"strings"

	"vtex-storefront/internal/adapters/vtex/dto"
	"vtex-storefront/internal/domain/model"
)

const defaultSellerIdentifier = "default"

// ToOffer maps one seller's commercial offer. Intelligent search sends a
// spotPrice (cash price) that wins over Price when present.
func ToOffer(seller dto.Seller, currency string) model.Offer {
	offer := seller.CommertialOffer

	price := offer.Price
	if offer.SpotPrice != nil && *offer.SpotPrice > 0 {
		price = *offer.SpotPrice
	}

	specs := make([]model.UnitPriceSpecification, 0, 2+len(offer.Installments))
	specs = append(specs,
		model.UnitPriceSpecification{
			Type:      "UnitPriceSpecification",
			PriceType: model.PriceTypeList,
			Price:     offer.ListPrice,
		},
		model.UnitPriceSpecification{
			Type:      "UnitPriceSpecification",
			PriceType: model.PriceTypeSale,
			Price:     offer.Price,
		},
	)
	for _, installment := range offer.Installments {
		specs = append(specs, model.UnitPriceSpecification{
			Type:               "UnitPriceSpecification",
			PriceType:          model.PriceTypeSale,
			PriceComponentType: model.PriceComponentInstallment,
			Name:               installment.PaymentSystemName,
			Description:        installment.Name,
			BillingDuration:    installment.NumberOfInstallments,
			BillingIncrement:   installment.Value,
			Price:              installment.TotalValuePlusInterestRate,
		})
	}

	var teasers []string
	for _, t := range offer.Teasers {
		if name := strings.TrimSpace(t.DisplayName()); name != "" {
			teasers = append(teasers, name)
		}
	}

	availability := model.OutOfStock
	if offer.AvailableQuantity > 0 {
		availability = model.InStock
	}

	identifier := ""
	if seller.SellerDefault {
		identifier = defaultSellerIdentifier
	}

	return model.Offer{
		Type:               "Offer",
		Identifier:         identifier,
		Price:              price,
		PriceCurrency:      currency,
		Seller:             seller.SellerID,
		SellerName:         seller.SellerName,
		PriceValidUntil:    offer.PriceValidUntil,
		InventoryLevel:     model.QuantitativeValue{Value: offer.AvailableQuantity},
		GiftSkuIDs:         offer.GiftSkuIds,
		Teasers:            teasers,
		Availability:       availability,
		PriceSpecification: specs,
	}
}

// BestOfferFirst orders in-stock offers before out-of-stock ones, then by
// ascending price.
func BestOfferFirst(a, b model.Offer) int {
	if a.InStock() != b.InStock() {
		if a.InStock() {
			return -1
		}
		return 1
	}
	return cmp.Compare(a.Price, b.Price)
}

// ToAggregateOffer returns nil when there is nothing on sale. lowPrice only
// considers in-stock offers unless every offer is out of stock.
func ToAggregateOffer(offers []model.Offer, currency string) *model.AggregateOffer {
	if len(offers) == 0 {
		return nil
	}

	sorted := slices.Clone(offers)
	slices.SortStableFunc(sorted, BestOfferFirst)

	high := sorted[0].Price
	for _, o := range sorted[1:] {
		high = max(high, o.Price)
	}

	// sorted[0] is the cheapest in-stock offer, or the cheapest overall when
	// none is in stock.
	low := sorted[0].Price

	return &model.AggregateOffer{
		Type:          "AggregateOffer",
		HighPrice:     high,
		LowPrice:      low,
		OfferCount:    len(sorted),
		PriceCurrency: currency,
		Offers:        sorted,
	}
}
