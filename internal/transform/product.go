package transform

import (
	"net/url"
	"slices"
	"sort"
	"strconv"
	"strings"

	"vtex-storefront/internal/adapters/vtex/dto"
	"vtex-storefront/internal/domain/model"
)

// intelligent search mirrors every specification into this pseudo group.
const allSpecificationsGroup = "allSpecifications"

// ProductURL is the sku's detail page: {base}/{linkText}/p?skuId={id}.
func ProductURL(baseURL, linkText, skuID string) string {
	u := absoluteURL(baseURL, "/"+strings.Trim(linkText, "/")+"/p")
	if skuID != "" {
		u.RawQuery = url.Values{"skuId": []string{skuID}}.Encode()
	}
	return u.String()
}

// ProductGroupURL is the detail page without a sku selection.
func ProductGroupURL(baseURL, linkText string) string {
	return ProductURL(baseURL, linkText, "")
}

// ToProduct maps one sku of product. Level 0 also fills isVariantOf with
// every sku mapped at level 1, which never recurses further.
func ToProduct(product dto.AnyProduct, sku *dto.Item, level int, opts Options) model.Product {
	base := product.Base()

	offers := make([]model.Offer, 0, len(sku.Sellers))
	for _, seller := range sku.Sellers {
		offers = append(offers, ToOffer(seller, opts.PriceCurrency))
	}

	p := model.Product{
		Type:                 "Product",
		ProductID:            sku.ItemID,
		SKU:                  sku.ItemID,
		Name:                 firstNonEmpty(sku.Name, sku.NameComplete),
		Description:          base.Description,
		URL:                  ProductURL(opts.BaseURL, base.LinkText, sku.ItemID),
		GTIN:                 sku.Ean,
		Category:             toCategory(base.Categories),
		ReleaseDate:          base.ReleaseDate,
		InProductGroupWithID: base.ProductID,
		Brand:                toBrand(base),
		Image:                toImages(sku.Images),
		AdditionalProperty:   skuProperties(product, sku),
		Offers:               ToAggregateOffer(offers, opts.PriceCurrency),
	}

	if level == 0 {
		p.IsVariantOf = toProductGroup(product, opts)
	}
	return p
}

func toProductGroup(product dto.AnyProduct, opts Options) *model.ProductGroup {
	base := product.Base()

	variants := make([]model.Product, 0, len(base.Items))
	for i := range base.Items {
		variants = append(variants, ToProduct(product, &base.Items[i], 1, opts))
	}

	return &model.ProductGroup{
		Type:               "ProductGroup",
		ProductGroupID:     base.ProductID,
		Name:               base.ProductName,
		URL:                ProductGroupURL(opts.BaseURL, base.LinkText),
		Model:              base.ProductReference,
		HasVariant:         variants,
		AdditionalProperty: groupProperties(product),
	}
}

func toBrand(base *dto.ProductBase) *model.Brand {
	name := strings.TrimSpace(base.Brand)
	if name == "" {
		return nil
	}
	return &model.Brand{
		Type: "Brand",
		ID:   strconv.Itoa(base.BrandID),
		Name: name,
		Logo: base.BrandImageURL,
	}
}

func toImages(images []dto.Image) []model.ImageObject {
	if len(images) == 0 {
		return nil
	}
	out := make([]model.ImageObject, 0, len(images))
	for _, img := range images {
		out = append(out, model.ImageObject{
			Type:          "ImageObject",
			AlternateName: firstNonEmpty(img.ImageText, img.ImageLabel),
			URL:           img.ImageURL,
			Name:          img.ImageLabel,
		})
	}
	return out
}

// toCategory renders the category trail as "A>B>C".
func toCategory(categories []string) string {
	return strings.Join(categoryTrail(categories), ">")
}

// categoryTrail returns category names root first. VTEX lists category
// paths deepest first ("/A/B/C/", "/A/B/", "/A/"), so the list is reversed
// and each path contributes its last segment. When ancestors are missing
// from the list the segments of the deepest path are used instead.
func categoryTrail(categories []string) []string {
	if len(categories) == 0 {
		return nil
	}
	deepest := splitPath(categories[0])

	reversed := slices.Clone(categories)
	slices.Reverse(reversed)

	names := make([]string, 0, len(reversed))
	for _, path := range reversed {
		segments := splitPath(path)
		if len(segments) == 0 {
			continue
		}
		names = append(names, segments[len(segments)-1])
	}
	if len(names) != len(deepest) {
		return deepest
	}
	return names
}

func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func skuProperties(product dto.AnyProduct, sku *dto.Item) []model.PropertyValue {
	var props []model.PropertyValue

	for _, variation := range sku.Variations {
		for _, value := range variation.Values {
			props = append(props, model.PropertyValue{
				Type:           "PropertyValue",
				Name:           variation.Name,
				Value:          value,
				ValueReference: model.ValueReferenceSpecification,
			})
		}
	}

	for _, ref := range sku.ReferenceID {
		if strings.TrimSpace(ref.Value) == "" {
			continue
		}
		props = append(props, model.PropertyValue{
			Type:           "PropertyValue",
			Name:           ref.Key,
			Value:          ref.Value,
			ValueReference: model.ValueReferenceID,
		})
	}

	for _, cluster := range clusterHighlights(product) {
		props = append(props, model.PropertyValue{
			Type:           "PropertyValue",
			Name:           "cluster",
			Value:          cluster.Name,
			PropertyID:     cluster.ID,
			ValueReference: model.ValueReferenceTag,
		})
	}

	return props
}

// clusterHighlights is where the two search shapes differ: catalog search
// sends an {id: name} map, intelligent search a list.
func clusterHighlights(product dto.AnyProduct) []dto.Cluster {
	switch p := product.(type) {
	case *dto.LegacyProduct:
		ids := make([]string, 0, len(p.ClusterHighlights))
		for id := range p.ClusterHighlights {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		out := make([]dto.Cluster, 0, len(ids))
		for _, id := range ids {
			out = append(out, dto.Cluster{ID: id, Name: p.ClusterHighlights[id]})
		}
		return out
	case *dto.Product:
		return p.ClusterHighlights
	default:
		return nil
	}
}

func groupProperties(product dto.AnyProduct) []model.PropertyValue {
	var props []model.PropertyValue
	add := func(name, group string, values []string) {
		for _, value := range values {
			props = append(props, model.PropertyValue{
				Type:           "PropertyValue",
				Name:           name,
				Value:          value,
				PropertyID:     group,
				ValueReference: model.ValueReferenceProperty,
			})
		}
	}

	switch p := product.(type) {
	case *dto.LegacyProduct:
		for _, name := range p.AllSpecifications {
			add(name, "", p.Specifications[name])
		}
	case *dto.Product:
		grouped := false
		for _, group := range p.SpecificationGroups {
			if group.Name == allSpecificationsGroup {
				continue
			}
			for _, spec := range group.Specifications {
				add(spec.Name, group.Name, spec.Values)
				grouped = true
			}
		}
		if !grouped {
			for _, property := range p.Properties {
				add(property.Name, "", property.Values)
			}
		}
	}
	return props
}

// ToListingProducts maps each product at its default sku. Products without
// items are skipped.
func ToListingProducts(products []dto.AnyProduct, opts Options) []model.Product {
	out := make([]model.Product, 0, len(products))
	for _, product := range products {
		sku, err := PickSKU(product, "")
		if err != nil {
			continue
		}
		out = append(out, ToProduct(product, sku, 0, opts))
	}
	return out
}
