package dto

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

type Image struct {
	ImageID    string `json:"imageId"`
	ImageLabel string `json:"imageLabel"`
	ImageTag   string `json:"imageTag"`
	ImageURL   string `json:"imageUrl"`
	ImageText  string `json:"imageText"`
}

type Reference struct {
	Key   string `json:"Key"`
	Value string `json:"Value"`
}

type Variation struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Item is a sku. Both search APIs share it except for variations, which
// are normalized on decode.
type Item struct {
	ItemID          string      `json:"itemId"`
	Name            string      `json:"name"`
	NameComplete    string      `json:"nameComplete"`
	ComplementName  string      `json:"complementName"`
	Ean             string      `json:"ean"`
	ReferenceID     []Reference `json:"referenceId"`
	MeasurementUnit string      `json:"measurementUnit"`
	UnitMultiplier  float64     `json:"unitMultiplier"`
	Images          []Image     `json:"images"`
	Sellers         []Seller    `json:"sellers"`
	Variations      []Variation `json:"-"`
}

func (i *Item) UnmarshalJSON(data []byte) error {
	type alias Item
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	variations := gjson.GetBytes(data, "variations")
	if variations.IsArray() {
		parsed, err := decodeVariations(data, variations)
		if err != nil {
			return fmt.Errorf("item %s: %w", a.ItemID, err)
		}
		a.Variations = parsed
	}

	*i = Item(a)
	return nil
}

// decodeVariations accepts [{name, values}] and the legacy ["Cor"] form,
// whose values live under a top-level key with the variation's name.
func decodeVariations(data []byte, variations gjson.Result) ([]Variation, error) {
	var out []Variation
	var dynamic map[string]json.RawMessage

	for _, v := range variations.Array() {
		switch {
		case v.IsObject():
			var variation Variation
			if err := json.Unmarshal([]byte(v.Raw), &variation); err != nil {
				return nil, err
			}
			out = append(out, variation)
		case v.Type == gjson.String:
			if dynamic == nil {
				if err := json.Unmarshal(data, &dynamic); err != nil {
					return nil, err
				}
			}
			values, err := stringList(dynamic[v.Str])
			if err != nil {
				return nil, fmt.Errorf("variation %q: %w", v.Str, err)
			}
			out = append(out, Variation{Name: v.Str, Values: values})
		}
	}
	return out, nil
}

func stringList(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	return values, nil
}
