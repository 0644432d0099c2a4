package dto

import (
	"bytes"
	"encoding/json"
)

const (
	PageTypeBrand       = "Brand"
	PageTypeCategory    = "Category"
	PageTypeDepartment  = "Department"
	PageTypeSubCategory = "SubCategory"
	PageTypeProduct     = "Product"
	PageTypeCollection  = "Collection"
	PageTypeCluster     = "Cluster"
	PageTypeSearch      = "Search"
	PageTypeFullText    = "FullText"
	PageTypeNotFound    = "NotFound"
)

// FlexString accepts json strings and numbers.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

type PageType struct {
	ID                 FlexString `json:"id"`
	Name               string     `json:"name"`
	URL                string     `json:"url"`
	Title              string     `json:"title"`
	MetaTagDescription string     `json:"metaTagDescription"`
	PageType           string     `json:"pageType"`
}
