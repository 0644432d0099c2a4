package model

// Filter is a FilterToggle or a FilterRange.
type Filter interface {
	FilterKey() string
}

type FilterToggle struct {
	Type     string              `json:"@type"`
	Key      string              `json:"key"`
	Label    string              `json:"label"`
	Quantity int                 `json:"quantity"`
	Values   []FilterToggleValue `json:"values"`
}

func (f FilterToggle) FilterKey() string { return f.Key }

type FilterToggleValue struct {
	Value    string        `json:"value"`
	Label    string        `json:"label"`
	Quantity int           `json:"quantity"`
	Selected bool          `json:"selected"`
	URL      string        `json:"url"`
	Children *FilterToggle `json:"children,omitempty"`
}

type FilterRange struct {
	Type   string           `json:"@type"`
	Key    string           `json:"key"`
	Label  string           `json:"label"`
	Values FilterRangeValue `json:"values"`
}

func (f FilterRange) FilterKey() string { return f.Key }

type FilterRangeValue struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}
