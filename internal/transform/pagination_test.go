package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPageInfo(t *testing.T) {
	current := mustURL(t, "/s?q=x&page=2")

	tests := []struct {
		name     string
		page     int
		wantNext string
		wantPrev string
		wantPage int
	}{
		{name: "first page", page: 1, wantNext: "?page=2&q=x", wantPage: 1},
		{name: "middle page", page: 2, wantNext: "?page=3&q=x", wantPrev: "?page=1&q=x", wantPage: 2},
		{name: "last page", page: 3, wantPrev: "?page=2&q=x", wantPage: 3},
		{name: "page is clamped", page: 0, wantNext: "?page=2&q=x", wantPage: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ToPageInfo(tt.page, 12, 30, current)
			assert.Equal(t, tt.wantPage, info.CurrentPage)
			assert.Equal(t, tt.wantNext, info.NextPage)
			assert.Equal(t, tt.wantPrev, info.PreviousPage)
			assert.Equal(t, 12, info.RecordPerPage)
			assert.Equal(t, 30, info.Records)
		})
	}
}

func TestToPageInfo_NilURL(t *testing.T) {
	info := ToPageInfo(1, 10, 11, nil)
	assert.Equal(t, "?page=2", info.NextPage)
}
