package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindow(t *testing.T) {
	items := []int{0, 1, 2, 3, 4}

	tests := []struct {
		name   string
		want   []int
		offset int
		limit  int
	}{
		{name: "all", offset: 0, limit: 0, want: []int{0, 1, 2, 3, 4}},
		{name: "first page", offset: 0, limit: 2, want: []int{0, 1}},
		{name: "middle", offset: 2, limit: 2, want: []int{2, 3}},
		{name: "limit past end", offset: 3, limit: 10, want: []int{3, 4}},
		{name: "offset past end", offset: 9, limit: 2, want: []int{}},
		{name: "negative offset", offset: -3, limit: 1, want: []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Window(items, tt.offset, tt.limit)
			assert.Equal(t, tt.want, append([]int{}, got...))
		})
	}
}
