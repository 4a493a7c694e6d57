package dashboard

import (
	"testing"
	"time"

	"github.com/Veraticus/product-monitor/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCollectedAt(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)

	tests := []struct {
		name  string
		value string
		want  time.Time
		ok    bool
	}{
		{name: "rfc3339", value: "2024-05-01T10:30:00Z", want: time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC), ok: true},
		{name: "iso without zone", value: "2024-05-01T10:30:00", want: time.Date(2024, 5, 1, 10, 30, 0, 0, loc), ok: true},
		{name: "space separated", value: "2024-05-01 10:30:00", want: time.Date(2024, 5, 1, 10, 30, 0, 0, loc), ok: true},
		{name: "brazilian", value: "01/05/2024 10:30", want: time.Date(2024, 5, 1, 10, 30, 0, 0, loc), ok: true},
		{name: "date only", value: "2024-05-01", want: time.Date(2024, 5, 1, 0, 0, 0, 0, loc), ok: true},
		{name: "empty", value: "  ", ok: false},
		{name: "garbage", value: "ontem", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCollectedAt(tt.value, loc)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %v want %v", got, tt.want)
			}
		})
	}
}

func TestLatestCollection(t *testing.T) {
	products := []model.Product{
		{CollectedAt: "2024-05-01T10:00:00"},
		{CollectedAt: "not a date"},
		{CollectedAt: "2024-05-03T08:15:00"},
		{CollectedAt: ""},
		{CollectedAt: "2024-05-02T23:59:00"},
	}

	got, ok := LatestCollection(products, time.UTC)
	require.True(t, ok)
	assert.Equal(t, "03/05/2024 08:15", FormatTimestamp(got))

	_, ok = LatestCollection([]model.Product{{CollectedAt: "nope"}}, time.UTC)
	assert.False(t, ok)
}
