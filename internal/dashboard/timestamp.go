package dashboard

import (
	"strings"
	"time"

	"github.com/Veraticus/product-monitor/internal/model"
)

// TimestampFormat is how collection times are displayed.
const TimestampFormat = "02/01/2006 15:04"

// collectedLayouts are the timestamp shapes the scraper has been seen to write.
var collectedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"2006-01-02",
	"02/01/2006",
}

// ParseCollectedAt parses a last-collected value. Zone-less values are read
// in loc.
func ParseCollectedAt(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	for _, layout := range collectedLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// LatestCollection returns the newest parseable collection time, discarding
// values that fail to parse.
func LatestCollection(products []model.Product, loc *time.Location) (time.Time, bool) {
	var (
		latest time.Time
		found  bool
	)

	for _, p := range products {
		t, ok := ParseCollectedAt(p.CollectedAt, loc)
		if !ok {
			continue
		}
		if !found || t.After(latest) {
			latest = t
			found = true
		}
	}

	return latest, found
}

// FormatTimestamp renders t for display.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampFormat)
}
