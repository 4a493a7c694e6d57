package dashboard

// Window returns items[offset:offset+limit] with both bounds clamped. A
// non-positive limit means no upper bound.
func Window[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return items[:0:0]
	}

	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
