package model

// Bucket suffixes appended to a base category name.
const (
	ComboSuffix   = " Combo"
	NoComboSuffix = " Sem Combo"

	// FallbackBucket is inserted when the expanded set lacks it.
	FallbackBucket = "P1P"
)

// BaseCategory is one entry of the classification config. HasCombo and
// HasNoCombo record whether the corresponding keyword list was present at all,
// since an empty list still defines a bucket.
type BaseCategory struct {
	Name            string
	ComboKeywords   []string
	NoComboKeywords []string
	HasCombo        bool
	HasNoCombo      bool
}

// Bucket is a classification bucket derived from a base category.
type Bucket struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// Buckets is an ordered bucket set.
type Buckets []Bucket

// Names returns bucket names in order.
func (b Buckets) Names() []string {
	names := make([]string, 0, len(b))
	for _, bucket := range b {
		names = append(names, bucket.Name)
	}
	return names
}

// Has reports whether a bucket with the given name exists.
func (b Buckets) Has(name string) bool {
	return b.Index(name) >= 0
}

// Index returns the position of the named bucket or -1.
func (b Buckets) Index(name string) int {
	for i, bucket := range b {
		if bucket.Name == name {
			return i
		}
	}
	return -1
}

// First returns the first bucket name, or "" for an empty set.
func (b Buckets) First() string {
	if len(b) == 0 {
		return ""
	}
	return b[0].Name
}
