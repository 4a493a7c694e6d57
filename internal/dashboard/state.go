package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/Veraticus/product-monitor/internal/common"
	"github.com/Veraticus/product-monitor/internal/metrics"
	"github.com/Veraticus/product-monitor/internal/model"
	"github.com/Veraticus/product-monitor/internal/service"
)

// Action names used in logs and metrics.
const (
	ActionIgnore     = "ignore"
	ActionReclassify = "reclassify"
)

// State is the dashboard's in-memory view of the remote store. It is not
// safe for concurrent use; callers serialize access.
type State struct {
	lastCollected time.Time
	writer        service.StoreWriter
	location      *time.Location
	active        string
	sort          model.SortConfig
	buckets       model.Buckets
	products      []model.Product
	hasCollected  bool
}

// NewState builds state from a loaded snapshot. The first bucket becomes
// active and sorting starts at the default.
func NewState(writer service.StoreWriter, snap Snapshot) *State {
	s := &State{
		writer:   writer,
		location: time.Local,
	}
	s.replace(snap)
	return s
}

// Load fetches everything through store and returns the resulting state.
// Fetch failures degrade to empty data; the joined error is returned alongside
// a usable state.
func Load(ctx context.Context, store service.RemoteStore) (*State, error) {
	snap := NewLoader(store).Load(ctx)
	return NewState(store, snap), snap.Err()
}

// Reload replaces buckets and products with a fresh load.
func (s *State) Reload(ctx context.Context, loader *Loader) error {
	snap := loader.Load(ctx)
	s.replace(snap)
	return snap.Err()
}

func (s *State) replace(snap Snapshot) {
	s.buckets = snap.Buckets
	s.products = snap.Products
	if s.products == nil {
		s.products = []model.Product{}
	}
	s.active = s.buckets.First()
	s.sort = model.DefaultSort()
	s.lastCollected, s.hasCollected = LatestCollection(s.products, s.location)
	metrics.ProductsLoaded.Set(float64(len(s.products)))
}

// Buckets returns the bucket set.
func (s *State) Buckets() model.Buckets {
	return s.buckets
}

// AllProducts returns every loaded product in collection order.
func (s *State) AllProducts() []model.Product {
	return s.products
}

// Product looks up a product by code.
func (s *State) Product(code string) (model.Product, bool) {
	if i := s.indexOf(code); i >= 0 {
		return s.products[i], true
	}
	return model.Product{}, false
}

// ActiveBucket returns the selected bucket name, "" when there is none.
func (s *State) ActiveBucket() string {
	return s.active
}

// Sort returns the current sort config.
func (s *State) Sort() model.SortConfig {
	return s.sort
}

// LastCollected returns the newest collection time, if any product had one.
func (s *State) LastCollected() (time.Time, bool) {
	return s.lastCollected, s.hasCollected
}

// LastCollectedText returns the formatted newest collection time or "".
func (s *State) LastCollectedText() string {
	if !s.hasCollected {
		return ""
	}
	return FormatTimestamp(s.lastCollected)
}

// SetActiveBucket switches the active bucket and resets sorting.
func (s *State) SetActiveBucket(name string) error {
	if !s.buckets.Has(name) {
		return fmt.Errorf("%w: %q", common.ErrUnknownBucket, name)
	}
	s.active = name
	s.sort = model.DefaultSort()
	return nil
}

// SetSort replaces the sort config.
func (s *State) SetSort(cfg model.SortConfig) {
	s.sort = cfg
}

// ToggleSort selects key: the active key flips direction, a new key starts
// ascending.
func (s *State) ToggleSort(key model.SortKey) model.SortConfig {
	s.sort = s.sort.Toggle(key)
	return s.sort
}

// Products returns the bucket's products sorted with the current config.
func (s *State) Products(bucket string) []model.Product {
	return ProductsFor(s.products, bucket, s.sort)
}

// ActiveProducts returns the active bucket's products.
func (s *State) ActiveProducts() []model.Product {
	return s.Products(s.active)
}

// Leaderboard summarizes every bucket.
func (s *State) Leaderboard() []LeaderboardRow {
	return Leaderboard(s.buckets, s.products)
}

// Ignore writes the ignore flag and, once the write succeeds, drops the
// product from memory. A failed write leaves state untouched.
func (s *State) Ignore(ctx context.Context, code string) error {
	if err := s.PersistIgnore(ctx, code); err != nil {
		return err
	}
	s.ApplyIgnore(code)
	return nil
}

// PersistIgnore performs only the remote write. It does not touch state, so
// it may run off the goroutine that owns s.
func (s *State) PersistIgnore(ctx context.Context, code string) error {
	err := s.writer.MarkIgnored(ctx, code)
	metrics.ObserveAction(ActionIgnore, err)
	if err != nil {
		slog.Error("Failed to ignore product", "code", code, "error", err)
		return common.NewUserError(fmt.Sprintf("Falha ao ignorar produto %s", code), err)
	}
	slog.Info("Product ignored", "code", code)
	return nil
}

// ApplyIgnore removes the product locally. It reports whether it was present.
func (s *State) ApplyIgnore(code string) bool {
	i := s.indexOf(code)
	if i < 0 {
		slog.Debug("Ignored product not in memory", "code", code)
		return false
	}
	s.products = slices.Delete(slices.Clone(s.products), i, i+1)
	metrics.ProductsLoaded.Set(float64(len(s.products)))
	return true
}

// Reclassify writes the manual classification and, once the write succeeds,
// moves the product to that bucket in memory. The bucket name is not checked
// against the bucket set.
func (s *State) Reclassify(ctx context.Context, code, bucket string) error {
	if err := s.PersistReclassify(ctx, code, bucket); err != nil {
		return err
	}
	s.ApplyReclassify(code, bucket)
	return nil
}

// PersistReclassify performs only the remote write.
func (s *State) PersistReclassify(ctx context.Context, code, bucket string) error {
	err := s.writer.SetClassification(ctx, code, bucket)
	metrics.ObserveAction(ActionReclassify, err)
	if err != nil {
		slog.Error("Failed to reclassify product", "code", code, "classification", bucket, "error", err)
		return common.NewUserError(fmt.Sprintf("Falha ao classificar produto %s", code), err)
	}
	slog.Info("Product reclassified", "code", code, "classification", bucket)
	return nil
}

// ApplyReclassify updates the local classification. It reports whether the
// product was present.
func (s *State) ApplyReclassify(code, bucket string) bool {
	i := s.indexOf(code)
	if i < 0 {
		slog.Debug("Reclassified product not in memory", "code", code)
		return false
	}
	products := slices.Clone(s.products)
	products[i].Classification = bucket
	s.products = products
	return true
}

// IgnoredNotice confirms an ignore to the operator.
func IgnoredNotice(code string) string {
	return fmt.Sprintf("Produto %s marcado como ignorado.", code)
}

// ReclassifiedNotice confirms a manual classification.
func ReclassifiedNotice(code, bucket string) string {
	return fmt.Sprintf("Produto %s classificado como %s.", code, bucket)
}

func (s *State) indexOf(code string) int {
	return slices.IndexFunc(s.products, func(p model.Product) bool { return p.Code == code })
}
