package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/product-monitor/internal/metrics"
	"github.com/Veraticus/product-monitor/internal/model"
	"github.com/Veraticus/product-monitor/internal/service"
	"github.com/go-playground/validator/v10"
)

// Snapshot is the result of one load. Errors are reported per resource; the
// matching data is empty when its fetch failed.
type Snapshot struct {
	ConfigErr   error
	ProductsErr error
	Buckets     model.Buckets
	Products    []model.Product
}

// Err joins both fetch errors.
func (s Snapshot) Err() error {
	return errors.Join(s.ConfigErr, s.ProductsErr)
}

// Loader fetches and normalizes the two read documents.
type Loader struct {
	store    service.StoreReader
	validate *validator.Validate
	// OnSettled, when set, is called once per resource as its fetch finishes.
	// It may be called from two goroutines at once.
	OnSettled func(resource service.Resource, err error)
}

// NewLoader creates a loader reading from store.
func NewLoader(store service.StoreReader) *Loader {
	return &Loader{
		store:    store,
		validate: validator.New(),
	}
}

// Load fetches config and products concurrently and waits for both.
func (l *Loader) Load(ctx context.Context) Snapshot {
	start := time.Now()

	var (
		snap Snapshot
		wg   sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		snap.Buckets, snap.ConfigErr = l.FetchBuckets(ctx)
	}()
	go func() {
		defer wg.Done()
		snap.Products, snap.ProductsErr = l.FetchProducts(ctx)
	}()
	wg.Wait()

	metrics.LoadDuration.Observe(time.Since(start).Seconds())
	slog.Info("Dashboard loaded",
		"buckets", len(snap.Buckets),
		"products", len(snap.Products),
		"duration", time.Since(start))

	return snap
}

// FetchBuckets reads the config document and expands it into buckets, adding
// the fallback bucket. On failure it returns no buckets.
func (l *Loader) FetchBuckets(ctx context.Context) (model.Buckets, error) {
	records, err := l.store.ClassConfig(ctx)
	l.settled(service.ResourceClassConfig, err)
	if err != nil {
		slog.Error("Failed to load classification config", "error", err)
		return model.Buckets{}, fmt.Errorf("failed to load classification config: %w", err)
	}

	return EnsureFallback(ExpandBuckets(DecodeClassConfig(records))), nil
}

// FetchProducts reads and normalizes the product collection. On failure it
// returns an empty collection.
func (l *Loader) FetchProducts(ctx context.Context) ([]model.Product, error) {
	records, err := l.store.Products(ctx)
	l.settled(service.ResourceProducts, err)
	if err != nil {
		slog.Error("Failed to load products", "error", err)
		return []model.Product{}, fmt.Errorf("failed to load products: %w", err)
	}

	return l.DecodeProducts(records), nil
}

// DecodeProducts decodes each record on its own so one malformed entry cannot
// sink the collection. Rejected records are logged and skipped.
func (l *Loader) DecodeProducts(records []service.Record) []model.Product {
	products := make([]model.Product, 0, len(records))

	for _, rec := range records {
		p, err := l.decodeProduct(rec)
		if err != nil {
			slog.Warn("Skipping malformed product", "code", rec.Key, "error", err)
			continue
		}
		products = append(products, p)
	}

	return products
}

func (l *Loader) decodeProduct(rec service.Record) (model.Product, error) {
	value := bytes.TrimSpace(rec.Value)
	if len(value) == 0 || value[0] != '{' {
		return model.Product{}, fmt.Errorf("record is not an object")
	}

	// Missing valor_parcela_real and classificacao decode as "".
	var p model.Product
	if err := json.Unmarshal(value, &p); err != nil {
		return model.Product{}, err
	}

	if strings.TrimSpace(p.Code) == "" {
		p.Code = rec.Key
	}

	if err := l.validate.Struct(p); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) {
			for _, fe := range invalid {
				if fe.StructField() == "Link" {
					slog.Debug("Clearing invalid product link", "code", p.Code, "link", p.Link)
					p.Link = ""
				}
			}
		} else {
			return model.Product{}, err
		}
	}

	return p, nil
}

func (l *Loader) settled(resource service.Resource, err error) {
	if l.OnSettled != nil {
		l.OnSettled(resource, err)
	}
}
