package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cintaaprilianti/medina-stuff-sub001/internal/domain"
	"github.com/cintaaprilianti/medina-stuff-sub001/pkg/cache"
)

// Snapshot is the time-boxed catalog cache entry: the full product list
// plus the category names, stamped with the fetch time.
type Snapshot struct {
	Products   []domain.Product
	Categories []string
	FetchedAt  time.Time
}

// Lister is the slice of the commerce API the catalog service consumes.
type Lister interface {
	AllProducts(ctx context.Context) ([]domain.Product, error)
	Categories(ctx context.Context, includeInactive bool) ([]domain.Category, error)
}

// Service serves catalog views from a time-boxed snapshot, refetching from
// the commerce API when the snapshot expires.
type Service struct {
	upstream Lister
	snapshot *cache.Box[*Snapshot]
	logger   *slog.Logger
}

// NewService creates a catalog service whose snapshot is valid for ttl.
func NewService(upstream Lister, ttl time.Duration, logger *slog.Logger) *Service {
	return &Service{
		upstream: upstream,
		snapshot: cache.New[*Snapshot](ttl),
		logger:   logger,
	}
}

// Snapshot returns the current catalog snapshot, refetching when the cached
// one has expired. Concurrent refetches collapse into a single upstream
// round trip.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	return s.snapshot.Get(ctx, s.fetch)
}

// View computes the filtered, sorted product listing for the given
// selection.
func (s *Service) View(ctx context.Context, selectedCategories []string, query, sortKey string) ([]domain.Product, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return View(snap.Products, selectedCategories, query, sortKey), nil
}

// Product finds a product by ID in the current snapshot.
func (s *Service) Product(ctx context.Context, id string) (*domain.Product, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	for i := range snap.Products {
		if snap.Products[i].ID == id {
			p := snap.Products[i]
			return &p, nil
		}
	}
	return nil, nil
}

// Invalidate discards the snapshot so the next read refetches, used after
// admin catalog mutations.
func (s *Service) Invalidate() {
	s.snapshot.Invalidate()
}

func (s *Service) fetch(ctx context.Context) (*Snapshot, error) {
	products, err := s.upstream.AllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}

	categories, err := s.upstream.Categories(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}

	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}

	s.logger.InfoContext(ctx, "catalog snapshot refreshed",
		slog.Int("products", len(products)),
		slog.Int("categories", len(names)),
	)

	return &Snapshot{
		Products:   products,
		Categories: names,
		FetchedAt:  time.Now().UTC(),
	}, nil
}
