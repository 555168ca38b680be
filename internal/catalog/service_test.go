package catalog

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cintaaprilianti/medina-stuff-sub001/internal/domain"
)

// --- Mock Lister ---

type mockLister struct {
	mock.Mock
}

func (m *mockLister) AllProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockLister) Categories(ctx context.Context, includeInactive bool) ([]domain.Category, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func newTestCatalog(lister *mockLister, ttl time.Duration) *Service {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewService(lister, ttl, logger)
}

// ============================================================================
// Snapshot caching tests
// ============================================================================

func TestSnapshot_FetchesOnceWithinTTL(t *testing.T) {
	lister := &mockLister{}
	lister.On("AllProducts", mock.Anything).Return([]domain.Product{{ID: "p1"}}, nil).Once()
	lister.On("Categories", mock.Anything, false).Return([]domain.Category{{Name: "Gamis"}}, nil).Once()

	svc := newTestCatalog(lister, 15*time.Minute)

	first, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	second, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"Gamis"}, first.Categories)
	lister.AssertNumberOfCalls(t, "AllProducts", 1)
}

func TestSnapshot_RefetchesAfterInvalidate(t *testing.T) {
	lister := &mockLister{}
	lister.On("AllProducts", mock.Anything).Return([]domain.Product{{ID: "p1"}}, nil)
	lister.On("Categories", mock.Anything, false).Return([]domain.Category{}, nil)

	svc := newTestCatalog(lister, 15*time.Minute)

	_, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	svc.Invalidate()

	_, err = svc.Snapshot(context.Background())
	require.NoError(t, err)
	lister.AssertNumberOfCalls(t, "AllProducts", 2)
}

func TestSnapshot_PropagatesFetchError(t *testing.T) {
	lister := &mockLister{}
	lister.On("AllProducts", mock.Anything).Return(nil, assert.AnError)

	svc := newTestCatalog(lister, 15*time.Minute)

	_, err := svc.Snapshot(context.Background())
	assert.Error(t, err)
}

// ============================================================================
// Product lookup tests
// ============================================================================

func TestProduct_Found(t *testing.T) {
	lister := &mockLister{}
	lister.On("AllProducts", mock.Anything).Return([]domain.Product{{ID: "p1", Name: "Gamis Basic"}}, nil)
	lister.On("Categories", mock.Anything, false).Return([]domain.Category{}, nil)

	svc := newTestCatalog(lister, 15*time.Minute)

	p, err := svc.Product(context.Background(), "p1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Gamis Basic", p.Name)
}

func TestProduct_NotFoundIsNilNil(t *testing.T) {
	lister := &mockLister{}
	lister.On("AllProducts", mock.Anything).Return([]domain.Product{}, nil)
	lister.On("Categories", mock.Anything, false).Return([]domain.Category{}, nil)

	svc := newTestCatalog(lister, 15*time.Minute)

	p, err := svc.Product(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, p)
}
