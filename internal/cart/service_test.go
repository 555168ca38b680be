package cart

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cintaaprilianti/medina-stuff-sub001/internal/domain"
	"github.com/cintaaprilianti/medina-stuff-sub001/internal/event"
	apperrors "github.com/cintaaprilianti/medina-stuff-sub001/pkg/errors"
)

// --- Mock SessionStore ---

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Cart(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CartLine), args.Error(1)
}

func (m *mockStore) SetCart(ctx context.Context, sessionID string, lines []domain.CartLine) error {
	args := m.Called(ctx, sessionID, lines)
	return args.Error(0)
}

func (m *mockStore) Wishlist(ctx context.Context, sessionID string) ([]string, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockStore) SetWishlist(ctx context.Context, sessionID string, productIDs []string) error {
	args := m.Called(ctx, sessionID, productIDs)
	return args.Error(0)
}

func (m *mockStore) Token(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func (m *mockStore) SetToken(ctx context.Context, sessionID, token string) error {
	args := m.Called(ctx, sessionID, token)
	return args.Error(0)
}

func (m *mockStore) User(ctx context.Context, sessionID string) (*domain.UserProfile, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *mockStore) SetUser(ctx context.Context, sessionID string, user *domain.UserProfile) error {
	args := m.Called(ctx, sessionID, user)
	return args.Error(0)
}

func (m *mockStore) ColorImageMap(ctx context.Context, productID string) (domain.ColorImageMap, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.ColorImageMap), args.Error(1)
}

func (m *mockStore) SetColorImageMap(ctx context.Context, productID string, cm domain.ColorImageMap) error {
	args := m.Called(ctx, productID, cm)
	return args.Error(0)
}

func (m *mockStore) ClearSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// --- Test helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestService(st *mockStore) *Service {
	return NewService(st, event.NewNotifier(), nil, newTestLogger())
}

func testLine(qty, maxStock int) domain.CartLine {
	return domain.CartLine{
		ProductID: "p1",
		VariantID: "v1",
		Name:      "Gamis Basic",
		Quantity:  qty,
		UnitPrice: 150000,
		MaxStock:  maxStock,
	}
}

// ============================================================================
// Service.Add tests
// ============================================================================

func TestServiceAdd_PersistsMergedCart(t *testing.T) {
	st := &mockStore{}
	st.On("Cart", mock.Anything, "s1").Return([]domain.CartLine{}, nil)
	st.On("SetCart", mock.Anything, "s1", mock.Anything).Return(nil)
	st.On("Wishlist", mock.Anything, "s1").Return([]string{}, nil)

	svc := newTestService(st)
	lines, err := svc.Add(context.Background(), "s1", testLine(2, 5))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)

	st.AssertCalled(t, "SetCart", mock.Anything, "s1", mock.Anything)
}

func TestServiceAdd_RejectionPersistsNothing(t *testing.T) {
	st := &mockStore{}
	st.On("Cart", mock.Anything, "s1").Return([]domain.CartLine{testLine(4, 5)}, nil)

	svc := newTestService(st)
	_, err := svc.Add(context.Background(), "s1", testLine(3, 5))
	require.Error(t, err)

	available, ok := apperrors.AvailableStock(err)
	require.True(t, ok)
	assert.Equal(t, 5, available)

	st.AssertNotCalled(t, "SetCart", mock.Anything, mock.Anything, mock.Anything)
}

func TestServiceAdd_ValidatesInput(t *testing.T) {
	svc := newTestService(&mockStore{})

	_, err := svc.Add(context.Background(), "", testLine(1, 5))
	assert.Error(t, err)

	bad := testLine(0, 5)
	_, err = svc.Add(context.Background(), "s1", bad)
	assert.Error(t, err)

	bad = testLine(1, 5)
	bad.ProductID = ""
	_, err = svc.Add(context.Background(), "s1", bad)
	assert.Error(t, err)
}

func TestServiceAdd_NotifiesSubscribers(t *testing.T) {
	st := &mockStore{}
	st.On("Cart", mock.Anything, "s1").Return([]domain.CartLine{}, nil)
	st.On("SetCart", mock.Anything, "s1", mock.Anything).Return(nil)
	st.On("Wishlist", mock.Anything, "s1").Return([]string{"w1"}, nil)

	notifier := event.NewNotifier()
	var got event.Change
	notifier.Subscribe(func(c event.Change) { got = c })

	svc := NewService(st, notifier, nil, newTestLogger())
	_, err := svc.Add(context.Background(), "s1", testLine(2, 5))
	require.NoError(t, err)

	assert.Equal(t, "s1", got.SessionID)
	assert.Equal(t, 1, got.CartLines)
	assert.Equal(t, 2, got.CartQuantity)
	assert.Equal(t, 1, got.WishlistSize)
}

// ============================================================================
// Service.Remove and Clear tests
// ============================================================================

func TestServiceRemove_AbsentLineDoesNotPersist(t *testing.T) {
	st := &mockStore{}
	st.On("Cart", mock.Anything, "s1").Return([]domain.CartLine{testLine(1, 5)}, nil)

	svc := newTestService(st)
	lines, err := svc.Remove(context.Background(), "s1", "missing", "")
	require.NoError(t, err)
	assert.Len(t, lines, 1)

	st.AssertNotCalled(t, "SetCart", mock.Anything, mock.Anything, mock.Anything)
}

func TestServiceClear_PersistsEmptyCart(t *testing.T) {
	st := &mockStore{}
	st.On("SetCart", mock.Anything, "s1", []domain.CartLine{}).Return(nil)
	st.On("Cart", mock.Anything, "s1").Return([]domain.CartLine{}, nil)
	st.On("Wishlist", mock.Anything, "s1").Return([]string{}, nil)

	svc := newTestService(st)
	require.NoError(t, svc.Clear(context.Background(), "s1"))

	st.AssertCalled(t, "SetCart", mock.Anything, "s1", []domain.CartLine{})
}

// ============================================================================
// Service wishlist tests
// ============================================================================

func TestServiceToggleWishlist_AddAndRemove(t *testing.T) {
	st := &mockStore{}
	st.On("Wishlist", mock.Anything, "s1").Return([]string{}, nil).Once()
	st.On("SetWishlist", mock.Anything, "s1", []string{"p1"}).Return(nil).Once()
	st.On("Cart", mock.Anything, "s1").Return([]domain.CartLine{}, nil)

	svc := newTestService(st)
	ids, member, err := svc.ToggleWishlist(context.Background(), "s1", "p1")
	require.NoError(t, err)
	assert.True(t, member)
	assert.Equal(t, []string{"p1"}, ids)

	st.On("Wishlist", mock.Anything, "s1").Return([]string{"p1"}, nil).Once()
	st.On("SetWishlist", mock.Anything, "s1", []string{}).Return(nil).Once()

	ids, member, err = svc.ToggleWishlist(context.Background(), "s1", "p1")
	require.NoError(t, err)
	assert.False(t, member)
	assert.Empty(t, ids)
}
