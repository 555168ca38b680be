// Package stats derives the admin dashboard aggregates from raw order and
// payment records.
package stats

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cintaaprilianti/medina-stuff-sub001/internal/domain"
)

// PaymentFetcher looks up the payments recorded against one order.
type PaymentFetcher interface {
	PaymentsByOrder(ctx context.Context, token, orderID string) ([]domain.Payment, error)
}

// Dashboard holds the derived admin aggregates.
type Dashboard struct {
	TotalOrders   int   `json:"total_orders"`
	TodayOrders   int   `json:"today_orders"`
	PendingOrders int   `json:"pending_orders"`
	Revenue       int64 `json:"revenue"`
}

// Service computes dashboard aggregates. Payments are fetched with one
// lookup per order, fanned out concurrently and fanned back in; a failed
// branch degrades to an empty payment set instead of failing the batch.
type Service struct {
	payments PaymentFetcher
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a stats service.
func NewService(payments PaymentFetcher, logger *slog.Logger) *Service {
	return &Service{
		payments: payments,
		logger:   logger,
		now:      time.Now,
	}
}

// maxConcurrentLookups bounds the payment fan-out so a large order list
// doesn't open hundreds of simultaneous upstream connections.
const maxConcurrentLookups = 8

// Aggregate computes the dashboard from the given orders.
//
// Revenue sums settled payments only (SETTLEMENT, SETTLED, CAPTURE after
// status normalization). Today's count uses the local start of day.
// Pending counts PENDING_PAYMENT, PAID, and PROCESSING orders.
func (s *Service) Aggregate(ctx context.Context, token string, orders []domain.Order) *Dashboard {
	paymentSets := s.fetchPayments(ctx, token, orders)

	d := &Dashboard{TotalOrders: len(orders)}

	startOfToday := s.startOfTodayLocal()
	for i := range orders {
		o := &orders[i]
		if !o.CreatedAt.Before(startOfToday) {
			d.TodayOrders++
		}
		if o.IsPending() {
			d.PendingOrders++
		}
	}

	for _, payments := range paymentSets {
		for i := range payments {
			if payments[i].IsSettled() {
				d.Revenue += payments[i].Amount
			}
		}
	}

	return d
}

// fetchPayments issues one independent lookup per order and waits for all of
// them. A branch that fails is logged and left empty; partial data beats
// total failure here.
func (s *Service) fetchPayments(ctx context.Context, token string, orders []domain.Order) [][]domain.Payment {
	results := make([][]domain.Payment, len(orders))

	var wg sync.WaitGroup
	sem := make(chan struct{}, maxConcurrentLookups)

	for i := range orders {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			payments, err := s.payments.PaymentsByOrder(ctx, token, orders[i].ID)
			if err != nil {
				s.logger.WarnContext(ctx, "payment lookup failed, counting none for order",
					slog.String("order_id", orders[i].ID),
					slog.String("error", err.Error()),
				)
				return
			}
			results[i] = payments
		}(i)
	}

	wg.Wait()
	return results
}

func (s *Service) startOfTodayLocal() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
