package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cintaaprilianti/medina-stuff-sub001/internal/domain"
	pkgkafka "github.com/cintaaprilianti/medina-stuff-sub001/pkg/kafka"
	"github.com/cintaaprilianti/medina-stuff-sub001/pkg/logger"
)

// Kafka topics for storefront session events.
const (
	TopicCartUpdated     = "storefront.cart.updated"
	TopicCartCleared     = "storefront.cart.cleared"
	TopicWishlistChanged = "storefront.wishlist.changed"
)

const (
	aggregateTypeCart     = "cart"
	aggregateTypeWishlist = "wishlist"
	source                = "storefront"
)

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	SessionID   string            `json:"session_id"`
	Lines       []domain.CartLine `json:"lines"`
	LineCount   int               `json:"line_count"`
	Quantity    int               `json:"quantity"`
	TotalAmount int64             `json:"total_amount"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	SessionID string `json:"session_id"`
}

// WishlistChangedData is the payload for a wishlist.changed event.
type WishlistChangedData struct {
	SessionID string   `json:"session_id"`
	ProductID string   `json:"product_id"`
	Member    bool     `json:"member"`
	Products  []string `json:"products"`
}

// Producer publishes storefront session events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a storefront event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{kafka: kafka, logger: logger}
}

// CartUpdated publishes a cart.updated event for the session.
func (p *Producer) CartUpdated(ctx context.Context, sessionID string, lines []domain.CartLine) error {
	data := CartUpdatedData{
		SessionID:   sessionID,
		Lines:       lines,
		LineCount:   len(lines),
		Quantity:    domain.CartQuantity(lines),
		TotalAmount: domain.CartTotal(lines),
	}
	return p.publish(ctx, TopicCartUpdated, "cart.updated", sessionID, aggregateTypeCart, data)
}

// CartCleared publishes a cart.cleared event for the session.
func (p *Producer) CartCleared(ctx context.Context, sessionID string) error {
	return p.publish(ctx, TopicCartCleared, "cart.cleared", sessionID, aggregateTypeCart,
		CartClearedData{SessionID: sessionID})
}

// WishlistChanged publishes a wishlist.changed event for the session.
func (p *Producer) WishlistChanged(ctx context.Context, sessionID, productID string, member bool, products []string) error {
	data := WishlistChangedData{
		SessionID: sessionID,
		ProductID: productID,
		Member:    member,
		Products:  products,
	}
	return p.publish(ctx, TopicWishlistChanged, "wishlist.changed", sessionID, aggregateTypeWishlist, data)
}

func (p *Producer) publish(ctx context.Context, topic, eventType, sessionID, aggregateType string, data any) error {
	evt, err := pkgkafka.NewEvent(eventType, sessionID, aggregateType, source, data)
	if err != nil {
		return fmt.Errorf("build %s event: %w", eventType, err)
	}
	if id := logger.RequestIDFromContext(ctx); id != "" {
		evt.WithRequestID(id)
	}
	return p.kafka.Publish(ctx, topic, evt)
}
