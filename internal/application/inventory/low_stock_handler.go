package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/logichain/backend/internal/domain/inventory"
	"github.com/logichain/backend/internal/domain/shared"
)

// LowStockHandler watches stock movements and raises the restock signal when
// a product's aggregated available quantity drops below the threshold. The
// check runs on the events that can shrink availability.
type LowStockHandler struct {
	repo           inventory.Repository
	threshold      int64
	logger         *zap.Logger
	eventPublisher shared.EventPublisher
}

// NewLowStockHandler creates a new LowStockHandler
func NewLowStockHandler(repo inventory.Repository, threshold int64, logger *zap.Logger) *LowStockHandler {
	return &LowStockHandler{
		repo:      repo,
		threshold: threshold,
		logger:    logger,
	}
}

// SetEventPublisher sets the publisher used to re-emit the threshold event
func (h *LowStockHandler) SetEventPublisher(publisher shared.EventPublisher) {
	h.eventPublisher = publisher
}

// EventTypes returns the event types this handler is interested in
func (h *LowStockHandler) EventTypes() []string {
	return []string{
		inventory.EventTypeStockReserved,
		inventory.EventTypeStockConsumed,
		inventory.EventTypeStockAdjusted,
	}
}

// Handle re-aggregates the product position after a shrinking movement and
// logs the restock signal when availability fell below the threshold
func (h *LowStockHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	productID, err := h.productID(event)
	if err != nil {
		h.logger.Error("unexpected event payload",
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
		return err
	}

	stock, err := h.repo.AggregateByProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("aggregate stock for product %s: %w", productID, err)
	}

	if !stock.IsBelowThreshold(h.threshold) {
		return nil
	}

	h.logger.Warn("product stock below threshold, restock needed",
		zap.String("product_id", productID.String()),
		zap.Int64("available", stock.Available),
		zap.Int64("threshold", h.threshold),
	)

	if h.eventPublisher != nil {
		return h.eventPublisher.Publish(ctx, inventory.NewStockBelowThresholdEvent(*stock, h.threshold))
	}
	return nil
}

func (h *LowStockHandler) productID(event shared.DomainEvent) (uuid.UUID, error) {
	switch e := event.(type) {
	case *inventory.StockReservedEvent:
		return e.ProductID, nil
	case *inventory.StockConsumedEvent:
		return e.ProductID, nil
	case *inventory.StockAdjustedEvent:
		return e.ProductID, nil
	}
	return uuid.Nil, fmt.Errorf("unexpected event type %s", event.EventType())
}
