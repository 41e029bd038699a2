package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/logichain/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderCreated   = "OrderCreated"
	EventTypeOrderConfirmed = "OrderConfirmed"
	EventTypeOrderShipped   = "OrderShipped"
	EventTypeOrderDelivered = "OrderDelivered"
	EventTypeOrderCancelled = "OrderCancelled"
	EventTypeOrderRefunded  = "OrderRefunded"
)

// ItemInfo represents line item information carried by events
type ItemInfo struct {
	ItemID      uuid.UUID       `json:"item_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

func itemInfos(items []Item) []ItemInfo {
	infos := make([]ItemInfo, len(items))
	for i, item := range items {
		infos[i] = ItemInfo{
			ItemID:      item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			SKU:         item.SKU,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		}
	}
	return infos
}

// CreatedEvent is raised when a new order is placed
type CreatedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	CustomerID  uuid.UUID `json:"customer_id"`
}

// NewCreatedEvent creates a new CreatedEvent
func NewCreatedEvent(o *Order) *CreatedEvent {
	return &CreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerID:      o.CustomerID,
	}
}

// EventType returns the event type name
func (e *CreatedEvent) EventType() string {
	return EventTypeOrderCreated
}

// ConfirmedEvent is raised when an order is confirmed and its stock reserved
type ConfirmedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	Items       []ItemInfo      `json:"items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewConfirmedEvent creates a new ConfirmedEvent
func NewConfirmedEvent(o *Order) *ConfirmedEvent {
	return &ConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderConfirmed, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerID:      o.CustomerID,
		Items:           itemInfos(o.Items),
		TotalAmount:     o.TotalAmount,
	}
}

// EventType returns the event type name
func (e *ConfirmedEvent) EventType() string {
	return EventTypeOrderConfirmed
}

// ShippedEvent is raised when an order leaves the warehouse
type ShippedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID  `json:"order_id"`
	OrderNumber string     `json:"order_number"`
	CustomerID  uuid.UUID  `json:"customer_id"`
	Items       []ItemInfo `json:"items"`
}

// NewShippedEvent creates a new ShippedEvent
func NewShippedEvent(o *Order) *ShippedEvent {
	return &ShippedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderShipped, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerID:      o.CustomerID,
		Items:           itemInfos(o.Items),
	}
}

// EventType returns the event type name
func (e *ShippedEvent) EventType() string {
	return EventTypeOrderShipped
}

// DeliveredEvent is raised when an order reaches the customer
type DeliveredEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	CustomerID  uuid.UUID `json:"customer_id"`
}

// NewDeliveredEvent creates a new DeliveredEvent
func NewDeliveredEvent(o *Order) *DeliveredEvent {
	return &DeliveredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderDelivered, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerID:      o.CustomerID,
	}
}

// EventType returns the event type name
func (e *DeliveredEvent) EventType() string {
	return EventTypeOrderDelivered
}

// CancelledEvent is raised when an order is cancelled.
// If WasReserved is true, reserved stock has been released.
type CancelledEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID  `json:"order_id"`
	OrderNumber  string     `json:"order_number"`
	CustomerID   uuid.UUID  `json:"customer_id"`
	Items        []ItemInfo `json:"items"`
	CancelReason string     `json:"cancel_reason"`
	WasReserved  bool       `json:"was_reserved"`
}

// NewCancelledEvent creates a new CancelledEvent
func NewCancelledEvent(o *Order, wasReserved bool) *CancelledEvent {
	return &CancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerID:      o.CustomerID,
		Items:           itemInfos(o.Items),
		CancelReason:    o.CancelReason,
		WasReserved:     wasReserved,
	}
}

// EventType returns the event type name
func (e *CancelledEvent) EventType() string {
	return EventTypeOrderCancelled
}

// RefundedEvent is raised when the order payment is refunded
type RefundedEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID       `json:"order_id"`
	OrderNumber  string          `json:"order_number"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
}

// NewRefundedEvent creates a new RefundedEvent
func NewRefundedEvent(o *Order) *RefundedEvent {
	return &RefundedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderRefunded, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerID:      o.CustomerID,
		RefundAmount:    o.TotalAmount,
	}
}

// EventType returns the event type name
func (e *RefundedEvent) EventType() string {
	return EventTypeOrderRefunded
}
