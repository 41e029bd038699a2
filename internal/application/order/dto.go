package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/logichain/backend/internal/domain/order"
	"github.com/logichain/backend/internal/domain/shared/valueobject"
)

// AddressInput carries an address in a request body
type AddressInput struct {
	Street     string `json:"street" binding:"required,min=1,max=200"`
	City       string `json:"city" binding:"required,min=1,max=100"`
	State      string `json:"state" binding:"max=100"`
	PostalCode string `json:"postalCode" binding:"required,min=1,max=20"`
	Country    string `json:"country" binding:"max=100"`
}

// ToAddress converts the input into the domain value object
func (a AddressInput) ToAddress() (valueobject.Address, error) {
	return valueobject.NewAddressFull(a.Street, a.City, a.State, a.PostalCode, a.Country)
}

// CreateOrderItemInput represents one line item in a create order request
type CreateOrderItemInput struct {
	ProductID   uuid.UUID       `json:"productId" binding:"required"`
	ProductName string          `json:"productName" binding:"required,min=1,max=200"`
	SKU         string          `json:"sku" binding:"required,min=1,max=50"`
	Quantity    int64           `json:"quantity" binding:"required,gt=0"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"required"`
}

// CreateOrderRequest represents a request to place a new order
type CreateOrderRequest struct {
	CustomerID      uuid.UUID              `json:"customerId" binding:"required"`
	CustomerName    string                 `json:"customerName" binding:"required,min=1,max=200"`
	Items           []CreateOrderItemInput `json:"items" binding:"required,min=1"`
	ShippingAddress AddressInput           `json:"shippingAddress" binding:"required"`
	BillingAddress  *AddressInput          `json:"billingAddress"`
}

// UpdateOrderStatusRequest represents a request to move an order to a new status.
// CancelReason is only consulted when the target status is CANCELLED.
type UpdateOrderStatusRequest struct {
	OrderStatus  string `json:"orderStatus" binding:"required"`
	CancelReason string `json:"cancelReason" binding:"max=500"`
}

// OrderListFilter carries list query parameters
type OrderListFilter struct {
	Page          int           `form:"page"`
	PageSize      int           `form:"pageSize"`
	OrderBy       string        `form:"orderBy"`
	OrderDir      string        `form:"orderDir"`
	Search        string        `form:"search"`
	CustomerID    *uuid.UUID    `form:"customerId"`
	Status        *order.Status `form:"orderStatus"`
	Statuses      []string      `form:"statuses"`
	PaymentStatus *string       `form:"paymentStatus"`
	StartDate     *time.Time    `form:"startDate"`
	EndDate       *time.Time    `form:"endDate"`
}

// OrderItemResponse represents an order line item in responses
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"productId"`
	ProductName string          `json:"productName"`
	SKU         string          `json:"sku"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderResponse represents an order in responses
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	OrderNumber     string              `json:"orderNumber"`
	CustomerID      uuid.UUID           `json:"customerId"`
	CustomerName    string              `json:"customerName"`
	Items           []OrderItemResponse `json:"items"`
	TotalAmount     decimal.Decimal     `json:"totalAmount"`
	OrderStatus     string              `json:"orderStatus"`
	PaymentStatus   string              `json:"paymentStatus"`
	OrderDate       time.Time           `json:"orderDate"`
	ShippingAddress valueobject.Address `json:"shippingAddress"`
	BillingAddress  valueobject.Address `json:"billingAddress"`
	ConfirmedAt     *time.Time          `json:"confirmedAt,omitempty"`
	ShippedAt       *time.Time          `json:"shippedAt,omitempty"`
	DeliveredAt     *time.Time          `json:"deliveredAt,omitempty"`
	CancelledAt     *time.Time          `json:"cancelledAt,omitempty"`
	CancelReason    string              `json:"cancelReason,omitempty"`
	Version         int                 `json:"version"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// OrderListItemResponse is the compact shape used in list endpoints
type OrderListItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	OrderNumber   string          `json:"orderNumber"`
	CustomerID    uuid.UUID       `json:"customerId"`
	CustomerName  string          `json:"customerName"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	OrderStatus   string          `json:"orderStatus"`
	PaymentStatus string          `json:"paymentStatus"`
	ItemCount     int             `json:"itemCount"`
	OrderDate     time.Time       `json:"orderDate"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// OrderStatusSummary reports order counts by fulfillment status
type OrderStatusSummary struct {
	Pending    int64 `json:"pending"`
	Confirmed  int64 `json:"confirmed"`
	Processing int64 `json:"processing"`
	Shipped    int64 `json:"shipped"`
	Delivered  int64 `json:"delivered"`
	Cancelled  int64 `json:"cancelled"`
	Total      int64 `json:"total"`
}

// ToOrderItemResponse converts a domain item to its response shape
func ToOrderItemResponse(item order.Item) OrderItemResponse {
	return OrderItemResponse{
		ID:          item.ID,
		ProductID:   item.ProductID,
		ProductName: item.ProductName,
		SKU:         item.SKU,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		Subtotal:    item.Subtotal,
	}
}

// ToOrderResponse converts a domain order to its response shape
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, ToOrderItemResponse(item))
	}

	return OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerID:      o.CustomerID,
		CustomerName:    o.CustomerName,
		Items:           items,
		TotalAmount:     o.TotalAmount,
		OrderStatus:     o.Status.String(),
		PaymentStatus:   o.PaymentStatus.String(),
		OrderDate:       o.OrderDate,
		ShippingAddress: o.ShippingAddress,
		BillingAddress:  o.BillingAddress,
		ConfirmedAt:     o.ConfirmedAt,
		ShippedAt:       o.ShippedAt,
		DeliveredAt:     o.DeliveredAt,
		CancelledAt:     o.CancelledAt,
		CancelReason:    o.CancelReason,
		Version:         o.Version,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// ToOrderListItemResponses converts domain orders to their list shape
func ToOrderListItemResponses(orders []order.Order) []OrderListItemResponse {
	responses := make([]OrderListItemResponse, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		responses = append(responses, OrderListItemResponse{
			ID:            o.ID,
			OrderNumber:   o.OrderNumber,
			CustomerID:    o.CustomerID,
			CustomerName:  o.CustomerName,
			TotalAmount:   o.TotalAmount,
			OrderStatus:   o.Status.String(),
			PaymentStatus: o.PaymentStatus.String(),
			ItemCount:     o.ItemCount(),
			OrderDate:     o.OrderDate,
			CreatedAt:     o.CreatedAt,
		})
	}
	return responses
}
