package order

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/logichain/backend/internal/domain/inventory"
	"github.com/logichain/backend/internal/domain/order"
	"github.com/logichain/backend/internal/domain/shared"
)

// referenceTypeOrder tags inventory ledger entries caused by order transitions
const referenceTypeOrder = "ORDER"

// Service handles order business operations
type Service struct {
	orderRepo      order.Repository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewService creates a new order Service
func NewService(orderRepo order.Repository, txScope TransactionScope) *Service {
	return &Service{
		orderRepo: orderRepo,
		txScope:   txScope,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create places a new order in PENDING status
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	orderNumber, err := s.orderRepo.GenerateOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	shipping, err := req.ShippingAddress.ToAddress()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
	}

	billing := shipping
	if req.BillingAddress != nil {
		billing, err = req.BillingAddress.ToAddress()
		if err != nil {
			return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
		}
	}

	o, err := order.New(orderNumber, req.CustomerID, req.CustomerName, shipping, billing)
	if err != nil {
		return nil, err
	}

	for _, item := range req.Items {
		if _, err := o.AddItem(item.ProductID, item.ProductName, item.SKU, item.Quantity, item.UnitPrice); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, o)

	response := ToOrderResponse(o)
	return &response, nil
}

// GetByID retrieves an order by ID
func (s *Service) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// GetByOrderNumber retrieves an order by its order number
func (s *Service) GetByOrderNumber(ctx context.Context, orderNumber string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// List retrieves orders with filtering and pagination
func (s *Service) List(ctx context.Context, filter OrderListFilter) ([]OrderListItemResponse, int64, error) {
	domainFilter := s.buildFilter(filter)

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToOrderListItemResponses(orders), total, nil
}

// ListByCustomer retrieves orders for a specific customer
func (s *Service) ListByCustomer(ctx context.Context, customerID uuid.UUID, filter OrderListFilter) ([]OrderListItemResponse, int64, error) {
	filter.CustomerID = &customerID
	return s.List(ctx, filter)
}

// UpdateStatus moves an order to the target status. Stock side effects run
// in the same transaction as the order write: confirmation reserves stock
// for every line item, shipping consumes the reservation, and cancellation
// of a confirmed or processing order releases it. The whole transition
// commits or none of it does.
func (s *Service) UpdateStatus(ctx context.Context, orderID uuid.UUID, req UpdateOrderStatusRequest) (*OrderResponse, error) {
	target := order.Status(req.OrderStatus)
	if !target.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Unknown order status %q", req.OrderStatus))
	}

	var (
		updated *order.Order
		touched []*inventory.Record
	)

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		previous := o.Status

		if target == order.StatusCancelled {
			if err := o.Cancel(req.CancelReason); err != nil {
				return err
			}
		} else if err := o.TransitionTo(target); err != nil {
			return err
		}

		switch {
		case target == order.StatusConfirmed:
			touched, err = s.applyStockEffect(ctx, repos, o, inventory.TransactionTypeReserve)
		case target == order.StatusShipped:
			touched, err = s.applyStockEffect(ctx, repos, o, inventory.TransactionTypeConsume)
		case target == order.StatusCancelled && previous.HoldsReservation():
			touched, err = s.applyStockEffect(ctx, repos, o, inventory.TransactionTypeRelease)
		}
		if err != nil {
			return err
		}

		if err := repos.OrderRepo().SaveWithLock(ctx, o); err != nil {
			return err
		}

		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, updated)
	for _, rec := range touched {
		s.publishEvents(ctx, rec)
	}

	response := ToOrderResponse(updated)
	return &response, nil
}

// StatusSummary retrieves order counts grouped by fulfillment status
func (s *Service) StatusSummary(ctx context.Context) (*OrderStatusSummary, error) {
	summary := &OrderStatusSummary{}

	counts := []struct {
		status order.Status
		target *int64
	}{
		{order.StatusPending, &summary.Pending},
		{order.StatusConfirmed, &summary.Confirmed},
		{order.StatusProcessing, &summary.Processing},
		{order.StatusShipped, &summary.Shipped},
		{order.StatusDelivered, &summary.Delivered},
		{order.StatusCancelled, &summary.Cancelled},
	}

	for _, c := range counts {
		n, err := s.orderRepo.CountByStatus(ctx, c.status)
		if err != nil {
			return nil, err
		}
		*c.target = n
		summary.Total += n
	}

	return summary, nil
}

// applyStockEffect walks the order's line items and applies one stock
// movement per touched warehouse record, writing a matching ledger entry.
// Reservations fill from the warehouse with the most available stock first;
// releases and consumption unwind whatever is reserved.
func (s *Service) applyStockEffect(ctx context.Context, repos TransactionalRepositories, o *order.Order, effect inventory.TransactionType) ([]*inventory.Record, error) {
	var touched []*inventory.Record

	for i := range o.Items {
		item := &o.Items[i]

		records, err := repos.InventoryRepo().FindByProduct(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}

		switch effect {
		case inventory.TransactionTypeReserve:
			sort.Slice(records, func(a, b int) bool {
				return records[a].Available() > records[b].Available()
			})
		default:
			sort.Slice(records, func(a, b int) bool {
				return records[a].ReservedQuantity > records[b].ReservedQuantity
			})
		}

		remaining := item.Quantity
		for j := range records {
			if remaining <= 0 {
				break
			}
			rec := &records[j]

			var take int64
			switch effect {
			case inventory.TransactionTypeReserve:
				take = min64(remaining, rec.Available())
			default:
				take = min64(remaining, rec.ReservedQuantity)
			}
			if take <= 0 {
				continue
			}

			switch effect {
			case inventory.TransactionTypeReserve:
				err = rec.Reserve(take)
			case inventory.TransactionTypeRelease:
				err = rec.Release(take)
			case inventory.TransactionTypeConsume:
				err = rec.Consume(take)
			}
			if err != nil {
				return nil, err
			}

			if err := repos.InventoryRepo().SaveWithLock(ctx, rec); err != nil {
				return nil, err
			}

			entry, err := inventory.NewTransaction(rec, effect, take, &o.ID, referenceTypeOrder,
				fmt.Sprintf("Order %s %s", o.OrderNumber, o.Status))
			if err != nil {
				return nil, err
			}
			if err := repos.TransactionRepo().Save(ctx, entry); err != nil {
				return nil, err
			}

			touched = append(touched, rec)
			remaining -= take
		}

		if remaining > 0 {
			if effect == inventory.TransactionTypeReserve {
				return nil, shared.NewDomainError("INSUFFICIENT_STOCK",
					fmt.Sprintf("Insufficient stock for product %s, short %d units", item.ProductID, remaining))
			}
			return nil, shared.NewDomainError("RESERVATION_MISMATCH",
				fmt.Sprintf("Reserved stock for product %s does not cover %d units", item.ProductID, remaining))
		}
	}

	return touched, nil
}

func (s *Service) buildFilter(filter OrderListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = *filter.CustomerID
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = string(*filter.Status)
	}
	if len(filter.Statuses) > 0 {
		domainFilter.Filters["statuses"] = filter.Statuses
	}
	if filter.PaymentStatus != nil {
		domainFilter.Filters["payment_status"] = *filter.PaymentStatus
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	return domainFilter
}

// publishEvents drains the aggregate's pending events to the bus.
// Publication happens after the transaction committed; a publish failure
// never fails the operation.
func (s *Service) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range aggregate.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	aggregate.ClearDomainEvents()
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
