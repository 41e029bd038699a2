package returns

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apporder "github.com/logichain/backend/internal/application/order"
	"github.com/logichain/backend/internal/domain/order"
	"github.com/logichain/backend/internal/domain/returns"
	"github.com/logichain/backend/internal/domain/shared"
)

// returnNumberAttempts bounds the retry loop on return number collisions
const returnNumberAttempts = 3

func errDuplicateActiveReturn(orderNumber string) error {
	return shared.NewDomainError("DUPLICATE_ACTIVE_RETURN",
		fmt.Sprintf("Order %s already has an active return", orderNumber))
}

// Service handles return request business operations
type Service struct {
	returnRepo     returns.Repository
	orderRepo      order.Repository
	txScope        apporder.TransactionScope
	eventPublisher shared.EventPublisher
}

// NewService creates a new returns Service
func NewService(returnRepo returns.Repository, orderRepo order.Repository, txScope apporder.TransactionScope) *Service {
	return &Service{
		returnRepo: returnRepo,
		orderRepo:  orderRepo,
		txScope:    txScope,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create opens a return request against an order. The order must be shipped
// or delivered, and an order can carry at most one active return at a time.
// The database backs that invariant with a partial unique index on order_id,
// so a concurrent duplicate surfaces as a unique violation on insert even
// when both requests pass the upfront check. Return number collisions are
// retried with a freshly generated number.
func (s *Service) Create(ctx context.Context, req CreateReturnRequest) (*ReturnResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	active, err := s.returnRepo.ExistsActiveForOrder(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, errDuplicateActiveReturn(o.OrderNumber)
	}

	var r *returns.Return
	for attempt := 0; attempt < returnNumberAttempts; attempt++ {
		r, err = returns.New(returns.NewReturnNumber(), o, returns.Reason(req.Reason), req.Description)
		if err != nil {
			return nil, err
		}

		err = s.returnRepo.Save(ctx, r)
		if err == nil {
			break
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}

		// The violation came from either the one-active-return index or the
		// return number. Re-checking tells them apart: a concurrent request
		// won the race in the first case, a fresh number fixes the second.
		active, checkErr := s.returnRepo.ExistsActiveForOrder(ctx, o.ID)
		if checkErr != nil {
			return nil, checkErr
		}
		if active {
			return nil, errDuplicateActiveReturn(o.OrderNumber)
		}
	}
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, r)

	response := ToReturnResponse(r)
	return &response, nil
}

// GetByID retrieves a return by ID
func (s *Service) GetByID(ctx context.Context, returnID uuid.UUID) (*ReturnResponse, error) {
	r, err := s.returnRepo.FindByID(ctx, returnID)
	if err != nil {
		return nil, err
	}
	response := ToReturnResponse(r)
	return &response, nil
}

// GetByReturnNumber retrieves a return by its return number
func (s *Service) GetByReturnNumber(ctx context.Context, returnNumber string) (*ReturnResponse, error) {
	r, err := s.returnRepo.FindByReturnNumber(ctx, returnNumber)
	if err != nil {
		return nil, err
	}
	response := ToReturnResponse(r)
	return &response, nil
}

// List retrieves returns with filtering and pagination
func (s *Service) List(ctx context.Context, filter ReturnListFilter) ([]ReturnResponse, int64, error) {
	domainFilter := s.buildFilter(filter)

	rets, err := s.returnRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.returnRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToReturnResponses(rets), total, nil
}

// ListByOrder retrieves all returns opened against an order
func (s *Service) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]ReturnResponse, error) {
	rets, err := s.returnRepo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return ToReturnResponses(rets), nil
}

// ListByCustomer retrieves returns for a specific customer
func (s *Service) ListByCustomer(ctx context.Context, customerID uuid.UUID, filter ReturnListFilter) ([]ReturnResponse, int64, error) {
	filter.CustomerID = &customerID
	return s.List(ctx, filter)
}

// UpdateStatus moves a return to the target status. The refund transition
// also flips the order's payment status to REFUNDED; both writes run in one
// transaction so they commit together or not at all.
func (s *Service) UpdateStatus(ctx context.Context, returnID uuid.UUID, req UpdateReturnStatusRequest, actorID uuid.UUID) (*ReturnResponse, error) {
	target := returns.Status(req.ReturnStatus)
	if !target.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Unknown return status %q", req.ReturnStatus))
	}

	var (
		updated      *returns.Return
		updatedOrder *order.Order
	)

	err := s.txScope.Execute(ctx, func(repos apporder.TransactionalRepositories) error {
		r, err := repos.ReturnRepo().FindByID(ctx, returnID)
		if err != nil {
			return err
		}

		if err := r.TransitionTo(target, actorID, req.ProcessingNotes); err != nil {
			return err
		}

		if target == returns.StatusRefunded {
			o, err := repos.OrderRepo().FindByID(ctx, r.OrderID)
			if err != nil {
				return err
			}
			if err := o.MarkRefunded(); err != nil {
				return err
			}
			if err := repos.OrderRepo().SaveWithLock(ctx, o); err != nil {
				return err
			}
			updatedOrder = o
		}

		if err := repos.ReturnRepo().SaveWithLock(ctx, r); err != nil {
			return err
		}

		updated = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, updated)
	if updatedOrder != nil {
		s.publishEvents(ctx, updatedOrder)
	}

	response := ToReturnResponse(updated)
	return &response, nil
}

// StatusSummary retrieves return counts grouped by status
func (s *Service) StatusSummary(ctx context.Context) (*ReturnStatusSummary, error) {
	summary := &ReturnStatusSummary{}

	counts := []struct {
		status returns.Status
		target *int64
	}{
		{returns.StatusRequested, &summary.Requested},
		{returns.StatusApproved, &summary.Approved},
		{returns.StatusReceived, &summary.Received},
		{returns.StatusRefunded, &summary.Refunded},
		{returns.StatusRejected, &summary.Rejected},
	}

	for _, c := range counts {
		n, err := s.returnRepo.CountByStatus(ctx, c.status)
		if err != nil {
			return nil, err
		}
		*c.target = n
		summary.Total += n
	}

	return summary, nil
}

func (s *Service) buildFilter(filter ReturnListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "requested_at"
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

	if filter.OrderID != nil {
		domainFilter.Filters["order_id"] = *filter.OrderID
	}
	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = *filter.CustomerID
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = string(*filter.Status)
	}
	if filter.Reason != nil {
		domainFilter.Filters["reason"] = *filter.Reason
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	return domainFilter
}

func (s *Service) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range aggregate.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	aggregate.ClearDomainEvents()
}
