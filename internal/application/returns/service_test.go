package returns

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apporder "github.com/logichain/backend/internal/application/order"
	"github.com/logichain/backend/internal/domain/order"
	"github.com/logichain/backend/internal/domain/returns"
	"github.com/logichain/backend/internal/domain/shared"
	"github.com/logichain/backend/internal/domain/shared/valueobject"
)

// MockReturnRepository is a mock implementation of returns.Repository
type MockReturnRepository struct {
	mock.Mock
}

func (m *MockReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*returns.Return, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*returns.Return), args.Error(1)
}

func (m *MockReturnRepository) FindByReturnNumber(ctx context.Context, returnNumber string) (*returns.Return, error) {
	args := m.Called(ctx, returnNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*returns.Return), args.Error(1)
}

func (m *MockReturnRepository) FindAll(ctx context.Context, filter shared.Filter) ([]returns.Return, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]returns.Return), args.Error(1)
}

func (m *MockReturnRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]returns.Return, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]returns.Return), args.Error(1)
}

func (m *MockReturnRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]returns.Return, error) {
	args := m.Called(ctx, customerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]returns.Return), args.Error(1)
}

func (m *MockReturnRepository) FindByStatus(ctx context.Context, status returns.Status, filter shared.Filter) ([]returns.Return, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]returns.Return), args.Error(1)
}

func (m *MockReturnRepository) ExistsActiveForOrder(ctx context.Context, orderID uuid.UUID) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReturnRepository) Save(ctx context.Context, r *returns.Return) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReturnRepository) SaveWithLock(ctx context.Context, r *returns.Return) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReturnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReturnRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReturnRepository) CountByStatus(ctx context.Context, status returns.Status) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, customerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByStatus(ctx context.Context, status order.Status, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) SaveWithLock(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountByStatus(ctx context.Context, status order.Status) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	args := m.Called(ctx, orderNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// racingReturnStore mimics the partial unique index that allows one active
// return per order: Save fails with a unique violation once an active return
// exists. ExistsActiveForOrder blocks on a barrier until two callers have
// read, reproducing the interleaving read committed permits, where both
// requests pass the upfront check before either insert lands.
type racingReturnStore struct {
	MockReturnRepository
	mu      sync.Mutex
	active  map[uuid.UUID]int
	arrived int32
	barrier chan struct{}
}

func newRacingReturnStore() *racingReturnStore {
	return &racingReturnStore{
		active:  make(map[uuid.UUID]int),
		barrier: make(chan struct{}),
	}
}

func (s *racingReturnStore) ExistsActiveForOrder(_ context.Context, orderID uuid.UUID) (bool, error) {
	s.mu.Lock()
	n := s.active[orderID]
	s.mu.Unlock()

	if atomic.AddInt32(&s.arrived, 1) == 2 {
		close(s.barrier)
	}
	<-s.barrier
	return n > 0, nil
}

func (s *racingReturnStore) Save(_ context.Context, r *returns.Return) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active[r.OrderID] > 0 {
		return gorm.ErrDuplicatedKey
	}
	s.active[r.OrderID]++
	return nil
}

func (s *racingReturnStore) activeCount(orderID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active[orderID]
}

// capturingPublisher records every published event
type capturingPublisher struct {
	events []shared.DomainEvent
}

func (p *capturingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

// Test helpers
var (
	testCustomerID  = uuid.New()
	testProductID   = uuid.New()
	testActorID     = uuid.New()
	testReturnID    = uuid.New()
	testDescription = "The package arrived with a cracked housing"
)

func shippedTestOrder(t *testing.T) *order.Order {
	t.Helper()
	addr := valueobject.MustNewAddress("1 Harbor Way", "Oakland", "94607",
		valueobject.WithState("CA"), valueobject.WithCountry("US"))
	o, err := order.New("ORD-2025-000042", testCustomerID, "Acme Retail", addr, addr)
	assert.NoError(t, err)
	_, err = o.AddItem(testProductID, "Steel Bolt M8", "BOLT-M8", 4, decimal.NewFromInt(25))
	assert.NoError(t, err)
	assert.NoError(t, o.Confirm())
	assert.NoError(t, o.StartProcessing())
	assert.NoError(t, o.Ship())
	o.ClearDomainEvents()
	return o
}

func requestedTestReturn(t *testing.T, o *order.Order) *returns.Return {
	t.Helper()
	r, err := returns.New(returns.NewReturnNumber(), o, returns.ReasonDamaged, testDescription)
	assert.NoError(t, err)
	r.ClearDomainEvents()
	return r
}

func receivedTestReturn(t *testing.T, o *order.Order) *returns.Return {
	t.Helper()
	r := requestedTestReturn(t, o)
	assert.NoError(t, r.Approve(testActorID, ""))
	assert.NoError(t, r.MarkReceived(testActorID, ""))
	r.ClearDomainEvents()
	return r
}

func newTestService(returnRepo returns.Repository, orderRepo order.Repository) *Service {
	scope := apporder.NewNoOpTransactionScope(orderRepo, returnRepo, nil, nil)
	return NewService(returnRepo, orderRepo, scope)
}

func TestReturnService_Create(t *testing.T) {
	t.Run("create return successfully", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		orderRepo := new(MockOrderRepository)
		service := newTestService(returnRepo, orderRepo)
		ctx := context.Background()

		o := shippedTestOrder(t)
		orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)
		returnRepo.On("ExistsActiveForOrder", ctx, o.ID).Return(false, nil)
		returnRepo.On("Save", ctx, mock.AnythingOfType("*returns.Return")).Return(nil)

		result, err := service.Create(ctx, CreateReturnRequest{
			OrderID:     o.ID,
			Reason:      "DAMAGED",
			Description: testDescription,
		})

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.True(t, strings.HasPrefix(result.ReturnNumber, "RET-"))
		assert.Equal(t, "REQUESTED", result.ReturnStatus)
		assert.Equal(t, o.OrderNumber, result.OrderNumber)
		assert.True(t, o.TotalAmount.Equal(result.RefundAmount))
		returnRepo.AssertExpectations(t)
	})

	t.Run("order already has an active return", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		orderRepo := new(MockOrderRepository)
		service := newTestService(returnRepo, orderRepo)
		ctx := context.Background()

		o := shippedTestOrder(t)
		orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)
		returnRepo.On("ExistsActiveForOrder", ctx, o.ID).Return(true, nil)

		result, err := service.Create(ctx, CreateReturnRequest{
			OrderID:     o.ID,
			Reason:      "DAMAGED",
			Description: testDescription,
		})

		assert.Nil(t, result)
		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_ACTIVE_RETURN", domainErr.Code)
		returnRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("order not yet shipped is ineligible", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		orderRepo := new(MockOrderRepository)
		service := newTestService(returnRepo, orderRepo)
		ctx := context.Background()

		addr := valueobject.MustNewAddress("1 Harbor Way", "Oakland", "94607")
		o, err := order.New("ORD-2025-000043", testCustomerID, "Acme Retail", addr, addr)
		assert.NoError(t, err)

		orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)
		returnRepo.On("ExistsActiveForOrder", ctx, o.ID).Return(false, nil)

		result, err := service.Create(ctx, CreateReturnRequest{
			OrderID:     o.ID,
			Reason:      "DAMAGED",
			Description: testDescription,
		})

		assert.Nil(t, result)
		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INELIGIBLE_ORDER", domainErr.Code)
	})

	t.Run("unknown reason is rejected", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		orderRepo := new(MockOrderRepository)
		service := newTestService(returnRepo, orderRepo)
		ctx := context.Background()

		o := shippedTestOrder(t)
		orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)
		returnRepo.On("ExistsActiveForOrder", ctx, o.ID).Return(false, nil)

		result, err := service.Create(ctx, CreateReturnRequest{
			OrderID:     o.ID,
			Reason:      "CHANGED_MY_MIND",
			Description: testDescription,
		})

		assert.Nil(t, result)
		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_REASON", domainErr.Code)
	})

	t.Run("too short description is rejected", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		orderRepo := new(MockOrderRepository)
		service := newTestService(returnRepo, orderRepo)
		ctx := context.Background()

		o := shippedTestOrder(t)
		orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)
		returnRepo.On("ExistsActiveForOrder", ctx, o.ID).Return(false, nil)

		result, err := service.Create(ctx, CreateReturnRequest{
			OrderID:     o.ID,
			Reason:      "DAMAGED",
			Description: "broken",
		})

		assert.Nil(t, result)
		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_DESCRIPTION", domainErr.Code)
	})

	t.Run("return number collision is retried with a fresh number", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		orderRepo := new(MockOrderRepository)
		service := newTestService(returnRepo, orderRepo)
		ctx := context.Background()

		o := shippedTestOrder(t)
		orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)
		returnRepo.On("ExistsActiveForOrder", ctx, o.ID).Return(false, nil)

		var numbers []string
		returnRepo.On("Save", ctx, mock.AnythingOfType("*returns.Return")).
			Run(func(args mock.Arguments) {
				numbers = append(numbers, args.Get(1).(*returns.Return).ReturnNumber)
			}).
			Return(gorm.ErrDuplicatedKey).Once()
		returnRepo.On("Save", ctx, mock.AnythingOfType("*returns.Return")).
			Run(func(args mock.Arguments) {
				numbers = append(numbers, args.Get(1).(*returns.Return).ReturnNumber)
			}).
			Return(nil).Once()

		result, err := service.Create(ctx, CreateReturnRequest{
			OrderID:     o.ID,
			Reason:      "DAMAGED",
			Description: testDescription,
		})

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Len(t, numbers, 2)
		assert.NotEqual(t, numbers[0], numbers[1])
	})

	t.Run("unique violation from a racing return maps to duplicate error", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		orderRepo := new(MockOrderRepository)
		service := newTestService(returnRepo, orderRepo)
		ctx := context.Background()

		o := shippedTestOrder(t)
		orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)
		returnRepo.On("ExistsActiveForOrder", ctx, o.ID).Return(false, nil).Once()
		returnRepo.On("Save", ctx, mock.AnythingOfType("*returns.Return")).Return(gorm.ErrDuplicatedKey).Once()
		returnRepo.On("ExistsActiveForOrder", ctx, o.ID).Return(true, nil).Once()

		result, err := service.Create(ctx, CreateReturnRequest{
			OrderID:     o.ID,
			Reason:      "DAMAGED",
			Description: testDescription,
		})

		assert.Nil(t, result)
		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_ACTIVE_RETURN", domainErr.Code)
		returnRepo.AssertNumberOfCalls(t, "Save", 1)
	})

	t.Run("concurrent requests leave a single active return", func(t *testing.T) {
		store := newRacingReturnStore()
		orderRepo := new(MockOrderRepository)
		service := newTestService(store, orderRepo)
		ctx := context.Background()

		o := shippedTestOrder(t)
		orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)

		req := CreateReturnRequest{
			OrderID:     o.ID,
			Reason:      "DAMAGED",
			Description: testDescription,
		}

		errs := make(chan error, 2)
		for i := 0; i < 2; i++ {
			go func() {
				_, err := service.Create(ctx, req)
				errs <- err
			}()
		}

		var failures []error
		for i := 0; i < 2; i++ {
			if err := <-errs; err != nil {
				failures = append(failures, err)
			}
		}

		require.Len(t, failures, 1, "exactly one of the racing requests must fail")
		var domainErr *shared.DomainError
		require.ErrorAs(t, failures[0], &domainErr)
		assert.Equal(t, "DUPLICATE_ACTIVE_RETURN", domainErr.Code)
		assert.Equal(t, 1, store.activeCount(o.ID))
	})

	t.Run("non-collision save failure is not retried", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		orderRepo := new(MockOrderRepository)
		service := newTestService(returnRepo, orderRepo)
		ctx := context.Background()

		o := shippedTestOrder(t)
		orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)
		returnRepo.On("ExistsActiveForOrder", ctx, o.ID).Return(false, nil)
		returnRepo.On("Save", ctx, mock.AnythingOfType("*returns.Return")).Return(errors.New("connection reset"))

		result, err := service.Create(ctx, CreateReturnRequest{
			OrderID:     o.ID,
			Reason:      "DAMAGED",
			Description: testDescription,
		})

		assert.Nil(t, result)
		assert.Error(t, err)
		returnRepo.AssertNumberOfCalls(t, "Save", 1)
	})
}

func TestReturnService_UpdateStatus(t *testing.T) {
	t.Run("approve a requested return", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		orderRepo := new(MockOrderRepository)
		service := newTestService(returnRepo, orderRepo)
		ctx := context.Background()

		o := shippedTestOrder(t)
		r := requestedTestReturn(t, o)

		returnRepo.On("FindByID", ctx, r.ID).Return(r, nil)
		returnRepo.On("SaveWithLock", ctx, r).Return(nil)

		result, err := service.UpdateStatus(ctx, r.ID, UpdateReturnStatusRequest{
			ReturnStatus:    "APPROVED",
			ProcessingNotes: "photos reviewed",
		}, testActorID)

		assert.NoError(t, err)
		assert.Equal(t, "APPROVED", result.ReturnStatus)
		assert.Equal(t, testActorID, *result.ProcessedBy)
		assert.Equal(t, "photos reviewed", result.ProcessingNotes)
		assert.NotNil(t, result.ProcessedAt)
		orderRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("refund flips the order payment status in the same scope", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		orderRepo := new(MockOrderRepository)
		service := newTestService(returnRepo, orderRepo)
		publisher := &capturingPublisher{}
		service.SetEventPublisher(publisher)
		ctx := context.Background()

		o := shippedTestOrder(t)
		r := receivedTestReturn(t, o)

		returnRepo.On("FindByID", ctx, r.ID).Return(r, nil)
		returnRepo.On("SaveWithLock", ctx, r).Return(nil)
		orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)
		orderRepo.On("SaveWithLock", ctx, o).Return(nil)

		result, err := service.UpdateStatus(ctx, r.ID, UpdateReturnStatusRequest{
			ReturnStatus: "REFUNDED",
		}, testActorID)

		assert.NoError(t, err)
		assert.Equal(t, "REFUNDED", result.ReturnStatus)
		assert.Equal(t, order.PaymentStatusRefunded, o.PaymentStatus)
		assert.NotEmpty(t, publisher.events)
		returnRepo.AssertExpectations(t)
		orderRepo.AssertExpectations(t)
	})

	t.Run("refund fails when the order payment is already refunded", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		orderRepo := new(MockOrderRepository)
		service := newTestService(returnRepo, orderRepo)
		ctx := context.Background()

		o := shippedTestOrder(t)
		assert.NoError(t, o.MarkRefunded())
		o.ClearDomainEvents()
		r := receivedTestReturn(t, o)

		returnRepo.On("FindByID", ctx, r.ID).Return(r, nil)
		orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)

		result, err := service.UpdateStatus(ctx, r.ID, UpdateReturnStatusRequest{
			ReturnStatus: "REFUNDED",
		}, testActorID)

		assert.Nil(t, result)
		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		returnRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("skipping receipt before refund is rejected", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		orderRepo := new(MockOrderRepository)
		service := newTestService(returnRepo, orderRepo)
		ctx := context.Background()

		o := shippedTestOrder(t)
		r := requestedTestReturn(t, o)

		returnRepo.On("FindByID", ctx, r.ID).Return(r, nil)

		result, err := service.UpdateStatus(ctx, r.ID, UpdateReturnStatusRequest{
			ReturnStatus: "REFUNDED",
		}, testActorID)

		assert.Nil(t, result)
		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
	})

	t.Run("unknown target status", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		orderRepo := new(MockOrderRepository)
		service := newTestService(returnRepo, orderRepo)
		ctx := context.Background()

		result, err := service.UpdateStatus(ctx, testReturnID, UpdateReturnStatusRequest{
			ReturnStatus: "SHREDDED",
		}, testActorID)

		assert.Nil(t, result)
		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
		returnRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestReturnService_List(t *testing.T) {
	t.Run("list applies pagination defaults", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		orderRepo := new(MockOrderRepository)
		service := newTestService(returnRepo, orderRepo)
		ctx := context.Background()

		o := shippedTestOrder(t)
		r := requestedTestReturn(t, o)

		matchDefaults := mock.MatchedBy(func(f shared.Filter) bool {
			return f.Page == 1 && f.PageSize == 20 && f.OrderBy == "requested_at" && f.OrderDir == "desc"
		})
		returnRepo.On("FindAll", ctx, matchDefaults).Return([]returns.Return{*r}, nil)
		returnRepo.On("Count", ctx, matchDefaults).Return(int64(1), nil)

		results, total, err := service.List(ctx, ReturnListFilter{})

		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, results, 1)
		assert.Equal(t, r.ReturnNumber, results[0].ReturnNumber)
	})

	t.Run("list by order", func(t *testing.T) {
		returnRepo := new(MockReturnRepository)
		orderRepo := new(MockOrderRepository)
		service := newTestService(returnRepo, orderRepo)
		ctx := context.Background()

		o := shippedTestOrder(t)
		r := requestedTestReturn(t, o)
		returnRepo.On("FindByOrder", ctx, o.ID).Return([]returns.Return{*r}, nil)

		results, err := service.ListByOrder(ctx, o.ID)

		assert.NoError(t, err)
		assert.Len(t, results, 1)
	})
}

func TestReturnService_StatusSummary(t *testing.T) {
	returnRepo := new(MockReturnRepository)
	orderRepo := new(MockOrderRepository)
	service := newTestService(returnRepo, orderRepo)
	ctx := context.Background()

	returnRepo.On("CountByStatus", ctx, returns.StatusRequested).Return(int64(2), nil)
	returnRepo.On("CountByStatus", ctx, returns.StatusApproved).Return(int64(1), nil)
	returnRepo.On("CountByStatus", ctx, returns.StatusReceived).Return(int64(1), nil)
	returnRepo.On("CountByStatus", ctx, returns.StatusRefunded).Return(int64(3), nil)
	returnRepo.On("CountByStatus", ctx, returns.StatusRejected).Return(int64(1), nil)

	summary, err := service.StatusSummary(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), summary.Requested)
	assert.Equal(t, int64(3), summary.Refunded)
	assert.Equal(t, int64(8), summary.Total)
}
