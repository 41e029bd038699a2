package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/logichain/backend/internal/domain/inventory"
	"github.com/logichain/backend/internal/domain/shared"
)

// MockInventoryRepository is a mock implementation of inventory.Repository
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Record), args.Error(1)
}

func (m *MockInventoryRepository) FindByProductAndWarehouse(ctx context.Context, productID, warehouseID uuid.UUID) (*inventory.Record, error) {
	args := m.Called(ctx, productID, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Record), args.Error(1)
}

func (m *MockInventoryRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]inventory.Record, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Record), args.Error(1)
}

func (m *MockInventoryRepository) FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]inventory.Record, error) {
	args := m.Called(ctx, warehouseID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Record), args.Error(1)
}

func (m *MockInventoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Record, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Record), args.Error(1)
}

func (m *MockInventoryRepository) FindLowStock(ctx context.Context, threshold int64) ([]inventory.ProductStock, error) {
	args := m.Called(ctx, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.ProductStock), args.Error(1)
}

func (m *MockInventoryRepository) AggregateByProduct(ctx context.Context, productID uuid.UUID) (*inventory.ProductStock, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.ProductStock), args.Error(1)
}

func (m *MockInventoryRepository) Save(ctx context.Context, r *inventory.Record) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockInventoryRepository) SaveWithLock(ctx context.Context, r *inventory.Record) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockInventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInventoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockLedgerRepository is a mock implementation of inventory.TransactionRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Save(ctx context.Context, tx *inventory.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.Transaction, error) {
	args := m.Called(ctx, productID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) FindByReference(ctx context.Context, referenceID uuid.UUID) ([]inventory.Transaction, error) {
	args := m.Called(ctx, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Transaction), args.Error(1)
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
	testProductID   = uuid.New()
	testWarehouseID = uuid.New()
	testThreshold   = int64(50)
)

func newTestRecord(t *testing.T, quantity, reserved int64) *inventory.Record {
	t.Helper()
	rec, err := inventory.NewRecord(testProductID, testWarehouseID, quantity)
	assert.NoError(t, err)
	rec.ReservedQuantity = reserved
	rec.ClearDomainEvents()
	return rec
}

func TestInventoryService_Create(t *testing.T) {
	t.Run("create record with initial stock writes a ledger entry", func(t *testing.T) {
		repo := new(MockInventoryRepository)
		ledgerRepo := new(MockLedgerRepository)
		service := NewService(repo, ledgerRepo, testThreshold)
		ctx := context.Background()

		repo.On("FindByProductAndWarehouse", ctx, testProductID, testWarehouseID).Return(nil, shared.ErrNotFound)
		repo.On("Save", ctx, mock.AnythingOfType("*inventory.Record")).Return(nil)

		var entry *inventory.Transaction
		ledgerRepo.On("Save", ctx, mock.AnythingOfType("*inventory.Transaction")).
			Run(func(args mock.Arguments) {
				entry = args.Get(1).(*inventory.Transaction)
			}).Return(nil)

		result, err := service.Create(ctx, CreateRecordRequest{
			ProductID:   testProductID,
			WarehouseID: testWarehouseID,
			Quantity:    100,
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(100), result.Quantity)
		assert.Equal(t, int64(0), result.ReservedQuantity)
		assert.Equal(t, int64(100), result.AvailableQuantity)
		assert.NotNil(t, entry)
		assert.Equal(t, inventory.TransactionTypeReceive, entry.Type)
		assert.Equal(t, "Initial stock", entry.Reason)
	})

	t.Run("create empty record skips the ledger", func(t *testing.T) {
		repo := new(MockInventoryRepository)
		ledgerRepo := new(MockLedgerRepository)
		service := NewService(repo, ledgerRepo, testThreshold)
		ctx := context.Background()

		repo.On("FindByProductAndWarehouse", ctx, testProductID, testWarehouseID).Return(nil, shared.ErrNotFound)
		repo.On("Save", ctx, mock.AnythingOfType("*inventory.Record")).Return(nil)

		result, err := service.Create(ctx, CreateRecordRequest{
			ProductID:   testProductID,
			WarehouseID: testWarehouseID,
			Quantity:    0,
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(0), result.Quantity)
		ledgerRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("duplicate product-warehouse pair is rejected", func(t *testing.T) {
		repo := new(MockInventoryRepository)
		ledgerRepo := new(MockLedgerRepository)
		service := NewService(repo, ledgerRepo, testThreshold)
		ctx := context.Background()

		existing := newTestRecord(t, 10, 0)
		repo.On("FindByProductAndWarehouse", ctx, testProductID, testWarehouseID).Return(existing, nil)

		result, err := service.Create(ctx, CreateRecordRequest{
			ProductID:   testProductID,
			WarehouseID: testWarehouseID,
			Quantity:    5,
		})

		assert.Nil(t, result)
		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_RECORD", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestInventoryService_Receive(t *testing.T) {
	t.Run("receive onto an existing record", func(t *testing.T) {
		repo := new(MockInventoryRepository)
		ledgerRepo := new(MockLedgerRepository)
		service := NewService(repo, ledgerRepo, testThreshold)
		publisher := &capturingPublisher{}
		service.SetEventPublisher(publisher)
		ctx := context.Background()

		rec := newTestRecord(t, 40, 10)
		repo.On("FindByProductAndWarehouse", ctx, testProductID, testWarehouseID).Return(rec, nil)
		repo.On("SaveWithLock", ctx, rec).Return(nil)

		var entry *inventory.Transaction
		ledgerRepo.On("Save", ctx, mock.AnythingOfType("*inventory.Transaction")).
			Run(func(args mock.Arguments) {
				entry = args.Get(1).(*inventory.Transaction)
			}).Return(nil)

		result, err := service.Receive(ctx, ReceiveStockRequest{
			ProductID:   testProductID,
			WarehouseID: testWarehouseID,
			Quantity:    60,
			Reason:      "PO-1142 delivery",
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(100), result.Quantity)
		assert.Equal(t, int64(10), result.ReservedQuantity)
		assert.Equal(t, int64(90), result.AvailableQuantity)
		assert.Equal(t, "PO-1142 delivery", entry.Reason)
		assert.Equal(t, int64(60), entry.Quantity)
		assert.NotEmpty(t, publisher.events)
		assert.Equal(t, inventory.EventTypeStockReceived, publisher.events[0].EventType())
	})

	t.Run("receive creates the record when the pair has none", func(t *testing.T) {
		repo := new(MockInventoryRepository)
		ledgerRepo := new(MockLedgerRepository)
		service := NewService(repo, ledgerRepo, testThreshold)
		ctx := context.Background()

		repo.On("FindByProductAndWarehouse", ctx, testProductID, testWarehouseID).Return(nil, shared.ErrNotFound)
		repo.On("Save", ctx, mock.AnythingOfType("*inventory.Record")).Return(nil)
		repo.On("SaveWithLock", ctx, mock.AnythingOfType("*inventory.Record")).Return(nil)
		ledgerRepo.On("Save", ctx, mock.AnythingOfType("*inventory.Transaction")).Return(nil)

		result, err := service.Receive(ctx, ReceiveStockRequest{
			ProductID:   testProductID,
			WarehouseID: testWarehouseID,
			Quantity:    25,
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(25), result.Quantity)
		repo.AssertExpectations(t)
	})
}

func TestInventoryService_Adjust(t *testing.T) {
	t.Run("downward correction writes a negative ledger delta", func(t *testing.T) {
		repo := new(MockInventoryRepository)
		ledgerRepo := new(MockLedgerRepository)
		service := NewService(repo, ledgerRepo, testThreshold)
		ctx := context.Background()

		rec := newTestRecord(t, 100, 20)
		repo.On("FindByID", ctx, rec.ID).Return(rec, nil)
		repo.On("SaveWithLock", ctx, rec).Return(nil)

		var entry *inventory.Transaction
		ledgerRepo.On("Save", ctx, mock.AnythingOfType("*inventory.Transaction")).
			Run(func(args mock.Arguments) {
				entry = args.Get(1).(*inventory.Transaction)
			}).Return(nil)

		result, err := service.Adjust(ctx, rec.ID, AdjustRecordRequest{
			Quantity: 85,
			Reason:   "cycle count 2025-08",
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(85), result.Quantity)
		assert.Equal(t, int64(20), result.ReservedQuantity)
		assert.Equal(t, inventory.TransactionTypeAdjust, entry.Type)
		assert.Equal(t, int64(-15), entry.Quantity)
		assert.Equal(t, "cycle count 2025-08", entry.Reason)
	})

	t.Run("no-op correction skips the ledger", func(t *testing.T) {
		repo := new(MockInventoryRepository)
		ledgerRepo := new(MockLedgerRepository)
		service := NewService(repo, ledgerRepo, testThreshold)
		ctx := context.Background()

		rec := newTestRecord(t, 100, 0)
		repo.On("FindByID", ctx, rec.ID).Return(rec, nil)
		repo.On("SaveWithLock", ctx, rec).Return(nil)

		_, err := service.Adjust(ctx, rec.ID, AdjustRecordRequest{
			Quantity: 100,
			Reason:   "cycle count 2025-08",
		})

		assert.NoError(t, err)
		ledgerRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("correction below the reserved quantity is rejected", func(t *testing.T) {
		repo := new(MockInventoryRepository)
		ledgerRepo := new(MockLedgerRepository)
		service := NewService(repo, ledgerRepo, testThreshold)
		ctx := context.Background()

		rec := newTestRecord(t, 100, 30)
		repo.On("FindByID", ctx, rec.ID).Return(rec, nil)

		result, err := service.Adjust(ctx, rec.ID, AdjustRecordRequest{
			Quantity: 20,
			Reason:   "cycle count 2025-08",
		})

		assert.Nil(t, result)
		assert.Error(t, err)
		repo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})
}

func TestInventoryService_Delete(t *testing.T) {
	t.Run("delete a record without reservations", func(t *testing.T) {
		repo := new(MockInventoryRepository)
		service := NewService(repo, new(MockLedgerRepository), testThreshold)
		ctx := context.Background()

		rec := newTestRecord(t, 10, 0)
		repo.On("FindByID", ctx, rec.ID).Return(rec, nil)
		repo.On("Delete", ctx, rec.ID).Return(nil)

		assert.NoError(t, service.Delete(ctx, rec.ID))
		repo.AssertExpectations(t)
	})

	t.Run("records holding reservations cannot be deleted", func(t *testing.T) {
		repo := new(MockInventoryRepository)
		service := NewService(repo, new(MockLedgerRepository), testThreshold)
		ctx := context.Background()

		rec := newTestRecord(t, 10, 3)
		repo.On("FindByID", ctx, rec.ID).Return(rec, nil)

		err := service.Delete(ctx, rec.ID)

		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "RECORD_IN_USE", domainErr.Code)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestInventoryService_StockQueries(t *testing.T) {
	t.Run("aggregate product position", func(t *testing.T) {
		repo := new(MockInventoryRepository)
		service := NewService(repo, new(MockLedgerRepository), testThreshold)
		ctx := context.Background()

		stock := &inventory.ProductStock{ProductID: testProductID, Total: 120, Reserved: 45, Available: 75}
		repo.On("AggregateByProduct", ctx, testProductID).Return(stock, nil)

		result, err := service.StockFor(ctx, testProductID)

		assert.NoError(t, err)
		assert.Equal(t, int64(120), result.TotalQuantity)
		assert.Equal(t, int64(45), result.ReservedQuantity)
		assert.Equal(t, int64(75), result.AvailableQuantity)
	})

	t.Run("low stock uses the configured threshold", func(t *testing.T) {
		repo := new(MockInventoryRepository)
		service := NewService(repo, new(MockLedgerRepository), testThreshold)
		ctx := context.Background()

		stocks := []inventory.ProductStock{
			{ProductID: testProductID, Total: 30, Reserved: 10, Available: 20},
		}
		repo.On("FindLowStock", ctx, testThreshold).Return(stocks, nil)

		results, err := service.LowStock(ctx)

		assert.NoError(t, err)
		assert.Len(t, results, 1)
		assert.Equal(t, int64(20), results[0].AvailableQuantity)
		repo.AssertExpectations(t)
	})
}
