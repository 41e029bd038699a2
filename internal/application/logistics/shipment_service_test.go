package logistics

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/logichain/backend/internal/domain/logistics"
	"github.com/logichain/backend/internal/domain/order"
	"github.com/logichain/backend/internal/domain/shared"
	"github.com/logichain/backend/internal/domain/shared/valueobject"
)

// MockShipmentRepository is a mock implementation of logistics.ShipmentRepository
type MockShipmentRepository struct {
	mock.Mock
}

func (m *MockShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*logistics.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*logistics.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindByTrackingNumber(ctx context.Context, trackingNumber string) (*logistics.Shipment, error) {
	args := m.Called(ctx, trackingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*logistics.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) (*logistics.Shipment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*logistics.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]logistics.Shipment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]logistics.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindByStatus(ctx context.Context, status logistics.ShipmentStatus, filter shared.Filter) ([]logistics.Shipment, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]logistics.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) Save(ctx context.Context, s *logistics.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) SaveWithLock(ctx context.Context, s *logistics.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockShipmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockShipmentRepository) ExistsByOrder(ctx context.Context, orderID uuid.UUID) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

// MockCarrierRepository is a mock implementation of logistics.CarrierRepository
type MockCarrierRepository struct {
	mock.Mock
}

func (m *MockCarrierRepository) FindByID(ctx context.Context, id uuid.UUID) (*logistics.Carrier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*logistics.Carrier), args.Error(1)
}

func (m *MockCarrierRepository) FindByCode(ctx context.Context, code string) (*logistics.Carrier, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*logistics.Carrier), args.Error(1)
}

func (m *MockCarrierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]logistics.Carrier, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]logistics.Carrier), args.Error(1)
}

func (m *MockCarrierRepository) Save(ctx context.Context, c *logistics.Carrier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCarrierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCarrierRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCarrierRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// MockWarehouseRepository is a mock implementation of logistics.WarehouseRepository
type MockWarehouseRepository struct {
	mock.Mock
}

func (m *MockWarehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*logistics.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*logistics.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) FindByCode(ctx context.Context, code string) (*logistics.Warehouse, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*logistics.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]logistics.Warehouse, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]logistics.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) Save(ctx context.Context, w *logistics.Warehouse) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWarehouseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWarehouseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWarehouseRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
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

// Test helpers
var testCarrierID = uuid.New()

func processingTestOrder(t *testing.T) *order.Order {
	t.Helper()
	addr := valueobject.MustNewAddress("1 Harbor Way", "Oakland", "94607")
	o, err := order.New("ORD-2025-000042", uuid.New(), "Acme Retail", addr, addr)
	assert.NoError(t, err)
	_, err = o.AddItem(uuid.New(), "Steel Bolt M8", "BOLT-M8", 4, decimal.NewFromInt(25))
	assert.NoError(t, err)
	assert.NoError(t, o.Confirm())
	assert.NoError(t, o.StartProcessing())
	o.ClearDomainEvents()
	return o
}

func activeTestCarrier(t *testing.T) *logistics.Carrier {
	t.Helper()
	c, err := logistics.NewCarrier("FDX", "FedEx Ground", "dispatch@fedex.example")
	assert.NoError(t, err)
	c.ID = testCarrierID
	return c
}

func testShipment(t *testing.T) *logistics.Shipment {
	t.Helper()
	s, err := logistics.NewShipment("TRK-TEST-000001", uuid.New(), testCarrierID, nil)
	assert.NoError(t, err)
	return s
}

func TestShipmentService_Create(t *testing.T) {
	t.Run("create shipment with a generated tracking number", func(t *testing.T) {
		shipmentRepo := new(MockShipmentRepository)
		carrierRepo := new(MockCarrierRepository)
		orderRepo := new(MockOrderRepository)
		service := NewShipmentService(shipmentRepo, carrierRepo, orderRepo)
		ctx := context.Background()

		o := processingTestOrder(t)
		carrier := activeTestCarrier(t)

		orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)
		shipmentRepo.On("ExistsByOrder", ctx, o.ID).Return(false, nil)
		carrierRepo.On("FindByID", ctx, testCarrierID).Return(carrier, nil)
		shipmentRepo.On("Save", ctx, mock.AnythingOfType("*logistics.Shipment")).Return(nil)

		result, err := service.Create(ctx, CreateShipmentRequest{
			OrderID:   o.ID,
			CarrierID: testCarrierID,
		})

		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(result.TrackingNumber, "TRK-"))
		assert.Equal(t, "CREATED", result.ShipmentStatus)
		assert.Equal(t, o.ID, result.OrderID)
		shipmentRepo.AssertExpectations(t)
	})

	t.Run("explicit tracking number is kept and uppercased", func(t *testing.T) {
		shipmentRepo := new(MockShipmentRepository)
		carrierRepo := new(MockCarrierRepository)
		orderRepo := new(MockOrderRepository)
		service := NewShipmentService(shipmentRepo, carrierRepo, orderRepo)
		ctx := context.Background()

		o := processingTestOrder(t)
		carrier := activeTestCarrier(t)

		orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)
		shipmentRepo.On("ExistsByOrder", ctx, o.ID).Return(false, nil)
		carrierRepo.On("FindByID", ctx, testCarrierID).Return(carrier, nil)
		shipmentRepo.On("Save", ctx, mock.AnythingOfType("*logistics.Shipment")).Return(nil)

		result, err := service.Create(ctx, CreateShipmentRequest{
			OrderID:        o.ID,
			CarrierID:      testCarrierID,
			TrackingNumber: "1z999aa10123456784",
		})

		assert.NoError(t, err)
		assert.Equal(t, "1Z999AA10123456784", result.TrackingNumber)
	})

	t.Run("pending order cannot be shipped", func(t *testing.T) {
		shipmentRepo := new(MockShipmentRepository)
		carrierRepo := new(MockCarrierRepository)
		orderRepo := new(MockOrderRepository)
		service := NewShipmentService(shipmentRepo, carrierRepo, orderRepo)
		ctx := context.Background()

		addr := valueobject.MustNewAddress("1 Harbor Way", "Oakland", "94607")
		o, err := order.New("ORD-2025-000043", uuid.New(), "Acme Retail", addr, addr)
		assert.NoError(t, err)

		orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)

		result, err := service.Create(ctx, CreateShipmentRequest{OrderID: o.ID, CarrierID: testCarrierID})

		assert.Nil(t, result)
		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INELIGIBLE_ORDER", domainErr.Code)
	})

	t.Run("one shipment per order", func(t *testing.T) {
		shipmentRepo := new(MockShipmentRepository)
		carrierRepo := new(MockCarrierRepository)
		orderRepo := new(MockOrderRepository)
		service := NewShipmentService(shipmentRepo, carrierRepo, orderRepo)
		ctx := context.Background()

		o := processingTestOrder(t)
		orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)
		shipmentRepo.On("ExistsByOrder", ctx, o.ID).Return(true, nil)

		result, err := service.Create(ctx, CreateShipmentRequest{OrderID: o.ID, CarrierID: testCarrierID})

		assert.Nil(t, result)
		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_SHIPMENT", domainErr.Code)
	})

	t.Run("inactive carrier is rejected", func(t *testing.T) {
		shipmentRepo := new(MockShipmentRepository)
		carrierRepo := new(MockCarrierRepository)
		orderRepo := new(MockOrderRepository)
		service := NewShipmentService(shipmentRepo, carrierRepo, orderRepo)
		ctx := context.Background()

		o := processingTestOrder(t)
		carrier := activeTestCarrier(t)
		carrier.Deactivate()

		orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)
		shipmentRepo.On("ExistsByOrder", ctx, o.ID).Return(false, nil)
		carrierRepo.On("FindByID", ctx, testCarrierID).Return(carrier, nil)

		result, err := service.Create(ctx, CreateShipmentRequest{OrderID: o.ID, CarrierID: testCarrierID})

		assert.Nil(t, result)
		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INACTIVE_CARRIER", domainErr.Code)
		shipmentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestShipmentService_UpdateStatus(t *testing.T) {
	t.Run("progress to in transit with a location scan", func(t *testing.T) {
		shipmentRepo := new(MockShipmentRepository)
		service := NewShipmentService(shipmentRepo, new(MockCarrierRepository), new(MockOrderRepository))
		ctx := context.Background()

		shipment := testShipment(t)
		shipmentRepo.On("FindByID", ctx, shipment.ID).Return(shipment, nil)
		shipmentRepo.On("SaveWithLock", ctx, shipment).Return(nil)

		result, err := service.UpdateStatus(ctx, shipment.ID, UpdateShipmentStatusRequest{
			ShipmentStatus:  "IN_TRANSIT",
			CurrentLocation: "Oakland sort facility",
		})

		assert.NoError(t, err)
		assert.Equal(t, "IN_TRANSIT", result.ShipmentStatus)
		assert.Equal(t, "Oakland sort facility", result.CurrentLocation)
	})

	t.Run("delivery records the actual delivery date", func(t *testing.T) {
		shipmentRepo := new(MockShipmentRepository)
		service := NewShipmentService(shipmentRepo, new(MockCarrierRepository), new(MockOrderRepository))
		ctx := context.Background()

		shipment := testShipment(t)
		assert.NoError(t, shipment.TransitionTo(logistics.ShipmentStatusInTransit))
		assert.NoError(t, shipment.TransitionTo(logistics.ShipmentStatusOutForDelivery))

		shipmentRepo.On("FindByID", ctx, shipment.ID).Return(shipment, nil)
		shipmentRepo.On("SaveWithLock", ctx, shipment).Return(nil)

		before := time.Now()
		result, err := service.UpdateStatus(ctx, shipment.ID, UpdateShipmentStatusRequest{
			ShipmentStatus: "DELIVERED",
		})

		assert.NoError(t, err)
		assert.Equal(t, "DELIVERED", result.ShipmentStatus)
		assert.NotNil(t, result.ActualDeliveryDate)
		assert.False(t, result.ActualDeliveryDate.Before(before))
	})

	t.Run("failing requires a reason", func(t *testing.T) {
		shipmentRepo := new(MockShipmentRepository)
		service := NewShipmentService(shipmentRepo, new(MockCarrierRepository), new(MockOrderRepository))
		ctx := context.Background()

		shipment := testShipment(t)
		shipmentRepo.On("FindByID", ctx, shipment.ID).Return(shipment, nil)

		result, err := service.UpdateStatus(ctx, shipment.ID, UpdateShipmentStatusRequest{
			ShipmentStatus: "FAILED",
		})

		assert.Nil(t, result)
		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_REASON", domainErr.Code)
		shipmentRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("failing closes the shipment with the reason", func(t *testing.T) {
		shipmentRepo := new(MockShipmentRepository)
		service := NewShipmentService(shipmentRepo, new(MockCarrierRepository), new(MockOrderRepository))
		ctx := context.Background()

		shipment := testShipment(t)
		shipmentRepo.On("FindByID", ctx, shipment.ID).Return(shipment, nil)
		shipmentRepo.On("SaveWithLock", ctx, shipment).Return(nil)

		result, err := service.UpdateStatus(ctx, shipment.ID, UpdateShipmentStatusRequest{
			ShipmentStatus: "FAILED",
			FailureReason:  "recipient address unknown",
		})

		assert.NoError(t, err)
		assert.Equal(t, "FAILED", result.ShipmentStatus)
		assert.Equal(t, "recipient address unknown", result.FailureReason)
	})

	t.Run("delivered shipments cannot move again", func(t *testing.T) {
		shipmentRepo := new(MockShipmentRepository)
		service := NewShipmentService(shipmentRepo, new(MockCarrierRepository), new(MockOrderRepository))
		ctx := context.Background()

		shipment := testShipment(t)
		assert.NoError(t, shipment.TransitionTo(logistics.ShipmentStatusInTransit))
		assert.NoError(t, shipment.TransitionTo(logistics.ShipmentStatusOutForDelivery))
		assert.NoError(t, shipment.TransitionTo(logistics.ShipmentStatusDelivered))

		shipmentRepo.On("FindByID", ctx, shipment.ID).Return(shipment, nil)

		result, err := service.UpdateStatus(ctx, shipment.ID, UpdateShipmentStatusRequest{
			ShipmentStatus: "IN_TRANSIT",
		})

		assert.Nil(t, result)
		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
	})
}

func TestShipmentService_Track(t *testing.T) {
	shipmentRepo := new(MockShipmentRepository)
	service := NewShipmentService(shipmentRepo, new(MockCarrierRepository), new(MockOrderRepository))
	ctx := context.Background()

	shipment := testShipment(t)
	shipmentRepo.On("FindByTrackingNumber", ctx, shipment.TrackingNumber).Return(shipment, nil)

	result, err := service.Track(ctx, shipment.TrackingNumber)

	assert.NoError(t, err)
	assert.Equal(t, shipment.TrackingNumber, result.TrackingNumber)
}
