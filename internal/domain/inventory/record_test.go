package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logichain/backend/internal/domain/shared"
)

// Test helpers
func createTestRecord(t *testing.T, quantity int64) *Record {
	r, err := NewRecord(uuid.New(), uuid.New(), quantity)
	require.NoError(t, err)
	return r
}

func TestNewRecord(t *testing.T) {
	t.Run("creates record with initial quantity", func(t *testing.T) {
		productID := uuid.New()
		warehouseID := uuid.New()
		r, err := NewRecord(productID, warehouseID, 100)
		require.NoError(t, err)

		assert.Equal(t, productID, r.ProductID)
		assert.Equal(t, warehouseID, r.WarehouseID)
		assert.Equal(t, int64(100), r.Quantity)
		assert.Equal(t, int64(0), r.ReservedQuantity)
		assert.Equal(t, int64(100), r.Available())
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		_, err := NewRecord(uuid.New(), uuid.New(), -1)
		require.Error(t, err)
	})

	t.Run("rejects nil product", func(t *testing.T) {
		_, err := NewRecord(uuid.Nil, uuid.New(), 10)
		require.Error(t, err)
	})
}

func TestRecord_Receive(t *testing.T) {
	r := createTestRecord(t, 10)

	require.NoError(t, r.Receive(15))
	assert.Equal(t, int64(25), r.Quantity)
	assert.Equal(t, int64(25), r.Available())

	require.Error(t, r.Receive(0))
	require.Error(t, r.Receive(-5))
}

func TestRecord_Reserve(t *testing.T) {
	t.Run("reserves available stock", func(t *testing.T) {
		r := createTestRecord(t, 100)

		require.NoError(t, r.Reserve(30))
		assert.Equal(t, int64(100), r.Quantity)
		assert.Equal(t, int64(30), r.ReservedQuantity)
		assert.Equal(t, int64(70), r.Available())
	})

	t.Run("fails when request exceeds available", func(t *testing.T) {
		r := createTestRecord(t, 10)
		require.NoError(t, r.Reserve(8))

		err := r.Reserve(3)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)

		// Nothing changed on failure
		assert.Equal(t, int64(8), r.ReservedQuantity)
		assert.Equal(t, int64(2), r.Available())
	})

	t.Run("can reserve exactly the available quantity", func(t *testing.T) {
		r := createTestRecord(t, 10)
		require.NoError(t, r.Reserve(10))
		assert.Equal(t, int64(0), r.Available())
	})
}

func TestRecord_Release(t *testing.T) {
	r := createTestRecord(t, 50)
	require.NoError(t, r.Reserve(20))

	require.NoError(t, r.Release(20))
	assert.Equal(t, int64(50), r.Quantity)
	assert.Equal(t, int64(0), r.ReservedQuantity)
	assert.Equal(t, int64(50), r.Available())

	// Cannot release more than reserved
	require.Error(t, r.Release(1))
}

func TestRecord_Consume(t *testing.T) {
	t.Run("consume drops total and reservation together", func(t *testing.T) {
		r := createTestRecord(t, 50)
		require.NoError(t, r.Reserve(20))
		availableBefore := r.Available()

		require.NoError(t, r.Consume(20))
		assert.Equal(t, int64(30), r.Quantity)
		assert.Equal(t, int64(0), r.ReservedQuantity)
		assert.Equal(t, availableBefore, r.Available())
	})

	t.Run("cannot consume more than reserved", func(t *testing.T) {
		r := createTestRecord(t, 50)
		require.NoError(t, r.Reserve(5))
		require.Error(t, r.Consume(6))
	})
}

func TestRecord_Adjust(t *testing.T) {
	t.Run("sets counted quantity", func(t *testing.T) {
		r := createTestRecord(t, 100)
		require.NoError(t, r.Adjust(87, "cycle count shortfall"))
		assert.Equal(t, int64(87), r.Quantity)
	})

	t.Run("requires a reason", func(t *testing.T) {
		r := createTestRecord(t, 100)
		require.Error(t, r.Adjust(90, ""))
	})

	t.Run("must cover outstanding reservations", func(t *testing.T) {
		r := createTestRecord(t, 100)
		require.NoError(t, r.Reserve(40))

		err := r.Adjust(30, "cycle count")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
	})
}

func TestRecord_AvailableNeverNegative(t *testing.T) {
	r := createTestRecord(t, 10)
	require.NoError(t, r.Reserve(10))
	assert.Equal(t, int64(0), r.Available())

	// Every further reservation must fail, not push available below zero
	require.Error(t, r.Reserve(1))
	assert.GreaterOrEqual(t, r.Available(), int64(0))
}

func TestRecord_Versioning(t *testing.T) {
	r := createTestRecord(t, 100)
	v := r.GetVersion()

	require.NoError(t, r.Reserve(10))
	assert.Equal(t, v+1, r.GetVersion())

	require.NoError(t, r.Release(10))
	assert.Equal(t, v+2, r.GetVersion())
}

func TestNewProductStock(t *testing.T) {
	productID := uuid.New()

	a := createTestRecord(t, 0)
	a.ProductID = productID
	a.Quantity = 60
	a.ReservedQuantity = 10

	b := createTestRecord(t, 0)
	b.ProductID = productID
	b.Quantity = 40
	b.ReservedQuantity = 5

	other := createTestRecord(t, 999)

	ps := NewProductStock(productID, []Record{*a, *b, *other})
	assert.Equal(t, int64(100), ps.Total)
	assert.Equal(t, int64(15), ps.Reserved)
	assert.Equal(t, int64(85), ps.Available)

	assert.False(t, ps.IsBelowThreshold(50))
	assert.True(t, ps.IsBelowThreshold(86))
}

func TestRecord_Events(t *testing.T) {
	r := createTestRecord(t, 100)
	r.ClearDomainEvents()

	require.NoError(t, r.Reserve(10))
	require.NoError(t, r.Release(5))
	require.NoError(t, r.Consume(5))

	events := r.GetDomainEvents()
	require.Len(t, events, 3)
	assert.Equal(t, EventTypeStockReserved, events[0].EventType())
	assert.Equal(t, EventTypeStockReleased, events[1].EventType())
	assert.Equal(t, EventTypeStockConsumed, events[2].EventType())
}
