package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logichain/backend/internal/domain/shared"
	"github.com/logichain/backend/internal/domain/shared/valueobject"
)

// Test helpers
func createTestOrder(t *testing.T) *Order {
	customerID := uuid.New()
	addr := valueobject.MustNewAddress("123 Harbor Way", "Oakland", "94607", valueobject.WithState("CA"))
	o, err := New("ORD-2026-0001", customerID, "Test Customer", addr, addr)
	require.NoError(t, err)
	return o
}

func addTestItem(t *testing.T, o *Order, productName string, quantity int64, price float64) *Item {
	item, err := o.AddItem(uuid.New(), productName, "SKU-001", quantity, decimal.NewFromFloat(price))
	require.NoError(t, err)
	return item
}

// ============================================
// Status Tests
// ============================================

func TestStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  Status
		isValid bool
	}{
		{StatusPending, true},
		{StatusConfirmed, true},
		{StatusProcessing, true},
		{StatusShipped, true},
		{StatusDelivered, true},
		{StatusCancelled, true},
		{Status("INVALID"), false},
		{Status(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     Status
		to       Status
		canTrans bool
	}{
		// From PENDING
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusProcessing, false},
		{StatusPending, StatusShipped, false},
		{StatusPending, StatusDelivered, false},
		// From CONFIRMED
		{StatusConfirmed, StatusProcessing, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusConfirmed, StatusShipped, false},
		{StatusConfirmed, StatusDelivered, false},
		// From PROCESSING
		{StatusProcessing, StatusShipped, true},
		{StatusProcessing, StatusCancelled, true},
		{StatusProcessing, StatusPending, false},
		{StatusProcessing, StatusConfirmed, false},
		{StatusProcessing, StatusDelivered, false},
		// From SHIPPED: cancellation window is closed
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusCancelled, false},
		{StatusShipped, StatusPending, false},
		{StatusShipped, StatusProcessing, false},
		// From DELIVERED (terminal)
		{StatusDelivered, StatusPending, false},
		{StatusDelivered, StatusConfirmed, false},
		{StatusDelivered, StatusShipped, false},
		{StatusDelivered, StatusCancelled, false},
		// From CANCELLED (terminal)
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusProcessing, false},
		{StatusCancelled, StatusShipped, false},
		{StatusCancelled, StatusDelivered, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatus_HoldsReservation(t *testing.T) {
	assert.False(t, StatusPending.HoldsReservation())
	assert.True(t, StatusConfirmed.HoldsReservation())
	assert.True(t, StatusProcessing.HoldsReservation())
	assert.False(t, StatusShipped.HoldsReservation())
	assert.False(t, StatusDelivered.HoldsReservation())
	assert.False(t, StatusCancelled.HoldsReservation())
}

// ============================================
// New Tests
// ============================================

func TestNew(t *testing.T) {
	customerID := uuid.New()
	addr := valueobject.MustNewAddress("123 Harbor Way", "Oakland", "94607")

	t.Run("creates order with valid inputs", func(t *testing.T) {
		o, err := New("ORD-2026-0001", customerID, "Test Customer", addr, addr)
		require.NoError(t, err)
		require.NotNil(t, o)

		assert.Equal(t, "ORD-2026-0001", o.OrderNumber)
		assert.Equal(t, customerID, o.CustomerID)
		assert.Equal(t, StatusPending, o.Status)
		assert.Equal(t, PaymentStatusPending, o.PaymentStatus)
		assert.Empty(t, o.Items)
		assert.True(t, o.TotalAmount.IsZero())
		assert.Len(t, o.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeOrderCreated, o.GetDomainEvents()[0].EventType())
	})

	t.Run("fails with empty order number", func(t *testing.T) {
		_, err := New("", customerID, "Test Customer", addr, addr)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_ORDER_NUMBER", domainErr.Code)
	})

	t.Run("fails with nil customer", func(t *testing.T) {
		_, err := New("ORD-2026-0002", uuid.Nil, "Test Customer", addr, addr)
		require.Error(t, err)
	})

	t.Run("fails with empty shipping address", func(t *testing.T) {
		_, err := New("ORD-2026-0003", customerID, "Test Customer", valueobject.EmptyAddress(), addr)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_ADDRESS", domainErr.Code)
	})
}

// ============================================
// Item Tests
// ============================================

func TestOrder_AddItem(t *testing.T) {
	t.Run("adds item and recalculates total", func(t *testing.T) {
		o := createTestOrder(t)
		addTestItem(t, o, "Widget", 3, 19.99)
		addTestItem(t, o, "Gadget", 2, 5.00)

		assert.Equal(t, 2, o.ItemCount())
		assert.True(t, o.TotalAmount.Equal(decimal.NewFromFloat(69.97)))
	})

	t.Run("rejects duplicate product", func(t *testing.T) {
		o := createTestOrder(t)
		productID := uuid.New()
		_, err := o.AddItem(productID, "Widget", "SKU-001", 1, decimal.NewFromInt(10))
		require.NoError(t, err)

		_, err = o.AddItem(productID, "Widget", "SKU-001", 2, decimal.NewFromInt(10))
		require.Error(t, err)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		o := createTestOrder(t)
		_, err := o.AddItem(uuid.New(), "Widget", "SKU-001", 0, decimal.NewFromInt(10))
		require.Error(t, err)
	})

	t.Run("rejects items after confirmation", func(t *testing.T) {
		o := createTestOrder(t)
		addTestItem(t, o, "Widget", 1, 10.00)
		require.NoError(t, o.Confirm())

		_, err := o.AddItem(uuid.New(), "Gadget", "SKU-002", 1, decimal.NewFromInt(5))
		require.Error(t, err)
	})
}

func TestOrder_RemoveItem(t *testing.T) {
	o := createTestOrder(t)
	item := addTestItem(t, o, "Widget", 3, 10.00)
	addTestItem(t, o, "Gadget", 1, 5.00)

	require.NoError(t, o.RemoveItem(item.ID))
	assert.Equal(t, 1, o.ItemCount())
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(5)))

	err := o.RemoveItem(uuid.New())
	require.Error(t, err)
}

// ============================================
// Lifecycle Tests
// ============================================

func TestOrder_Confirm(t *testing.T) {
	t.Run("confirms pending order with items", func(t *testing.T) {
		o := createTestOrder(t)
		addTestItem(t, o, "Widget", 2, 10.00)

		require.NoError(t, o.Confirm())
		assert.Equal(t, StatusConfirmed, o.Status)
		assert.NotNil(t, o.ConfirmedAt)
	})

	t.Run("rejects empty order", func(t *testing.T) {
		o := createTestOrder(t)
		err := o.Confirm()
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NO_ITEMS", domainErr.Code)
	})

	t.Run("rejects double confirmation", func(t *testing.T) {
		o := createTestOrder(t)
		addTestItem(t, o, "Widget", 2, 10.00)
		require.NoError(t, o.Confirm())

		err := o.Confirm()
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
	})
}

func TestOrder_FullLifecycle(t *testing.T) {
	o := createTestOrder(t)
	addTestItem(t, o, "Widget", 2, 10.00)

	require.NoError(t, o.Confirm())
	require.NoError(t, o.StartProcessing())
	require.NoError(t, o.Ship())
	assert.NotNil(t, o.ShippedAt)
	require.NoError(t, o.Deliver())
	assert.NotNil(t, o.DeliveredAt)
	assert.Equal(t, StatusDelivered, o.Status)
	assert.True(t, o.IsTerminal())
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("cancel pending order does not touch reservations", func(t *testing.T) {
		o := createTestOrder(t)
		addTestItem(t, o, "Widget", 2, 10.00)

		require.NoError(t, o.Cancel("customer changed mind"))
		assert.Equal(t, StatusCancelled, o.Status)
		assert.Equal(t, "customer changed mind", o.CancelReason)

		events := o.GetDomainEvents()
		cancelled := events[len(events)-1].(*CancelledEvent)
		assert.False(t, cancelled.WasReserved)
	})

	t.Run("cancel confirmed order flags reserved stock", func(t *testing.T) {
		o := createTestOrder(t)
		addTestItem(t, o, "Widget", 2, 10.00)
		require.NoError(t, o.Confirm())

		require.NoError(t, o.Cancel("out of budget"))
		events := o.GetDomainEvents()
		cancelled := events[len(events)-1].(*CancelledEvent)
		assert.True(t, cancelled.WasReserved)
	})

	t.Run("cancel processing order flags reserved stock", func(t *testing.T) {
		o := createTestOrder(t)
		addTestItem(t, o, "Widget", 2, 10.00)
		require.NoError(t, o.Confirm())
		require.NoError(t, o.StartProcessing())

		require.NoError(t, o.Cancel("duplicate order"))
		events := o.GetDomainEvents()
		cancelled := events[len(events)-1].(*CancelledEvent)
		assert.True(t, cancelled.WasReserved)
	})

	t.Run("cannot cancel shipped order", func(t *testing.T) {
		o := createTestOrder(t)
		addTestItem(t, o, "Widget", 2, 10.00)
		require.NoError(t, o.Confirm())
		require.NoError(t, o.StartProcessing())
		require.NoError(t, o.Ship())

		err := o.Cancel("too late")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
	})
}

func TestOrder_TransitionTo(t *testing.T) {
	t.Run("dispatches to the matching transition", func(t *testing.T) {
		o := createTestOrder(t)
		addTestItem(t, o, "Widget", 2, 10.00)

		require.NoError(t, o.TransitionTo(StatusConfirmed))
		require.NoError(t, o.TransitionTo(StatusProcessing))
		require.NoError(t, o.TransitionTo(StatusShipped))
		require.NoError(t, o.TransitionTo(StatusDelivered))
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		o := createTestOrder(t)
		err := o.TransitionTo(Status("BOGUS"))
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
	})

	t.Run("transition error names both states", func(t *testing.T) {
		o := createTestOrder(t)
		err := o.TransitionTo(StatusShipped)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PENDING")
		assert.Contains(t, err.Error(), "SHIPPED")
	})
}

func TestOrder_MarkRefunded(t *testing.T) {
	o := createTestOrder(t)
	addTestItem(t, o, "Widget", 2, 10.00)

	require.NoError(t, o.MarkRefunded())
	assert.Equal(t, PaymentStatusRefunded, o.PaymentStatus)

	err := o.MarkRefunded()
	require.Error(t, err)
}

func TestOrder_Returnable(t *testing.T) {
	o := createTestOrder(t)
	addTestItem(t, o, "Widget", 2, 10.00)
	assert.False(t, o.Returnable())

	require.NoError(t, o.Confirm())
	assert.False(t, o.Returnable())

	require.NoError(t, o.StartProcessing())
	require.NoError(t, o.Ship())
	assert.True(t, o.Returnable())

	require.NoError(t, o.Deliver())
	assert.True(t, o.Returnable())
}
