package inventory

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/logichain/backend/internal/domain/shared"
)

// Record represents the stock position of one product at one warehouse.
// It is the aggregate root for inventory operations; the composite
// identifier is ProductID + WarehouseID.
//
// Quantity is the physical on-hand total. ReservedQuantity is the portion
// held for confirmed but unshipped orders. Available stock is always derived
// as Quantity - ReservedQuantity and is never stored.
type Record struct {
	shared.BaseAggregateRoot
	ProductID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_product_warehouse,priority:1"`
	WarehouseID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_product_warehouse,priority:2"`
	Quantity         int64     `gorm:"not null;default:0"`
	ReservedQuantity int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Record) TableName() string {
	return "inventory_records"
}

// NewRecord creates a new inventory record for a product-warehouse combination
func NewRecord(productID, warehouseID uuid.UUID, quantity int64) (*Record, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	return &Record{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		WarehouseID:       warehouseID,
		Quantity:          quantity,
		ReservedQuantity:  0,
	}, nil
}

// Available returns the sellable quantity (on-hand minus reserved)
func (r *Record) Available() int64 {
	return r.Quantity - r.ReservedQuantity
}

// Receive adds incoming stock to the on-hand quantity
func (r *Record) Receive(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Receive quantity must be positive")
	}

	r.Quantity += quantity
	r.touch()

	r.AddDomainEvent(NewStockReceivedEvent(r, quantity))

	return nil
}

// Reserve holds stock for a confirmed order. Fails when the requested
// quantity exceeds what is available.
func (r *Record) Reserve(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Reserve quantity must be positive")
	}
	if r.Available() < quantity {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Cannot reserve %d units, only %d available", quantity, r.Available()))
	}

	r.ReservedQuantity += quantity
	r.touch()

	r.AddDomainEvent(NewStockReservedEvent(r, quantity))

	return nil
}

// Release returns previously reserved stock to the available pool.
// Called when a confirmed order is cancelled before shipping.
func (r *Record) Release(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Release quantity must be positive")
	}
	if r.ReservedQuantity < quantity {
		return shared.NewDomainError("INVALID_QUANTITY",
			fmt.Sprintf("Cannot release %d units, only %d reserved", quantity, r.ReservedQuantity))
	}

	r.ReservedQuantity -= quantity
	r.touch()

	r.AddDomainEvent(NewStockReleasedEvent(r, quantity))

	return nil
}

// Consume removes reserved stock at shipment: both the reservation and the
// on-hand quantity drop together so available stock is unchanged.
func (r *Record) Consume(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Consume quantity must be positive")
	}
	if r.ReservedQuantity < quantity {
		return shared.NewDomainError("INVALID_QUANTITY",
			fmt.Sprintf("Cannot consume %d units, only %d reserved", quantity, r.ReservedQuantity))
	}

	r.Quantity -= quantity
	r.ReservedQuantity -= quantity
	r.touch()

	r.AddDomainEvent(NewStockConsumedEvent(r, quantity))

	return nil
}

// Adjust sets the on-hand quantity to the counted value. The reason is
// recorded for the audit trail. The new quantity must still cover the
// outstanding reservations.
func (r *Record) Adjust(actualQuantity int64, reason string) error {
	if actualQuantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Actual quantity cannot be negative")
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Adjustment reason is required")
	}
	if actualQuantity < r.ReservedQuantity {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Adjusted quantity %d cannot cover %d reserved units", actualQuantity, r.ReservedQuantity))
	}

	oldQuantity := r.Quantity
	r.Quantity = actualQuantity
	r.touch()

	r.AddDomainEvent(NewStockAdjustedEvent(r, oldQuantity, actualQuantity, reason))

	return nil
}

// CanFulfill returns true if the available quantity covers the request
func (r *Record) CanFulfill(quantity int64) bool {
	return r.Available() >= quantity
}

func (r *Record) touch() {
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// ProductStock is the aggregated stock position of a product across all
// warehouses. Available is computed here, in one place, for every caller.
type ProductStock struct {
	ProductID uuid.UUID `json:"productId"`
	Total     int64     `json:"totalQuantity"`
	Reserved  int64     `json:"reservedQuantity"`
	Available int64     `json:"availableQuantity"`
}

// NewProductStock aggregates per-warehouse records into a product position
func NewProductStock(productID uuid.UUID, records []Record) ProductStock {
	ps := ProductStock{ProductID: productID}
	for _, rec := range records {
		if rec.ProductID != productID {
			continue
		}
		ps.Total += rec.Quantity
		ps.Reserved += rec.ReservedQuantity
	}
	ps.Available = ps.Total - ps.Reserved
	return ps
}

// IsBelowThreshold returns true if available stock dropped under the
// restock threshold
func (ps ProductStock) IsBelowThreshold(threshold int64) bool {
	return ps.Available < threshold
}
