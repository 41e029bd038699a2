package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/logichain/backend/internal/domain/shared"
)

// Repository defines the interface for inventory record persistence
type Repository interface {
	// FindByID finds an inventory record by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Record, error)

	// FindByProductAndWarehouse finds the record for a product-warehouse pair
	FindByProductAndWarehouse(ctx context.Context, productID, warehouseID uuid.UUID) (*Record, error)

	// FindByProduct finds all warehouse records for a product
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]Record, error)

	// FindByWarehouse finds all records in a warehouse
	FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]Record, error)

	// FindAll finds all records with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Record, error)

	// FindLowStock returns the aggregated positions of products whose
	// available stock is below the threshold
	FindLowStock(ctx context.Context, threshold int64) ([]ProductStock, error)

	// AggregateByProduct aggregates the stock position of one product
	// across warehouses
	AggregateByProduct(ctx context.Context, productID uuid.UUID) (*ProductStock, error)

	// Save creates or updates a record
	Save(ctx context.Context, r *Record) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, r *Record) error

	// Delete deletes a record
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts records with optional filters
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// TransactionRepository persists the stock movement ledger
type TransactionRepository interface {
	// Save appends a ledger entry
	Save(ctx context.Context, tx *Transaction) error

	// FindByProduct lists ledger entries for a product, newest first
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]Transaction, error)

	// FindByReference lists ledger entries caused by a document
	FindByReference(ctx context.Context, referenceID uuid.UUID) ([]Transaction, error)
}
