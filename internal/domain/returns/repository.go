package returns

import (
	"context"

	"github.com/google/uuid"

	"github.com/logichain/backend/internal/domain/shared"
)

// Repository defines the interface for return persistence
type Repository interface {
	// FindByID finds a return by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Return, error)

	// FindByReturnNumber finds a return by its return number
	FindByReturnNumber(ctx context.Context, returnNumber string) (*Return, error)

	// FindAll finds all returns with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Return, error)

	// FindByOrder finds all returns opened against an order
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]Return, error)

	// FindByCustomer finds returns for a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Return, error)

	// FindByStatus finds returns by status
	FindByStatus(ctx context.Context, status Status, filter shared.Filter) ([]Return, error)

	// ExistsActiveForOrder reports whether the order already has a return
	// that is neither rejected nor refunded
	ExistsActiveForOrder(ctx context.Context, orderID uuid.UUID) (bool, error)

	// Save creates or updates a return
	Save(ctx context.Context, r *Return) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, r *Return) error

	// Delete deletes a return
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts returns with optional filters
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByStatus counts returns in a given status
	CountByStatus(ctx context.Context, status Status) (int64, error)
}
