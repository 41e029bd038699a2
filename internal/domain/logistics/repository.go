package logistics

import (
	"context"

	"github.com/google/uuid"

	"github.com/logichain/backend/internal/domain/shared"
)

// WarehouseRepository defines the interface for warehouse persistence
type WarehouseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Warehouse, error)
	FindByCode(ctx context.Context, code string) (*Warehouse, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Warehouse, error)
	Save(ctx context.Context, w *Warehouse) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// CarrierRepository defines the interface for carrier persistence
type CarrierRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Carrier, error)
	FindByCode(ctx context.Context, code string) (*Carrier, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Carrier, error)
	Save(ctx context.Context, c *Carrier) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// ShipmentRepository defines the interface for shipment persistence
type ShipmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Shipment, error)
	FindByTrackingNumber(ctx context.Context, trackingNumber string) (*Shipment, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) (*Shipment, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Shipment, error)
	FindByStatus(ctx context.Context, status ShipmentStatus, filter shared.Filter) ([]Shipment, error)
	Save(ctx context.Context, s *Shipment) error
	SaveWithLock(ctx context.Context, s *Shipment) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByOrder(ctx context.Context, orderID uuid.UUID) (bool, error)
}
