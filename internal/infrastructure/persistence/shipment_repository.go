package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/logichain/backend/internal/domain/logistics"
	"github.com/logichain/backend/internal/domain/shared"
)

// GormShipmentRepository implements logistics.ShipmentRepository using GORM
type GormShipmentRepository struct {
	db *gorm.DB
}

var _ logistics.ShipmentRepository = (*GormShipmentRepository)(nil)

// NewGormShipmentRepository creates a new GORM-based shipment repository
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// FindByID retrieves a shipment by its ID
func (r *GormShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*logistics.Shipment, error) {
	var s logistics.Shipment
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindByTrackingNumber retrieves a shipment by its tracking number
func (r *GormShipmentRepository) FindByTrackingNumber(ctx context.Context, trackingNumber string) (*logistics.Shipment, error) {
	var s logistics.Shipment
	err := r.db.WithContext(ctx).
		First(&s, "tracking_number = ?", strings.ToUpper(strings.TrimSpace(trackingNumber))).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindByOrder retrieves the shipment for an order
func (r *GormShipmentRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) (*logistics.Shipment, error) {
	var s logistics.Shipment
	err := r.db.WithContext(ctx).First(&s, "order_id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindAll retrieves shipments with filtering and pagination
func (r *GormShipmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]logistics.Shipment, error) {
	var shipments []logistics.Shipment
	query := r.applyFilter(r.db.WithContext(ctx).Model(&logistics.Shipment{}), filter)
	if err := query.Find(&shipments).Error; err != nil {
		return nil, err
	}
	return shipments, nil
}

// FindByStatus retrieves shipments in a given status
func (r *GormShipmentRepository) FindByStatus(ctx context.Context, status logistics.ShipmentStatus, filter shared.Filter) ([]logistics.Shipment, error) {
	var shipments []logistics.Shipment
	query := r.applyFilter(r.db.WithContext(ctx).Model(&logistics.Shipment{}), filter).
		Where("status = ?", status)
	if err := query.Find(&shipments).Error; err != nil {
		return nil, err
	}
	return shipments, nil
}

// Save persists a shipment without a version guard
func (r *GormShipmentRepository) Save(ctx context.Context, s *logistics.Shipment) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormShipmentRepository) SaveWithLock(ctx context.Context, s *logistics.Shipment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentVersion int
		read := tx.Model(&logistics.Shipment{}).
			Where("id = ?", s.ID).
			Select("version").
			Scan(&currentVersion)
		if read.Error != nil {
			return read.Error
		}
		// Scan does not report ErrRecordNotFound for a missing row
		if read.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		if currentVersion != s.Version {
			return shared.ErrConcurrencyConflict
		}

		s.Version++
		s.UpdatedAt = time.Now()

		result := tx.Model(&logistics.Shipment{}).
			Where("id = ? AND version = ?", s.ID, currentVersion).
			Updates(map[string]interface{}{
				"status":                  s.Status,
				"current_location":        s.CurrentLocation,
				"estimated_delivery_date": s.EstimatedDeliveryDate,
				"actual_delivery_date":    s.ActualDeliveryDate,
				"failure_reason":          s.FailureReason,
				"version":                 s.Version,
				"updated_at":              s.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		return nil
	})
}

// Delete removes a shipment by its ID
func (r *GormShipmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&logistics.Shipment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the number of shipments matching the filter
func (r *GormShipmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&logistics.Shipment{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByOrder checks whether a shipment already exists for an order
func (r *GormShipmentRepository) ExistsByOrder(ctx context.Context, orderID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&logistics.Shipment{}).
		Where("order_id = ?", orderID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormShipmentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, ShipmentSortFields, "created_at")
	query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		if offset < 0 {
			offset = 0
		}
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}

func (r *GormShipmentRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("tracking_number ILIKE ?", search)
	}

	if carrierID, ok := filter.Filters["carrier_id"]; ok {
		query = query.Where("carrier_id = ?", carrierID)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if orderID, ok := filter.Filters["order_id"]; ok {
		query = query.Where("order_id = ?", orderID)
	}

	return query
}
