package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/logichain/backend/internal/domain/logistics"
	"github.com/logichain/backend/internal/domain/shared"
)

// GormCarrierRepository implements logistics.CarrierRepository using GORM
type GormCarrierRepository struct {
	db *gorm.DB
}

// NewGormCarrierRepository creates a new GormCarrierRepository
func NewGormCarrierRepository(db *gorm.DB) *GormCarrierRepository {
	return &GormCarrierRepository{db: db}
}

// FindByID finds a carrier by its ID
func (r *GormCarrierRepository) FindByID(ctx context.Context, id uuid.UUID) (*logistics.Carrier, error) {
	var c logistics.Carrier
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByCode finds a carrier by its code
func (r *GormCarrierRepository) FindByCode(ctx context.Context, code string) (*logistics.Carrier, error) {
	var c logistics.Carrier
	if err := r.db.WithContext(ctx).
		Where("carrier_code = ?", strings.ToUpper(code)).
		First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindAll finds all carriers with filtering
func (r *GormCarrierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]logistics.Carrier, error) {
	var carriers []logistics.Carrier
	query := r.applyFilter(r.db.WithContext(ctx).Model(&logistics.Carrier{}), filter)

	if err := query.Find(&carriers).Error; err != nil {
		return nil, err
	}
	return carriers, nil
}

// Save creates or updates a carrier
func (r *GormCarrierRepository) Save(ctx context.Context, c *logistics.Carrier) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// Delete deletes a carrier
func (r *GormCarrierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&logistics.Carrier{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts carriers with optional filters
func (r *GormCarrierRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&logistics.Carrier{})

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("carrier_code ILIKE ? OR carrier_name ILIKE ?", searchPattern, searchPattern)
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks if a carrier code is taken
func (r *GormCarrierRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&logistics.Carrier{}).
		Where("carrier_code = ?", strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormCarrierRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("carrier_code ILIKE ? OR carrier_name ILIKE ?", searchPattern, searchPattern)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, CarrierSortFields, "carrier_code")
		query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("carrier_code ASC")
	}

	return query
}

// Ensure GormCarrierRepository implements logistics.CarrierRepository
var _ logistics.CarrierRepository = (*GormCarrierRepository)(nil)
