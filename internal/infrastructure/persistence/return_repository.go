package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/logichain/backend/internal/domain/returns"
	"github.com/logichain/backend/internal/domain/shared"
)

// GormReturnRepository implements returns.Repository using GORM
type GormReturnRepository struct {
	db *gorm.DB
}

// NewGormReturnRepository creates a new GormReturnRepository
func NewGormReturnRepository(db *gorm.DB) *GormReturnRepository {
	return &GormReturnRepository{db: db}
}

// FindByID finds a return by its ID
func (r *GormReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*returns.Return, error) {
	var ret returns.Return
	if err := r.db.WithContext(ctx).First(&ret, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ret, nil
}

// FindByReturnNumber finds a return by its return number
func (r *GormReturnRepository) FindByReturnNumber(ctx context.Context, returnNumber string) (*returns.Return, error) {
	var ret returns.Return
	if err := r.db.WithContext(ctx).
		Where("return_number = ?", returnNumber).
		First(&ret).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ret, nil
}

// FindAll finds all returns with filtering
func (r *GormReturnRepository) FindAll(ctx context.Context, filter shared.Filter) ([]returns.Return, error) {
	var rets []returns.Return
	query := r.applyFilter(r.db.WithContext(ctx).Model(&returns.Return{}), filter)

	if err := query.Find(&rets).Error; err != nil {
		return nil, err
	}
	return rets, nil
}

// FindByOrder finds all returns opened against an order
func (r *GormReturnRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]returns.Return, error) {
	var rets []returns.Return
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("requested_at DESC").
		Find(&rets).Error; err != nil {
		return nil, err
	}
	return rets, nil
}

// FindByCustomer finds returns for a customer
func (r *GormReturnRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]returns.Return, error) {
	var rets []returns.Return
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&returns.Return{}).
			Where("customer_id = ?", customerID),
		filter,
	)

	if err := query.Find(&rets).Error; err != nil {
		return nil, err
	}
	return rets, nil
}

// FindByStatus finds returns by status
func (r *GormReturnRepository) FindByStatus(ctx context.Context, status returns.Status, filter shared.Filter) ([]returns.Return, error) {
	var rets []returns.Return
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&returns.Return{}).
			Where("status = ?", status),
		filter,
	)

	if err := query.Find(&rets).Error; err != nil {
		return nil, err
	}
	return rets, nil
}

// ExistsActiveForOrder reports whether the order already has a return that
// is neither rejected nor refunded
func (r *GormReturnRepository) ExistsActiveForOrder(ctx context.Context, orderID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&returns.Return{}).
		Where("order_id = ? AND status NOT IN ?", orderID,
			[]returns.Status{returns.StatusRejected, returns.StatusRefunded}).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a return
func (r *GormReturnRepository) Save(ctx context.Context, ret *returns.Return) error {
	return r.db.WithContext(ctx).Save(ret).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormReturnRepository) SaveWithLock(ctx context.Context, ret *returns.Return) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentVersion int
		read := tx.Model(&returns.Return{}).
			Where("id = ?", ret.ID).
			Select("version").
			Scan(&currentVersion)
		if read.Error != nil {
			return read.Error
		}
		// Scan does not report ErrRecordNotFound for a missing row
		if read.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		if currentVersion != ret.Version {
			return shared.ErrConcurrencyConflict
		}

		ret.Version++
		ret.UpdatedAt = time.Now()

		result := tx.Model(&returns.Return{}).
			Where("id = ? AND version = ?", ret.ID, currentVersion).
			Updates(map[string]interface{}{
				"status":           ret.Status,
				"description":      ret.Description,
				"refund_amount":    ret.RefundAmount,
				"processed_at":     ret.ProcessedAt,
				"processed_by":     ret.ProcessedBy,
				"processing_notes": ret.ProcessingNotes,
				"version":          ret.Version,
				"updated_at":       ret.UpdatedAt,
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

// Delete deletes a return
func (r *GormReturnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&returns.Return{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts returns with optional filters
func (r *GormReturnRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&returns.Return{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts returns in a given status
func (r *GormReturnRepository) CountByStatus(ctx context.Context, status returns.Status) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&returns.Return{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormReturnRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, ReturnSortFields, "requested_at")
	query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormReturnRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("return_number ILIKE ? OR order_number ILIKE ?",
			searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "order_id":
			query = query.Where("order_id = ?", value)
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "reason":
			query = query.Where("reason = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("requested_at >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("requested_at <= ?", t)
			}
		}
	}

	return query
}

// Ensure GormReturnRepository implements returns.Repository
var _ returns.Repository = (*GormReturnRepository)(nil)
