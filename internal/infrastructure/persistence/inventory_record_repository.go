package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/logichain/backend/internal/domain/inventory"
	"github.com/logichain/backend/internal/domain/shared"
)

// GormInventoryRepository implements inventory.Repository using GORM
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GormInventoryRepository
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// FindByID finds an inventory record by its ID
func (r *GormInventoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Record, error) {
	var rec inventory.Record
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// FindByProductAndWarehouse finds the record for a product-warehouse pair
func (r *GormInventoryRepository) FindByProductAndWarehouse(ctx context.Context, productID, warehouseID uuid.UUID) (*inventory.Record, error) {
	var rec inventory.Record
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// FindByProduct finds all warehouse records for a product
func (r *GormInventoryRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]inventory.Record, error) {
	var recs []inventory.Record
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

// FindByWarehouse finds all records in a warehouse
func (r *GormInventoryRepository) FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]inventory.Record, error) {
	var recs []inventory.Record
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.Record{}).
			Where("warehouse_id = ?", warehouseID),
		filter,
	)

	if err := query.Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

// FindAll finds all records with filtering
func (r *GormInventoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Record, error) {
	var recs []inventory.Record
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.Record{}), filter)

	if err := query.Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

// FindLowStock returns the aggregated positions of products whose available
// stock is below the threshold. Available quantity is always derived, never
// stored.
func (r *GormInventoryRepository) FindLowStock(ctx context.Context, threshold int64) ([]inventory.ProductStock, error) {
	var stocks []inventory.ProductStock
	if err := r.db.WithContext(ctx).
		Model(&inventory.Record{}).
		Select(
			"product_id",
			"COALESCE(SUM(quantity), 0) AS total",
			"COALESCE(SUM(reserved_quantity), 0) AS reserved",
			"COALESCE(SUM(quantity - reserved_quantity), 0) AS available",
		).
		Group("product_id").
		Having("COALESCE(SUM(quantity - reserved_quantity), 0) < ?", threshold).
		Order("available ASC").
		Scan(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// AggregateByProduct aggregates the stock position of one product across
// warehouses
func (r *GormInventoryRepository) AggregateByProduct(ctx context.Context, productID uuid.UUID) (*inventory.ProductStock, error) {
	var stock inventory.ProductStock
	if err := r.db.WithContext(ctx).
		Model(&inventory.Record{}).
		Select(
			"COALESCE(SUM(quantity), 0) AS total",
			"COALESCE(SUM(reserved_quantity), 0) AS reserved",
			"COALESCE(SUM(quantity - reserved_quantity), 0) AS available",
		).
		Where("product_id = ?", productID).
		Scan(&stock).Error; err != nil {
		return nil, err
	}
	stock.ProductID = productID
	return &stock, nil
}

// Save creates or updates a record
func (r *GormInventoryRepository) Save(ctx context.Context, rec *inventory.Record) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

// SaveWithLock saves with optimistic locking. The domain layer increments
// the version on every mutation, so the previous version is Version-1.
func (r *GormInventoryRepository) SaveWithLock(ctx context.Context, rec *inventory.Record) error {
	result := r.db.WithContext(ctx).
		Model(rec).
		Where("id = ? AND version = ?", rec.ID, rec.Version-1).
		Updates(map[string]interface{}{
			"quantity":          rec.Quantity,
			"reserved_quantity": rec.ReservedQuantity,
			"version":           rec.Version,
			"updated_at":        rec.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete deletes a record
func (r *GormInventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.Record{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts records with optional filters
func (r *GormInventoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&inventory.Record{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormInventoryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, InventoryRecordSortFields, "updated_at")
	query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormInventoryRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "warehouse_id":
			query = query.Where("warehouse_id = ?", value)
		}
	}

	return query
}

// Ensure GormInventoryRepository implements inventory.Repository
var _ inventory.Repository = (*GormInventoryRepository)(nil)
