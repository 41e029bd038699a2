package logistics

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/logichain/backend/internal/domain/logistics"
	"github.com/logichain/backend/internal/domain/shared"
)

// WarehouseService handles warehouse operations
type WarehouseService struct {
	warehouseRepo logistics.WarehouseRepository
}

// NewWarehouseService creates a new WarehouseService
func NewWarehouseService(warehouseRepo logistics.WarehouseRepository) *WarehouseService {
	return &WarehouseService{warehouseRepo: warehouseRepo}
}

// Create registers a new warehouse
func (s *WarehouseService) Create(ctx context.Context, req CreateWarehouseRequest) (*WarehouseResponse, error) {
	taken, err := s.warehouseRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("DUPLICATE_CODE", fmt.Sprintf("Warehouse code %s is already in use", req.Code))
	}

	w, err := logistics.NewWarehouse(req.Code, req.Name, req.Location, req.Capacity)
	if err != nil {
		return nil, err
	}

	if err := s.warehouseRepo.Save(ctx, w); err != nil {
		return nil, err
	}

	response := ToWarehouseResponse(w)
	return &response, nil
}

// GetByID retrieves a warehouse by ID
func (s *WarehouseService) GetByID(ctx context.Context, warehouseID uuid.UUID) (*WarehouseResponse, error) {
	w, err := s.warehouseRepo.FindByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	response := ToWarehouseResponse(w)
	return &response, nil
}

// GetByCode retrieves a warehouse by its code
func (s *WarehouseService) GetByCode(ctx context.Context, code string) (*WarehouseResponse, error) {
	w, err := s.warehouseRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	response := ToWarehouseResponse(w)
	return &response, nil
}

// List retrieves warehouses with pagination
func (s *WarehouseService) List(ctx context.Context, filter shared.Filter) ([]WarehouseResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	warehouses, err := s.warehouseRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.warehouseRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToWarehouseResponses(warehouses), total, nil
}

// Update updates a warehouse's details
func (s *WarehouseService) Update(ctx context.Context, warehouseID uuid.UUID, req UpdateWarehouseRequest) (*WarehouseResponse, error) {
	w, err := s.warehouseRepo.FindByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	name := w.Name
	if req.Name != nil {
		name = *req.Name
	}
	location := w.Location
	if req.Location != nil {
		location = *req.Location
	}
	capacity := w.Capacity
	if req.Capacity != nil {
		capacity = *req.Capacity
	}

	if err := w.Update(name, location, capacity); err != nil {
		return nil, err
	}
	if req.Active != nil && !*req.Active {
		w.Deactivate()
	}

	if err := s.warehouseRepo.Save(ctx, w); err != nil {
		return nil, err
	}

	response := ToWarehouseResponse(w)
	return &response, nil
}

// Delete removes a warehouse
func (s *WarehouseService) Delete(ctx context.Context, warehouseID uuid.UUID) error {
	if _, err := s.warehouseRepo.FindByID(ctx, warehouseID); err != nil {
		return err
	}
	return s.warehouseRepo.Delete(ctx, warehouseID)
}
