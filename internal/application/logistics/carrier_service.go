package logistics

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/logichain/backend/internal/domain/logistics"
	"github.com/logichain/backend/internal/domain/shared"
)

// CarrierService handles carrier operations
type CarrierService struct {
	carrierRepo logistics.CarrierRepository
}

// NewCarrierService creates a new CarrierService
func NewCarrierService(carrierRepo logistics.CarrierRepository) *CarrierService {
	return &CarrierService{carrierRepo: carrierRepo}
}

// Create registers a new carrier
func (s *CarrierService) Create(ctx context.Context, req CreateCarrierRequest) (*CarrierResponse, error) {
	taken, err := s.carrierRepo.ExistsByCode(ctx, req.CarrierCode)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("DUPLICATE_CODE", fmt.Sprintf("Carrier code %s is already in use", req.CarrierCode))
	}

	c, err := logistics.NewCarrier(req.CarrierCode, req.CarrierName, req.ContactEmail)
	if err != nil {
		return nil, err
	}

	if err := s.carrierRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToCarrierResponse(c)
	return &response, nil
}

// GetByID retrieves a carrier by ID
func (s *CarrierService) GetByID(ctx context.Context, carrierID uuid.UUID) (*CarrierResponse, error) {
	c, err := s.carrierRepo.FindByID(ctx, carrierID)
	if err != nil {
		return nil, err
	}
	response := ToCarrierResponse(c)
	return &response, nil
}

// List retrieves carriers with pagination
func (s *CarrierService) List(ctx context.Context, filter shared.Filter) ([]CarrierResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	carriers, err := s.carrierRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.carrierRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToCarrierResponses(carriers), total, nil
}

// Update updates a carrier's details
func (s *CarrierService) Update(ctx context.Context, carrierID uuid.UUID, req UpdateCarrierRequest) (*CarrierResponse, error) {
	c, err := s.carrierRepo.FindByID(ctx, carrierID)
	if err != nil {
		return nil, err
	}

	name := c.CarrierName
	if req.CarrierName != nil {
		name = *req.CarrierName
	}
	email := c.ContactEmail
	if req.ContactEmail != nil {
		email = *req.ContactEmail
	}

	if err := c.Update(name, email); err != nil {
		return nil, err
	}
	if req.Active != nil && !*req.Active {
		c.Deactivate()
	}

	if err := s.carrierRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToCarrierResponse(c)
	return &response, nil
}

// Delete removes a carrier
func (s *CarrierService) Delete(ctx context.Context, carrierID uuid.UUID) error {
	if _, err := s.carrierRepo.FindByID(ctx, carrierID); err != nil {
		return err
	}
	return s.carrierRepo.Delete(ctx, carrierID)
}
