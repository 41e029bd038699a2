package logistics

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/logichain/backend/internal/domain/logistics"
	"github.com/logichain/backend/internal/domain/order"
	"github.com/logichain/backend/internal/domain/shared"
)

// ShipmentService handles shipment operations
type ShipmentService struct {
	shipmentRepo logistics.ShipmentRepository
	carrierRepo  logistics.CarrierRepository
	orderRepo    order.Repository
}

// NewShipmentService creates a new ShipmentService
func NewShipmentService(shipmentRepo logistics.ShipmentRepository, carrierRepo logistics.CarrierRepository, orderRepo order.Repository) *ShipmentService {
	return &ShipmentService{
		shipmentRepo: shipmentRepo,
		carrierRepo:  carrierRepo,
		orderRepo:    orderRepo,
	}
}

// Create opens a shipment for an order. An order carries at most one
// shipment, and the order must have reached processing before one can open.
func (s *ShipmentService) Create(ctx context.Context, req CreateShipmentRequest) (*ShipmentResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if o.Status != order.StatusProcessing && o.Status != order.StatusShipped {
		return nil, shared.NewDomainError("INELIGIBLE_ORDER",
			fmt.Sprintf("Shipments can only be opened for processing or shipped orders, order is %s", o.Status))
	}

	exists, err := s.shipmentRepo.ExistsByOrder(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_SHIPMENT",
			fmt.Sprintf("Order %s already has a shipment", o.OrderNumber))
	}

	carrier, err := s.carrierRepo.FindByID(ctx, req.CarrierID)
	if err != nil {
		return nil, err
	}
	if !carrier.Active {
		return nil, shared.NewDomainError("INACTIVE_CARRIER",
			fmt.Sprintf("Carrier %s is not active", carrier.CarrierCode))
	}

	trackingNumber := req.TrackingNumber
	if trackingNumber == "" {
		trackingNumber = logistics.NewTrackingNumber()
	}

	shipment, err := logistics.NewShipment(trackingNumber, req.OrderID, req.CarrierID, req.EstimatedDeliveryDate)
	if err != nil {
		return nil, err
	}

	if err := s.shipmentRepo.Save(ctx, shipment); err != nil {
		return nil, err
	}

	response := ToShipmentResponse(shipment)
	return &response, nil
}

// GetByID retrieves a shipment by ID
func (s *ShipmentService) GetByID(ctx context.Context, shipmentID uuid.UUID) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.FindByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	response := ToShipmentResponse(shipment)
	return &response, nil
}

// Track retrieves a shipment by its tracking number
func (s *ShipmentService) Track(ctx context.Context, trackingNumber string) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.FindByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return nil, err
	}
	response := ToShipmentResponse(shipment)
	return &response, nil
}

// GetByOrder retrieves the shipment of an order
func (s *ShipmentService) GetByOrder(ctx context.Context, orderID uuid.UUID) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToShipmentResponse(shipment)
	return &response, nil
}

// List retrieves shipments with filtering and pagination
func (s *ShipmentService) List(ctx context.Context, filter ShipmentListFilter) ([]ShipmentResponse, int64, error) {
	domainFilter := s.buildFilter(filter)

	shipments, err := s.shipmentRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.shipmentRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToShipmentResponses(shipments), total, nil
}

// UpdateStatus moves a shipment along the carrier lifecycle. Delivering
// records the actual delivery date; failing requires a reason.
func (s *ShipmentService) UpdateStatus(ctx context.Context, shipmentID uuid.UUID, req UpdateShipmentStatusRequest) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.FindByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	target := logistics.ShipmentStatus(req.ShipmentStatus)
	if target == logistics.ShipmentStatusFailed {
		err = shipment.Fail(req.FailureReason)
	} else {
		err = shipment.TransitionTo(target)
	}
	if err != nil {
		return nil, err
	}

	if req.CurrentLocation != "" && !shipment.Status.IsTerminal() {
		if err := shipment.UpdateLocation(req.CurrentLocation); err != nil {
			return nil, err
		}
	}

	if err := s.shipmentRepo.SaveWithLock(ctx, shipment); err != nil {
		return nil, err
	}

	response := ToShipmentResponse(shipment)
	return &response, nil
}

// UpdateLocation records the latest scan location of a shipment
func (s *ShipmentService) UpdateLocation(ctx context.Context, shipmentID uuid.UUID, location string) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.FindByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	if err := shipment.UpdateLocation(location); err != nil {
		return nil, err
	}

	if err := s.shipmentRepo.SaveWithLock(ctx, shipment); err != nil {
		return nil, err
	}

	response := ToShipmentResponse(shipment)
	return &response, nil
}

func (s *ShipmentService) buildFilter(filter ShipmentListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	if filter.OrderID != nil {
		domainFilter.Filters["order_id"] = *filter.OrderID
	}
	if filter.CarrierID != nil {
		domainFilter.Filters["carrier_id"] = *filter.CarrierID
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = string(*filter.Status)
	}

	return domainFilter
}
