package logistics

import (
	"time"

	"github.com/google/uuid"

	"github.com/logichain/backend/internal/domain/logistics"
)

// ==================== Warehouse DTOs ====================

// CreateWarehouseRequest represents a request to register a warehouse
type CreateWarehouseRequest struct {
	Code     string `json:"code" binding:"required,min=2,max=20"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Location string `json:"location" binding:"max=200"`
	Capacity int64  `json:"capacity" binding:"required,gte=1"`
}

// UpdateWarehouseRequest represents a request to update a warehouse
type UpdateWarehouseRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
	Capacity *int64  `json:"capacity"`
	Active   *bool   `json:"active"`
}

// WarehouseResponse represents a warehouse in responses
type WarehouseResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Location  string    `json:"location,omitempty"`
	Capacity  int64     `json:"capacity"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ==================== Carrier DTOs ====================

// CreateCarrierRequest represents a request to register a carrier
type CreateCarrierRequest struct {
	CarrierCode  string `json:"carrierCode" binding:"required,min=2,max=20"`
	CarrierName  string `json:"carrierName" binding:"required,min=2,max=100"`
	ContactEmail string `json:"contactEmail" binding:"required,email"`
}

// UpdateCarrierRequest represents a request to update a carrier
type UpdateCarrierRequest struct {
	CarrierName  *string `json:"carrierName"`
	ContactEmail *string `json:"contactEmail"`
	Active       *bool   `json:"active"`
}

// CarrierResponse represents a carrier in responses
type CarrierResponse struct {
	ID           uuid.UUID `json:"id"`
	CarrierCode  string    `json:"carrierCode"`
	CarrierName  string    `json:"carrierName"`
	ContactEmail string    `json:"contactEmail"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ==================== Shipment DTOs ====================

// CreateShipmentRequest represents a request to open a shipment for an order.
// The tracking number is generated when the carrier did not issue one.
type CreateShipmentRequest struct {
	OrderID               uuid.UUID  `json:"orderId" binding:"required"`
	CarrierID             uuid.UUID  `json:"carrierId" binding:"required"`
	TrackingNumber        string     `json:"trackingNumber" binding:"omitempty,min=5,max=50"`
	EstimatedDeliveryDate *time.Time `json:"estimatedDeliveryDate"`
}

// UpdateShipmentStatusRequest represents a request to move a shipment along
// the carrier lifecycle. FailureReason is only consulted for FAILED.
type UpdateShipmentStatusRequest struct {
	ShipmentStatus  string `json:"shipmentStatus" binding:"required"`
	CurrentLocation string `json:"currentLocation" binding:"max=200"`
	FailureReason   string `json:"failureReason" binding:"max=500"`
}

// ShipmentListFilter carries list query parameters
type ShipmentListFilter struct {
	Page      int                       `form:"page"`
	PageSize  int                       `form:"pageSize"`
	OrderBy   string                    `form:"orderBy"`
	OrderDir  string                    `form:"orderDir"`
	Search    string                    `form:"search"`
	OrderID   *uuid.UUID                `form:"orderId"`
	CarrierID *uuid.UUID                `form:"carrierId"`
	Status    *logistics.ShipmentStatus `form:"shipmentStatus"`
}

// ShipmentResponse represents a shipment in responses
type ShipmentResponse struct {
	ID                    uuid.UUID  `json:"id"`
	TrackingNumber        string     `json:"trackingNumber"`
	OrderID               uuid.UUID  `json:"orderId"`
	CarrierID             uuid.UUID  `json:"carrierId"`
	ShipmentStatus        string     `json:"shipmentStatus"`
	CurrentLocation       string     `json:"currentLocation,omitempty"`
	EstimatedDeliveryDate *time.Time `json:"estimatedDeliveryDate,omitempty"`
	ActualDeliveryDate    *time.Time `json:"actualDeliveryDate,omitempty"`
	FailureReason         string     `json:"failureReason,omitempty"`
	Version               int        `json:"version"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

// ==================== Converters ====================

// ToWarehouseResponse converts a domain warehouse to its response shape
func ToWarehouseResponse(w *logistics.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:        w.ID,
		Code:      w.Code,
		Name:      w.Name,
		Location:  w.Location,
		Capacity:  w.Capacity,
		Active:    w.Active,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// ToWarehouseResponses converts domain warehouses to their response shape
func ToWarehouseResponses(warehouses []logistics.Warehouse) []WarehouseResponse {
	responses := make([]WarehouseResponse, 0, len(warehouses))
	for i := range warehouses {
		responses = append(responses, ToWarehouseResponse(&warehouses[i]))
	}
	return responses
}

// ToCarrierResponse converts a domain carrier to its response shape
func ToCarrierResponse(c *logistics.Carrier) CarrierResponse {
	return CarrierResponse{
		ID:           c.ID,
		CarrierCode:  c.CarrierCode,
		CarrierName:  c.CarrierName,
		ContactEmail: c.ContactEmail,
		Active:       c.Active,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// ToCarrierResponses converts domain carriers to their response shape
func ToCarrierResponses(carriers []logistics.Carrier) []CarrierResponse {
	responses := make([]CarrierResponse, 0, len(carriers))
	for i := range carriers {
		responses = append(responses, ToCarrierResponse(&carriers[i]))
	}
	return responses
}

// ToShipmentResponse converts a domain shipment to its response shape
func ToShipmentResponse(s *logistics.Shipment) ShipmentResponse {
	return ShipmentResponse{
		ID:                    s.ID,
		TrackingNumber:        s.TrackingNumber,
		OrderID:               s.OrderID,
		CarrierID:             s.CarrierID,
		ShipmentStatus:        s.Status.String(),
		CurrentLocation:       s.CurrentLocation,
		EstimatedDeliveryDate: s.EstimatedDeliveryDate,
		ActualDeliveryDate:    s.ActualDeliveryDate,
		FailureReason:         s.FailureReason,
		Version:               s.Version,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}

// ToShipmentResponses converts domain shipments to their response shape
func ToShipmentResponses(shipments []logistics.Shipment) []ShipmentResponse {
	responses := make([]ShipmentResponse, 0, len(shipments))
	for i := range shipments {
		responses = append(responses, ToShipmentResponse(&shipments[i]))
	}
	return responses
}
