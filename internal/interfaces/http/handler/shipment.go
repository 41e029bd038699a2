package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/logichain/backend/internal/application/logistics"
)

// ShipmentHandler handles shipment tracking endpoints
type ShipmentHandler struct {
	BaseHandler
	shipmentService *logistics.ShipmentService
}

// NewShipmentHandler creates a new ShipmentHandler
func NewShipmentHandler(shipmentService *logistics.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{shipmentService: shipmentService}
}

// Create opens a shipment for an order
func (h *ShipmentHandler) Create(c *gin.Context) {
	var req logistics.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	shipment, err := h.shipmentService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, shipment)
}

// List returns shipments matching the filter
func (h *ShipmentHandler) List(c *gin.Context) {
	var filter logistics.ShipmentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	shipments, total, err := h.shipmentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, shipments, total, normalizePage(filter.Page), normalizePageSize(filter.PageSize))
}

// Get returns one shipment by ID
func (h *ShipmentHandler) Get(c *gin.Context) {
	shipmentID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	shipment, err := h.shipmentService.GetByID(c.Request.Context(), shipmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, shipment)
}

// Track returns one shipment by its tracking number
func (h *ShipmentHandler) Track(c *gin.Context) {
	shipment, err := h.shipmentService.Track(c.Request.Context(), c.Param("trackingNumber"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, shipment)
}

// GetByOrder returns the shipment opened for an order
func (h *ShipmentHandler) GetByOrder(c *gin.Context) {
	orderID, ok := h.parseUUIDParam(c, "orderId")
	if !ok {
		return
	}

	shipment, err := h.shipmentService.GetByOrder(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, shipment)
}

// UpdateStatus moves a shipment along the carrier lifecycle
func (h *ShipmentHandler) UpdateStatus(c *gin.Context) {
	shipmentID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req logistics.UpdateShipmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	shipment, err := h.shipmentService.UpdateStatus(c.Request.Context(), shipmentID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, shipment)
}
