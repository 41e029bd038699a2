package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/logichain/backend/internal/application/logistics"
	"github.com/logichain/backend/internal/domain/shared"
	"github.com/logichain/backend/internal/interfaces/http/dto"
)

// CarrierHandler handles carrier registry endpoints
type CarrierHandler struct {
	BaseHandler
	carrierService *logistics.CarrierService
}

// NewCarrierHandler creates a new CarrierHandler
func NewCarrierHandler(carrierService *logistics.CarrierService) *CarrierHandler {
	return &CarrierHandler{carrierService: carrierService}
}

// List returns carriers matching the filter
func (h *CarrierHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	req.Normalize()

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
	}

	carriers, total, err := h.carrierService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, carriers, total, req.Page, req.PageSize)
}

// Get returns one carrier by ID
func (h *CarrierHandler) Get(c *gin.Context) {
	carrierID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	carrier, err := h.carrierService.GetByID(c.Request.Context(), carrierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, carrier)
}

// Create registers a carrier
func (h *CarrierHandler) Create(c *gin.Context) {
	var req logistics.CreateCarrierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	carrier, err := h.carrierService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, carrier)
}

// Update modifies a carrier
func (h *CarrierHandler) Update(c *gin.Context) {
	carrierID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req logistics.UpdateCarrierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	carrier, err := h.carrierService.Update(c.Request.Context(), carrierID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, carrier)
}

// Delete removes a carrier from the registry
func (h *CarrierHandler) Delete(c *gin.Context) {
	carrierID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.carrierService.Delete(c.Request.Context(), carrierID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
