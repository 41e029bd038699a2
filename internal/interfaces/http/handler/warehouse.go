package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/logichain/backend/internal/application/logistics"
	"github.com/logichain/backend/internal/domain/shared"
	"github.com/logichain/backend/internal/interfaces/http/dto"
)

// WarehouseHandler handles warehouse registry endpoints
type WarehouseHandler struct {
	BaseHandler
	warehouseService *logistics.WarehouseService
}

// NewWarehouseHandler creates a new WarehouseHandler
func NewWarehouseHandler(warehouseService *logistics.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{warehouseService: warehouseService}
}

// List returns warehouses matching the filter
func (h *WarehouseHandler) List(c *gin.Context) {
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

	warehouses, total, err := h.warehouseService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, warehouses, total, req.Page, req.PageSize)
}

// Get returns one warehouse by ID
func (h *WarehouseHandler) Get(c *gin.Context) {
	warehouseID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	warehouse, err := h.warehouseService.GetByID(c.Request.Context(), warehouseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, warehouse)
}

// Create registers a warehouse
func (h *WarehouseHandler) Create(c *gin.Context) {
	var req logistics.CreateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	warehouse, err := h.warehouseService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, warehouse)
}

// Update modifies a warehouse
func (h *WarehouseHandler) Update(c *gin.Context) {
	warehouseID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req logistics.UpdateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	warehouse, err := h.warehouseService.Update(c.Request.Context(), warehouseID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, warehouse)
}

// Delete removes a warehouse from the registry
func (h *WarehouseHandler) Delete(c *gin.Context) {
	warehouseID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.warehouseService.Delete(c.Request.Context(), warehouseID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
