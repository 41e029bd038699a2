package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/logichain/backend/internal/application/returns"
)

// ReturnHandler handles return lifecycle endpoints
type ReturnHandler struct {
	BaseHandler
	returnService *returns.Service
}

// NewReturnHandler creates a new ReturnHandler
func NewReturnHandler(returnService *returns.Service) *ReturnHandler {
	return &ReturnHandler{returnService: returnService}
}

// Create opens a return request against a delivered order
func (h *ReturnHandler) Create(c *gin.Context) {
	var req returns.CreateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.returnService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// List returns return requests matching the filter. Filtering by order is
// done through the orderId query parameter.
func (h *ReturnHandler) List(c *gin.Context) {
	var filter returns.ReturnListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	results, total, err := h.returnService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, results, total, normalizePage(filter.Page), normalizePageSize(filter.PageSize))
}

// Get returns one return request by ID
func (h *ReturnHandler) Get(c *gin.Context) {
	returnID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.returnService.GetByID(c.Request.Context(), returnID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetByNumber returns one return request by its return number
func (h *ReturnHandler) GetByNumber(c *gin.Context) {
	result, err := h.returnService.GetByReturnNumber(c.Request.Context(), c.Param("returnNumber"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListByOrder returns all return requests opened against an order
func (h *ReturnHandler) ListByOrder(c *gin.Context) {
	orderID, ok := h.parseUUIDParam(c, "orderId")
	if !ok {
		return
	}

	results, err := h.returnService.ListByOrder(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}

// UpdateStatus moves a return request along its lifecycle. The acting
// user is recorded as the processor.
func (h *ReturnHandler) UpdateStatus(c *gin.Context) {
	returnID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req returns.UpdateReturnStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.returnService.UpdateStatus(c.Request.Context(), returnID, req, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// StatusSummary reports return counts by status
func (h *ReturnHandler) StatusSummary(c *gin.Context) {
	summary, err := h.returnService.StatusSummary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}
