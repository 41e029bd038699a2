package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/logichain/backend/internal/application/inventory"
)

// InventoryHandler handles stock accounting endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventory.Service
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventory.Service) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// List returns inventory records matching the filter
func (h *InventoryHandler) List(c *gin.Context) {
	var filter inventory.RecordListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	records, total, err := h.inventoryService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, records, total, normalizePage(filter.Page), normalizePageSize(filter.PageSize))
}

// Get returns one inventory record by ID
func (h *InventoryHandler) Get(c *gin.Context) {
	recordID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	record, err := h.inventoryService.GetByID(c.Request.Context(), recordID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, record)
}

// StockForProduct returns aggregated stock levels for a product across
// all warehouses
func (h *InventoryHandler) StockForProduct(c *gin.Context) {
	productID, ok := h.parseUUIDParam(c, "productId")
	if !ok {
		return
	}

	stock, err := h.inventoryService.StockFor(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stock)
}

// LowStock returns products whose available quantity is below the
// configured threshold
func (h *InventoryHandler) LowStock(c *gin.Context) {
	stocks, err := h.inventoryService.LowStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stocks)
}

// Create registers an inventory record for a product and warehouse pair
func (h *InventoryHandler) Create(c *gin.Context) {
	var req inventory.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	record, err := h.inventoryService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, record)
}

// Receive books incoming stock into a warehouse
func (h *InventoryHandler) Receive(c *gin.Context) {
	var req inventory.ReceiveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	record, err := h.inventoryService.Receive(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, record)
}

// Adjust sets the on-hand quantity of a record, recording the delta in
// the stock ledger
func (h *InventoryHandler) Adjust(c *gin.Context) {
	recordID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req inventory.AdjustRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	record, err := h.inventoryService.Adjust(c.Request.Context(), recordID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, record)
}

// Delete removes an inventory record
func (h *InventoryHandler) Delete(c *gin.Context) {
	recordID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.inventoryService.Delete(c.Request.Context(), recordID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Transactions returns the stock ledger for a product
func (h *InventoryHandler) Transactions(c *gin.Context) {
	productID, ok := h.parseUUIDParam(c, "productId")
	if !ok {
		return
	}

	var filter inventory.RecordListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	transactions, err := h.inventoryService.Transactions(c.Request.Context(), productID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, transactions)
}
