package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/logichain/backend/internal/domain/inventory"
)

// CreateRecordRequest represents a request to open a stock record for a
// product-warehouse pair
type CreateRecordRequest struct {
	ProductID   uuid.UUID `json:"productId" binding:"required"`
	WarehouseID uuid.UUID `json:"warehouseId" binding:"required"`
	Quantity    int64     `json:"quantity" binding:"gte=0"`
}

// ReceiveStockRequest represents incoming stock for a product-warehouse pair.
// A record is created on the fly when the pair has none yet.
type ReceiveStockRequest struct {
	ProductID   uuid.UUID `json:"productId" binding:"required"`
	WarehouseID uuid.UUID `json:"warehouseId" binding:"required"`
	Quantity    int64     `json:"quantity" binding:"required,gt=0"`
	Reason      string    `json:"reason" binding:"max=500"`
}

// AdjustRecordRequest represents a stock count correction
type AdjustRecordRequest struct {
	Quantity int64  `json:"quantity" binding:"gte=0"`
	Reason   string `json:"reason" binding:"required,min=1,max=500"`
}

// RecordListFilter carries list query parameters
type RecordListFilter struct {
	Page        int        `form:"page"`
	PageSize    int        `form:"pageSize"`
	OrderBy     string     `form:"orderBy"`
	OrderDir    string     `form:"orderDir"`
	ProductID   *uuid.UUID `form:"productId"`
	WarehouseID *uuid.UUID `form:"warehouseId"`
}

// RecordResponse represents one warehouse stock record in responses
type RecordResponse struct {
	ID                uuid.UUID `json:"id"`
	ProductID         uuid.UUID `json:"productId"`
	WarehouseID       uuid.UUID `json:"warehouseId"`
	Quantity          int64     `json:"quantity"`
	ReservedQuantity  int64     `json:"reservedQuantity"`
	AvailableQuantity int64     `json:"availableQuantity"`
	Version           int       `json:"version"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ProductStockResponse is the aggregated position of a product across warehouses
type ProductStockResponse struct {
	ProductID         uuid.UUID `json:"productId"`
	TotalQuantity     int64     `json:"totalQuantity"`
	ReservedQuantity  int64     `json:"reservedQuantity"`
	AvailableQuantity int64     `json:"availableQuantity"`
}

// TransactionResponse represents one stock ledger entry in responses
type TransactionResponse struct {
	ID            uuid.UUID  `json:"id"`
	RecordID      uuid.UUID  `json:"recordId"`
	ProductID     uuid.UUID  `json:"productId"`
	WarehouseID   uuid.UUID  `json:"warehouseId"`
	Type          string     `json:"type"`
	Quantity      int64      `json:"quantity"`
	ReferenceID   *uuid.UUID `json:"referenceId,omitempty"`
	ReferenceType string     `json:"referenceType,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// ToRecordResponse converts a domain record to its response shape
func ToRecordResponse(r *inventory.Record) RecordResponse {
	return RecordResponse{
		ID:                r.ID,
		ProductID:         r.ProductID,
		WarehouseID:       r.WarehouseID,
		Quantity:          r.Quantity,
		ReservedQuantity:  r.ReservedQuantity,
		AvailableQuantity: r.Available(),
		Version:           r.Version,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

// ToRecordResponses converts domain records to their response shape
func ToRecordResponses(records []inventory.Record) []RecordResponse {
	responses := make([]RecordResponse, 0, len(records))
	for i := range records {
		responses = append(responses, ToRecordResponse(&records[i]))
	}
	return responses
}

// ToProductStockResponse converts an aggregated position to its response shape
func ToProductStockResponse(ps inventory.ProductStock) ProductStockResponse {
	return ProductStockResponse{
		ProductID:         ps.ProductID,
		TotalQuantity:     ps.Total,
		ReservedQuantity:  ps.Reserved,
		AvailableQuantity: ps.Available,
	}
}

// ToProductStockResponses converts aggregated positions to their response shape
func ToProductStockResponses(stocks []inventory.ProductStock) []ProductStockResponse {
	responses := make([]ProductStockResponse, 0, len(stocks))
	for _, ps := range stocks {
		responses = append(responses, ToProductStockResponse(ps))
	}
	return responses
}

// ToTransactionResponses converts ledger entries to their response shape
func ToTransactionResponses(txs []inventory.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		responses = append(responses, TransactionResponse{
			ID:            tx.ID,
			RecordID:      tx.RecordID,
			ProductID:     tx.ProductID,
			WarehouseID:   tx.WarehouseID,
			Type:          tx.Type.String(),
			Quantity:      tx.Quantity,
			ReferenceID:   tx.ReferenceID,
			ReferenceType: tx.ReferenceType,
			Reason:        tx.Reason,
			CreatedAt:     tx.CreatedAt,
		})
	}
	return responses
}
