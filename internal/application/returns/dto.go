package returns

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/logichain/backend/internal/domain/returns"
)

// CreateReturnRequest represents a request to open a return against an order
type CreateReturnRequest struct {
	OrderID     uuid.UUID `json:"orderId" binding:"required"`
	Reason      string    `json:"reason" binding:"required"`
	Description string    `json:"description" binding:"required"`
}

// UpdateReturnStatusRequest represents a request to move a return to a new status
type UpdateReturnStatusRequest struct {
	ReturnStatus    string `json:"returnStatus" binding:"required"`
	ProcessingNotes string `json:"processingNotes" binding:"max=1000"`
}

// ReturnListFilter carries list query parameters
type ReturnListFilter struct {
	Page       int             `form:"page"`
	PageSize   int             `form:"pageSize"`
	OrderBy    string          `form:"orderBy"`
	OrderDir   string          `form:"orderDir"`
	Search     string          `form:"search"`
	OrderID    *uuid.UUID      `form:"orderId"`
	CustomerID *uuid.UUID      `form:"customerId"`
	Status     *returns.Status `form:"returnStatus"`
	Reason     *string         `form:"reason"`
	StartDate  *time.Time      `form:"startDate"`
	EndDate    *time.Time      `form:"endDate"`
}

// ReturnResponse represents a return request in responses
type ReturnResponse struct {
	ID              uuid.UUID       `json:"id"`
	ReturnNumber    string          `json:"returnNumber"`
	OrderID         uuid.UUID       `json:"orderId"`
	OrderNumber     string          `json:"orderNumber"`
	CustomerID      uuid.UUID       `json:"customerId"`
	ReturnStatus    string          `json:"returnStatus"`
	Reason          string          `json:"reason"`
	Description     string          `json:"description"`
	RefundAmount    decimal.Decimal `json:"refundAmount"`
	RequestedAt     time.Time       `json:"requestedAt"`
	ProcessedAt     *time.Time      `json:"processedAt,omitempty"`
	ProcessedBy     *uuid.UUID      `json:"processedBy,omitempty"`
	ProcessingNotes string          `json:"processingNotes,omitempty"`
	Version         int             `json:"version"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ReturnStatusSummary reports return counts by status
type ReturnStatusSummary struct {
	Requested int64 `json:"requested"`
	Approved  int64 `json:"approved"`
	Received  int64 `json:"received"`
	Refunded  int64 `json:"refunded"`
	Rejected  int64 `json:"rejected"`
	Total     int64 `json:"total"`
}

// ToReturnResponse converts a domain return to its response shape
func ToReturnResponse(r *returns.Return) ReturnResponse {
	return ReturnResponse{
		ID:              r.ID,
		ReturnNumber:    r.ReturnNumber,
		OrderID:         r.OrderID,
		OrderNumber:     r.OrderNumber,
		CustomerID:      r.CustomerID,
		ReturnStatus:    r.Status.String(),
		Reason:          string(r.Reason),
		Description:     r.Description,
		RefundAmount:    r.RefundAmount,
		RequestedAt:     r.RequestedAt,
		ProcessedAt:     r.ProcessedAt,
		ProcessedBy:     r.ProcessedBy,
		ProcessingNotes: r.ProcessingNotes,
		Version:         r.Version,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// ToReturnResponses converts domain returns to their response shape
func ToReturnResponses(rets []returns.Return) []ReturnResponse {
	responses := make([]ReturnResponse, 0, len(rets))
	for i := range rets {
		responses = append(responses, ToReturnResponse(&rets[i]))
	}
	return responses
}
