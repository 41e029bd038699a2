package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/logichain/backend/internal/domain/shared"
)

// TransactionType represents the type of inventory movement
type TransactionType string

const (
	// TransactionTypeReceive is stock coming into a warehouse
	TransactionTypeReceive TransactionType = "RECEIVE"
	// TransactionTypeReserve is stock held for a confirmed order
	TransactionTypeReserve TransactionType = "RESERVE"
	// TransactionTypeRelease is a reservation returned to the pool
	TransactionTypeRelease TransactionType = "RELEASE"
	// TransactionTypeConsume is reserved stock shipped out
	TransactionTypeConsume TransactionType = "CONSUME"
	// TransactionTypeAdjust is a stock count correction
	TransactionTypeAdjust TransactionType = "ADJUST"
)

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// IsValid returns true if the transaction type is known
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeReceive, TransactionTypeReserve, TransactionTypeRelease,
		TransactionTypeConsume, TransactionTypeAdjust:
		return true
	}
	return false
}

// Transaction is one immutable entry in the stock movement ledger.
// Every mutation of a Record writes a matching Transaction so the history
// of a product's stock position can be audited.
type Transaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RecordID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type        TransactionType `gorm:"type:varchar(20);not null"`
	Quantity    int64           `gorm:"not null"`
	// ReferenceID points at the document that caused the movement
	// (order ID for reserve/release/consume, return ID for return receipts).
	ReferenceID   *uuid.UUID `gorm:"type:uuid;index"`
	ReferenceType string     `gorm:"type:varchar(30)"`
	Reason        string     `gorm:"type:varchar(500)"`
	CreatedAt     time.Time
}

// TableName returns the table name for GORM
func (Transaction) TableName() string {
	return "inventory_transactions"
}

// NewTransaction creates a new ledger entry
func NewTransaction(r *Record, txType TransactionType, quantity int64, referenceID *uuid.UUID, referenceType, reason string) (*Transaction, error) {
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Unknown inventory transaction type")
	}
	if quantity <= 0 && txType != TransactionTypeAdjust {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Transaction quantity must be positive")
	}

	return &Transaction{
		ID:            uuid.New(),
		RecordID:      r.ID,
		ProductID:     r.ProductID,
		WarehouseID:   r.WarehouseID,
		Type:          txType,
		Quantity:      quantity,
		ReferenceID:   referenceID,
		ReferenceType: referenceType,
		Reason:        reason,
		CreatedAt:     time.Now(),
	}, nil
}
