package logistics

import (
	"strings"
	"time"

	"github.com/logichain/backend/internal/domain/shared"
)

// Warehouse represents a stock-holding location
type Warehouse struct {
	shared.BaseAggregateRoot
	Code     string `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name     string `gorm:"type:varchar(100);not null"`
	Location string `gorm:"type:varchar(200)"`
	Capacity int64  `gorm:"not null"`
	Active   bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}

// NewWarehouse creates a new warehouse
func NewWarehouse(code, name, location string, capacity int64) (*Warehouse, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) < 2 || len(code) > 20 {
		return nil, shared.NewDomainError("INVALID_CODE", "Warehouse code must be between 2 and 20 characters")
	}
	name = strings.TrimSpace(name)
	if len(name) < 2 || len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Warehouse name must be between 2 and 100 characters")
	}
	if capacity < 1 {
		return nil, shared.NewDomainError("INVALID_CAPACITY", "Warehouse capacity must be at least 1")
	}

	return &Warehouse{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Location:          location,
		Capacity:          capacity,
		Active:            true,
	}, nil
}

// Update updates the warehouse details
func (w *Warehouse) Update(name, location string, capacity int64) error {
	name = strings.TrimSpace(name)
	if len(name) < 2 || len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Warehouse name must be between 2 and 100 characters")
	}
	if capacity < 1 {
		return shared.NewDomainError("INVALID_CAPACITY", "Warehouse capacity must be at least 1")
	}

	w.Name = name
	w.Location = location
	w.Capacity = capacity
	w.UpdatedAt = time.Now()
	w.IncrementVersion()

	return nil
}

// Deactivate takes the warehouse out of service
func (w *Warehouse) Deactivate() {
	w.Active = false
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
}
