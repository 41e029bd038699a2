package logistics

import (
	"net/mail"
	"strings"
	"time"

	"github.com/logichain/backend/internal/domain/shared"
)

// Carrier represents a shipping company that moves orders to customers
type Carrier struct {
	shared.BaseAggregateRoot
	CarrierCode  string `gorm:"type:varchar(20);not null;uniqueIndex"`
	CarrierName  string `gorm:"type:varchar(100);not null"`
	ContactEmail string `gorm:"type:varchar(200);not null"`
	Active       bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Carrier) TableName() string {
	return "carriers"
}

// NewCarrier creates a new carrier
func NewCarrier(code, name, contactEmail string) (*Carrier, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) < 2 || len(code) > 20 {
		return nil, shared.NewDomainError("INVALID_CODE", "Carrier code must be between 2 and 20 characters")
	}
	name = strings.TrimSpace(name)
	if len(name) < 2 || len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Carrier name must be between 2 and 100 characters")
	}
	if _, err := mail.ParseAddress(contactEmail); err != nil {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Carrier contact email is invalid")
	}

	return &Carrier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CarrierCode:       code,
		CarrierName:       name,
		ContactEmail:      contactEmail,
		Active:            true,
	}, nil
}

// Update updates the carrier details
func (c *Carrier) Update(name, contactEmail string) error {
	name = strings.TrimSpace(name)
	if len(name) < 2 || len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Carrier name must be between 2 and 100 characters")
	}
	if _, err := mail.ParseAddress(contactEmail); err != nil {
		return shared.NewDomainError("INVALID_EMAIL", "Carrier contact email is invalid")
	}

	c.CarrierName = name
	c.ContactEmail = contactEmail
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Deactivate stops assigning new shipments to this carrier
func (c *Carrier) Deactivate() {
	c.Active = false
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}
