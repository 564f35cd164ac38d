package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer mirrors a Braintree customer. EntityID points at the owning payer
// record; it stays nil for customers first observed through a transaction
// sync, where the gateway object carries no local ownership information.
type Customer struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	BraintreeID string     `gorm:"column:braintree_id;unique;not null;size:100;index" json:"braintree_id"`
	EntityID    *uuid.UUID `gorm:"column:entity_id;type:uuid;unique" json:"entity_id,omitempty"`

	FirstName string `gorm:"size:255" json:"first_name"`
	LastName  string `gorm:"size:255" json:"last_name"`
	Company   string `gorm:"size:255" json:"company"`
	Email     string `gorm:"size:255;index" json:"email"`
	Phone     string `gorm:"size:50" json:"phone"`
	Fax       string `gorm:"size:50" json:"fax"`
	Website   string `gorm:"size:255" json:"website"`

	BraintreeCreatedAt *time.Time `json:"braintree_created_at,omitempty"`
	BraintreeUpdatedAt *time.Time `json:"braintree_updated_at,omitempty"`

	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Customer) TableName() string {
	return "customers"
}
