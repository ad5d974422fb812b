// internal/models/customer.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is the commerce profile wrapping a user identity. Exactly one
// customer exists per user; it is provisioned when the user registers.
type Customer struct {
	BaseModel
	UserID     uuid.UUID      `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	User       *User          `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Phone      string         `json:"phone" gorm:"size:20"`
	BirthDate  *time.Time     `json:"birth_date"`
	Sex        Sex            `json:"sex" gorm:"type:varchar(1);not null;default:'m'"`
	Membership MembershipTier `json:"membership" gorm:"type:varchar(1);not null;default:'s'"`

	Addresses []Address `json:"addresses,omitempty" gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}

type Address struct {
	BaseModel
	CustomerID uuid.UUID `json:"customer_id" gorm:"type:uuid;not null;index"`
	Customer   *Customer `json:"-" gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Label      string    `json:"label" gorm:"size:32;not null"`
	Street     string    `json:"street" gorm:"size:64;not null"`
	City       string    `json:"city" gorm:"size:64;not null"`
	State      string    `json:"state" gorm:"size:64;not null"`
	Country    Country   `json:"country" gorm:"type:varchar(2);not null;default:'bd'"`
}
