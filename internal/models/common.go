// internal/models/common.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Enums
type Sex string

const (
	SexMale   Sex = "m"
	SexFemale Sex = "f"
)

type MembershipTier string

const (
	MembershipBronze MembershipTier = "b"
	MembershipSilver MembershipTier = "s"
	MembershipGold   MembershipTier = "g"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusFailed    OrderStatus = "failed"
	OrderStatusConfirmed OrderStatus = "confirmed"
)

type Country string

const (
	CountryBangladesh Country = "bd"
)

// EntityType discriminates the target of a polymorphic association
// (tagged items, liked items).
type EntityType string

const (
	EntityTypeProduct    EntityType = "product"
	EntityTypeCollection EntityType = "collection"
)

func (t EntityType) Valid() bool {
	switch t {
	case EntityTypeProduct, EntityTypeCollection:
		return true
	}
	return false
}
