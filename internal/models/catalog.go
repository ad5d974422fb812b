// internal/models/catalog.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Collection struct {
	BaseModel
	Title string `json:"title" gorm:"size:32;not null"`

	// Derived at query time, never stored.
	ProductsCount int64 `json:"products_count" gorm:"->;-:migration"`

	Products []Product `json:"products,omitempty" gorm:"foreignKey:CollectionID"`
}

type Product struct {
	BaseModel
	Title        string          `json:"title" gorm:"size:128;not null"`
	CollectionID uuid.UUID       `json:"collection_id" gorm:"type:uuid;not null;index"`
	Collection   *Collection     `json:"collection,omitempty" gorm:"foreignKey:CollectionID"`
	UnitPrice    decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	OldUnitPrice decimal.Decimal `json:"old_unit_price" gorm:"type:decimal(10,2)"`
	Description  string          `json:"description" gorm:"type:text"`
	Stock        int             `json:"stock" gorm:"not null;check:stock >= 0"`
}
