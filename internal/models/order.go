// internal/models/order.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is the immutable record of a completed purchase. Only the status
// column may change after creation.
type Order struct {
	BaseModel
	CustomerID uuid.UUID   `json:"customer_id" gorm:"type:uuid;not null;index"`
	Customer   *Customer   `json:"customer,omitempty" gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT"`
	Status     OrderStatus `json:"status" gorm:"type:varchar(10);not null;default:'pending'"`

	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID"`

	// Derived at query time.
	TotalPrice decimal.Decimal `json:"total_price" gorm:"-"`
}

// OrderItem freezes (product, unit price, quantity) as they were at
// purchase time.
type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID       `json:"order_id" gorm:"type:uuid;not null;uniqueIndex:idx_order_product"`
	ProductID uuid.UUID       `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_order_product"`
	Product   *Product        `json:"product,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	Quantity  int             `json:"quantity" gorm:"not null;check:quantity >= 1"`

	// Derived at query time.
	SubTotalPrice decimal.Decimal `json:"sub_total_price" gorm:"-"`
}

// Price fills the derived price fields from the frozen unit prices.
func (o *Order) Price() {
	total := decimal.Zero
	for i := range o.Items {
		item := &o.Items[i]
		item.SubTotalPrice = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(item.SubTotalPrice)
	}
	o.TotalPrice = total
}

// CanTransitionTo reports whether the status change is allowed. Orders only
// move out of pending.
func (o *Order) CanTransitionTo(next OrderStatus) bool {
	if o.Status != OrderStatusPending {
		return false
	}
	return next == OrderStatusConfirmed || next == OrderStatusFailed
}
