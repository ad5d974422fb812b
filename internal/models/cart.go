// internal/models/cart.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart holds pre-purchase lines for a customer, or for nobody when the
// shopper is anonymous. The uuid primary key is the only handle an anonymous
// shopper ever gets, so cart ids must stay opaque.
type Cart struct {
	BaseModel
	CustomerID *uuid.UUID `json:"customer_id" gorm:"type:uuid;uniqueIndex"`
	Customer   *Customer  `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`

	Items []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`

	// Derived at query time.
	TotalPrice decimal.Decimal `json:"total_price" gorm:"-"`
}

func (c *Cart) IsAnonymous() bool {
	return c.CustomerID == nil
}

type CartItem struct {
	BaseModel
	CartID    uuid.UUID `json:"cart_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_product"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_product"`
	Product   *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int       `json:"quantity" gorm:"not null;check:quantity >= 1"`

	// Derived at query time.
	SubTotalPrice decimal.Decimal `json:"sub_total_price" gorm:"-"`
}

// Price fills the derived price fields from the loaded product lines.
func (c *Cart) Price() {
	total := decimal.Zero
	for i := range c.Items {
		item := &c.Items[i]
		if item.Product != nil {
			item.SubTotalPrice = item.Product.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
			total = total.Add(item.SubTotalPrice)
		}
	}
	c.TotalPrice = total
}
