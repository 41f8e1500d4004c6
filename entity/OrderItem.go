package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem carries a price snapshot: UnitPrice is the dish price at
// order-creation time and never follows later catalog edits.
type OrderItem struct {
	gorm.Model
	OrderID uint  `gorm:"index;not null" json:"orderId"`
	Order   Order `json:"-"`

	DishID uint `gorm:"index;not null" json:"dishId"`
	Dish   Dish `gorm:"constraint:OnDelete:RESTRICT" json:"-"`

	Quantity            int             `gorm:"not null;default:1" json:"quantity"`
	UnitPrice           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
	Subtotal            decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"subtotal"`
	SpecialInstructions string          `json:"specialInstructions"`
}

// BeforeSave keeps the derived subtotal consistent on every write.
func (oi *OrderItem) BeforeSave(tx *gorm.DB) error {
	oi.Subtotal = oi.UnitPrice.Mul(decimal.NewFromInt(int64(oi.Quantity)))
	return nil
}
