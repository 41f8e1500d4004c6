package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryStock holds the current quantity for one ingredient.
// Quantity never goes below zero and is only written through the
// inventory service; the generic PATCH endpoint rejects it.
type InventoryStock struct {
	gorm.Model
	IngredientID   uint            `gorm:"uniqueIndex;not null" json:"ingredientId"`
	Ingredient     Ingredient      `json:"-"`
	Quantity       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"quantity"`
	LastRestocked  *time.Time      `json:"lastRestocked"`
	ExpirationDate *time.Time      `json:"expirationDate"`
}
