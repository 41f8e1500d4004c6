package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ledger transaction types.
const (
	TxRestock    = "RESTOCK"
	TxUsage      = "USAGE"
	TxAdjustment = "ADJUSTMENT"
	TxWaste      = "WASTE"
	TxReturn     = "RETURN"
)

var TransactionTypes = []string{TxRestock, TxUsage, TxAdjustment, TxWaste, TxReturn}

// InventoryTransaction is one row of the append-only stock ledger.
// Quantity is the signed delta applied to the stock; BalanceAfter is
// the stock quantity immediately after the delta. Rows are never
// updated or deleted once written.
type InventoryTransaction struct {
	gorm.Model
	IngredientID uint            `gorm:"index:idx_tx_ingredient_created;not null" json:"ingredientId"`
	Ingredient   Ingredient      `json:"-"`
	Type         string          `gorm:"index;not null" json:"type"`
	Quantity     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"quantity"`
	BalanceAfter decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"balanceAfter"`
	Notes        string          `json:"notes"`

	// Acting user survives user deletion (SET NULL keeps the audit row).
	UserID *uint `json:"userId"`
	User   *User `gorm:"constraint:OnDelete:SET NULL" json:"-"`

	OrderID *uint  `json:"orderId"`
	Order   *Order `gorm:"constraint:OnDelete:SET NULL" json:"-"`
}
