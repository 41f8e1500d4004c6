package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ingredient categories.
const (
	CategoryVegetables = "VEGETABLES"
	CategoryFruits     = "FRUITS"
	CategoryMeat       = "MEAT"
	CategorySeafood    = "SEAFOOD"
	CategoryDairy      = "DAIRY"
	CategoryGrains     = "GRAINS"
	CategorySpices     = "SPICES"
	CategoryBeverages  = "BEVERAGES"
	CategoryOther      = "OTHER"
)

// Units of measure.
const (
	UnitKilogram   = "KG"
	UnitGram       = "G"
	UnitLiter      = "L"
	UnitMilliliter = "ML"
	UnitPiece      = "PC"
	UnitDozen      = "DZ"
	UnitPound      = "LB"
	UnitOunce      = "OZ"
)

var IngredientCategories = []string{
	CategoryVegetables, CategoryFruits, CategoryMeat, CategorySeafood,
	CategoryDairy, CategoryGrains, CategorySpices, CategoryBeverages, CategoryOther,
}

var UnitsOfMeasure = []string{
	UnitKilogram, UnitGram, UnitLiter, UnitMilliliter,
	UnitPiece, UnitDozen, UnitPound, UnitOunce,
}

type Ingredient struct {
	gorm.Model
	Name         string          `gorm:"uniqueIndex;not null" json:"name"`
	Category     string          `gorm:"index;not null;default:OTHER" json:"category"`
	Unit         string          `gorm:"not null;default:KG" json:"unit"`
	CostPerUnit  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"costPerUnit"`
	Supplier     string          `json:"supplier"`
	MinimumStock decimal.Decimal `gorm:"type:decimal(10,2);not null;default:10" json:"minimumStock"`
	Description  string          `json:"description"`
	IsActive     bool            `gorm:"index;not null;default:true" json:"isActive"`

	Stock        *InventoryStock        `gorm:"foreignKey:IngredientID" json:"stock,omitempty"`
	RecipeItems  []RecipeItem           `json:"-"`
	Transactions []InventoryTransaction `json:"-"`
}

// CurrentStock treats a missing stock row as zero.
func (i *Ingredient) CurrentStock() decimal.Decimal {
	if i.Stock == nil {
		return decimal.Zero
	}
	return i.Stock.Quantity
}

func (i *Ingredient) IsLowStock() bool {
	return i.CurrentStock().LessThan(i.MinimumStock)
}
