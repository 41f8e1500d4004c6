package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecipeItem links a dish to one required ingredient. At most one row
// per (dish, ingredient) pair.
type RecipeItem struct {
	gorm.Model
	DishID       uint            `gorm:"uniqueIndex:idx_recipe_dish_ingredient;not null" json:"dishId"`
	Dish         Dish            `json:"-"`
	IngredientID uint            `gorm:"uniqueIndex:idx_recipe_dish_ingredient;not null" json:"ingredientId"`
	Ingredient   Ingredient      `gorm:"constraint:OnDelete:RESTRICT" json:"ingredient,omitempty"`
	Quantity     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"quantity"`
	Notes        string          `json:"notes"`
}
