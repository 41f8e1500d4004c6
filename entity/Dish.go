package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Dish categories.
const (
	DishAppetizer  = "APPETIZER"
	DishSoup       = "SOUP"
	DishSalad      = "SALAD"
	DishMainCourse = "MAIN_COURSE"
	DishSideDish   = "SIDE_DISH"
	DishDessert    = "DESSERT"
	DishBeverage   = "BEVERAGE"
	DishSpecial    = "SPECIAL"
)

var DishCategories = []string{
	DishAppetizer, DishSoup, DishSalad, DishMainCourse,
	DishSideDish, DishDessert, DishBeverage, DishSpecial,
}

type Dish struct {
	gorm.Model
	Name            string          `gorm:"uniqueIndex;not null" json:"name"`
	Description     string          `json:"description"`
	Category        string          `gorm:"index:idx_dish_category_available;not null;default:MAIN_COURSE" json:"category"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	PreparationTime int             `gorm:"not null;default:15" json:"preparationTime"`
	IsAvailable     bool            `gorm:"index:idx_dish_category_available;not null;default:true" json:"isAvailable"`
	IsVegetarian    bool            `gorm:"not null;default:false" json:"isVegetarian"`
	IsVegan         bool            `gorm:"not null;default:false" json:"isVegan"`
	Allergens       string          `json:"allergens"`
	PopularityScore int             `gorm:"index;not null;default:0" json:"popularityScore"`

	RecipeItems []RecipeItem `json:"recipeItems,omitempty"`
	OrderItems  []OrderItem  `json:"-"`
}

// IngredientCost sums cost per unit times required quantity over the
// recipe. Recipe items must be preloaded with their ingredient.
func (d *Dish) IngredientCost() decimal.Decimal {
	total := decimal.Zero
	for _, ri := range d.RecipeItems {
		total = total.Add(ri.Ingredient.CostPerUnit.Mul(ri.Quantity))
	}
	return total
}
