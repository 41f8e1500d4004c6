package configs

import (
	"log"

	"github.com/Felmyb/SistemaSKC/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates the first administrator account from env.
func SeedAdmin(cfg *Config) error {
	db := DB()
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", cfg.AdminEmail).Count(&count)
	if count > 0 {
		log.Println("admin already exists:", cfg.AdminEmail)
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	admin := entity.User{
		Email:     cfg.AdminEmail,
		Password:  string(hash),
		FirstName: "Admin",
		LastName:  "Seed",
		Role:      entity.RoleAdministrator,
	}
	return db.Create(&admin).Error
}

// SeedDemo loads a small demo dataset for local development. Each
// ingredient gets its stock row; dishes get recipes against them.
func SeedDemo() error {
	db := DB()

	ingredients := []entity.Ingredient{
		{Name: "Tomato", Category: entity.CategoryVegetables, Unit: entity.UnitKilogram,
			CostPerUnit: decimal.RequireFromString("2.50"), MinimumStock: decimal.RequireFromString("5.00")},
		{Name: "Mozzarella", Category: entity.CategoryDairy, Unit: entity.UnitKilogram,
			CostPerUnit: decimal.RequireFromString("8.00"), MinimumStock: decimal.RequireFromString("3.00")},
		{Name: "Basil", Category: entity.CategorySpices, Unit: entity.UnitGram,
			CostPerUnit: decimal.RequireFromString("0.05"), MinimumStock: decimal.RequireFromString("100.00")},
	}
	for i := range ingredients {
		if err := db.Where("name = ?", ingredients[i].Name).FirstOrCreate(&ingredients[i]).Error; err != nil {
			return err
		}
		stock := entity.InventoryStock{IngredientID: ingredients[i].ID}
		if err := db.Where("ingredient_id = ?", ingredients[i].ID).FirstOrCreate(&stock).Error; err != nil {
			return err
		}
	}

	dish := entity.Dish{
		Name:         "Caprese Salad",
		Description:  "Tomato, mozzarella and basil",
		Category:     entity.DishSalad,
		Price:        decimal.RequireFromString("9.50"),
		IsVegetarian: true,
	}
	if err := db.Where("name = ?", dish.Name).FirstOrCreate(&dish).Error; err != nil {
		return err
	}
	recipe := []entity.RecipeItem{
		{DishID: dish.ID, IngredientID: ingredients[0].ID, Quantity: decimal.RequireFromString("0.20")},
		{DishID: dish.ID, IngredientID: ingredients[1].ID, Quantity: decimal.RequireFromString("0.15")},
		{DishID: dish.ID, IngredientID: ingredients[2].ID, Quantity: decimal.RequireFromString("5.00")},
	}
	for i := range recipe {
		if err := db.Where("dish_id = ? AND ingredient_id = ?", recipe[i].DishID, recipe[i].IngredientID).
			FirstOrCreate(&recipe[i]).Error; err != nil {
			return err
		}
	}

	log.Println("demo data seeded")
	return nil
}
