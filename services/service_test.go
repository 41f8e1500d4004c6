package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Felmyb/SistemaSKC/entity"
	"github.com/Felmyb/SistemaSKC/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Ingredient{}, &entity.InventoryStock{}, &entity.InventoryTransaction{},
		&entity.Dish{}, &entity.RecipeItem{},
		&entity.Order{}, &entity.OrderItem{},
	))
	return db
}

func newInventoryService(t *testing.T, db *gorm.DB) *InventoryService {
	t.Helper()
	return NewInventoryService(db, repository.NewInventoryRepository(db))
}

func newOrderService(t *testing.T, db *gorm.DB) *OrderService {
	t.Helper()
	inv := newInventoryService(t, db)
	return NewOrderService(db, repository.NewOrderRepository(db), inv, nil)
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

// seedIngredient creates an ingredient with a stock row at the given quantity.
func seedIngredient(t *testing.T, db *gorm.DB, name, qty string) *entity.Ingredient {
	t.Helper()
	ing := entity.Ingredient{
		Name:         name,
		Category:     entity.CategoryOther,
		Unit:         entity.UnitKilogram,
		MinimumStock: dec(t, "10.00"),
		IsActive:     true,
	}
	require.NoError(t, db.Create(&ing).Error)
	st := entity.InventoryStock{IngredientID: ing.ID, Quantity: dec(t, qty)}
	require.NoError(t, db.Create(&st).Error)
	ing.Stock = &st
	return &ing
}

func seedCustomer(t *testing.T, db *gorm.DB) *entity.User {
	t.Helper()
	u := entity.User{
		Email:    fmt.Sprintf("%s@example.com", strings.ToLower(strings.ReplaceAll(t.Name(), "/", "."))),
		Password: "x",
		Role:     entity.RoleCustomer,
	}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

// seedDish creates a dish with a one-ingredient recipe.
func seedDish(t *testing.T, db *gorm.DB, name, price string, ing *entity.Ingredient, perServing string) *entity.Dish {
	t.Helper()
	d := entity.Dish{
		Name:        name,
		Category:    entity.DishMainCourse,
		Price:       dec(t, price),
		IsAvailable: true,
	}
	require.NoError(t, db.Create(&d).Error)
	if ing != nil {
		ri := entity.RecipeItem{DishID: d.ID, IngredientID: ing.ID, Quantity: dec(t, perServing)}
		require.NoError(t, db.Create(&ri).Error)
	}
	return &d
}

func stockQuantity(t *testing.T, db *gorm.DB, ingredientID uint) decimal.Decimal {
	t.Helper()
	var st entity.InventoryStock
	require.NoError(t, db.Where("ingredient_id = ?", ingredientID).First(&st).Error)
	return st.Quantity
}

func transactionCount(t *testing.T, db *gorm.DB, ingredientID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&entity.InventoryTransaction{}).
		Where("ingredient_id = ?", ingredientID).Count(&n).Error)
	return n
}
