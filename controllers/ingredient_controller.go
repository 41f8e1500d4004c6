package controllers

import (
	"errors"
	"strconv"

	"github.com/Felmyb/SistemaSKC/entity"
	"github.com/Felmyb/SistemaSKC/pkg/resp"
	"github.com/Felmyb/SistemaSKC/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type IngredientController struct {
	DB        *gorm.DB
	Inventory *services.InventoryService
}

func NewIngredientController(db *gorm.DB, inv *services.InventoryService) *IngredientController {
	return &IngredientController{DB: db, Inventory: inv}
}

type IngredientIn struct {
	Name         string           `json:"name" binding:"required"`
	Category     string           `json:"category" binding:"omitempty,oneof=VEGETABLES FRUITS MEAT SEAFOOD DAIRY GRAINS SPICES BEVERAGES OTHER"`
	Unit         string           `json:"unit" binding:"omitempty,oneof=KG G L ML PC DZ LB OZ"`
	CostPerUnit  *decimal.Decimal `json:"costPerUnit"`
	Supplier     string           `json:"supplier"`
	MinimumStock *decimal.Decimal `json:"minimumStock"`
	Description  string           `json:"description"`
}

// POST /ingredients. The stock row is created along with the ingredient.
func (ic *IngredientController) Create(c *gin.Context) {
	var req IngredientIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if req.CostPerUnit != nil && req.CostPerUnit.IsNegative() {
		resp.FieldError(c, "costPerUnit", "must not be negative")
		return
	}
	if req.MinimumStock != nil && req.MinimumStock.IsNegative() {
		resp.FieldError(c, "minimumStock", "must not be negative")
		return
	}

	ing := entity.Ingredient{
		Name:        req.Name,
		Category:    req.Category,
		Unit:        req.Unit,
		Supplier:    req.Supplier,
		Description: req.Description,
		IsActive:    true,
	}
	if ing.Category == "" {
		ing.Category = entity.CategoryOther
	}
	if ing.Unit == "" {
		ing.Unit = entity.UnitKilogram
	}
	if req.CostPerUnit != nil {
		ing.CostPerUnit = *req.CostPerUnit
	}
	if req.MinimumStock != nil {
		ing.MinimumStock = *req.MinimumStock
	} else {
		ing.MinimumStock = decimal.RequireFromString("10.00")
	}

	err := ic.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ing).Error; err != nil {
			return err
		}
		stock := entity.InventoryStock{IngredientID: ing.ID, Quantity: decimal.Zero}
		return tx.Create(&stock).Error
	})
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	resp.Created(c, ing)
}

// GET /ingredients?category=&isActive=&search=
func (ic *IngredientController) List(c *gin.Context) {
	q := ic.DB.Model(&entity.Ingredient{}).Preload("Stock").Order("name ASC")
	if v := c.Query("category"); v != "" {
		q = q.Where("category = ?", v)
	}
	if v := c.Query("isActive"); v != "" {
		q = q.Where("is_active = ?", v == "true")
	}
	if v := c.Query("search"); v != "" {
		like := "%" + v + "%"
		q = q.Where("name LIKE ? OR supplier LIKE ? OR description LIKE ?", like, like, like)
	}

	var items []entity.Ingredient
	if err := q.Find(&items).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /ingredients/:id
func (ic *IngredientController) Detail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var ing entity.Ingredient
	if err := ic.DB.Preload("Stock").First(&ing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "ingredient not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, ing)
}

// PATCH /ingredients/:id
func (ic *IngredientController) Update(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var ing entity.Ingredient
	if err := ic.DB.First(&ing, id).Error; err != nil {
		resp.NotFound(c, "ingredient not found")
		return
	}

	var req IngredientIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if req.CostPerUnit != nil && req.CostPerUnit.IsNegative() {
		resp.FieldError(c, "costPerUnit", "must not be negative")
		return
	}
	if req.MinimumStock != nil && req.MinimumStock.IsNegative() {
		resp.FieldError(c, "minimumStock", "must not be negative")
		return
	}

	if req.Name != "" {
		ing.Name = req.Name
	}
	if req.Category != "" {
		ing.Category = req.Category
	}
	if req.Unit != "" {
		ing.Unit = req.Unit
	}
	if req.Supplier != "" {
		ing.Supplier = req.Supplier
	}
	if req.Description != "" {
		ing.Description = req.Description
	}
	if req.CostPerUnit != nil {
		ing.CostPerUnit = *req.CostPerUnit
	}
	if req.MinimumStock != nil {
		ing.MinimumStock = *req.MinimumStock
	}

	if err := ic.DB.Save(&ing).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, ing)
}

// DELETE /ingredients/:id, blocked while any recipe references it.
func (ic *IngredientController) Delete(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var ing entity.Ingredient
	if err := ic.DB.First(&ing, id).Error; err != nil {
		resp.NotFound(c, "ingredient not found")
		return
	}

	var refs int64
	if err := ic.DB.Model(&entity.RecipeItem{}).Where("ingredient_id = ?", ing.ID).Count(&refs).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	if refs > 0 {
		resp.BadRequest(c, "ingredient is referenced by recipes; deactivate it instead")
		return
	}

	if err := ic.DB.Delete(&ing).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"id": ing.ID})
}

// POST /ingredients/:id/toggle-active
func (ic *IngredientController) ToggleActive(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var ing entity.Ingredient
	if err := ic.DB.First(&ing, id).Error; err != nil {
		resp.NotFound(c, "ingredient not found")
		return
	}

	ing.IsActive = !ing.IsActive
	if err := ic.DB.Model(&ing).Update("is_active", ing.IsActive).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"id": ing.ID, "isActive": ing.IsActive})
}

// GET /ingredients/low-stock
func (ic *IngredientController) LowStock(c *gin.Context) {
	items, err := ic.Inventory.LowStock()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}
