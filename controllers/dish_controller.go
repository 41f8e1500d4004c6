package controllers

import (
	"errors"
	"strconv"

	"github.com/Felmyb/SistemaSKC/entity"
	"github.com/Felmyb/SistemaSKC/pkg/resp"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DishController struct{ DB *gorm.DB }

func NewDishController(db *gorm.DB) *DishController { return &DishController{DB: db} }

type DishIn struct {
	Name            string           `json:"name" binding:"required"`
	Description     string           `json:"description"`
	Category        string           `json:"category" binding:"omitempty,oneof=APPETIZER SOUP SALAD MAIN_COURSE SIDE_DISH DESSERT BEVERAGE SPECIAL"`
	Price           *decimal.Decimal `json:"price" binding:"required"`
	PreparationTime int              `json:"preparationTime" binding:"omitempty,min=0"`
	IsAvailable     *bool            `json:"isAvailable"`
	IsVegetarian    *bool            `json:"isVegetarian"`
	IsVegan         *bool            `json:"isVegan"`
	Allergens       string           `json:"allergens"`
}

func (req *DishIn) validate() (string, string) {
	if req.Price != nil && req.Price.IsNegative() {
		return "price", "must not be negative"
	}
	// A vegan dish is by definition vegetarian.
	if req.IsVegan != nil && *req.IsVegan && req.IsVegetarian != nil && !*req.IsVegetarian {
		return "isVegetarian", "a vegan dish must also be vegetarian"
	}
	return "", ""
}

// POST /dishes
func (dc *DishController) Create(c *gin.Context) {
	var req DishIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if f, msg := req.validate(); f != "" {
		resp.FieldError(c, f, msg)
		return
	}

	dish := entity.Dish{
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		Price:           *req.Price,
		PreparationTime: req.PreparationTime,
		IsAvailable:     true,
		Allergens:       req.Allergens,
	}
	if dish.Category == "" {
		dish.Category = entity.DishMainCourse
	}
	if dish.PreparationTime == 0 {
		dish.PreparationTime = 15
	}
	if req.IsAvailable != nil {
		dish.IsAvailable = *req.IsAvailable
	}
	if req.IsVegetarian != nil {
		dish.IsVegetarian = *req.IsVegetarian
	}
	if req.IsVegan != nil {
		dish.IsVegan = *req.IsVegan
		if dish.IsVegan {
			dish.IsVegetarian = true
		}
	}

	if err := dc.DB.Create(&dish).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, dish)
}

// GET /dishes?category=&isAvailable=&isVegetarian=&isVegan=&search=
func (dc *DishController) List(c *gin.Context) {
	q := dc.DB.Model(&entity.Dish{}).Order("category ASC, name ASC")
	if v := c.Query("category"); v != "" {
		q = q.Where("category = ?", v)
	}
	for param, column := range map[string]string{
		"isAvailable": "is_available", "isVegetarian": "is_vegetarian", "isVegan": "is_vegan",
	} {
		if v := c.Query(param); v != "" {
			q = q.Where(column+" = ?", v == "true")
		}
	}
	if v := c.Query("search"); v != "" {
		like := "%" + v + "%"
		q = q.Where("name LIKE ? OR description LIKE ? OR allergens LIKE ?", like, like, like)
	}

	var items []entity.Dish
	if err := q.Find(&items).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /dishes/:id, detail includes the recipe.
func (dc *DishController) Detail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var dish entity.Dish
	if err := dc.DB.Preload("RecipeItems.Ingredient").First(&dish, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "dish not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, dish)
}

// PATCH /dishes/:id
func (dc *DishController) Update(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var dish entity.Dish
	if err := dc.DB.First(&dish, id).Error; err != nil {
		resp.NotFound(c, "dish not found")
		return
	}

	var req DishIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if f, msg := req.validate(); f != "" {
		resp.FieldError(c, f, msg)
		return
	}

	if req.Name != "" {
		dish.Name = req.Name
	}
	if req.Description != "" {
		dish.Description = req.Description
	}
	if req.Category != "" {
		dish.Category = req.Category
	}
	if req.Price != nil {
		dish.Price = *req.Price
	}
	if req.PreparationTime > 0 {
		dish.PreparationTime = req.PreparationTime
	}
	if req.IsAvailable != nil {
		dish.IsAvailable = *req.IsAvailable
	}
	if req.IsVegetarian != nil {
		dish.IsVegetarian = *req.IsVegetarian
	}
	if req.IsVegan != nil {
		dish.IsVegan = *req.IsVegan
		if dish.IsVegan {
			dish.IsVegetarian = true
		}
	}
	// The merged state must hold the invariant too: a partial update
	// cannot strip vegetarian from a dish that stays vegan.
	if dish.IsVegan && !dish.IsVegetarian {
		resp.FieldError(c, "isVegetarian", "a vegan dish must also be vegetarian")
		return
	}
	if req.Allergens != "" {
		dish.Allergens = req.Allergens
	}

	if err := dc.DB.Save(&dish).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, dish)
}

// DELETE /dishes/:id, blocked while order items reference it.
func (dc *DishController) Delete(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var dish entity.Dish
	if err := dc.DB.First(&dish, id).Error; err != nil {
		resp.NotFound(c, "dish not found")
		return
	}

	var refs int64
	if err := dc.DB.Model(&entity.OrderItem{}).Where("dish_id = ?", dish.ID).Count(&refs).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	if refs > 0 {
		resp.BadRequest(c, "dish is referenced by orders; mark it unavailable instead")
		return
	}

	err := dc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("dish_id = ?", dish.ID).Delete(&entity.RecipeItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&dish).Error
	})
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"id": dish.ID})
}

// GET /dishes/popular?limit=
func (dc *DishController) Popular(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	var items []entity.Dish
	if err := dc.DB.Where("is_available = ?", true).
		Order("popularity_score DESC").Limit(limit).
		Find(&items).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /dishes/categories, categories with available-dish counts.
func (dc *DishController) Categories(c *gin.Context) {
	out := make([]gin.H, 0, len(entity.DishCategories))
	for _, cat := range entity.DishCategories {
		var count int64
		if err := dc.DB.Model(&entity.Dish{}).
			Where("category = ? AND is_available = ?", cat, true).
			Count(&count).Error; err != nil {
			resp.ServerError(c, err)
			return
		}
		out = append(out, gin.H{"category": cat, "count": count})
	}
	resp.OK(c, gin.H{"items": out})
}

// ----- Recipe management -----

type RecipeItemIn struct {
	IngredientID uint             `json:"ingredientId" binding:"required"`
	Quantity     *decimal.Decimal `json:"quantity" binding:"required"`
	Notes        string           `json:"notes"`
}

// POST /dishes/:id/recipe
func (dc *DishController) AddRecipeItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var dish entity.Dish
	if err := dc.DB.First(&dish, id).Error; err != nil {
		resp.NotFound(c, "dish not found")
		return
	}

	var req RecipeItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if !req.Quantity.IsPositive() {
		resp.FieldError(c, "quantity", "must be positive")
		return
	}

	var ing entity.Ingredient
	if err := dc.DB.First(&ing, req.IngredientID).Error; err != nil {
		resp.NotFound(c, "ingredient not found")
		return
	}

	var dup int64
	dc.DB.Model(&entity.RecipeItem{}).
		Where("dish_id = ? AND ingredient_id = ?", dish.ID, ing.ID).
		Count(&dup)
	if dup > 0 {
		resp.FieldError(c, "ingredientId", "ingredient already in recipe")
		return
	}

	ri := entity.RecipeItem{
		DishID:       dish.ID,
		IngredientID: ing.ID,
		Quantity:     *req.Quantity,
		Notes:        req.Notes,
	}
	if err := dc.DB.Create(&ri).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, ri)
}

// PATCH /dishes/:id/recipe/:itemId
func (dc *DishController) UpdateRecipeItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	itemID, _ := strconv.Atoi(c.Param("itemId"))

	var ri entity.RecipeItem
	if err := dc.DB.Where("id = ? AND dish_id = ?", itemID, id).First(&ri).Error; err != nil {
		resp.NotFound(c, "recipe item not found")
		return
	}

	var req struct {
		Quantity *decimal.Decimal `json:"quantity"`
		Notes    string           `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if req.Quantity != nil {
		if !req.Quantity.IsPositive() {
			resp.FieldError(c, "quantity", "must be positive")
			return
		}
		ri.Quantity = *req.Quantity
	}
	if req.Notes != "" {
		ri.Notes = req.Notes
	}

	if err := dc.DB.Save(&ri).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, ri)
}

// DELETE /dishes/:id/recipe/:itemId
func (dc *DishController) DeleteRecipeItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	itemID, _ := strconv.Atoi(c.Param("itemId"))

	res := dc.DB.Where("id = ? AND dish_id = ?", itemID, id).Delete(&entity.RecipeItem{})
	if res.Error != nil {
		resp.ServerError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		resp.NotFound(c, "recipe item not found")
		return
	}
	resp.OK(c, gin.H{"id": itemID})
}
