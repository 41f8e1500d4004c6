package controllers

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/Felmyb/SistemaSKC/entity"
	"github.com/Felmyb/SistemaSKC/pkg/resp"
	"github.com/Felmyb/SistemaSKC/services"
	"github.com/Felmyb/SistemaSKC/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StockController struct {
	DB        *gorm.DB
	Inventory *services.InventoryService
}

func NewStockController(db *gorm.DB, inv *services.InventoryService) *StockController {
	return &StockController{DB: db, Inventory: inv}
}

// GET /stocks
func (sc *StockController) List(c *gin.Context) {
	var items []entity.InventoryStock
	q := sc.DB.Model(&entity.InventoryStock{}).Preload("Ingredient")
	if v := c.Query("ingredientId"); v != "" {
		q = q.Where("ingredient_id = ?", v)
	}
	if err := q.Order("updated_at DESC").Find(&items).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /stocks/:id
func (sc *StockController) Detail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var st entity.InventoryStock
	if err := sc.DB.Preload("Ingredient").First(&st, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "stock not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, st)
}

type UpdateStockReq struct {
	// Quantity is bound only to be rejected: all quantity changes go
	// through the audited adjust endpoint.
	Quantity *decimal.Decimal `json:"quantity"`
	// RawMessage keeps "field absent" distinguishable from an explicit
	// null, which clears the date.
	ExpirationDate json.RawMessage `json:"expirationDate"`
}

// PATCH /stocks/:id, metadata only. Fields absent from the body stay
// untouched.
func (sc *StockController) Update(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var st entity.InventoryStock
	if err := sc.DB.First(&st, id).Error; err != nil {
		resp.NotFound(c, "stock not found")
		return
	}

	var req UpdateStockReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if req.Quantity != nil {
		resp.FieldError(c, "quantity", "use the adjust endpoint to modify stock quantity")
		return
	}

	updates := map[string]interface{}{}
	if len(req.ExpirationDate) > 0 {
		var exp *time.Time
		if err := json.Unmarshal(req.ExpirationDate, &exp); err != nil {
			resp.FieldError(c, "expirationDate", "must be an RFC 3339 timestamp or null")
			return
		}
		updates["expiration_date"] = exp
	}
	if len(updates) > 0 {
		if err := sc.DB.Model(&st).Updates(updates).Error; err != nil {
			resp.ServerError(c, err)
			return
		}
		if err := sc.DB.First(&st, st.ID).Error; err != nil {
			resp.ServerError(c, err)
			return
		}
	}
	resp.OK(c, st)
}

// POST /stocks/:id/adjust
func (sc *StockController) Adjust(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var st entity.InventoryStock
	if err := sc.DB.First(&st, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "stock not found")
			return
		}
		resp.ServerError(c, err)
		return
	}

	var req services.AdjustmentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	uid := utils.CurrentUserID(c)
	req.UserID = &uid

	updated, err := sc.Inventory.Adjust(st.IngredientID, req)
	if err != nil {
		var ve *services.ValidationError
		switch {
		case errors.As(err, &ve):
			resp.FieldError(c, ve.Field, ve.Message)
		case errors.Is(err, services.ErrInsufficientStock):
			resp.FieldError(c, "quantity", err.Error())
		case errors.Is(err, services.ErrNotFound):
			resp.NotFound(c, "stock not found")
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.OK(c, updated)
}
