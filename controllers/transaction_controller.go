package controllers

import (
	"strconv"

	"github.com/Felmyb/SistemaSKC/pkg/resp"
	"github.com/Felmyb/SistemaSKC/repository"
	"github.com/Felmyb/SistemaSKC/services"

	"github.com/gin-gonic/gin"
)

// TransactionController is the read-only view over the stock ledger.
type TransactionController struct {
	Inventory *services.InventoryService
}

func NewTransactionController(inv *services.InventoryService) *TransactionController {
	return &TransactionController{Inventory: inv}
}

// GET /transactions?ingredientId=&type=&page=&limit=, newest first.
func (tc *TransactionController) List(c *gin.Context) {
	var f repository.TransactionFilter
	if v, err := strconv.Atoi(c.Query("ingredientId")); err == nil {
		f.IngredientID = uint(v)
	}
	f.Type = c.Query("type")
	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))

	items, total, err := tc.Inventory.ListTransactions(f)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items, "total": total, "page": f.Page, "limit": f.Limit})
}
