package repository

import (
	"time"

	"github.com/Felmyb/SistemaSKC/entity"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InventoryRepository struct {
	DB *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{DB: db}
}

// ---------------- Stock ----------------

func (r *InventoryRepository) GetStock(tx *gorm.DB, stockID uint) (*entity.InventoryStock, error) {
	var st entity.InventoryStock
	if err := tx.First(&st, stockID).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *InventoryRepository) GetStockForIngredient(tx *gorm.DB, ingredientID uint) (*entity.InventoryStock, error) {
	var st entity.InventoryStock
	if err := tx.Where("ingredient_id = ?", ingredientID).First(&st).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

// ApplyDelta adds delta to the stock quantity. The non-negativity
// check lives in the WHERE clause, so a concurrent writer cannot slip
// a second deduction past a stale read: zero rows affected means the
// balance would have gone negative.
func (r *InventoryRepository) ApplyDelta(tx *gorm.DB, stockID uint, delta decimal.Decimal) (bool, error) {
	res := tx.Model(&entity.InventoryStock{}).
		Where("id = ? AND quantity + ? >= 0", stockID, delta).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *InventoryRepository) SetLastRestocked(tx *gorm.DB, stockID uint, at time.Time) error {
	return tx.Model(&entity.InventoryStock{}).
		Where("id = ?", stockID).
		Update("last_restocked", at).Error
}

// ---------------- Ledger ----------------

// CreateTransaction appends one ledger row. Rows are never updated or
// deleted afterwards.
func (r *InventoryRepository) CreateTransaction(tx *gorm.DB, t *entity.InventoryTransaction) error {
	return tx.Create(t).Error
}

type TransactionFilter struct {
	IngredientID uint
	Type         string
	Page         int
	Limit        int
}

// ListTransactions returns ledger rows newest-first.
func (r *InventoryRepository) ListTransactions(f TransactionFilter) ([]entity.InventoryTransaction, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}

	q := r.DB.Model(&entity.InventoryTransaction{})
	if f.IngredientID != 0 {
		q = q.Where("ingredient_id = ?", f.IngredientID)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []entity.InventoryTransaction
	err := q.Order("created_at DESC, id DESC").
		Limit(f.Limit).Offset((f.Page - 1) * f.Limit).
		Find(&rows).Error
	return rows, total, err
}

// UsageForOrder sums USAGE deltas per ingredient for one order, used
// to reverse a confirmed order's deduction on cancellation.
func (r *InventoryRepository) UsageForOrder(tx *gorm.DB, orderID uint) (map[uint]decimal.Decimal, error) {
	var rows []entity.InventoryTransaction
	if err := tx.Where("order_id = ? AND type = ?", orderID, entity.TxUsage).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uint]decimal.Decimal, len(rows))
	for _, row := range rows {
		out[row.IngredientID] = out[row.IngredientID].Add(row.Quantity)
	}
	return out, nil
}

// ---------------- Ingredients ----------------

func (r *InventoryRepository) GetIngredient(id uint) (*entity.Ingredient, error) {
	var ing entity.Ingredient
	if err := r.DB.Preload("Stock").First(&ing, id).Error; err != nil {
		return nil, err
	}
	return &ing, nil
}

// ListLowStock returns ingredients whose stock is below their minimum.
// A missing stock row counts as zero.
func (r *InventoryRepository) ListLowStock() ([]entity.Ingredient, error) {
	var out []entity.Ingredient
	err := r.DB.Preload("Stock").
		Joins("LEFT JOIN inventory_stocks s ON s.ingredient_id = ingredients.id AND s.deleted_at IS NULL").
		Where("COALESCE(s.quantity, 0) < ingredients.minimum_stock").
		Find(&out).Error
	return out, err
}
