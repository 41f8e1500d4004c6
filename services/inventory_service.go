package services

import (
	"errors"
	"time"

	"github.com/Felmyb/SistemaSKC/entity"
	"github.com/Felmyb/SistemaSKC/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryService owns stock levels. Every change goes through Adjust
// or Deduct so a ledger row with the running balance exists for each.
type InventoryService struct {
	DB   *gorm.DB
	Repo *repository.InventoryRepository
}

func NewInventoryService(db *gorm.DB, repo *repository.InventoryRepository) *InventoryService {
	return &InventoryService{DB: db, Repo: repo}
}

// AdjustmentInput is the caller's view of one stock change. Quantity
// is a positive magnitude for RESTOCK/WASTE/RETURN; ADJUSTMENT carries
// its own sign.
type AdjustmentInput struct {
	Type     string          `json:"type" binding:"required,oneof=RESTOCK ADJUSTMENT WASTE RETURN"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Notes    string          `json:"notes"`

	UserID  *uint `json:"-"`
	OrderID *uint `json:"-"`
}

// normalizeDelta derives the signed delta from the transaction type.
func normalizeDelta(txType string, qty decimal.Decimal) (decimal.Decimal, error) {
	if qty.IsZero() {
		return decimal.Zero, &ValidationError{Field: "quantity", Message: "quantity must be non-zero"}
	}
	switch txType {
	case entity.TxRestock:
		if qty.IsNegative() {
			return decimal.Zero, &ValidationError{Field: "quantity", Message: "quantity must be positive"}
		}
		return qty, nil
	case entity.TxWaste, entity.TxReturn, entity.TxUsage:
		if qty.IsNegative() {
			return decimal.Zero, &ValidationError{Field: "quantity", Message: "quantity must be positive"}
		}
		return qty.Neg(), nil
	case entity.TxAdjustment:
		return qty, nil
	}
	return decimal.Zero, &ValidationError{Field: "type", Message: "unknown transaction type"}
}

// Adjust applies one audited stock change for the ingredient. The
// balance update and the ledger insert commit or roll back together;
// a change that would drive the balance negative mutates nothing and
// returns ErrInsufficientStock.
func (s *InventoryService) Adjust(ingredientID uint, in AdjustmentInput) (*entity.InventoryStock, error) {
	delta, err := normalizeDelta(in.Type, in.Quantity)
	if err != nil {
		return nil, err
	}

	var out *entity.InventoryStock
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		st, err := s.Repo.GetStockForIngredient(tx, ingredientID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		ok, err := s.Repo.ApplyDelta(tx, st.ID, delta)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInsufficientStock
		}

		if in.Type == entity.TxRestock {
			if err := s.Repo.SetLastRestocked(tx, st.ID, time.Now()); err != nil {
				return err
			}
		}

		// Reload for the post-transaction balance snapshot.
		st, err = s.Repo.GetStock(tx, st.ID)
		if err != nil {
			return err
		}

		t := entity.InventoryTransaction{
			IngredientID: ingredientID,
			Type:         in.Type,
			Quantity:     delta,
			BalanceAfter: st.Quantity,
			Notes:        in.Notes,
			UserID:       in.UserID,
			OrderID:      in.OrderID,
		}
		if err := s.Repo.CreateTransaction(tx, &t); err != nil {
			return err
		}

		out = st
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Deduct is the try-and-skip USAGE path: it returns false instead of
// an error when stock is short, mutating nothing. It runs inside the
// caller's transaction so order confirmation stays all-or-nothing.
func (s *InventoryService) Deduct(tx *gorm.DB, ingredientID uint, qty decimal.Decimal, userID, orderID *uint) (bool, error) {
	if !qty.IsPositive() {
		return false, &ValidationError{Field: "quantity", Message: "quantity must be positive"}
	}

	st, err := s.Repo.GetStockForIngredient(tx, ingredientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil // no stock record = zero stock
		}
		return false, err
	}

	ok, err := s.Repo.ApplyDelta(tx, st.ID, qty.Neg())
	if err != nil || !ok {
		return false, err
	}

	st, err = s.Repo.GetStock(tx, st.ID)
	if err != nil {
		return false, err
	}
	t := entity.InventoryTransaction{
		IngredientID: ingredientID,
		Type:         entity.TxUsage,
		Quantity:     qty.Neg(),
		BalanceAfter: st.Quantity,
		UserID:       userID,
		OrderID:      orderID,
	}
	return true, s.Repo.CreateTransaction(tx, &t)
}

// Restore appends a positive ADJUSTMENT inside the caller's
// transaction, used to hand back stock a cancelled order had consumed.
func (s *InventoryService) Restore(tx *gorm.DB, ingredientID uint, qty decimal.Decimal, userID, orderID *uint, notes string) error {
	if !qty.IsPositive() {
		return &ValidationError{Field: "quantity", Message: "quantity must be positive"}
	}

	st, err := s.Repo.GetStockForIngredient(tx, ingredientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if _, err := s.Repo.ApplyDelta(tx, st.ID, qty); err != nil {
		return err
	}
	st, err = s.Repo.GetStock(tx, st.ID)
	if err != nil {
		return err
	}
	t := entity.InventoryTransaction{
		IngredientID: ingredientID,
		Type:         entity.TxAdjustment,
		Quantity:     qty,
		BalanceAfter: st.Quantity,
		Notes:        notes,
		UserID:       userID,
		OrderID:      orderID,
	}
	return s.Repo.CreateTransaction(tx, &t)
}

// CheckAvailability is a pure read: current stock >= required. A
// missing stock row counts as zero, not an error.
func (s *InventoryService) CheckAvailability(ingredientID uint, required decimal.Decimal) (bool, error) {
	st, err := s.Repo.GetStockForIngredient(s.DB, ingredientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return !required.IsPositive(), nil
		}
		return false, err
	}
	return st.Quantity.GreaterThanOrEqual(required), nil
}

// ListTransactions exposes the ledger read path.
func (s *InventoryService) ListTransactions(f repository.TransactionFilter) ([]entity.InventoryTransaction, int64, error) {
	return s.Repo.ListTransactions(f)
}

// LowStock returns ingredients below their minimum stock threshold.
func (s *InventoryService) LowStock() ([]entity.Ingredient, error) {
	return s.Repo.ListLowStock()
}
