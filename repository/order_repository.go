package repository

import (
	"time"

	"github.com/Felmyb/SistemaSKC/entity"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) GetOrder(tx *gorm.DB, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := tx.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// GetOrderDetail loads an order with its items.
func (r *OrderRepository) GetOrderDetail(tx *gorm.DB, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := tx.Preload("Items").First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) SetTotal(tx *gorm.DB, orderID uint, total decimal.Decimal) error {
	return tx.Model(&entity.Order{}).Where("id = ?", orderID).
		Update("total_amount", total).Error
}

// UpdateStatusGuard moves the order from one status to another only if
// it is still in the expected status. Zero rows affected means a
// concurrent transition won.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to string) (bool, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// MarkCompleted stamps completed_at only when it is still unset, so a
// repeated DELIVERED call can never overwrite the first timestamp.
func (r *OrderRepository) MarkCompleted(tx *gorm.DB, orderID uint, at time.Time, actualTime *int) error {
	updates := map[string]interface{}{"completed_at": at}
	if actualTime != nil {
		updates["actual_time"] = *actualTime
	}
	return tx.Model(&entity.Order{}).
		Where("id = ? AND completed_at IS NULL", orderID).
		Updates(updates).Error
}

// ---------------- Listings ----------------

type OrderFilter struct {
	CustomerID uint // 0 = all customers
	Status     string
	Priority   string
	OrderType  string
	Page       int
	Limit      int
}

func (f OrderFilter) apply(q *gorm.DB) *gorm.DB {
	if f.CustomerID != 0 {
		q = q.Where("customer_id = ?", f.CustomerID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}
	if f.OrderType != "" {
		q = q.Where("order_type = ?", f.OrderType)
	}
	return q
}

func (r *OrderRepository) ListOrders(f OrderFilter) ([]entity.Order, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}

	q := f.apply(r.DB.Model(&entity.Order{}))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []entity.Order
	err := q.Preload("Items").
		Order("created_at DESC, id DESC").
		Limit(f.Limit).Offset((f.Page - 1) * f.Limit).
		Find(&out).Error
	return out, total, err
}

// priorityRank orders URGENT first for the kitchen display.
const priorityRank = "CASE priority WHEN 'URGENT' THEN 0 WHEN 'HIGH' THEN 1 WHEN 'MEDIUM' THEN 2 ELSE 3 END"

// ListActive returns non-terminal orders, most urgent and oldest first.
func (r *OrderRepository) ListActive(customerID uint, priority string) ([]entity.Order, error) {
	q := r.DB.Model(&entity.Order{}).
		Where("status IN ?", []string{
			entity.StatusPending, entity.StatusConfirmed,
			entity.StatusInProgress, entity.StatusReady,
		})
	if customerID != 0 {
		q = q.Where("customer_id = ?", customerID)
	}
	if priority != "" {
		q = q.Where("priority = ?", priority)
	}
	var out []entity.Order
	err := q.Preload("Items").
		Order(priorityRank + ", created_at ASC").
		Find(&out).Error
	return out, err
}

// ListHistory returns terminal orders, newest first.
func (r *OrderRepository) ListHistory(customerID uint, limit int) ([]entity.Order, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q := r.DB.Model(&entity.Order{}).
		Where("status IN ?", []string{entity.StatusDelivered, entity.StatusCancelled})
	if customerID != 0 {
		q = q.Where("customer_id = ?", customerID)
	}
	var out []entity.Order
	err := q.Preload("Items").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CountByColumn groups orders on one column (status, priority).
func (r *OrderRepository) CountByColumn(customerID uint, column string) (map[string]int64, error) {
	var rows []struct {
		Key   string
		Count int64
	}
	q := r.DB.Model(&entity.Order{}).
		Select(column + " AS key, COUNT(*) AS count").
		Group(column)
	if customerID != 0 {
		q = q.Where("customer_id = ?", customerID)
	}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Count
	}
	return out, nil
}

// ListTotals returns every matching order's total for revenue math.
func (r *OrderRepository) ListTotals(customerID uint) ([]entity.Order, error) {
	q := r.DB.Model(&entity.Order{}).Select("id, total_amount")
	if customerID != 0 {
		q = q.Where("customer_id = ?", customerID)
	}
	var out []entity.Order
	err := q.Find(&out).Error
	return out, err
}

// ---------------- Dishes ----------------

// GetDishWithRecipe loads a dish and its recipe ingredients.
func (r *OrderRepository) GetDishWithRecipe(tx *gorm.DB, dishID uint) (*entity.Dish, error) {
	var d entity.Dish
	if err := tx.Preload("RecipeItems.Ingredient").First(&d, dishID).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// IncrementPopularity bumps a dish's popularity score by n.
func (r *OrderRepository) IncrementPopularity(tx *gorm.DB, dishID uint, n int) error {
	return tx.Model(&entity.Dish{}).
		Where("id = ?", dishID).
		Update("popularity_score", gorm.Expr("popularity_score + ?", n)).Error
}
