package services

import (
	"errors"
	"strings"
	"time"

	"github.com/Felmyb/SistemaSKC/entity"
	"github.com/Felmyb/SistemaSKC/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderEvent is pushed to the kitchen feed after every lifecycle change.
type OrderEvent struct {
	OrderID  uint      `json:"orderId"`
	Status   string    `json:"status"`
	Priority string    `json:"priority"`
	At       time.Time `json:"at"`
}

// OrderEventPublisher fans lifecycle events out to listeners. The
// websocket hub implements it; a nil publisher is fine.
type OrderEventPublisher interface {
	PublishOrderEvent(evt OrderEvent)
}

// OrderService owns the order state machine, item collection and
// derived totals. It is the only writer of order status, total and
// completed_at.
type OrderService struct {
	DB        *gorm.DB
	Repo      *repository.OrderRepository
	Inventory *InventoryService
	Events    OrderEventPublisher
}

func NewOrderService(db *gorm.DB, repo *repository.OrderRepository, inv *InventoryService, events OrderEventPublisher) *OrderService {
	return &OrderService{DB: db, Repo: repo, Inventory: inv, Events: events}
}

func (s *OrderService) publish(o *entity.Order) {
	if s.Events == nil {
		return
	}
	s.Events.PublishOrderEvent(OrderEvent{
		OrderID:  o.ID,
		Status:   o.Status,
		Priority: o.Priority,
		At:       time.Now(),
	})
}

// ----- DTOs from Controller -----

type OrderItemIn struct {
	DishID              uint   `json:"dishId" binding:"required"`
	Quantity            int    `json:"quantity" binding:"required,min=1"`
	SpecialInstructions string `json:"specialInstructions"`
}

type CreateOrderReq struct {
	OrderType     string        `json:"orderType" binding:"required,oneof=DINE_IN TAKEOUT DELIVERY"`
	TableNumber   string        `json:"tableNumber"`
	Priority      string        `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	EstimatedTime int           `json:"estimatedTime" binding:"omitempty,min=0"`
	Notes         string        `json:"notes"`
	Items         []OrderItemIn `json:"items" binding:"required,min=1,dive"`
}

type UpdateStatusReq struct {
	Status     string `json:"status" binding:"required,oneof=PENDING CONFIRMED IN_PROGRESS READY DELIVERED CANCELLED"`
	ActualTime *int   `json:"actualTime" binding:"omitempty,min=0"`
}

// ----- Create -----

// Create validates every requested dish against the menu and current
// stock (advisory, read-only: nothing is deducted until confirmation),
// snapshots unit prices, and persists order, items and total in one
// transaction. Each distinct dish's popularity grows by the number of
// item rows referencing it.
func (s *OrderService) Create(customerID uint, req *CreateOrderReq) (*entity.Order, error) {
	if req.OrderType == entity.OrderTypeDineIn && strings.TrimSpace(req.TableNumber) == "" {
		return nil, ErrMissingTableNumber
	}
	priority := req.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}

	dishes := make(map[uint]*entity.Dish, len(req.Items))
	itemsPerDish := make(map[uint]int, len(req.Items))
	for _, it := range req.Items {
		d, ok := dishes[it.DishID]
		if !ok {
			var err error
			d, err = s.Repo.GetDishWithRecipe(s.DB, it.DishID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrNotFound
				}
				return nil, err
			}
			dishes[it.DishID] = d
		}
		itemsPerDish[it.DishID]++

		if !d.IsAvailable {
			return nil, &DishUnavailableError{Dish: d.Name}
		}
		servings := decimal.NewFromInt(int64(it.Quantity))
		for _, ri := range d.RecipeItems {
			ok, err := s.Inventory.CheckAvailability(ri.IngredientID, ri.Quantity.Mul(servings))
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, &InsufficientIngredientsError{Dish: d.Name, Ingredient: ri.Ingredient.Name}
			}
		}
	}

	var out *entity.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		order := entity.Order{
			CustomerID:    customerID,
			Status:        entity.StatusPending,
			Priority:      priority,
			OrderType:     req.OrderType,
			TableNumber:   req.TableNumber,
			EstimatedTime: req.EstimatedTime,
			Notes:         req.Notes,
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}

		total := decimal.Zero
		for _, it := range req.Items {
			d := dishes[it.DishID]
			oi := entity.OrderItem{
				OrderID:             order.ID,
				DishID:              d.ID,
				Quantity:            it.Quantity,
				UnitPrice:           d.Price, // snapshot, immune to later price edits
				SpecialInstructions: it.SpecialInstructions,
			}
			if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
			total = total.Add(oi.Subtotal)
		}
		if err := s.Repo.SetTotal(tx, order.ID, total); err != nil {
			return err
		}

		for dishID, n := range itemsPerDish {
			if err := s.Repo.IncrementPopularity(tx, dishID, n); err != nil {
				return err
			}
		}

		o, err := s.Repo.GetOrderDetail(tx, order.ID)
		if err != nil {
			return err
		}
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(out)
	return out, nil
}

// ----- Status -----

// UpdateStatus validates the transition and applies it. Confirming an
// order performs the all-or-nothing inventory deduction for the whole
// order; delivering stamps completed_at exactly once.
func (s *OrderService) UpdateStatus(orderID uint, newStatus string, actualTime *int, userID *uint) (*entity.Order, error) {
	var out *entity.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.Repo.GetOrder(tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := ValidateTransition(o.Status, newStatus); err != nil {
			return err
		}

		if newStatus == entity.StatusConfirmed {
			if err := s.deductForOrder(tx, o, userID); err != nil {
				return err
			}
		}

		ok, err := s.Repo.UpdateStatusGuard(tx, o.ID, o.Status, newStatus)
		if err != nil {
			return err
		}
		if !ok {
			// A concurrent transition won the race.
			return &InvalidTransitionError{From: o.Status, To: newStatus}
		}

		if newStatus == entity.StatusDelivered && o.CompletedAt == nil {
			if err := s.Repo.MarkCompleted(tx, o.ID, time.Now(), actualTime); err != nil {
				return err
			}
		}

		out, err = s.Repo.GetOrderDetail(tx, o.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(out)
	return out, nil
}

// deductForOrder consumes ingredients for every item of the order.
// Requirements are aggregated per ingredient first; one shortfall
// rolls the whole confirmation back.
func (s *OrderService) deductForOrder(tx *gorm.DB, o *entity.Order, userID *uint) error {
	items, err := s.Repo.GetOrderDetail(tx, o.ID)
	if err != nil {
		return err
	}

	required := make(map[uint]decimal.Decimal)
	names := make(map[uint]string)
	for _, it := range items.Items {
		d, err := s.Repo.GetDishWithRecipe(tx, it.DishID)
		if err != nil {
			return err
		}
		servings := decimal.NewFromInt(int64(it.Quantity))
		for _, ri := range d.RecipeItems {
			required[ri.IngredientID] = required[ri.IngredientID].Add(ri.Quantity.Mul(servings))
			names[ri.IngredientID] = ri.Ingredient.Name
		}
	}

	orderID := o.ID
	for ingredientID, qty := range required {
		ok, err := s.Inventory.Deduct(tx, ingredientID, qty, userID, &orderID)
		if err != nil {
			return err
		}
		if !ok {
			return &InsufficientIngredientsError{Ingredient: names[ingredientID]}
		}
	}
	return nil
}

// ----- Cancel -----

// Cancel moves a PENDING or CONFIRMED order to CANCELLED. A confirmed
// order already consumed stock, so its USAGE ledger entries are
// replayed and reversed with ADJUSTMENT entries in the same transaction.
func (s *OrderService) Cancel(orderID uint, userID *uint) (*entity.Order, error) {
	var out *entity.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.Repo.GetOrder(tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if o.Status != entity.StatusPending && o.Status != entity.StatusConfirmed {
			return ErrCancelNotAllowed
		}

		if o.Status == entity.StatusConfirmed {
			usage, err := s.Inventory.Repo.UsageForOrder(tx, o.ID)
			if err != nil {
				return err
			}
			oid := o.ID
			for ingredientID, delta := range usage {
				// USAGE deltas are negative; hand the stock back.
				if err := s.Inventory.Restore(tx, ingredientID, delta.Neg(), userID, &oid, "order cancelled"); err != nil {
					return err
				}
			}
		}

		ok, err := s.Repo.UpdateStatusGuard(tx, o.ID, o.Status, entity.StatusCancelled)
		if err != nil {
			return err
		}
		if !ok {
			return ErrCancelNotAllowed
		}

		out, err = s.Repo.GetOrderDetail(tx, o.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(out)
	return out, nil
}

// ----- Listings & stats -----

func (s *OrderService) List(f repository.OrderFilter) ([]entity.Order, int64, error) {
	return s.Repo.ListOrders(f)
}

func (s *OrderService) Get(orderID uint) (*entity.Order, error) {
	o, err := s.Repo.GetOrderDetail(s.DB, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (s *OrderService) Active(customerID uint, priority string) ([]entity.Order, error) {
	return s.Repo.ListActive(customerID, priority)
}

func (s *OrderService) History(customerID uint, limit int) ([]entity.Order, error) {
	return s.Repo.ListHistory(customerID, limit)
}

type OrderStats struct {
	TotalOrders       int64            `json:"totalOrders"`
	ByStatus          map[string]int64 `json:"byStatus"`
	ByPriority        map[string]int64 `json:"byPriority"`
	TotalRevenue      decimal.Decimal  `json:"totalRevenue"`
	AverageOrderValue decimal.Decimal  `json:"averageOrderValue"`
}

// Stats aggregates counts and revenue. The average is zero, not a
// division error, when there are no orders.
func (s *OrderService) Stats(customerID uint) (*OrderStats, error) {
	byStatus, err := s.Repo.CountByColumn(customerID, "status")
	if err != nil {
		return nil, err
	}
	byPriority, err := s.Repo.CountByColumn(customerID, "priority")
	if err != nil {
		return nil, err
	}

	stats := OrderStats{
		ByStatus:          make(map[string]int64, len(entity.OrderStatuses)),
		ByPriority:        make(map[string]int64, len(entity.OrderPriorities)),
		TotalRevenue:      decimal.Zero,
		AverageOrderValue: decimal.Zero,
	}
	for _, st := range entity.OrderStatuses {
		stats.ByStatus[st] = byStatus[st]
	}
	for _, p := range entity.OrderPriorities {
		stats.ByPriority[p] = byPriority[p]
	}

	orders, err := s.Repo.ListTotals(customerID)
	if err != nil {
		return nil, err
	}
	stats.TotalOrders = int64(len(orders))
	for _, o := range orders {
		stats.TotalRevenue = stats.TotalRevenue.Add(o.TotalAmount)
	}
	if stats.TotalOrders > 0 {
		stats.AverageOrderValue = stats.TotalRevenue.DivRound(decimal.NewFromInt(stats.TotalOrders), 2)
	}
	return &stats, nil
}
