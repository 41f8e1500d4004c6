package services

import (
	"testing"

	"github.com/Felmyb/SistemaSKC/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTransitionTable(t *testing.T) {
	allowed := map[[2]string]bool{
		{entity.StatusPending, entity.StatusConfirmed}:    true,
		{entity.StatusPending, entity.StatusCancelled}:    true,
		{entity.StatusConfirmed, entity.StatusInProgress}: true,
		{entity.StatusConfirmed, entity.StatusCancelled}:  true,
		{entity.StatusInProgress, entity.StatusReady}:     true,
		{entity.StatusInProgress, entity.StatusCancelled}: true,
		{entity.StatusReady, entity.StatusDelivered}:      true,
	}

	for _, from := range entity.OrderStatuses {
		for _, to := range entity.OrderStatuses {
			err := ValidateTransition(from, to)
			if allowed[[2]string{from, to}] {
				assert.NoError(t, err, "%s -> %s should be allowed", from, to)
				continue
			}
			var ite *InvalidTransitionError
			require.ErrorAs(t, err, &ite, "%s -> %s should be rejected", from, to)
			assert.Equal(t, from, ite.From)
			assert.Equal(t, to, ite.To)
		}
	}
}

func TestCreateDineInRequiresTableNumber(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)
	cust := seedCustomer(t, db)
	dish := seedDish(t, db, "Ramen", "12.00", nil, "")

	_, err := svc.Create(cust.ID, &CreateOrderReq{
		OrderType: entity.OrderTypeDineIn,
		Items:     []OrderItemIn{{DishID: dish.ID, Quantity: 1}},
	})
	require.ErrorIs(t, err, ErrMissingTableNumber)

	o, err := svc.Create(cust.ID, &CreateOrderReq{
		OrderType:   entity.OrderTypeDineIn,
		TableNumber: "7",
		Items:       []OrderItemIn{{DishID: dish.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, o.Status)
	assert.Equal(t, entity.PriorityMedium, o.Priority)
}

func TestCreateSnapshotsUnitPriceAndTotal(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)
	cust := seedCustomer(t, db)
	pasta := seedDish(t, db, "Pasta", "9.50", nil, "")
	soup := seedDish(t, db, "Soup", "4.25", nil, "")

	o, err := svc.Create(cust.ID, &CreateOrderReq{
		OrderType: entity.OrderTypeTakeout,
		Items: []OrderItemIn{
			{DishID: pasta.ID, Quantity: 2},
			{DishID: soup.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)
	require.Len(t, o.Items, 2)

	// 2*9.50 + 3*4.25
	assert.True(t, o.TotalAmount.Equal(dec(t, "31.75")), "total: %s", o.TotalAmount)

	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.Subtotal)
	}
	assert.True(t, o.TotalAmount.Equal(sum))

	// A later catalog price edit must not touch the persisted order.
	require.NoError(t, db.Model(&entity.Dish{}).Where("id = ?", pasta.ID).
		Update("price", dec(t, "99.99")).Error)

	got, err := svc.Get(o.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalAmount.Equal(dec(t, "31.75")))
	for _, it := range got.Items {
		if it.DishID == pasta.ID {
			assert.True(t, it.UnitPrice.Equal(dec(t, "9.50")))
		}
	}
}

func TestCreateRejectsUnavailableDish(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)
	cust := seedCustomer(t, db)
	dish := seedDish(t, db, "Seasonal Special", "15.00", nil, "")
	require.NoError(t, db.Model(&entity.Dish{}).Where("id = ?", dish.ID).
		Update("is_available", false).Error)

	_, err := svc.Create(cust.ID, &CreateOrderReq{
		OrderType: entity.OrderTypeTakeout,
		Items:     []OrderItemIn{{DishID: dish.ID, Quantity: 1}},
	})
	var due *DishUnavailableError
	require.ErrorAs(t, err, &due)
	assert.Equal(t, "Seasonal Special", due.Dish)

	var n int64
	require.NoError(t, db.Model(&entity.Order{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)
}

func TestCreateRejectsInsufficientIngredients(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)
	cust := seedCustomer(t, db)
	ing := seedIngredient(t, db, "truffle", "0.10")
	dish := seedDish(t, db, "Truffle Pasta", "30.00", ing, "0.05")

	// 3 servings need 0.15, only 0.10 on hand.
	_, err := svc.Create(cust.ID, &CreateOrderReq{
		OrderType: entity.OrderTypeTakeout,
		Items:     []OrderItemIn{{DishID: dish.ID, Quantity: 3}},
	})
	var iie *InsufficientIngredientsError
	require.ErrorAs(t, err, &iie)
	assert.Equal(t, "truffle", iie.Ingredient)

	var n int64
	require.NoError(t, db.Model(&entity.Order{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)

	// The check is advisory: nothing was deducted either.
	assert.True(t, stockQuantity(t, db, ing.ID).Equal(dec(t, "0.10")))
}

func TestCreateUnknownDish(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)
	cust := seedCustomer(t, db)

	_, err := svc.Create(cust.ID, &CreateOrderReq{
		OrderType: entity.OrderTypeTakeout,
		Items:     []OrderItemIn{{DishID: 9999, Quantity: 1}},
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateIncrementsPopularityPerItemRow(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)
	cust := seedCustomer(t, db)
	dish := seedDish(t, db, "Burger", "8.00", nil, "")

	_, err := svc.Create(cust.ID, &CreateOrderReq{
		OrderType: entity.OrderTypeTakeout,
		Items: []OrderItemIn{
			{DishID: dish.ID, Quantity: 2},
			{DishID: dish.ID, Quantity: 1, SpecialInstructions: "no onions"},
		},
	})
	require.NoError(t, err)

	var got entity.Dish
	require.NoError(t, db.First(&got, dish.ID).Error)
	assert.Equal(t, 2, got.PopularityScore)
}

func TestConfirmDeductsWholeOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)
	cust := seedCustomer(t, db)
	ing := seedIngredient(t, db, "cheese", "1.00")
	dish := seedDish(t, db, "Quesadilla", "7.00", ing, "0.20")

	o, err := svc.Create(cust.ID, &CreateOrderReq{
		OrderType: entity.OrderTypeTakeout,
		Items:     []OrderItemIn{{DishID: dish.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	// Nothing leaves stock at creation time.
	assert.True(t, stockQuantity(t, db, ing.ID).Equal(dec(t, "1.00")))

	o, err = svc.UpdateStatus(o.ID, entity.StatusConfirmed, nil, &cust.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusConfirmed, o.Status)
	assert.True(t, stockQuantity(t, db, ing.ID).Equal(dec(t, "0.60")))

	var row entity.InventoryTransaction
	require.NoError(t, db.Where("ingredient_id = ?", ing.ID).First(&row).Error)
	assert.Equal(t, entity.TxUsage, row.Type)
	require.NotNil(t, row.OrderID)
	assert.Equal(t, o.ID, *row.OrderID)
	assert.True(t, row.Quantity.Equal(dec(t, "-0.40")))
}

func TestConfirmIsAllOrNothing(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)
	inv := newInventoryService(t, db)
	cust := seedCustomer(t, db)

	plenty := seedIngredient(t, db, "flour", "100.00")
	scarce := seedIngredient(t, db, "caviar", "0.05")

	dish := seedDish(t, db, "Caviar Blini", "40.00", plenty, "0.10")
	ri := entity.RecipeItem{DishID: dish.ID, IngredientID: scarce.ID, Quantity: dec(t, "0.05")}
	require.NoError(t, db.Create(&ri).Error)

	o, err := svc.Create(cust.ID, &CreateOrderReq{
		OrderType: entity.OrderTypeTakeout,
		Items:     []OrderItemIn{{DishID: dish.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	// Stock moves between creation and confirmation; drain the caviar.
	_, err = inv.Adjust(scarce.ID, AdjustmentInput{Type: entity.TxWaste, Quantity: dec(t, "0.05")})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(o.ID, entity.StatusConfirmed, nil, nil)
	var iie *InsufficientIngredientsError
	require.ErrorAs(t, err, &iie)
	assert.Equal(t, "caviar", iie.Ingredient)

	// The whole confirmation rolled back: flour untouched even if it
	// was deducted before the shortfall surfaced, status still PENDING.
	assert.True(t, stockQuantity(t, db, plenty.ID).Equal(dec(t, "100.00")))

	got, err := svc.Get(o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, got.Status)

	var usage int64
	require.NoError(t, db.Model(&entity.InventoryTransaction{}).
		Where("type = ?", entity.TxUsage).Count(&usage).Error)
	assert.Equal(t, int64(0), usage)
}

func TestDeliveredStampsCompletedAtOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)
	cust := seedCustomer(t, db)
	dish := seedDish(t, db, "Pad Thai", "11.00", nil, "")

	o, err := svc.Create(cust.ID, &CreateOrderReq{
		OrderType: entity.OrderTypeTakeout,
		Items:     []OrderItemIn{{DishID: dish.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	for _, st := range []string{entity.StatusConfirmed, entity.StatusInProgress, entity.StatusReady} {
		o, err = svc.UpdateStatus(o.ID, st, nil, nil)
		require.NoError(t, err)
		assert.Nil(t, o.CompletedAt)
	}

	actual := 25
	o, err = svc.UpdateStatus(o.ID, entity.StatusDelivered, &actual, nil)
	require.NoError(t, err)
	require.NotNil(t, o.CompletedAt)
	require.NotNil(t, o.ActualTime)
	assert.Equal(t, 25, *o.ActualTime)
	stamped := *o.CompletedAt

	// Terminal: a repeat delivery is rejected and the stamp survives.
	_, err = svc.UpdateStatus(o.ID, entity.StatusDelivered, &actual, nil)
	var ite *InvalidTransitionError
	require.ErrorAs(t, err, &ite)

	got, err := svc.Get(o.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, stamped.Unix(), got.CompletedAt.Unix())
}

func TestCancelPendingOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)
	cust := seedCustomer(t, db)
	ing := seedIngredient(t, db, "basil", "5.00")
	dish := seedDish(t, db, "Pesto", "10.00", ing, "0.50")

	o, err := svc.Create(cust.ID, &CreateOrderReq{
		OrderType: entity.OrderTypeTakeout,
		Items:     []OrderItemIn{{DishID: dish.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	o, err = svc.Cancel(o.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, o.Status)

	// Nothing was ever deducted, so nothing is handed back.
	assert.True(t, stockQuantity(t, db, ing.ID).Equal(dec(t, "5.00")))
	assert.Equal(t, int64(0), transactionCount(t, db, ing.ID))
}

func TestCancelConfirmedOrderRestoresStock(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)
	cust := seedCustomer(t, db)
	ing := seedIngredient(t, db, "dough", "10.00")
	dish := seedDish(t, db, "Pizza", "14.00", ing, "0.30")

	o, err := svc.Create(cust.ID, &CreateOrderReq{
		OrderType: entity.OrderTypeTakeout,
		Items:     []OrderItemIn{{DishID: dish.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	o, err = svc.UpdateStatus(o.ID, entity.StatusConfirmed, nil, nil)
	require.NoError(t, err)
	assert.True(t, stockQuantity(t, db, ing.ID).Equal(dec(t, "9.40")))

	o, err = svc.Cancel(o.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, o.Status)
	assert.True(t, stockQuantity(t, db, ing.ID).Equal(dec(t, "10.00")))

	// Ledger keeps both sides of the story: the USAGE row and its
	// reversing ADJUSTMENT.
	var rows []entity.InventoryTransaction
	require.NoError(t, db.Where("ingredient_id = ? AND order_id = ?", ing.ID, o.ID).
		Order("id ASC").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, entity.TxUsage, rows[0].Type)
	assert.True(t, rows[0].Quantity.Equal(dec(t, "-0.60")))
	assert.Equal(t, entity.TxAdjustment, rows[1].Type)
	assert.True(t, rows[1].Quantity.Equal(dec(t, "0.60")))
	assert.Equal(t, "order cancelled", rows[1].Notes)
}

func TestCancelInProgressRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)
	cust := seedCustomer(t, db)
	dish := seedDish(t, db, "Stew", "9.00", nil, "")

	o, err := svc.Create(cust.ID, &CreateOrderReq{
		OrderType: entity.OrderTypeTakeout,
		Items:     []OrderItemIn{{DishID: dish.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	for _, st := range []string{entity.StatusConfirmed, entity.StatusInProgress} {
		o, err = svc.UpdateStatus(o.ID, st, nil, nil)
		require.NoError(t, err)
	}

	_, err = svc.Cancel(o.ID, nil)
	require.ErrorIs(t, err, ErrCancelNotAllowed)

	got, err := svc.Get(o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInProgress, got.Status)
}

func TestStats(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)
	cust := seedCustomer(t, db)
	dish := seedDish(t, db, "Curry", "10.00", nil, "")

	empty, err := svc.Stats(0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), empty.TotalOrders)
	assert.True(t, empty.TotalRevenue.IsZero())
	assert.True(t, empty.AverageOrderValue.IsZero())
	// Every status and priority bucket is present even when zero.
	assert.Len(t, empty.ByStatus, len(entity.OrderStatuses))
	assert.Len(t, empty.ByPriority, len(entity.OrderPriorities))

	mk := func(qty int) *entity.Order {
		o, err := svc.Create(cust.ID, &CreateOrderReq{
			OrderType: entity.OrderTypeTakeout,
			Items:     []OrderItemIn{{DishID: dish.ID, Quantity: qty}},
		})
		require.NoError(t, err)
		return o
	}

	mk(1)          // 10.00, stays PENDING
	o2 := mk(2)    // 20.00
	_, err = svc.UpdateStatus(o2.ID, entity.StatusConfirmed, nil, nil)
	require.NoError(t, err)
	o3 := mk(3) // 30.00
	_, err = svc.Cancel(o3.ID, nil)
	require.NoError(t, err)

	stats, err := svc.Stats(cust.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalOrders)
	assert.Equal(t, int64(1), stats.ByStatus[entity.StatusPending])
	assert.Equal(t, int64(1), stats.ByStatus[entity.StatusConfirmed])
	assert.Equal(t, int64(1), stats.ByStatus[entity.StatusCancelled])
	assert.Equal(t, int64(0), stats.ByStatus[entity.StatusDelivered])
	assert.Equal(t, int64(3), stats.ByPriority[entity.PriorityMedium])
	assert.True(t, stats.TotalRevenue.Equal(dec(t, "60.00")), "revenue: %s", stats.TotalRevenue)
	assert.True(t, stats.AverageOrderValue.Equal(dec(t, "20.00")), "avg: %s", stats.AverageOrderValue)
}

func TestActiveAndHistoryListings(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)
	cust := seedCustomer(t, db)
	dish := seedDish(t, db, "Tacos", "6.00", nil, "")

	mk := func(priority string) *entity.Order {
		o, err := svc.Create(cust.ID, &CreateOrderReq{
			OrderType: entity.OrderTypeTakeout,
			Priority:  priority,
			Items:     []OrderItemIn{{DishID: dish.ID, Quantity: 1}},
		})
		require.NoError(t, err)
		return o
	}

	low := mk(entity.PriorityLow)
	urgent := mk(entity.PriorityUrgent)
	done := mk(entity.PriorityMedium)
	_, err := svc.Cancel(done.ID, nil)
	require.NoError(t, err)

	active, err := svc.Active(cust.ID, "")
	require.NoError(t, err)
	require.Len(t, active, 2)
	// Urgent work surfaces first on the kitchen board.
	assert.Equal(t, urgent.ID, active[0].ID)
	assert.Equal(t, low.ID, active[1].ID)

	history, err := svc.History(cust.ID, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, done.ID, history[0].ID)
}
