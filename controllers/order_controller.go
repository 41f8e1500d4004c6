package controllers

import (
	"errors"
	"strconv"

	"github.com/Felmyb/SistemaSKC/entity"
	"github.com/Felmyb/SistemaSKC/pkg/resp"
	"github.com/Felmyb/SistemaSKC/repository"
	"github.com/Felmyb/SistemaSKC/services"
	"github.com/Felmyb/SistemaSKC/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// customerScope returns the caller's user id when they may only see
// their own orders, zero for staff.
func customerScope(c *gin.Context) uint {
	if utils.CurrentRole(c) == entity.RoleCustomer {
		return utils.CurrentUserID(c)
	}
	return 0
}

func orderPayload(o *entity.Order) gin.H {
	return gin.H{
		"id":            o.ID,
		"customerId":    o.CustomerID,
		"status":        o.Status,
		"priority":      o.Priority,
		"priorityColor": o.PriorityColor(),
		"orderType":     o.OrderType,
		"tableNumber":   o.TableNumber,
		"totalAmount":   o.TotalAmount,
		"estimatedTime": o.EstimatedTime,
		"actualTime":    o.ActualTime,
		"notes":         o.Notes,
		"items":         o.Items,
		"createdAt":     o.CreatedAt,
		"updatedAt":     o.UpdatedAt,
		"completedAt":   o.CompletedAt,
	}
}

func (oc *OrderController) writeOrderError(c *gin.Context, err error) {
	var (
		ve *services.ValidationError
		te *services.InvalidTransitionError
		de *services.DishUnavailableError
		ie *services.InsufficientIngredientsError
	)
	switch {
	case errors.Is(err, services.ErrNotFound):
		resp.NotFound(c, "order not found")
	case errors.Is(err, services.ErrMissingTableNumber):
		resp.FieldError(c, "tableNumber", err.Error())
	case errors.Is(err, services.ErrCancelNotAllowed):
		resp.BadRequest(c, err.Error())
	case errors.As(err, &ve):
		resp.FieldError(c, ve.Field, ve.Message)
	case errors.As(err, &te):
		resp.BadRequest(c, te.Error())
	case errors.As(err, &de):
		resp.FieldError(c, "items", de.Error())
	case errors.As(err, &ie):
		resp.FieldError(c, "items", ie.Error())
	default:
		resp.ServerError(c, err)
	}
}

// POST /orders
func (oc *OrderController) Create(c *gin.Context) {
	var req services.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := oc.Orders.Create(utils.CurrentUserID(c), &req)
	if err != nil {
		oc.writeOrderError(c, err)
		return
	}
	resp.Created(c, orderPayload(order))
}

// GET /orders?status=&priority=&orderType=&page=&limit=
func (oc *OrderController) List(c *gin.Context) {
	f := repository.OrderFilter{
		CustomerID: customerScope(c),
		Status:     c.Query("status"),
		Priority:   c.Query("priority"),
		OrderType:  c.Query("orderType"),
	}
	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))

	items, total, err := oc.Orders.List(f)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	out := make([]gin.H, 0, len(items))
	for i := range items {
		out = append(out, orderPayload(&items[i]))
	}
	resp.OK(c, gin.H{"items": out, "total": total, "page": f.Page, "limit": f.Limit})
}

// GET /orders/:id
func (oc *OrderController) Detail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	order, err := oc.Orders.Get(uint(id))
	if err != nil {
		oc.writeOrderError(c, err)
		return
	}
	if scope := customerScope(c); scope != 0 && order.CustomerID != scope {
		resp.NotFound(c, "order not found")
		return
	}
	resp.OK(c, orderPayload(order))
}

// GET /orders/active?priority=
func (oc *OrderController) Active(c *gin.Context) {
	items, err := oc.Orders.Active(customerScope(c), c.Query("priority"))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	out := make([]gin.H, 0, len(items))
	for i := range items {
		out = append(out, orderPayload(&items[i]))
	}
	resp.OK(c, gin.H{"items": out})
}

// GET /orders/history?limit=
func (oc *OrderController) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	items, err := oc.Orders.History(customerScope(c), limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	out := make([]gin.H, 0, len(items))
	for i := range items {
		out = append(out, orderPayload(&items[i]))
	}
	resp.OK(c, gin.H{"items": out})
}

// GET /orders/stats
func (oc *OrderController) Stats(c *gin.Context) {
	stats, err := oc.Orders.Stats(customerScope(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, stats)
}

// PATCH /orders/:id/status
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req services.UpdateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	uid := utils.CurrentUserID(c)
	order, err := oc.Orders.UpdateStatus(uint(id), req.Status, req.ActualTime, &uid)
	if err != nil {
		oc.writeOrderError(c, err)
		return
	}
	resp.OK(c, orderPayload(order))
}

// POST /orders/:id/cancel. Customers may only cancel their own.
func (oc *OrderController) Cancel(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	if scope := customerScope(c); scope != 0 {
		order, err := oc.Orders.Get(uint(id))
		if err != nil {
			oc.writeOrderError(c, err)
			return
		}
		if order.CustomerID != scope {
			resp.NotFound(c, "order not found")
			return
		}
	}

	uid := utils.CurrentUserID(c)
	order, err := oc.Orders.Cancel(uint(id), &uid)
	if err != nil {
		oc.writeOrderError(c, err)
		return
	}
	resp.OK(c, orderPayload(order))
}
