package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order statuses. PENDING is the initial state; DELIVERED and
// CANCELLED are terminal.
const (
	StatusPending    = "PENDING"
	StatusConfirmed  = "CONFIRMED"
	StatusInProgress = "IN_PROGRESS"
	StatusReady      = "READY"
	StatusDelivered  = "DELIVERED"
	StatusCancelled  = "CANCELLED"
)

var OrderStatuses = []string{
	StatusPending, StatusConfirmed, StatusInProgress,
	StatusReady, StatusDelivered, StatusCancelled,
}

// Priorities affect kitchen display ordering only, never the state machine.
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

var OrderPriorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Order types.
const (
	OrderTypeDineIn   = "DINE_IN"
	OrderTypeTakeout  = "TAKEOUT"
	OrderTypeDelivery = "DELIVERY"
)

type Order struct {
	gorm.Model
	CustomerID uint `gorm:"index:idx_order_customer_created;not null" json:"customerId"`
	Customer   User `gorm:"foreignKey:CustomerID" json:"-"`

	Status      string          `gorm:"index:idx_order_status_priority;not null;default:PENDING" json:"status"`
	Priority    string          `gorm:"index:idx_order_status_priority;not null;default:MEDIUM" json:"priority"`
	OrderType   string          `gorm:"not null;default:DINE_IN" json:"orderType"`
	TableNumber string          `json:"tableNumber"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"totalAmount"`

	EstimatedTime int    `gorm:"not null;default:0" json:"estimatedTime"`
	ActualTime    *int   `json:"actualTime"`
	Notes         string `json:"notes"`

	// Set exactly once, at the DELIVERED transition.
	CompletedAt *time.Time `json:"completedAt"`

	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// IsTerminal reports whether the order can no longer change status.
func (o *Order) IsTerminal() bool {
	return o.Status == StatusDelivered || o.Status == StatusCancelled
}

// PriorityColor maps each priority to its fixed display color.
func (o *Order) PriorityColor() string {
	switch o.Priority {
	case PriorityLow:
		return "#4CAF50"
	case PriorityMedium:
		return "#FFC107"
	case PriorityHigh:
		return "#FF9800"
	case PriorityUrgent:
		return "#F44336"
	}
	return "#9E9E9E"
}
