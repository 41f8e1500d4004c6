package middlewares

import (
	"net/http"

	"github.com/Felmyb/SistemaSKC/entity"
	"github.com/Felmyb/SistemaSKC/utils"
	"github.com/gin-gonic/gin"
)

// Capabilities. Each endpoint declares the one action it requires;
// roles map to capability sets instead of one permission check per role.
const (
	CapMenuView           = "menu.view"
	CapMenuManage         = "menu.manage"
	CapInventoryView      = "inventory.view"
	CapInventoryAdjust    = "inventory.adjust"
	CapInventoryManage    = "inventory.manage"
	CapTransactionsView   = "transactions.view"
	CapOrdersCreate       = "orders.create"
	CapOrdersView         = "orders.view"
	CapOrdersUpdateStatus = "orders.update_status"
	CapOrdersCancel       = "orders.cancel"
	CapOrdersStats        = "orders.stats"
	CapKitchenFeed        = "kitchen.feed"
	CapUsersManage        = "users.manage"
)

var roleCapabilities = map[string][]string{
	entity.RoleCustomer: {
		CapMenuView,
		CapOrdersCreate, CapOrdersView, CapOrdersCancel,
	},
	entity.RoleCook: {
		CapMenuView, CapInventoryView,
		CapOrdersView, CapOrdersUpdateStatus, CapOrdersStats, CapKitchenFeed,
	},
	entity.RoleWaiter: {
		CapMenuView,
		CapOrdersCreate, CapOrdersView, CapOrdersUpdateStatus,
		CapOrdersCancel, CapOrdersStats, CapKitchenFeed,
	},
	entity.RoleInventoryManager: {
		CapMenuView, CapMenuManage,
		CapInventoryView, CapInventoryAdjust, CapInventoryManage,
		CapTransactionsView, CapOrdersView, CapOrdersStats,
	},
	entity.RoleAdministrator: {
		CapMenuView, CapMenuManage,
		CapInventoryView, CapInventoryAdjust, CapInventoryManage,
		CapTransactionsView,
		CapOrdersCreate, CapOrdersView, CapOrdersUpdateStatus,
		CapOrdersCancel, CapOrdersStats, CapKitchenFeed,
		CapUsersManage,
	},
}

// HasCapability reports whether the role's capability set contains cap.
func HasCapability(role, cap string) bool {
	for _, c := range roleCapabilities[role] {
		if c == cap {
			return true
		}
	}
	return false
}

// RequireCapability runs after AuthMiddleware and rejects roles whose
// capability set does not include cap.
func RequireCapability(cap string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !HasCapability(utils.CurrentRole(c), cap) {
			c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "forbidden"})
			c.Abort()
			return
		}
		c.Next()
	}
}
