package routes

import (
	"github.com/Felmyb/SistemaSKC/configs"
	"github.com/Felmyb/SistemaSKC/controllers"
	"github.com/Felmyb/SistemaSKC/middlewares"
	"github.com/Felmyb/SistemaSKC/repository"
	"github.com/Felmyb/SistemaSKC/services"
	"github.com/Felmyb/SistemaSKC/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, hub *ws.KitchenHub) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories & services
	invRepo := repository.NewInventoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	inventorySvc := services.NewInventoryService(db, invRepo)
	orderSvc := services.NewOrderService(db, orderRepo, inventorySvc, hub)

	// Controllers
	authCtrl := controllers.NewAuthController(db, cfg)
	ingredientCtrl := controllers.NewIngredientController(db, inventorySvc)
	stockCtrl := controllers.NewStockController(db, inventorySvc)
	txCtrl := controllers.NewTransactionController(inventorySvc)
	dishCtrl := controllers.NewDishController(db)
	orderCtrl := controllers.NewOrderController(orderSvc)

	auth := middlewares.AuthMiddleware(cfg.JWTSecret)
	can := middlewares.RequireCapability

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}

	// Auth (protected)
	aAuth := a.Group("", auth)
	{
		aAuth.GET("/me", authCtrl.Me)
		aAuth.PATCH("/me", authCtrl.UpdateMe)
	}

	// Menu
	dishes := r.Group("/dishes", auth)
	{
		dishes.GET("", can(middlewares.CapMenuView), dishCtrl.List)
		dishes.GET("/popular", can(middlewares.CapMenuView), dishCtrl.Popular)
		dishes.GET("/categories", can(middlewares.CapMenuView), dishCtrl.Categories)
		dishes.GET("/:id", can(middlewares.CapMenuView), dishCtrl.Detail)

		dishes.POST("", can(middlewares.CapMenuManage), dishCtrl.Create)
		dishes.PATCH("/:id", can(middlewares.CapMenuManage), dishCtrl.Update)
		dishes.DELETE("/:id", can(middlewares.CapMenuManage), dishCtrl.Delete)
		dishes.POST("/:id/recipe", can(middlewares.CapMenuManage), dishCtrl.AddRecipeItem)
		dishes.PATCH("/:id/recipe/:itemId", can(middlewares.CapMenuManage), dishCtrl.UpdateRecipeItem)
		dishes.DELETE("/:id/recipe/:itemId", can(middlewares.CapMenuManage), dishCtrl.DeleteRecipeItem)
	}

	// Inventory
	ingredients := r.Group("/ingredients", auth)
	{
		ingredients.GET("", can(middlewares.CapInventoryView), ingredientCtrl.List)
		ingredients.GET("/low-stock", can(middlewares.CapInventoryView), ingredientCtrl.LowStock)
		ingredients.GET("/:id", can(middlewares.CapInventoryView), ingredientCtrl.Detail)

		ingredients.POST("", can(middlewares.CapInventoryManage), ingredientCtrl.Create)
		ingredients.PATCH("/:id", can(middlewares.CapInventoryManage), ingredientCtrl.Update)
		ingredients.DELETE("/:id", can(middlewares.CapInventoryManage), ingredientCtrl.Delete)
		ingredients.POST("/:id/toggle-active", can(middlewares.CapInventoryManage), ingredientCtrl.ToggleActive)
	}

	stocks := r.Group("/stocks", auth)
	{
		stocks.GET("", can(middlewares.CapInventoryView), stockCtrl.List)
		stocks.GET("/:id", can(middlewares.CapInventoryView), stockCtrl.Detail)
		stocks.PATCH("/:id", can(middlewares.CapInventoryManage), stockCtrl.Update)
		stocks.POST("/:id/adjust", can(middlewares.CapInventoryAdjust), stockCtrl.Adjust)
	}

	r.GET("/transactions", auth, can(middlewares.CapTransactionsView), txCtrl.List)

	// Orders
	orders := r.Group("/orders", auth)
	{
		orders.POST("", can(middlewares.CapOrdersCreate), orderCtrl.Create)
		orders.GET("", can(middlewares.CapOrdersView), orderCtrl.List)
		orders.GET("/active", can(middlewares.CapOrdersView), orderCtrl.Active)
		orders.GET("/history", can(middlewares.CapOrdersView), orderCtrl.History)
		orders.GET("/stats", can(middlewares.CapOrdersStats), orderCtrl.Stats)
		orders.GET("/:id", can(middlewares.CapOrdersView), orderCtrl.Detail)
		orders.PATCH("/:id/status", can(middlewares.CapOrdersUpdateStatus), orderCtrl.UpdateStatus)
		orders.POST("/:id/cancel", can(middlewares.CapOrdersCancel), orderCtrl.Cancel)
	}

	// Kitchen display feed. Browsers cannot set headers on the upgrade
	// request, so this route takes the token from the query string too.
	r.GET("/ws/kitchen", middlewares.WSAuthMiddleware(cfg.JWTSecret), can(middlewares.CapKitchenFeed), hub.HandleWebSocket)
}
