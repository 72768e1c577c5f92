package routes

import (
	"restaurant-pos/handlers"
	"restaurant-pos/middleware"
	"restaurant-pos/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Restaurant site (no auth needed)
		public.GET("/restaurant", handlers.GetRestaurantInfo)
		public.GET("/menu", handlers.ListMenu)
		public.GET("/categories", handlers.ListCategories)
		public.GET("/promotions", handlers.ListActivePromotions)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// Live order board for kitchen and waiter screens; staff only
	r.GET("/ws/orders",
		middleware.AuthRequired(),
		middleware.RoleRequired(models.StaffRoles...),
		handlers.Hub.ServeWS)

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api/customer")
	customer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCustomer))
	{
		customer.POST("/orders", handlers.PlaceOrder)
		customer.GET("/orders", handlers.GetMyOrders)
		customer.GET("/orders/:id", handlers.TrackOrder)
		customer.PUT("/orders/:id/cancel", handlers.CancelMyOrder)

		customer.POST("/reservations", handlers.CreateReservation)
		customer.GET("/reservations", handlers.GetMyReservations)
		customer.PUT("/reservations/:code/cancel", handlers.CancelMyReservation)
	}

	// ── Waiter routes ──────────────────────────────────────────────
	waiter := r.Group("/api/waiter")
	waiter.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleWaiter, models.RoleAdmin))
	{
		waiter.GET("/tables", handlers.ListTables)
		waiter.PUT("/tables/:id/status", handlers.SetTableStatus)

		waiter.POST("/orders", handlers.OpenTableOrder)
		waiter.POST("/orders/:id/items", handlers.AddItemsToOrder)
		waiter.PUT("/orders/:id/serve", handlers.ServeReadyItems)
		waiter.PUT("/orders/:id/cancel", handlers.CancelOrder)

		waiter.GET("/reservations", handlers.ListReservations)
		waiter.PUT("/reservations/:id/status", handlers.SetReservationStatus)
	}

	// ── Kitchen routes ─────────────────────────────────────────────
	kitchen := r.Group("/api/kitchen")
	kitchen.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleChef, models.RoleAdmin))
	{
		kitchen.GET("/queue", handlers.GetPendingQueue)
		kitchen.GET("/my-orders", handlers.GetMyPreparations)
		kitchen.PUT("/orders/:id/accept", handlers.AcceptOrder)
		kitchen.PUT("/orders/:id/items/:itemId/ready", handlers.MarkItemReady)
	}

	// ── Cashier routes ─────────────────────────────────────────────
	cashier := r.Group("/api/cashier")
	cashier.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCashier, models.RoleAdmin))
	{
		cashier.GET("/orders/delivered", handlers.ListDeliveredOrders)
		cashier.PUT("/orders/:id/pay", handlers.SettleOrder)
		cashier.PUT("/orders/:id/return-stock", handlers.ReturnCancelledOrderStock)
		cashier.GET("/sales/daily", handlers.GetDailySales)
	}

	// ── Delivery routes ────────────────────────────────────────────
	delivery := r.Group("/api/delivery")
	delivery.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleDelivery, models.RoleAdmin))
	{
		delivery.GET("/orders/ready", handlers.ListReadyDeliveries)
		delivery.GET("/orders/mine", handlers.GetMyDeliveries)
		delivery.PUT("/orders/:id/start", handlers.StartDelivery)
		delivery.PUT("/orders/:id/complete", handlers.CompleteDelivery)
	}

	// ── Staff routes (any employee) ────────────────────────────────
	staff := r.Group("/api/staff")
	staff.Use(middleware.AuthRequired(), middleware.RoleRequired(models.StaffRoles...))
	{
		staff.POST("/clock-in", handlers.ClockIn)
		staff.POST("/clock-out", handlers.ClockOut)
		staff.GET("/shifts", handlers.GetMyShifts)
		staff.GET("/shift-history", handlers.GetShiftHistory)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.POST("/staff", handlers.CreateStaffUser)
		admin.GET("/staff", handlers.ListStaff)
		admin.PUT("/users/:id/active", handlers.SetUserActive)

		admin.POST("/suppliers", handlers.CreateSupplier)
		admin.POST("/ingredient-categories", handlers.CreateIngredientCategory)
		admin.POST("/ingredients", handlers.CreateIngredient)
		admin.PUT("/ingredients/:id", handlers.UpdateIngredient)
		admin.PUT("/ingredients/:id/stock", handlers.AdjustIngredientStock)
		admin.GET("/inventory", handlers.GetInventoryReport)

		admin.POST("/categories", handlers.CreateCategory)
		admin.POST("/menu", handlers.CreateMenuItem)
		admin.PUT("/menu/:id", handlers.UpdateMenuItem)
		admin.PUT("/menu/:id/active", handlers.SetMenuItemActive)
		admin.GET("/menu/:id/costing", handlers.GetMenuItemCosting)

		admin.POST("/promotions", handlers.CreatePromotion)
		admin.PUT("/promotions/:id", handlers.UpdatePromotion)
		admin.PUT("/promotions/:id/active", handlers.SetPromotionActive)

		admin.POST("/tables", handlers.CreateTable)

		admin.POST("/shifts", handlers.CreateShift)
		admin.GET("/shifts", handlers.ListShifts)
		admin.DELETE("/shifts/:id", handlers.DeactivateShift)

		admin.GET("/dashboard", handlers.GetDashboardSummary)
	}
}
