package routes

import (
	"southern-spoon-api/handlers"
	"southern-spoon-api/middleware"
	"southern-spoon-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.GET("/menu", h.GetMenu)
		public.GET("/state-machine", h.GetStateMachineInfo)

		// Opens an order form and hands back its token
		public.POST("/sessions", h.StartSession)
		public.POST("/admin/login", h.AdminLogin)
	}

	// ── Customer session routes ────────────────────────────────────
	session := r.Group("/api/session")
	session.Use(middleware.AuthRequired(h.JWTSecret), middleware.RoleRequired(models.RoleCustomer))
	{
		session.GET("", h.GetSession)
		session.PUT("/items/:itemId", h.ChangeQty)
		session.PUT("/meal", h.SetMeal)
		session.PUT("/contact", h.SetContact)
		session.POST("/phone-lookup", h.LookupPhone)
		session.POST("/submit", h.Submit)
		session.POST("/override", h.Override)
		session.POST("/cancel", h.CancelDuplicate)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(h.JWTSecret), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/orders", h.AdminGetAllOrders)
		admin.GET("/orders/:phone", h.AdminGetOrder)
		admin.DELETE("/orders/:phone", h.AdminDeleteOrder)
	}
}
