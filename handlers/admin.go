package handlers

import (
	"errors"
	"net/http"
	"strings"

	"southern-spoon-api/models"
	"southern-spoon-api/store"

	"github.com/gin-gonic/gin"
)

// AdminGetAllOrders returns every stored order with a per-meal summary (admin only)
func (h *Handler) AdminGetAllOrders(c *gin.Context) {
	orders, err := h.Orders.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	if meal := c.Query("meal"); meal != "" {
		filtered := orders[:0]
		for _, o := range orders {
			if strings.EqualFold(string(o.Meal), meal) {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}

	// Admin dashboard: aggregate by meal
	summary := map[models.MealSlot]int{}
	var totalRevenue int64
	for _, o := range orders {
		summary[o.Meal]++
		totalRevenue += o.Total
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"total_revenue": totalRevenue,
		"count":         len(orders),
		"orders":        orders,
	})
}

// AdminGetOrder returns the order stored under a phone number (admin only)
func (h *Handler) AdminGetOrder(c *gin.Context) {
	phone := strings.TrimSpace(c.Param("phone"))
	rec, err := h.Orders.Find(c.Request.Context(), phone)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No order found for this phone number"})
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": rec})
}

// AdminDeleteOrder removes the order stored under a phone number (admin only)
func (h *Handler) AdminDeleteOrder(c *gin.Context) {
	phone := strings.TrimSpace(c.Param("phone"))
	err := h.Orders.Delete(c.Request.Context(), phone)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.Log.WithField("phone", phone).Info("order deleted by admin")
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted", "phone": phone})
}
