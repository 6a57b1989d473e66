package handlers

import (
	"net/http"

	"southern-spoon-api/models"
	"southern-spoon-api/ordering"
	"southern-spoon-api/statemachine"

	"github.com/gin-gonic/gin"
)

type ChangeQtyRequest struct {
	Delta int `json:"delta" binding:"required"`
}

type SetMealRequest struct {
	Meal models.MealSlot `json:"meal" binding:"required"`
}

type SetContactRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Note    string `json:"note"`
}

// GetSession returns the caller's form, priced at the current time
func (h *Handler) GetSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": s.View()})
}

// ChangeQty is the +/- stepper on a menu item
func (h *Handler) ChangeQty(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req ChangeQtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.ChangeQty(c.Param("itemId"), req.Delta); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": s.View()})
}

func (h *Handler) SetMeal(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req SetMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.SetMeal(req.Meal); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": s.View()})
}

// SetContact stores the checkout fields; they are only validated on submit
func (h *Handler) SetContact(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req SetContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.SetContact(ordering.Contact(req))
	c.JSON(http.StatusOK, gin.H{"session": s.View()})
}

// LookupPhone runs when the phone field loses focus
func (h *Handler) LookupPhone(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	prev, err := s.LookupPhone(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"found": prev != nil, "order": prev})
}

// Submit places the order, or stops at the duplicate-order guard
func (h *Handler) Submit(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	out, err := s.Submit(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOutcome(c, s, out)
}

// Override replaces the existing order for the phone with the current form
func (h *Handler) Override(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	out, err := s.Override(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOutcome(c, s, out)
}

// CancelDuplicate keeps the existing order and drops the new one
func (h *Handler) CancelDuplicate(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.Cancel(); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Duplicate order cancelled", "session": s.View()})
}

func (h *Handler) respondOutcome(c *gin.Context, s *ordering.Session, out ordering.Outcome) {
	switch out.State {
	case statemachine.StateDuplicateFound:
		c.JSON(http.StatusConflict, gin.H{
			"error":    "An order already exists for this phone number",
			"state":    out.State,
			"existing": out.Existing,
			"session":  s.View(),
		})
	default:
		c.JSON(http.StatusCreated, gin.H{
			"message": "Order placed — " + out.Order.ID,
			"state":   out.State,
			"order":   out.Order,
			"session": s.View(),
		})
	}
}
