package handlers

import (
	"net/http"

	"southern-spoon-api/models"
	"southern-spoon-api/statemachine"

	"github.com/gin-gonic/gin"
)

// GetMenu returns the catalog with the meal slots and their surcharge cutoffs
func (h *Handler) GetMenu(c *gin.Context) {
	deps := h.Sessions.Deps()
	slots := make([]gin.H, 0, len(models.MealSlots))
	for _, m := range models.MealSlots {
		slots = append(slots, gin.H{"name": m, "surcharge_from_hour": deps.Rules.Cutoffs[m]})
	}
	c.JSON(http.StatusOK, gin.H{
		"count":     len(deps.Menu),
		"menu":      deps.Menu,
		"meals":     slots,
		"surcharge": deps.Rules.Surcharge,
		"tax_rate":  deps.Rules.TaxRate.String(),
	})
}

// GetStateMachineInfo returns the order attempt state machine for informational purposes
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"state_machine": statemachine.GetAllTransitions(),
		"initial_state": statemachine.StateIdle,
		"states":        statemachine.AllStates,
		"submit_from":   statemachine.SettledStates(),
		"description":   "Order attempt lifecycle: validation, duplicate-order guard and commit",
	})
}
