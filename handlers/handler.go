package handlers

import (
	"errors"
	"net/http"
	"time"

	"southern-spoon-api/middleware"
	"southern-spoon-api/ordering"
	"southern-spoon-api/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	DefaultSessionTokenTTL = 12 * time.Hour
	DefaultAdminTokenTTL   = 8 * time.Hour
)

// Handler carries what the HTTP layer needs from the rest of the service
type Handler struct {
	Sessions          *ordering.Manager
	Orders            *store.Orders
	JWTSecret         []byte
	AdminPasswordHash string
	SessionTokenTTL   time.Duration
	AdminTokenTTL     time.Duration
	Log               logrus.FieldLogger
}

func New(sessions *ordering.Manager, secret []byte, adminPasswordHash string, log logrus.FieldLogger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		Sessions:          sessions,
		Orders:            sessions.Deps().Orders,
		JWTSecret:         secret,
		AdminPasswordHash: adminPasswordHash,
		SessionTokenTTL:   DefaultSessionTokenTTL,
		AdminTokenTTL:     DefaultAdminTokenTTL,
		Log:               log,
	}
}

// session resolves the caller's session from the token, writing a 404 when
// it is gone (expired or evicted by the sweeper).
func (h *Handler) session(c *gin.Context) (*ordering.Session, bool) {
	s, err := h.Sessions.Get(middleware.GetSessionID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found or expired, start a new one"})
		return nil, false
	}
	return s, true
}

// respondError maps domain errors onto status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	var verr *ordering.ValidationError
	var perr *ordering.PersistenceError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": verr.Reason, "reason": verr.Reason})
	case errors.As(err, &perr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "order not saved", "detail": perr.Err.Error()})
	case errors.Is(err, ordering.ErrNoPendingDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ordering.ErrUnknownItem), errors.Is(err, ordering.ErrUnknownMeal),
		errors.Is(err, ordering.ErrInvalidQty):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	default:
		h.Log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
