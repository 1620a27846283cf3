package subscription

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/startuplab/landing-api/internal/models"
)

const timeoutDuration = 10 * time.Second

type subscriber interface {
	Subscribe(ctx context.Context, email string) (models.Subscriber, error)
}

type Handler struct {
	Service subscriber

	// verboseErrors attaches the internal error text to 500 responses.
	// Never enabled in production.
	verboseErrors bool
}

func NewHandler(svc subscriber, verboseErrors bool) *Handler {
	return &Handler{Service: svc, verboseErrors: verboseErrors}
}

type subscribeRequest struct {
	// Pointer distinguishes an absent field from an empty string; a
	// non-string value fails binding outright.
	Email *string `json:"email"`
}

// Subscribe
// @Summary Subscribe an email address
// @Description Stores a normalized email address. Repeating an address answers 200 with a DUPLICATE_EMAIL code instead of an error status.
// @Tags subscription
// @Accept json
// @Param request body subscription.subscribeRequest true "Email to subscribe"
// @Success 201
// @Success 200
// @Failure 400
// @Failure 500
// @Router /subscribe [post]
func (h *Handler) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	_, err := h.Service.Subscribe(ctx, *req.Email)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Subscribed successfully"})
	case errors.Is(err, models.ErrDuplicateEmail):
		// The front end branches on the code, not on the status.
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"code":    "DUPLICATE_EMAIL",
			"message": "Email already subscribed",
		})
	case errors.Is(err, models.ErrEmailRequired):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email is required"})
	case errors.Is(err, models.ErrEmailFormat):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid email format"})
	default:
		body := gin.H{"success": false, "message": "Internal server error"}
		if h.verboseErrors {
			body["error"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, body)
	}
}
