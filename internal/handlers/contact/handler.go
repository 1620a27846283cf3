package contact

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/startuplab/landing-api/internal/models"
)

const timeoutDuration = 10 * time.Second

type recorder interface {
	Record(ctx context.Context, name, email, message string) (models.ContactMessage, error)
}

type Handler struct {
	Service       recorder
	verboseErrors bool
}

func NewHandler(svc recorder, verboseErrors bool) *Handler {
	return &Handler{Service: svc, verboseErrors: verboseErrors}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Submit
// @Summary Submit the contact form
// @Description Stores a contact message. Duplicate submissions are all stored.
// @Tags contact
// @Accept json
// @Param request body contact.contactRequest true "Contact form fields"
// @Success 201
// @Failure 400
// @Failure 500
// @Router /api/contact [post]
func (h *Handler) Submit(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "All fields are required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	_, err := h.Service.Record(ctx, req.Name, req.Email, req.Message)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Message sent successfully"})
	case errors.Is(err, models.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "All fields are required"})
	case errors.Is(err, models.ErrEmailRequired), errors.Is(err, models.ErrEmailFormat):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid email format"})
	default:
		body := gin.H{"success": false, "message": "Internal server error"}
		if h.verboseErrors {
			body["error"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, body)
	}
}
