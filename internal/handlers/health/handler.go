package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Check
// @Summary Liveness probe
// @Description Reports process liveness. Always 200, independent of storage connectivity.
// @Tags health
// @Success 200
// @Router /health [get]
func (h *Handler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
