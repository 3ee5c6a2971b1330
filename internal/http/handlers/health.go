package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/giftwizard-backend/internal/services"
)

const (
	ServiceName    = "Ruby's Gifts API"
	ServiceVersion = "1.0.0"
)

type HealthHandler struct {
	generator services.GiftGenerationService
}

func NewHealthHandler(generator services.GiftGenerationService) *HealthHandler {
	return &HealthHandler{generator: generator}
}

// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	configured := h.generator != nil && h.generator.Configured()
	c.JSON(http.StatusOK, gin.H{
		"status":            "healthy",
		"service":           ServiceName,
		"version":           ServiceVersion,
		"timestamp":         time.Now().UTC().Format(time.RFC3339Nano),
		"openai_configured": configured,
		"api_key_present":   configured,
	})
}

// GET /test_openai
func (h *HealthHandler) TestOpenAI(c *gin.Context) {
	if h.generator == nil || !h.generator.Configured() {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":         false,
			"error":           "OpenAI API key not configured",
			"api_key_present": false,
		})
		return
	}
	reply, err := h.generator.TestConnection(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "OpenAI connection successful",
		"response": reply,
	})
}
