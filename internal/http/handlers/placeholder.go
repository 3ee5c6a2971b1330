package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/giftwizard-backend/internal/http/response"
	"github.com/yungbote/giftwizard-backend/internal/services"
)

type PlaceholderHandler struct {
	renderer services.PlaceholderService
}

func NewPlaceholderHandler(renderer services.PlaceholderService) *PlaceholderHandler {
	return &PlaceholderHandler{renderer: renderer}
}

// GET /placeholder/:size/:color and /placeholder/:size/:color/:fg
func (h *PlaceholderHandler) Render(c *gin.Context) {
	buf, err := h.renderer.Render(services.PlaceholderSpec{
		Size:       c.Param("size"),
		Background: c.Param("color"),
		Foreground: c.Param("fg"),
		Text:       c.Query("text"),
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
