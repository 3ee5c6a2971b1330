package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/giftwizard-backend/internal/http/response"
	"github.com/yungbote/giftwizard-backend/internal/platform/apierr"
	"github.com/yungbote/giftwizard-backend/internal/services"
)

const defaultImageCount = 3

type ImageHandler struct {
	images services.ImageSearchService
}

func NewImageHandler(images services.ImageSearchService) *ImageHandler {
	return &ImageHandler{images: images}
}

// GET /api/images?q=&count=
func (h *ImageHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.RespondAPIError(c, apierr.Invalid("Query parameter 'q' is required"))
		return
	}
	count := defaultImageCount
	if raw := strings.TrimSpace(c.Query("count")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < services.MinImageCount || n > services.MaxImageCount {
			response.RespondAPIError(c, apierr.Invalid("Image count must be between %d and %d", services.MinImageCount, services.MaxImageCount))
			return
		}
		count = n
	}
	imgs := h.images.Search(c.Request.Context(), q, count)
	response.RespondOK(c, services.NewImageLookup(q, count, imgs))
}
