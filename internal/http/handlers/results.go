package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/giftwizard-backend/internal/http/response"
	"github.com/yungbote/giftwizard-backend/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ResultHandler struct {
	results services.ResultService
	export  services.ExportService
}

func NewResultHandler(results services.ResultService, export services.ExportService) *ResultHandler {
	return &ResultHandler{results: results, export: export}
}

// GET /api/results/:id
func (h *ResultHandler) Get(c *gin.Context) {
	row, ideas, err := h.results.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"success":    true,
		"result_id":  row.ID.String(),
		"gift_ideas": ideas,
		"fallback":   row.Fallback,
		"created_at": row.CreatedAt.UTC().Format(time.RFC3339),
		"expires_at": row.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// GET /api/results/:id/export.xlsx
func (h *ResultHandler) Export(c *gin.Context) {
	id := c.Param("id")
	buf, err := h.export.ExportXLSX(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, services.ExportFilename(id)))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
