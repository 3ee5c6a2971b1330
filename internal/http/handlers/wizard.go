package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/giftwizard-backend/internal/http/response"
	"github.com/yungbote/giftwizard-backend/internal/platform/apierr"
	"github.com/yungbote/giftwizard-backend/internal/services"
	"github.com/yungbote/giftwizard-backend/internal/wizard"
)

type WizardHandler struct {
	sessions services.WizardSessionService
}

func NewWizardHandler(sessions services.WizardSessionService) *WizardHandler {
	return &WizardHandler{sessions: sessions}
}

// POST /api/wizard/sessions
func (h *WizardHandler) Create(c *gin.Context) {
	ws, err := h.sessions.Create(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ws)
}

// GET /api/wizard/sessions/:id
func (h *WizardHandler) Get(c *gin.Context) {
	ws, err := h.sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, ws)
}

// POST /api/wizard/sessions/:id/events
// body: { "type": "toggle_chip", "question_id": "budget", "label": "₹500-1000" }
func (h *WizardHandler) Apply(c *gin.Context) {
	var ev wizard.Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeInvalidEvent, err)
		return
	}
	ws, err := h.sessions.Apply(c.Request.Context(), c.Param("id"), ev)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, ws)
}

// DELETE /api/wizard/sessions/:id
func (h *WizardHandler) Delete(c *gin.Context) {
	if err := h.sessions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
