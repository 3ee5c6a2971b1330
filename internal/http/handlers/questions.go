package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/giftwizard-backend/internal/http/response"
	"github.com/yungbote/giftwizard-backend/internal/questionnaire"
)

type QuestionHandler struct {
	cat *questionnaire.Catalog
}

func NewQuestionHandler(cat *questionnaire.Catalog) *QuestionHandler {
	return &QuestionHandler{cat: cat}
}

// GET /api/questions
func (h *QuestionHandler) List(c *gin.Context) {
	response.RespondOK(c, gin.H{
		"success":   true,
		"questions": h.cat.Questions(),
		"total":     h.cat.Len(),
	})
}
