package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/giftwizard-backend/internal/domain"
	"github.com/yungbote/giftwizard-backend/internal/http/response"
	"github.com/yungbote/giftwizard-backend/internal/platform/apierr"
	"github.com/yungbote/giftwizard-backend/internal/platform/logger"
	"github.com/yungbote/giftwizard-backend/internal/services"
)

const maxGiftRequestBytes = 64 << 10

type GiftHandler struct {
	log       *logger.Logger
	generator services.GiftGenerationService
}

func NewGiftHandler(log *logger.Logger, generator services.GiftGenerationService) *GiftHandler {
	return &GiftHandler{log: log.With("handler", "GiftHandler"), generator: generator}
}

// POST /generate_gifts
// body: { "call_them": "...", "relationship": "...", ... }
func (h *GiftHandler) GenerateGifts(c *gin.Context) {
	if !strings.EqualFold(c.ContentType(), "application/json") {
		h.log.Warn("Request missing JSON content-type")
		response.RespondError(c, http.StatusBadRequest, apierr.CodeInvalidContentType,
			errors.New("Request must contain JSON data"))
		return
	}

	req, err := decodeGiftRequest(c)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}

	gen, err := h.generator.Generate(c.Request.Context(), req)
	if err != nil {
		ae := apierr.As(err)
		if ae.Status >= http.StatusInternalServerError {
			response.RespondMessage(c, ae.Status, ae.Code, services.PublicMessage(err))
			return
		}
		response.RespondError(c, ae.Status, ae.Code, ae)
		return
	}

	body := gin.H{
		"success":    true,
		"gift_ideas": gen.GiftIdeas,
		"timestamp":  gen.Timestamp.UTC().Format(time.RFC3339Nano),
	}
	if gen.ResultID != "" {
		body["result_id"] = gen.ResultID
	}
	response.RespondOK(c, body)
}

func decodeGiftRequest(c *gin.Context) (domain.GiftRequest, error) {
	dec := json.NewDecoder(http.MaxBytesReader(c.Writer, c.Request.Body, maxGiftRequestBytes))
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, apierr.Invalid("Request data must be a JSON object")
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, apierr.Invalid("Request data must be a JSON object")
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	req := make(domain.GiftRequest, len(obj))
	for _, k := range keys {
		s, ok := obj[k].(string)
		if !ok {
			return nil, apierr.Invalid("Answer for '%s' must be a string", k)
		}
		req[k] = s
	}
	return req, nil
}
