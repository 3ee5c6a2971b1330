package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/giftwizard-backend/internal/platform/apierr"
)

// ErrorEnvelope is the body of every failed API response.
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Success: false,
		Error:   msg,
		Code:    code,
	})
}

// RespondAPIError renders err through apierr. Unclassified errors become a
// generic 500 so internal details stay in the logs.
func RespondAPIError(c *gin.Context, err error) {
	var ae *apierr.Error
	if errors.As(err, &ae) && ae != nil {
		RespondError(c, ae.Status, ae.Code, ae)
		return
	}
	if errors.Is(err, apierr.ErrNotFound) {
		RespondMessage(c, http.StatusNotFound, apierr.CodeNotFound, "Not found")
		return
	}
	RespondMessage(c, http.StatusInternalServerError, apierr.CodeInternal, "Internal server error")
}

func RespondMessage(c *gin.Context, status int, code, msg string) {
	c.JSON(status, ErrorEnvelope{Success: false, Error: msg, Code: code})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
