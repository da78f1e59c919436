package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/YoshitsuguKoike/potionlab/internal/application/dto"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/trial"
)

// ErrorResponse is the body of every non-2xx reply
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// statusFor maps use case errors onto HTTP status codes
func statusFor(err error) (int, string) {
	var ve *trial.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, "validation"
	case errors.Is(err, trial.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case dto.IsImport(err):
		return http.StatusUnprocessableEntity, "import"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status, code := statusFor(err)
	resp := ErrorResponse{Error: err.Error(), Code: code, RequestID: c.GetString("request_id")}
	var ve *trial.ValidationError
	if errors.As(err, &ve) {
		resp.Field = ve.Field
	}
	if status >= 500 {
		s.logger.Error("request %s failed: %v", resp.RequestID, err)
	}
	c.AbortWithStatusJSON(status, resp)
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Error:     err.Error(),
		Code:      "bad_request",
		RequestID: c.GetString("request_id"),
	})
}
