package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	platformErrors "github.com/nivedu/courselink-backend/internal/platform/errors"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// RespondServiceError maps service-layer sentinel errors onto HTTP statuses:
// invalid argument and conflict → 400, not found → 404, anything else → 500.
func RespondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, platformErrors.ErrInvalidArgument):
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
	case errors.Is(err, platformErrors.ErrConflict):
		RespondError(c, http.StatusBadRequest, "conflict", err)
	case errors.Is(err, platformErrors.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}
