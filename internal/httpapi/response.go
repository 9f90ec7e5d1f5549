package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-company-repository/company"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error     APIError `json:"error"`
	RequestID string   `json:"request_id,omitempty"`
}

// internalErrorMessage replaces the detail of server-side failures, which is
// only logged.
const internalErrorMessage = "internal server error"

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	switch {
	case status >= http.StatusInternalServerError:
		msg = internalErrorMessage
	case err != nil:
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
		RequestID: c.GetString(requestIDKey),
	})
}

// RespondFailure maps a repository or validation error to its status code.
func RespondFailure(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch company.Category(err) {
	case goerrors.CategoryValidation:
		status = http.StatusBadRequest
	case goerrors.CategoryNotFound:
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	RespondError(c, status, company.TextCode(err), err)
}

func RespondNotFound(c *gin.Context) {
	RespondError(c, http.StatusNotFound, company.TextCodeNotFound, company.ErrNotFound)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
