package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "task-market.com/task-market/internal/errors"
)

type errorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

// ErrorHandler renders application exceptions. Repository failures are
// logged in full and reported to the client without detail.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := renderError(err, c)

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, body)
	}
	if writeErr != nil {
		log.Printf("http: failed to write error response: %v", writeErr)
	}
}

func renderError(err error, c echo.Context) (int, errorResponse) {
	var ex *apperrors.Exception
	if errors.As(err, &ex) && ex.Kind != apperrors.KindRepository {
		return ex.StatusCode, errorResponse{Error: string(ex.Kind), Message: ex.Message, Fields: ex.Fields}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if s, ok := he.Message.(string); ok {
			msg = s
		}
		return he.Code, errorResponse{Error: errorKindForStatus(he.Code), Message: msg}
	}

	log.Printf("http: %s %s failed: %v", c.Request().Method, c.Path(), err)
	return http.StatusInternalServerError, errorResponse{
		Error:   string(apperrors.KindRepository),
		Message: "internal server error",
	}
}

func errorKindForStatus(code int) string {
	switch code {
	case http.StatusBadRequest:
		return string(apperrors.KindValidation)
	case http.StatusUnauthorized:
		return string(apperrors.KindAuthentication)
	case http.StatusForbidden:
		return string(apperrors.KindAuthorization)
	case http.StatusNotFound:
		return string(apperrors.KindNotFound)
	default:
		return http.StatusText(code)
	}
}
