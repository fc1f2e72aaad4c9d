package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/ngramlab/internal/ngram"
)

var ErrInvalidRequest = errors.New("invalid_request")

type invalidRequestError struct {
	msg   string
	param string
}

func (e invalidRequestError) Error() string {
	return e.msg
}

func (e invalidRequestError) Unwrap() error {
	return ErrInvalidRequest
}

func newInvalidRequest(param, msg string) error {
	return invalidRequestError{msg: msg, param: param}
}

type errorClass struct {
	status  int
	errType string
	code    string
	param   string
}

// classifyError maps the model error taxonomy onto HTTP statuses and error
// types. Unseen contexts and outcomes are 422.
func classifyError(err error) errorClass {
	var invalid invalidRequestError
	switch {
	case errors.As(err, &invalid):
		return errorClass{http.StatusBadRequest, "invalid_request_error", "", invalid.param}
	case errors.Is(err, ngram.ErrInvalidOrder):
		return errorClass{http.StatusBadRequest, "invalid_request_error", "invalid_order", "order"}
	case errors.Is(err, ngram.ErrEmptySequence):
		return errorClass{http.StatusBadRequest, "invalid_request_error", "empty_sequence", "text"}
	case errors.Is(err, ngram.ErrContextNotFound):
		return errorClass{http.StatusUnprocessableEntity, "lookup_error", "context_not_found", ""}
	case errors.Is(err, ngram.ErrOutcomeNotFound):
		return errorClass{http.StatusUnprocessableEntity, "lookup_error", "outcome_not_found", ""}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return errorClass{http.StatusRequestTimeout, "canceled_error", "canceled", ""}
	default:
		return errorClass{http.StatusInternalServerError, "server_error", "", ""}
	}
}

func writeModelError(c *echo.Context, err error) error {
	class := classifyError(err)
	msg := err.Error()
	var invalid invalidRequestError
	if errors.As(err, &invalid) {
		msg = invalid.msg
	}
	return writeError(c, class.status, class.errType, msg, class.param, class.code)
}
