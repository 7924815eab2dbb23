package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/dataform/form"
	"github.com/fulldump/dataform/service"
)

var ErrUnauthorized = errors.New("unauthorized")

type PrettyError struct {
	Message     string   `json:"message"`
	Description string   `json:"description"`
	Fields      []string `json:"fields,omitempty"`
}

func (p PrettyError) MarshalJSON() ([]byte, error) {
	type plain PrettyError
	return json.Marshal(map[string]interface{}{
		"error": plain(p),
	})
}

func (p PrettyError) MarshalTo(w io.Writer) error {
	return json.NewEncoder(w).Encode(p)
}

func writeError(w http.ResponseWriter, status int, p PrettyError) {
	w.WriteHeader(status)
	p.MarshalTo(w)
}

func InterceptorUnavailable(s service.Servicer) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {

			status := s.GetStatus()
			if status != service.StatusOperating {
				box.SetError(ctx, fmt.Errorf("%w: %s", service.ErrStoreUnavailable, status))
				return
			}
			next(ctx)
		}
	}
}

func PrettyErrorInterceptor(next box.H) box.H {
	return func(ctx context.Context) {

		next(ctx)

		err := box.GetError(ctx)
		if err == nil {
			return
		}
		w := box.GetResponse(ctx)
		r := box.GetRequest(ctx)

		var validationErr *form.ValidationError
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError

		switch {
		case errors.Is(err, ErrUnauthorized):
			writeError(w, http.StatusUnauthorized, PrettyError{
				Message:     err.Error(),
				Description: "user is not authenticated",
			})
		case errors.Is(err, box.ErrResourceNotFound):
			writeError(w, http.StatusNotFound, PrettyError{
				Message:     err.Error(),
				Description: fmt.Sprintf("resource '%s' not found", r.URL.String()),
			})
		case errors.Is(err, box.ErrMethodNotAllowed):
			writeError(w, http.StatusMethodNotAllowed, PrettyError{
				Message:     err.Error(),
				Description: fmt.Sprintf("method '%s' not allowed", r.Method),
			})
		case errors.As(err, &validationErr):
			writeError(w, http.StatusBadRequest, PrettyError{
				Message:     validationErr.Message,
				Description: "Validation error",
				Fields:      validationErr.Fields,
			})
		case errors.As(err, &syntaxErr), errors.As(err, &typeErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			writeError(w, http.StatusBadRequest, PrettyError{
				Message:     err.Error(),
				Description: "Malformed JSON",
			})
		case errors.Is(err, service.ErrInvalidArgument):
			writeError(w, http.StatusBadRequest, PrettyError{
				Message:     err.Error(),
				Description: "Invalid argument",
			})
		case errors.Is(err, service.ErrRecordNotFound), errors.Is(err, service.ErrIndexOutOfRange):
			writeError(w, http.StatusNotFound, PrettyError{
				Message:     err.Error(),
				Description: "Record not found",
			})
		case errors.Is(err, service.ErrStoreUnavailable):
			writeError(w, http.StatusServiceUnavailable, PrettyError{
				Message:     err.Error(),
				Description: "Temporary unavailable",
			})
		default:
			writeError(w, http.StatusInternalServerError, PrettyError{
				Message:     err.Error(),
				Description: "Unexpected error",
			})
		}
	}
}
