package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/oapi-codegen/runtime"

	"github.com/safari-hire/dashboard/internal/domain"
)

// errorDetail and errorResponse are the body of every non-2xx response.
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorDetail `json:"error"`
}

// notFoundBody returns an errorResponse for a missing resource.
// The caller supplies the message because it knows what was being looked up.
func notFoundBody(message string) errorResponse {
	return errorResponse{Error: errorDetail{Code: "not_found", Message: message}}
}

// validationBody returns an errorResponse for a request that failed field
// validation. err is expected to be marked with domain.ErrValidation.
func validationBody(err error) errorResponse {
	return errorResponse{Error: errorDetail{Code: "validation_error", Message: err.Error()}}
}

// requestBody returns an errorResponse for a request rejected before any
// field was looked at, e.g. malformed JSON or an unparsable query parameter.
func requestBody(message string) errorResponse {
	return errorResponse{Error: errorDetail{Code: "bad_request", Message: message}}
}

func unauthorizedBody(message string) errorResponse {
	return errorResponse{Error: errorDetail{Code: "unauthorized", Message: message}}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads the request body into dst. On failure it writes the
// error response itself and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge,
				errorResponse{Error: errorDetail{Code: "payload_too_large", Message: "request body too large"}})
			return false
		}
		writeJSON(w, http.StatusBadRequest, requestBody("request body must be valid JSON"))
		return false
	}
	return true
}

// check runs struct-tag validation on req. The returned error is marked
// with domain.ErrValidation and reads as one message per failing field.
func (s *Server) check(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "handler.Server.check")
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return errors.Mark(errors.New(strings.Join(msgs, "; ")), domain.ErrValidation)
}

func fieldMessage(fe validator.FieldError) string {
	// Namespace is "<struct>.<json path>"; drop the Go struct name.
	_, field, _ := strings.Cut(fe.Namespace(), ".")
	switch fe.Tag() {
	case "required", "min":
		return field + " is required"
	case "datetime":
		return fmt.Sprintf("%s must have the form %s", field, fe.Param())
	case "timeofday":
		return fmt.Sprintf("%s must have the form %s", field, domain.TimeLayout)
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

// queryParam binds an optional form-style query parameter. A nil result
// means the parameter was absent.
func queryParam[T any](r *http.Request, name string) (*T, error) {
	var v *T
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v); err != nil {
		return nil, errors.Wrapf(err, "query parameter %s", name)
	}
	return v, nil
}
