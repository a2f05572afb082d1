package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeJSON reads the body into dst and runs struct validation.
// An empty body is accepted when allowEmpty is true.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if !(allowEmpty && errors.Is(err, io.EOF)) {
			WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
			return false
		}
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, lowerFirst(fe.Field())+":"+fe.Tag())
			}
			writeEnvelope(w, http.StatusBadRequest, APIError{
				Code:    "VALIDATION_FAILED",
				Message: "request validation failed",
				Fields:  fields,
			})
			return false
		}
		WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return false
	}
	return true
}

// URLParamID returns the named chi param when it is a UUID.
func URLParamID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	if raw == "" {
		WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing "+name)
		return "", false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid "+name)
		return "", false
	}
	return id.String(), true
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
