package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Validator is implemented by request DTOs that support validation.
// Validate returns a slice of error messages; nil or empty means valid.
type Validator interface {
	Validate() []string
}

// DecodeAndValidate decodes the request body into dest (with DisallowUnknownFields)
// and, if dest implements Validator, runs Validate(). On decode or validation failure
// it writes a 400 JSON error and returns false; otherwise returns true.
// Callers should return immediately when DecodeAndValidate returns false.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return false
	}
	if v, ok := dest.(Validator); ok {
		if errs := v.Validate(); len(errs) > 0 {
			WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, strings.Join(errs, "; "))
			return false
		}
	}
	return true
}

// CheckLength appends a message to errs when s is shorter than minLen or longer than maxLen runes.
func CheckLength(errs []string, field, s string, minLen, maxLen int) []string {
	n := len([]rune(s))
	if n < minLen || n > maxLen {
		errs = append(errs, fmt.Sprintf("%s must be between %d and %d characters", field, minLen, maxLen))
	}
	return errs
}

// CheckBlank appends a message to errs when s is empty or only whitespace.
func CheckBlank(errs []string, field, s string) []string {
	if strings.TrimSpace(s) == "" {
		errs = append(errs, field+" must not be blank")
	}
	return errs
}
