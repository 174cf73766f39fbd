package helpers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"eventboard/internal/domain"
)

// PathID parses the named path value as a positive integer id.
func PathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		return 0, domain.Validationf("%s must be a positive integer", name)
	}
	return id, nil
}

// QueryValues returns every value of a list parameter. Both repeated
// parameters and comma-separated values are accepted.
func QueryValues(r *http.Request, name string) []string {
	var out []string
	for _, v := range r.URL.Query()[name] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// QueryIDs parses a list parameter of integer ids.
func QueryIDs(r *http.Request, name string) ([]int64, error) {
	values := QueryValues(r, name)
	ids := make([]int64, 0, len(values))
	for _, v := range values {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, domain.Validationf("%s must be a list of integers, got %q", name, v)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// QueryID parses a required integer parameter.
func QueryID(r *http.Request, name string) (int64, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return 0, domain.Validationf("%s is required", name)
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, domain.Validationf("%s must be an integer", name)
	}
	return id, nil
}

// QueryBool parses an optional boolean parameter; nil when absent.
func QueryBool(r *http.Request, name string) (*bool, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, domain.Validationf("%s must be true or false", name)
	}
	return &b, nil
}

// QueryDateTime parses an optional date-time parameter in domain.DateTimeLayout; nil when absent.
func QueryDateTime(r *http.Request, name string) (*time.Time, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}
	t, err := domain.ParseDateTime(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ClientIP returns the caller address, preferring the first X-Forwarded-For hop.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		ip, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(ip)
	}
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i > 0 {
		host = host[:i]
	}
	return strings.Trim(host, "[]")
}
