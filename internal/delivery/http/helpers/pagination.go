package helpers

import (
	"net/http"
	"strconv"

	"eventboard/internal/domain"
)

// Pagination query parameter defaults.
const (
	DefaultFrom = 0
	DefaultSize = 10
)

// ParsePagination reads from and size from the request query string.
// Missing values fall back to defaults; a negative from or a non-positive size
// is a validation error.
func ParsePagination(r *http.Request) (domain.PaginationParams, error) {
	from, err := intParam(r, "from", DefaultFrom)
	if err != nil {
		return domain.PaginationParams{}, err
	}
	if from < 0 {
		return domain.PaginationParams{}, domain.Validationf("from must be zero or positive")
	}
	size, err := intParam(r, "size", DefaultSize)
	if err != nil {
		return domain.PaginationParams{}, err
	}
	if size < 1 {
		return domain.PaginationParams{}, domain.Validationf("size must be positive")
	}
	return domain.PaginationParams{From: from, Size: size}, nil
}

func intParam(r *http.Request, name string, def int) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, domain.Validationf("%s must be an integer", name)
	}
	return v, nil
}
