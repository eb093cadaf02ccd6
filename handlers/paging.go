package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const defaultPage = 1

// Paging holds the page size policy applied to the page and quantity query parameters.
type Paging struct {
	DefaultSize int
	MaxSize     int
}

// parse reads page and quantity. Absent values take the defaults; range checks
// below 1 are left to the services.
func (p Paging) parse(r *http.Request) (page, size int, err error) {
	page, err = queryInt(r, "page", defaultPage)
	if err != nil {
		return 0, 0, err
	}
	size, err = queryInt(r, "quantity", p.DefaultSize)
	if err != nil {
		return 0, 0, err
	}
	if p.MaxSize > 0 && size > p.MaxSize {
		return 0, 0, fmt.Errorf("quantity must be at most %d", p.MaxSize)
	}
	return page, size, nil
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s '%s': must be an integer", key, raw)
	}
	return v, nil
}

// pathID parses a numeric chi URL parameter.
func pathID(r *http.Request, param string) (uint, error) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s format '%s'", param, raw)
	}
	return uint(id), nil
}
