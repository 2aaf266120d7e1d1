package shared

import (
	"math"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"hrrecords/internal/domain/apperr"
	"hrrecords/internal/domain/page"
	"hrrecords/internal/platform/messages"
	"hrrecords/internal/transport/http/api"
)

// ParsePage reads zero-based page, size and repeated sort parameters.
// sort takes the form field[,field...][,asc|desc].
func (k *Kit) ParsePage(r *http.Request, columns page.Columns) (page.Request, error) {
	query := r.URL.Query()
	req := page.Request{Size: k.DefaultPageSize}

	if raw := query.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return page.Request{}, k.invalidQuery("page", raw)
		}
		req.Page = n
	}
	if raw := query.Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return page.Request{}, k.invalidQuery("size", raw)
		}
		req.Size = n
	}
	if k.MaxPageSize > 0 && req.Size > k.MaxPageSize {
		req.Size = k.MaxPageSize
	}
	if req.Size > 0 && req.Page > math.MaxInt/req.Size {
		req.Page = math.MaxInt / req.Size
	}

	for _, raw := range query["sort"] {
		orders, ok := parseSort(raw)
		if !ok {
			return page.Request{}, k.invalidQuery("sort", raw)
		}
		req.Sort = append(req.Sort, orders...)
	}
	if field, bad := columns.Unsupported(req.Sort); bad {
		return page.Request{}, apperr.InvalidData(k.Messages.Get(messages.PageSortUnsupported, map[string]any{"Field": field}))
	}
	return req, nil
}

func parseSort(raw string) ([]page.Order, bool) {
	parts := strings.Split(raw, ",")
	desc := false
	switch strings.ToLower(strings.TrimSpace(parts[len(parts)-1])) {
	case "desc":
		desc = true
		parts = parts[:len(parts)-1]
	case "asc":
		parts = parts[:len(parts)-1]
	}
	if len(parts) == 0 {
		return nil, false
	}
	orders := make([]page.Order, 0, len(parts))
	for _, field := range parts {
		field = strings.TrimSpace(field)
		if field == "" {
			return nil, false
		}
		orders = append(orders, page.Order{Field: field, Desc: desc})
	}
	return orders, true
}

func (k *Kit) invalidQuery(param, value string) error {
	return apperr.InvalidData(k.Messages.Get(messages.RequestQueryInvalid, map[string]any{
		"Param": param,
		"Value": value,
	}))
}

// QueryDate parses an optional date query parameter.
func (k *Kit) QueryDate(r *http.Request, param string) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(param))
	if raw == "" {
		return nil, nil
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return nil, k.invalidQuery(param, raw)
	}
	return &parsed, nil
}

// WritePage writes the page items as a plain JSON array and the total number
// of matches in X-Total-Count.
func WritePage[T, D any](w http.ResponseWriter, r *http.Request, result page.Result[T], toDTO func(T) D) {
	items := make([]D, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, toDTO(item))
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(result.Total))
	api.Success(w, r, items)
}

// QueryEnum reads an optional query parameter restricted to allowed values.
func (k *Kit) QueryEnum(r *http.Request, param string, allowed []string) (string, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(param))
	if raw == "" {
		return "", nil
	}
	if !slices.Contains(allowed, raw) {
		return "", k.invalidQuery(param, raw)
	}
	return raw, nil
}
