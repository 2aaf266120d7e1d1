package page

import (
	"math"
	"strings"
)

type Order struct {
	Field string
	Desc  bool
}

// Request is a zero-based page request.
type Request struct {
	Page int
	Size int
	Sort []Order
}

func (r Request) Limit() int {
	return r.Size
}

func (r Request) Offset() int {
	if r.Page <= 0 || r.Size <= 0 {
		return 0
	}
	if r.Page > math.MaxInt/r.Size {
		return math.MaxInt
	}
	return r.Page * r.Size
}

type Result[T any] struct {
	Items []T
	Total int
}

// Columns maps sortable field names, as clients send them, to SQL columns.
type Columns map[string]string

// Unsupported reports the first sort field that has no column.
func (c Columns) Unsupported(sort []Order) (string, bool) {
	for _, order := range sort {
		if _, ok := c[order.Field]; !ok {
			return order.Field, true
		}
	}
	return "", false
}

// OrderBy renders an ORDER BY clause; idColumn is always the final tiebreaker
// so that paging over equal sort keys is stable.
func (c Columns) OrderBy(sort []Order, idColumn string) string {
	parts := make([]string, 0, len(sort)+1)
	for _, order := range sort {
		column, ok := c[order.Field]
		if !ok {
			continue
		}
		direction := "ASC"
		if order.Desc {
			direction = "DESC"
		}
		parts = append(parts, column+" "+direction)
	}
	parts = append(parts, idColumn+" ASC")
	return "ORDER BY " + strings.Join(parts, ", ")
}

// Slice applies the request window to an in-memory list.
func Slice[T any](items []T, req Request) []T {
	offset := req.Offset()
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if req.Size > 0 && req.Size < end-offset {
		end = offset + req.Size
	}
	return items[offset:end]
}
