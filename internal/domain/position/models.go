package position

import (
	"errors"

	"hrrecords/internal/domain/page"
)

type Position struct {
	ID   int64
	Name string
}

var (
	ErrNotFound  = errors.New("position not found")
	ErrNameTaken = errors.New("position name already exists")
)

var SortColumns = page.Columns{
	"id":   "p.id",
	"name": "p.name",
}
