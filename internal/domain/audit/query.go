package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-faster/errors"

	"hrrecords/internal/domain/page"
	"hrrecords/internal/platform/querier"
)

// Entry is a stored audit event.
type Entry struct {
	ID         int64
	Actor      string
	Action     string
	EntityType string
	EntityID   string
	RequestID  string
	IP         string
	Before     json.RawMessage
	After      json.RawMessage
	CreatedAt  time.Time
}

// Filter narrows the trail. Empty fields are ignored.
type Filter struct {
	Actor      string
	Action     string
	EntityType string
	EntityID   string
}

var SortColumns = page.Columns{
	"id":        "id",
	"createdAt": "created_at",
	"actor":     "actor",
}

func (f Filter) where(args *[]any) string {
	var clauses []string
	add := func(column, value string) {
		if value == "" {
			return
		}
		*args = append(*args, value)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", column, len(*args)))
	}
	add("actor", f.Actor)
	add("action", f.Action)
	add("entity_type", f.EntityType)
	add("entity_id", f.EntityID)
	if len(clauses) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(clauses, " AND ")
}

func (r *Recorder) List(ctx context.Context, f Filter, req page.Request) ([]Entry, error) {
	args := []any{}
	where := f.where(&args)
	args = append(args, req.Limit(), req.Offset())
	query := fmt.Sprintf(`
    SELECT id, actor, action, entity_type, entity_id, request_id, ip, before_json, after_json, created_at
    FROM audit_events
    %s
    %s
    LIMIT $%d OFFSET $%d
  `, where, SortColumns.OrderBy(req.Sort, "id"), len(args)-1, len(args))

	rows, err := querier.From(ctx, r.DB).Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list audit events")
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var before, after []byte
		if err := rows.Scan(&e.ID, &e.Actor, &e.Action, &e.EntityType, &e.EntityID, &e.RequestID, &e.IP, &before, &after, &e.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan audit event")
		}
		e.Before, e.After = before, after
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *Recorder) Count(ctx context.Context, f Filter) (int, error) {
	args := []any{}
	var total int
	err := querier.From(ctx, r.DB).QueryRow(ctx, "SELECT COUNT(1) FROM audit_events "+f.where(&args), args...).Scan(&total)
	if err != nil {
		return 0, errors.Wrap(err, "count audit events")
	}
	return total, nil
}

// Find returns one page of matching events together with the total count.
func (r *Recorder) Find(ctx context.Context, f Filter, req page.Request) (page.Result[Entry], error) {
	items, err := r.List(ctx, f, req)
	if err != nil {
		return page.Result[Entry]{}, err
	}
	total, err := r.Count(ctx, f)
	if err != nil {
		return page.Result[Entry]{}, err
	}
	return page.Result[Entry]{Items: items, Total: total}, nil
}
