package audit

import (
	"context"
	"encoding/json"

	"github.com/go-faster/errors"

	"hrrecords/internal/platform/querier"
)

const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

type Event struct {
	Actor      string
	Action     string
	EntityType string
	EntityID   string
	RequestID  string
	IP         string
	Before     any
	After      any
}

// Recorder appends events to the audit trail.
type Recorder struct {
	DB querier.Querier
}

func New(db querier.Querier) *Recorder {
	return &Recorder{DB: db}
}

func (r *Recorder) Record(ctx context.Context, evt Event) error {
	beforeJSON, err := marshal(evt.Before)
	if err != nil {
		return err
	}
	afterJSON, err := marshal(evt.After)
	if err != nil {
		return err
	}

	_, err = querier.From(ctx, r.DB).Exec(ctx, `
    INSERT INTO audit_events (actor, action, entity_type, entity_id, before_json, after_json, request_id, ip)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
  `, evt.Actor, evt.Action, evt.EntityType, evt.EntityID, beforeJSON, afterJSON, evt.RequestID, evt.IP)
	if err != nil {
		return errors.Wrap(err, "insert audit event")
	}
	return nil
}

func marshal(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "marshal audit payload")
	}
	return payload, nil
}
