package audithandler

import (
	"encoding/json"
	"time"

	"hrrecords/internal/domain/audit"
)

type response struct {
	ID         int64           `json:"id"`
	Actor      string          `json:"actor"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	RequestID  string          `json:"requestId"`
	IP         string          `json:"ip"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

func toResponse(e audit.Entry) response {
	return response{
		ID:         e.ID,
		Actor:      e.Actor,
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		RequestID:  e.RequestID,
		IP:         e.IP,
		Before:     e.Before,
		After:      e.After,
		CreatedAt:  e.CreatedAt,
	}
}
