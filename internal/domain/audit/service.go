package audit

import (
	"context"
	"encoding/json"
	"time"
)

type AuditService interface {
	// Log records an entry inside ctx's transaction if one is open.
	Log(ctx context.Context, actorID string, action Action, entityType, entityID string, before, after any) error
	List(ctx context.Context, filter Filter) (ListEntryResponse, error)
}

type EntryResponse struct {
	ID         string          `json:"id"`
	ActorID    *string         `json:"actor_id,omitempty"`
	Action     string          `json:"action"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

type ListEntryResponse struct {
	Data       []EntryResponse `json:"data"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
}
