package audit

import (
	"encoding/json"
	"time"
)

type Action string

const (
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionProcess Action = "process"
)

type Entry struct {
	ID         string
	ActorID    *string
	Action     Action
	EntityType string
	EntityID   string
	Before     json.RawMessage
	After      json.RawMessage
	CreatedAt  time.Time
}

// NewEntry marshals before and after; nil values are stored as NULL.
func NewEntry(actorID string, action Action, entityType, entityID string, before, after any) (Entry, error) {
	e := Entry{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
	}
	if actorID != "" {
		e.ActorID = &actorID
	}
	if before != nil {
		raw, err := json.Marshal(before)
		if err != nil {
			return Entry{}, err
		}
		e.Before = raw
	}
	if after != nil {
		raw, err := json.Marshal(after)
		if err != nil {
			return Entry{}, err
		}
		e.After = raw
	}
	return e, nil
}
