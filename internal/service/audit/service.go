package audit

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/jwt"
)

type AuditServiceImpl struct {
	auditRepo audit.AuditRepository
}

func NewAuditService(auditRepo audit.AuditRepository) audit.AuditService {
	return &AuditServiceImpl{auditRepo: auditRepo}
}

// Log falls back to the authenticated user in ctx when actorID is empty.
// System jobs without a token are recorded with no actor.
func (s *AuditServiceImpl) Log(ctx context.Context, actorID string, action audit.Action, entityType, entityID string, before, after any) error {
	if actorID == "" {
		if claims, err := jwt.ClaimsFromContext(ctx); err == nil {
			actorID = claims.UserID
		}
	}

	entry, err := audit.NewEntry(actorID, action, entityType, entityID, before, after)
	if err != nil {
		return fmt.Errorf("failed to encode audit entry: %w", err)
	}
	if err := s.auditRepo.Record(ctx, entry); err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

func (s *AuditServiceImpl) List(ctx context.Context, filter audit.Filter) (audit.ListEntryResponse, error) {
	filter.Normalize()

	entries, total, err := s.auditRepo.List(ctx, filter)
	if err != nil {
		return audit.ListEntryResponse{}, fmt.Errorf("failed to list audit entries: %w", err)
	}

	data := make([]audit.EntryResponse, 0, len(entries))
	for _, e := range entries {
		data = append(data, audit.EntryResponse{
			ID:         e.ID,
			ActorID:    e.ActorID,
			Action:     string(e.Action),
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			Before:     e.Before,
			After:      e.After,
			CreatedAt:  e.CreatedAt,
		})
	}

	return audit.ListEntryResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}
