package audit

import "context"

type AuditRepository interface {
	Record(ctx context.Context, entry Entry) error
	List(ctx context.Context, filter Filter) ([]Entry, int64, error)
}

type Filter struct {
	EntityType *string
	EntityID   *string
	ActorID    *string
	Page       int
	Limit      int
}

func (f *Filter) Normalize() {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}
	if f.Page <= 0 {
		f.Page = 1
	}
}
