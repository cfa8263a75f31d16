package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/response"
)

type AuditHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type auditHandlerImpl struct {
	auditService audit.AuditService
}

func NewAuditHandler(auditService audit.AuditService) AuditHandler {
	return &auditHandlerImpl{auditService: auditService}
}

func (h *auditHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := audit.Filter{
		EntityType: queryString(r, "entity_type"),
		EntityID:   queryString(r, "entity_id"),
		ActorID:    queryString(r, "actor_id"),
		Page:       queryInt(r, "page"),
		Limit:      queryInt(r, "limit"),
	}

	result, err := h.auditService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}
