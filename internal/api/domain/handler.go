package domain

import (
	"context"
	"net/http"

	"github.com/vocaprep/interview-engine/internal/entity"
	"github.com/vocaprep/interview-engine/internal/pkg/response"
)

type DomainCatalog interface {
	ListDomains(ctx context.Context) []entity.Domain
}

type Handler struct {
	catalog DomainCatalog
}

func NewHandler(catalog DomainCatalog) *Handler {
	return &Handler{catalog: catalog}
}

// ListDomains handles GET /domains - List available interview domains
func (h *Handler) ListDomains(w http.ResponseWriter, r *http.Request) {
	domains := h.catalog.ListDomains(r.Context())

	dtos := make([]entity.DomainDTO, 0, len(domains))
	for _, d := range domains {
		dtos = append(dtos, entity.DomainDTO{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
		})
	}

	response.Success(w, entity.DomainListResponse{Domains: dtos})
}
