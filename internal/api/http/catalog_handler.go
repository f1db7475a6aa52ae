package http

import (
	"net/http"

	"evrental-backend/internal/domain"
	"evrental-backend/internal/service"
)

type CatalogHandler struct {
	catalog service.PenaltyCatalogService
}

func NewCatalogHandler(catalog service.PenaltyCatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type catalogResponse struct {
	Penalties []domain.PenaltyFee `json:"penalties"`
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	fees, err := h.catalog.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if fees == nil {
		fees = []domain.PenaltyFee{}
	}
	writeJSON(w, http.StatusOK, catalogResponse{Penalties: fees})
}
