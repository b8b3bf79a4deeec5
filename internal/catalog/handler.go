package catalog

import (
	"net/http"

	"github.com/frahmantamala/access-console/internal/transport"
)

type SystemsResponse struct {
	Systems []System `json:"systems"`
}

type Handler struct {
	*transport.BaseHandler
	Catalog *Catalog
}

func NewHandler(baseHandler *transport.BaseHandler, c *Catalog) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Catalog:     c,
	}
}

// GetSystems handles GET /systems
func (h *Handler) GetSystems(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, SystemsResponse{Systems: h.Catalog.List()})
}
