package plan

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"immotrust/internal/pkg/response"
)

// PlanResponse is the public pricing-page view of one tier.
type PlanResponse struct {
	Tier         Tier                `json:"tier"`
	Rank         int                 `json:"rank"`
	Limits       Limits              `json:"limits"`
	Capabilities map[Capability]bool `json:"capabilities"`
}

type Handler struct {
	catalog *Catalog
}

func NewHandler(catalog *Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// ListPlans godoc
// @Summary List subscription tiers
// @Tags Plans
// @Produce json
// @Router /plans [get]
func (h *Handler) ListPlans(c *gin.Context) {
	tiers := h.catalog.Tiers()
	resp := make([]PlanResponse, 0, len(tiers))
	for _, t := range tiers {
		resp = append(resp, PlanResponse{
			Tier:         t,
			Rank:         h.catalog.Rank(t),
			Limits:       h.catalog.Limits(t),
			Capabilities: h.catalog.Capabilities(t),
		})
	}
	response.Success(c, http.StatusOK, resp)
}
