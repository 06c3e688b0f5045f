package quota

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"immotrust/internal/domain/promoteur"
	"immotrust/internal/pkg/response"
)

type Handler struct {
	resolver *Resolver
}

func NewHandler(resolver *Resolver) *Handler {
	return &Handler{resolver: resolver}
}

// GetUsage godoc
// @Summary Plan limits and current usage
// @Tags Plans
// @Security BearerAuth
// @Success 200 {object} response.Response{data=Usage}
// @Failure 503 {object} response.Response
// @Router /promoteur/usage [get]
func (h *Handler) GetUsage(c *gin.Context) {
	u, err := h.resolver.Usage(c.Request.Context(), c.GetUint("promoteur_id"))
	if err != nil {
		if RespondError(c, err) {
			return
		}
		if errors.Is(err, promoteur.ErrPromoteurNotFound) {
			response.Error(c, http.StatusNotFound, "PROMOTEUR_NOT_FOUND", "Promoteur not found")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal error")
		return
	}
	response.Success(c, http.StatusOK, u)
}
