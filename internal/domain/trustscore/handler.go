package trustscore

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"immotrust/internal/domain/project"
	"immotrust/internal/pkg/response"
)

// ScoreResponse shows a live score with the signals behind it.
type ScoreResponse struct {
	ID         uint `json:"id"`
	TrustScore int  `json:"trustScore"`
	Signals    any  `json:"signals"`
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// GetProjectScore godoc
// @Summary Public trust score of a published project
// @Tags Trust
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} response.Response{data=ScoreResponse}
// @Failure 404 {object} response.Response
// @Router /projects/{id}/trust-score [get]
func (h *Handler) GetProjectScore(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid project ID")
		return
	}

	pr, sig, err := h.svc.ProjectSignals(c.Request.Context(), uint(id))
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal error")
		return
	}
	if pr == nil || pr.PublicationStatus != project.StatusPublished {
		response.Error(c, http.StatusNotFound, "PROJECT_NOT_FOUND", "Project not found")
		return
	}
	response.Success(c, http.StatusOK, ScoreResponse{ID: pr.ID, TrustScore: h.svc.calc.ScoreProject(*sig), Signals: sig})
}

// GetPromoteurScore godoc
// @Summary Live trust score of the caller's organisation
// @Tags Trust
// @Security BearerAuth
// @Success 200 {object} response.Response{data=ScoreResponse}
// @Router /promoteur/trust-score [get]
func (h *Handler) GetPromoteurScore(c *gin.Context) {
	p, sig, err := h.svc.PromoteurSignals(c.Request.Context(), c.GetUint("promoteur_id"))
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal error")
		return
	}
	if p == nil {
		response.Error(c, http.StatusNotFound, "PROMOTEUR_NOT_FOUND", "Promoteur not found")
		return
	}
	response.Success(c, http.StatusOK, ScoreResponse{ID: p.ID, TrustScore: h.svc.calc.ScorePromoteur(*sig), Signals: sig})
}
