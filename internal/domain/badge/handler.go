package badge

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"immotrust/internal/domain/promoteur"
	"immotrust/internal/pkg/response"
)

type RemoveBadgeRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// ListCatalog godoc
// @Summary Every badge a promoteur can earn
// @Tags Badges
// @Success 200 {object} response.Response{data=[]Badge}
// @Router /badges [get]
func (h *Handler) ListCatalog(c *gin.Context) {
	badges, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, badges)
}

// ListHeld godoc
// @Summary Badges held by the caller's organisation
// @Tags Badges
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]Badge}
// @Router /promoteur/badges [get]
func (h *Handler) ListHeld(c *gin.Context) {
	badges, err := h.svc.Held(c.Request.Context(), c.GetUint("promoteur_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, badges)
}

// Evaluate godoc
// @Summary Run badge evaluation for a promoteur now
// @Tags Admin
// @Security BearerAuth
// @Param id path int true "Promoteur ID"
// @Success 200 {object} response.Response{data=Result}
// @Router /admin/promoteurs/{id}/badges/evaluate [post]
func (h *Handler) Evaluate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid promoteur ID")
		return
	}
	res, err := h.svc.CheckAndAward(c.Request.Context(), uint(id))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Remove godoc
// @Summary Withdraw a badge
// @Tags Admin
// @Security BearerAuth
// @Param id path int true "Promoteur ID"
// @Param badgeId path int true "Badge ID"
// @Param request body RemoveBadgeRequest true "Reason"
// @Success 200 {object} response.Response
// @Router /admin/promoteurs/{id}/badges/{badgeId} [delete]
func (h *Handler) Remove(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid promoteur ID")
		return
	}
	badgeID, err := strconv.ParseUint(c.Param("badgeId"), 10, 64)
	if err != nil || badgeID == 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid badge ID")
		return
	}
	var req RemoveBadgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "A removal reason is required")
		return
	}

	if err := h.svc.RemoveBadge(c.Request.Context(), uint(id), uint(badgeID), req.Reason); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"removed": badgeID})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, promoteur.ErrPromoteurNotFound):
		response.Error(c, http.StatusNotFound, "PROMOTEUR_NOT_FOUND", "Promoteur not found")
	case errors.Is(err, ErrBadgeNotFound):
		response.Error(c, http.StatusNotFound, "BADGE_NOT_FOUND", "Badge not found")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal error")
	}
}
