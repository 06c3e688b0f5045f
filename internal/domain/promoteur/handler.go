package promoteur

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"immotrust/internal/domain/plan"
	"immotrust/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Create godoc
// @Summary Open a promoteur profile for the authenticated account
// @Tags Promoteur
// @Security BearerAuth
// @Param request body CreatePromoteurRequest true "Profile"
// @Success 201 {object} response.Response{data=Promoteur}
// @Failure 409 {object} response.Response
// @Router /promoteur [post]
func (h *Handler) Create(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}
	var req CreatePromoteurRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	p, err := h.svc.Create(c.Request.Context(), userID, req.CompanyName, string(plan.TierStarter))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p)
}

// Get godoc
// @Summary The caller's organisation profile
// @Tags Promoteur
// @Security BearerAuth
// @Success 200 {object} response.Response{data=Promoteur}
// @Router /promoteur [get]
func (h *Handler) Get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.GetUint("promoteur_id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// GetOnboarding godoc
// @Summary Onboarding checklist and progress
// @Tags Promoteur
// @Security BearerAuth
// @Success 200 {object} response.Response{data=OnboardingResponse}
// @Router /promoteur/onboarding [get]
func (h *Handler) GetOnboarding(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.GetUint("promoteur_id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, OnboardingResponse{
		Checklist: p.OnboardingChecklist,
		Progress:  p.OnboardingProgress,
		Completed: p.OnboardingCompleted,
	})
}

// CompleteOnboardingItem godoc
// @Summary Mark a checklist item done
// @Tags Promoteur
// @Security BearerAuth
// @Param item path string true "Item code or position"
// @Success 200 {object} response.Response{data=OnboardingResponse}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /promoteur/onboarding/{item}/complete [post]
func (h *Handler) CompleteOnboardingItem(c *gin.Context) {
	p, err := h.svc.CompleteSelfServiceStep(c.Request.Context(), c.GetUint("promoteur_id"), c.Param("item"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, OnboardingResponse{
		Checklist: p.OnboardingChecklist,
		Progress:  p.OnboardingProgress,
		Completed: p.OnboardingCompleted,
	})
}

// SubmitKYC godoc
// @Summary Submit the KYC file for review
// @Tags Promoteur
// @Security BearerAuth
// @Success 200 {object} response.Response{data=Promoteur}
// @Router /promoteur/kyc [post]
func (h *Handler) SubmitKYC(c *gin.Context) {
	p, err := h.svc.SubmitKYC(c.Request.Context(), c.GetUint("promoteur_id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// SetFinancialProof godoc
// @Summary Declare the financial guarantee level
// @Tags Promoteur
// @Security BearerAuth
// @Param request body FinancialProofRequest true "Level"
// @Success 200 {object} response.Response{data=Promoteur}
// @Router /promoteur/financial-proof [post]
func (h *Handler) SetFinancialProof(c *gin.Context) {
	var req FinancialProofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	p, err := h.svc.SetFinancialProof(c.Request.Context(), c.GetUint("promoteur_id"), req.Level)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// AddRestriction godoc
// @Summary Sanction a promoteur
// @Tags Admin
// @Security BearerAuth
// @Param id path int true "Promoteur ID"
// @Param request body RestrictionRequest true "Reason"
// @Success 200 {object} response.Response{data=Promoteur}
// @Router /admin/promoteurs/{id}/restrictions [post]
func (h *Handler) AddRestriction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req RestrictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "A reason is required")
		return
	}
	p, err := h.svc.AddRestriction(c.Request.Context(), id, req.Reason)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// LiftRestriction godoc
// @Summary Lift one restriction
// @Tags Admin
// @Security BearerAuth
// @Param id path int true "Promoteur ID"
// @Success 200 {object} response.Response{data=Promoteur}
// @Router /admin/promoteurs/{id}/restrictions [delete]
func (h *Handler) LiftRestriction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.svc.LiftRestriction(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// VerifyKYC godoc
// @Summary Approve a submitted KYC file
// @Tags Admin
// @Security BearerAuth
// @Param id path int true "Promoteur ID"
// @Success 200 {object} response.Response{data=Promoteur}
// @Router /admin/promoteurs/{id}/kyc/verify [post]
func (h *Handler) VerifyKYC(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.svc.VerifyKYC(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// SetCompliance godoc
// @Summary Record the compliance decision
// @Tags Admin
// @Security BearerAuth
// @Param id path int true "Promoteur ID"
// @Param request body ComplianceRequest true "Status"
// @Success 200 {object} response.Response{data=Promoteur}
// @Router /admin/promoteurs/{id}/compliance [put]
func (h *Handler) SetCompliance(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req ComplianceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	p, err := h.svc.SetComplianceStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// ChangePlan godoc
// @Summary Move a promoteur to another tier
// @Tags Admin
// @Security BearerAuth
// @Param id path int true "Promoteur ID"
// @Param request body PlanRequest true "Plan"
// @Success 200 {object} response.Response{data=Promoteur}
// @Router /admin/promoteurs/{id}/plan [put]
func (h *Handler) ChangePlan(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	p, err := h.svc.ChangePlan(c.Request.Context(), id, req.Plan)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid promoteur ID")
		return 0, false
	}
	return uint(id), true
}

func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrPromoteurNotFound):
		response.Error(c, http.StatusNotFound, "PROMOTEUR_NOT_FOUND", "Promoteur not found")
	case errors.Is(err, ErrChecklistItemNotFound):
		response.Error(c, http.StatusNotFound, "CHECKLIST_ITEM_NOT_FOUND", err.Error())
	case errors.Is(err, ErrStepNotSelfService):
		response.Error(c, http.StatusForbidden, "STEP_NOT_SELF_SERVICE", err.Error())
	case errors.Is(err, ErrAlreadyExists):
		response.Error(c, http.StatusConflict, "PROMOTEUR_EXISTS", err.Error())
	case errors.Is(err, ErrInvalidKYCTransition), errors.Is(err, ErrNoRestriction):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, ErrInvalidProofLevel), errors.Is(err, ErrInvalidCompliance):
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal error")
	}
}
