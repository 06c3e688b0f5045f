package team

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"immotrust/internal/domain/promoteur"
	"immotrust/internal/domain/quota"
	"immotrust/internal/pkg/response"
	"immotrust/internal/pkg/validator"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// ListMembers godoc
// @Summary List team members
// @Tags Team
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response{data=[]promoteur.TeamMember}
// @Failure 403 {object} response.Response
// @Router /promoteur/team [get]
func (h *Handler) ListMembers(c *gin.Context) {
	members, err := h.svc.ListMembers(c.Request.Context(), PromoteurID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, members)
}

// AddMember godoc
// @Summary Invite a user into the organisation
// @Description Counts against the plan's maxTeamMembers.
// @Tags Team
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body AddMemberRequest true "Member"
// @Success 201 {object} response.Response{data=promoteur.TeamMember}
// @Failure 403 {object} response.Response "Plan limit reached"
// @Failure 409 {object} response.Response
// @Router /promoteur/team [post]
func (h *Handler) AddMember(c *gin.Context) {
	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid input", errs)
		return
	}

	m, err := h.svc.AddMember(c.Request.Context(), PromoteurID(c), req.UserID, req.Role)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, m)
}

// ChangeRole godoc
// @Summary Change a member's role
// @Tags Team
// @Security BearerAuth
// @Param user_id path int true "Member user ID"
// @Param request body ChangeRoleRequest true "Role"
// @Success 200 {object} response.Response{data=promoteur.TeamMember}
// @Router /promoteur/team/{user_id} [patch]
func (h *Handler) ChangeRole(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid input", errs)
		return
	}

	m, err := h.svc.ChangeRole(c.Request.Context(), PromoteurID(c), userID, req.Role)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, m)
}

// RemoveMember godoc
// @Summary Remove a member
// @Tags Team
// @Security BearerAuth
// @Param user_id path int true "Member user ID"
// @Success 200 {object} response.Response
// @Router /promoteur/team/{user_id} [delete]
func (h *Handler) RemoveMember(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.RemoveMember(c.Request.Context(), PromoteurID(c), userID); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"removed": userID})
}

// ListRoles godoc
// @Summary List default and custom roles with effective permissions
// @Tags Team
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]RoleResponse}
// @Router /promoteur/roles [get]
func (h *Handler) ListRoles(c *gin.Context) {
	ctx := c.Request.Context()
	promoteurID := PromoteurID(c)

	overrides, err := h.svc.ListRoles(ctx, promoteurID)
	if err != nil {
		h.fail(c, err)
		return
	}
	byName := make(map[string]map[string]bool, len(overrides))
	names := make([]string, 0, len(DefaultRoles)+len(overrides))
	for _, r := range DefaultRoles {
		names = append(names, string(r))
	}
	for _, o := range overrides {
		if !IsDefaultRole(Role(o.Name)) {
			names = append(names, o.Name)
		}
		byName[o.Name] = o.Permissions
	}

	resp := make([]RoleResponse, 0, len(names))
	for _, name := range names {
		eff, err := h.svc.EffectivePermissions(ctx, promoteurID, name)
		if err != nil {
			h.fail(c, err)
			return
		}
		resp = append(resp, RoleResponse{
			Name:        name,
			Default:     IsDefaultRole(Role(name)),
			Override:    byName[name],
			Permissions: eff,
		})
	}
	response.Success(c, http.StatusOK, resp)
}

// UpsertRole godoc
// @Summary Create or replace a role override
// @Tags Team
// @Security BearerAuth
// @Param name path string true "Role name"
// @Param request body UpsertRoleRequest true "Sparse permission override"
// @Success 200 {object} response.Response{data=TeamRole}
// @Failure 400 {object} response.Response "Unknown permission"
// @Router /promoteur/roles/{name} [put]
func (h *Handler) UpsertRole(c *gin.Context) {
	var req UpsertRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid input", errs)
		return
	}

	role, err := h.svc.UpsertRole(c.Request.Context(), PromoteurID(c), c.Param("name"), req.Permissions)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, role)
}

// DeleteRole godoc
// @Summary Drop a role override
// @Tags Team
// @Security BearerAuth
// @Param name path string true "Role name"
// @Success 200 {object} response.Response
// @Router /promoteur/roles/{name} [delete]
func (h *Handler) DeleteRole(c *gin.Context) {
	if err := h.svc.DeleteRole(c.Request.Context(), PromoteurID(c), c.Param("name")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": c.Param("name")})
}

func userIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	if quota.RespondError(c, err) {
		return
	}
	switch {
	case errors.Is(err, promoteur.ErrPromoteurNotFound):
		response.Error(c, http.StatusNotFound, "PROMOTEUR_NOT_FOUND", err.Error())
	case errors.Is(err, ErrMemberNotFound), errors.Is(err, ErrRoleNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrMemberExists):
		response.Error(c, http.StatusConflict, "MEMBER_EXISTS", err.Error())
	case errors.Is(err, ErrOwnerNotMember), errors.Is(err, ErrInvalidRole), errors.Is(err, ErrUnknownPermission):
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	case errors.Is(err, ErrEvaluation):
		_ = c.Error(err)
		response.Error(c, http.StatusServiceUnavailable, "EVALUATION_FAILED", "Unable to evaluate permissions, retry later")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal error")
	}
}
