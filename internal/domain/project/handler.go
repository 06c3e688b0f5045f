package project

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"immotrust/internal/domain/quota"
	"immotrust/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func promoteurID(c *gin.Context) uint {
	return c.GetUint("promoteur_id")
}

// List godoc
// @Summary Projects of the caller's organisation
// @Tags Projects
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]Project}
// @Router /promoteur/projects [get]
func (h *Handler) List(c *gin.Context) {
	projects, err := h.svc.List(c.Request.Context(), promoteurID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, projects)
}

// Get godoc
// @Summary One project of the caller's organisation
// @Tags Projects
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} response.Response{data=Project}
// @Router /promoteur/projects/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}
	p, err := h.svc.Get(c.Request.Context(), promoteurID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// Create godoc
// @Summary Create a draft project
// @Description Counts against the plan's maxProjects.
// @Tags Projects
// @Security BearerAuth
// @Param request body CreateProjectRequest true "Project"
// @Success 201 {object} response.Response{data=Project}
// @Failure 403 {object} response.Response "Plan limit reached"
// @Router /promoteur/projects [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	p, err := h.svc.Create(c.Request.Context(), promoteurID(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p)
}

// Publish godoc
// @Summary Publish a draft project
// @Description Counts against the plan's maxActiveProjects.
// @Tags Projects
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} response.Response{data=Project}
// @Router /promoteur/projects/{id}/publish [post]
func (h *Handler) Publish(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}
	p, err := h.svc.Publish(c.Request.Context(), promoteurID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// AddUpdate godoc
// @Summary Post a construction progress update
// @Tags Projects
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param request body AddUpdateRequest true "Update"
// @Success 201 {object} response.Response{data=Update}
// @Router /promoteur/projects/{id}/updates [post]
func (h *Handler) AddUpdate(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}
	var req AddUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	u, err := h.svc.AddUpdate(c.Request.Context(), promoteurID(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, u)
}

// AddDocument godoc
// @Summary Attach a document
// @Tags Projects
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param request body AddDocumentRequest true "Document"
// @Success 201 {object} response.Response{data=Document}
// @Router /promoteur/projects/{id}/documents [post]
func (h *Handler) AddDocument(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}
	var req AddDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	d, err := h.svc.AddDocument(c.Request.Context(), promoteurID(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, d)
}

// AddMedia godoc
// @Summary Attach a photo, plan, render or video
// @Tags Projects
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param request body AddMediaRequest true "Media"
// @Success 201 {object} response.Response{data=Media}
// @Router /promoteur/projects/{id}/media [post]
func (h *Handler) AddMedia(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}
	var req AddMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	m, err := h.svc.AddMedia(c.Request.Context(), promoteurID(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, m)
}

// UpdateKeyFields godoc
// @Summary Edit a project
// @Description Price, surface, unit count and delivery date changes are logged; without a reason they lower the trust score.
// @Tags Projects
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param request body UpdateKeyFieldsRequest true "Fields"
// @Success 200 {object} response.Response{data=KeyFieldsResponse}
// @Router /promoteur/projects/{id} [patch]
func (h *Handler) UpdateKeyFields(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}
	var req UpdateKeyFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	p, changes, err := h.svc.UpdateKeyFields(c.Request.Context(), promoteurID(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	if changes == nil {
		changes = []Change{}
	}
	response.Success(c, http.StatusOK, KeyFieldsResponse{Project: p, Changes: changes})
}

// Delete godoc
// @Summary Delete a project
// @Tags Projects
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} response.Response
// @Router /promoteur/projects/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), promoteurID(c), id); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

// Suspend godoc
// @Summary Suspend a listing
// @Tags Admin
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param request body SuspendRequest true "Reason"
// @Success 200 {object} response.Response{data=Project}
// @Router /admin/projects/{id}/suspend [post]
func (h *Handler) Suspend(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}
	var req SuspendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "A reason is required")
		return
	}
	p, err := h.svc.Suspend(c.Request.Context(), id, req.Reason)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func projectID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid project ID")
		return 0, false
	}
	return uint(id), true
}

func fail(c *gin.Context, err error) {
	if quota.RespondError(c, err) {
		return
	}
	switch {
	case errors.Is(err, ErrProjectNotFound):
		response.Error(c, http.StatusNotFound, "PROJECT_NOT_FOUND", "Project not found")
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidMediaKind), errors.Is(err, ErrNothingToChange):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrAlreadyPublished), errors.Is(err, ErrProjectSuspended):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", err.Error())
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal error")
	}
}
