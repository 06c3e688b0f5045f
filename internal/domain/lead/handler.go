package lead

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"immotrust/internal/domain/project"
	"immotrust/internal/domain/quota"
	"immotrust/internal/domain/team"
	"immotrust/internal/pkg/response"
	"immotrust/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// SubmitLead handles POST /api/v1/projects/:id/leads
// @Summary Submit a buyer enquiry
// @Tags Leads
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param request body SubmitLeadRequest true "Enquiry"
// @Success 201 {object} response.Response{data=SubmitLeadResponse}
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /projects/{id}/leads [post]
func (h *Handler) SubmitLead(c *gin.Context) {
	projectID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req SubmitLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid input", errs)
		return
	}

	l, err := h.service.Submit(c.Request.Context(), projectID, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, SubmitLeadResponse{Reference: l.Reference.String(), CreatedAt: l.CreatedAt})
}

// ListLeads handles GET /api/v1/promoteur/leads
// @Summary List leads
// @Description Tiers are blank unless the plan includes lead scoring.
// @Tags Leads
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(new, contacted, qualified, converted, lost)
// @Param limit query int false "Limit" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} response.Response{data=LeadListResponse}
// @Router /promoteur/leads [get]
func (h *Handler) ListLeads(c *gin.Context) {
	limit := 50
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 200 {
		limit = v
	}
	offset := 0
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v >= 0 {
		offset = v
	}

	resp, err := h.service.ListForPromoteur(c.Request.Context(), team.PromoteurID(c), Status(c.Query("status")), limit, offset)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// ExportLeads handles GET /api/v1/promoteur/leads/export
// @Summary Export leads as CSV
// @Tags Leads
// @Security BearerAuth
// @Produce text/csv
// @Success 200 {file} file
// @Failure 403 {object} response.Response "Plan lacks lead export"
// @Router /promoteur/leads/export [get]
func (h *Handler) ExportLeads(c *gin.Context) {
	promoteurID := team.PromoteurID(c)
	var buf bytes.Buffer
	if _, err := h.service.ExportCSV(c.Request.Context(), promoteurID, &buf); err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="leads-%d.csv"`, promoteurID))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// RespondLead handles POST /api/v1/promoteur/leads/:id/respond
// @Summary Record the first response to a lead
// @Tags Leads
// @Security BearerAuth
// @Param id path int true "Lead ID"
// @Success 200 {object} response.Response{data=Lead}
// @Router /promoteur/leads/{id}/respond [post]
func (h *Handler) RespondLead(c *gin.Context) {
	leadID, ok := idParam(c, "id")
	if !ok {
		return
	}
	l, err := h.service.MarkResponded(c.Request.Context(), team.PromoteurID(c), leadID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, l)
}

// UpdateStatus handles PATCH /api/v1/promoteur/leads/:id/status
// @Summary Move a lead through the pipeline
// @Tags Leads
// @Security BearerAuth
// @Param id path int true "Lead ID"
// @Param request body UpdateStatusRequest true "Status"
// @Success 200 {object} response.Response{data=Lead}
// @Router /promoteur/leads/{id}/status [patch]
func (h *Handler) UpdateStatus(c *gin.Context) {
	leadID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid input", errs)
		return
	}

	l, err := h.service.UpdateStatus(c.Request.Context(), team.PromoteurID(c), leadID, req.Status)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, l)
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) fail(c *gin.Context, err error) {
	if quota.RespondError(c, err) {
		return
	}
	switch {
	case errors.Is(err, ErrLeadNotFound):
		response.Error(c, http.StatusNotFound, "LEAD_NOT_FOUND", "Lead not found")
	case errors.Is(err, project.ErrProjectNotFound), errors.Is(err, ErrProjectUnavailable):
		response.Error(c, http.StatusNotFound, "PROJECT_NOT_FOUND", "Project not found")
	case errors.Is(err, ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, "INVALID_STATUS", err.Error())
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal error")
	}
}
