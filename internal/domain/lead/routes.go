package lead

import (
	"github.com/gin-gonic/gin"

	"immotrust/internal/domain/team"
)

// RegisterPublicRoutes registers the buyer enquiry endpoint.
func RegisterPublicRoutes(r *gin.RouterGroup, handler *Handler) {
	r.POST("/projects/:id/leads", handler.SubmitLead)
}

// RegisterPromoteurRoutes registers the promoteur's lead inbox.
func RegisterPromoteurRoutes(r *gin.RouterGroup, handler *Handler, resolver *team.Resolver) {
	leads := r.Group("/promoteur/leads")
	{
		leads.GET("", resolver.RequirePermission(team.PermViewLeads), handler.ListLeads)
		leads.GET("/export", resolver.RequirePermission(team.PermExportLeads), handler.ExportLeads)
		leads.POST("/:id/respond", resolver.RequirePermission(team.PermRespondLeads), handler.RespondLead)
		leads.PATCH("/:id/status", resolver.RequirePermission(team.PermManageLeads), handler.UpdateStatus)
	}
}
