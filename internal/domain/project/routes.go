package project

import "github.com/gin-gonic/gin"

// RegisterPromoteurRoutes registers project management. require builds the
// team permission guard for a permission name.
func RegisterPromoteurRoutes(r *gin.RouterGroup, h *Handler, require func(permission string) gin.HandlerFunc) {
	p := r.Group("/promoteur/projects")
	{
		p.GET("", require("viewProjects"), h.List)
		p.POST("", require("createProjects"), h.Create)
		p.GET("/:id", require("viewProjects"), h.Get)
		p.PATCH("/:id", require("editProjects"), h.UpdateKeyFields)
		p.DELETE("/:id", require("deleteProjects"), h.Delete)
		p.POST("/:id/publish", require("publishProjects"), h.Publish)
		p.POST("/:id/updates", require("postUpdates"), h.AddUpdate)
		p.POST("/:id/documents", require("manageDocuments"), h.AddDocument)
		p.POST("/:id/media", require("manageMedia"), h.AddMedia)
	}
}

// RegisterAdminRoutes expects r to be guarded by the admin middleware.
func RegisterAdminRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/projects/:id/suspend", h.Suspend)
}
