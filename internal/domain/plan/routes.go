package plan

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers the pricing endpoints.
func RegisterPublicRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/plans", h.ListPlans)
}
