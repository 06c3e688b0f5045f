package quota

import "github.com/gin-gonic/gin"

// RegisterRoutes registers quota displays behind access.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, access gin.HandlerFunc) {
	r.GET("/promoteur/usage", access, h.GetUsage)
}
