package trustscore

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers the buyer-facing score.
func RegisterPublicRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/projects/:id/trust-score", h.GetProjectScore)
}

// RegisterPromoteurRoutes registers the dashboard score behind access.
func RegisterPromoteurRoutes(r *gin.RouterGroup, h *Handler, access gin.HandlerFunc) {
	r.GET("/promoteur/trust-score", access, h.GetPromoteurScore)
}
