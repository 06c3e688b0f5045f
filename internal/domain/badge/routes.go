package badge

import "github.com/gin-gonic/gin"

func RegisterPublicRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/badges", h.ListCatalog)
}

func RegisterPromoteurRoutes(r *gin.RouterGroup, h *Handler, access gin.HandlerFunc) {
	r.GET("/promoteur/badges", access, h.ListHeld)
}

// RegisterAdminRoutes expects r to be guarded by the admin middleware.
func RegisterAdminRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/promoteurs/:id/badges/evaluate", h.Evaluate)
	r.DELETE("/promoteurs/:id/badges/:badgeId", h.Remove)
}
