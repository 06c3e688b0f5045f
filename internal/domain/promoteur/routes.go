package promoteur

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the dashboard profile routes. require builds the
// team permission guard; create needs only an authenticated account.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, access gin.HandlerFunc, require func(permission string) gin.HandlerFunc) {
	r.POST("/promoteur", h.Create)

	p := r.Group("/promoteur")
	{
		p.GET("", access, h.Get)
		p.GET("/onboarding", access, h.GetOnboarding)
		p.POST("/onboarding/:item/complete", require("editProfile"), h.CompleteOnboardingItem)
		p.POST("/kyc", require("manageCompliance"), h.SubmitKYC)
		p.POST("/financial-proof", require("manageCompliance"), h.SetFinancialProof)
	}
}

// RegisterAdminRoutes expects r to be guarded by the admin middleware.
func RegisterAdminRoutes(r *gin.RouterGroup, h *Handler) {
	a := r.Group("/promoteurs/:id")
	{
		a.POST("/restrictions", h.AddRestriction)
		a.DELETE("/restrictions", h.LiftRestriction)
		a.POST("/kyc/verify", h.VerifyKYC)
		a.PUT("/compliance", h.SetCompliance)
		a.PUT("/plan", h.ChangePlan)
	}
}
