package team

import "github.com/gin-gonic/gin"

// RegisterRoutes registers team management under an authenticated group.
// Every route resolves the caller's team context first.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, resolver *Resolver) {
	team := r.Group("/promoteur/team")
	{
		team.GET("", resolver.RequireAccess(), h.ListMembers)
		team.POST("", resolver.RequirePermission(PermManageTeam), h.AddMember)
		team.PATCH("/:user_id", resolver.RequirePermission(PermManageTeam), h.ChangeRole)
		team.DELETE("/:user_id", resolver.RequirePermission(PermManageTeam), h.RemoveMember)
	}

	roles := r.Group("/promoteur/roles")
	{
		roles.GET("", resolver.RequireAccess(), h.ListRoles)
		roles.PUT("/:name", resolver.RequirePermission(PermManageRoles), h.UpsertRole)
		roles.DELETE("/:name", resolver.RequirePermission(PermManageRoles), h.DeleteRole)
	}
}
