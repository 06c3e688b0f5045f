package team

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"immotrust/internal/pkg/response"
)

const (
	sessionKey     = "team_session"
	contextKey     = "team_context"
	PromoteurIDKey = "promoteur_id"
)

// SessionFrom returns the request's memo, creating it from the auth claims.
func SessionFrom(c *gin.Context) *Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*Session); ok {
			return s
		}
	}
	s := NewSession(Actor{UserID: c.GetInt64("user_id"), PromoteurID: c.GetUint(PromoteurIDKey)})
	c.Set(sessionKey, s)
	return s
}

// ContextFrom returns the context stored by a guard, or nil.
func ContextFrom(c *gin.Context) *Context {
	if v, ok := c.Get(contextKey); ok {
		if tc, ok := v.(*Context); ok {
			return tc
		}
	}
	return nil
}

// PromoteurID returns the promoteur resolved by a guard.
func PromoteurID(c *gin.Context) uint {
	if tc := ContextFrom(c); tc != nil {
		return tc.PromoteurID
	}
	return 0
}

// RequireAccess passes any actor with a team context.
func (r *Resolver) RequireAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetInt64("user_id") == 0 {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}
		s := SessionFrom(c)
		tc, err := r.Context(c.Request.Context(), s)
		if err != nil {
			abortWith(c, err, "")
			return
		}
		attach(c, s, tc)
		c.Next()
	}
}

// RequirePermission passes when the context resolves and grants perm.
func (r *Resolver) RequirePermission(perm Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetInt64("user_id") == 0 {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}
		s := SessionFrom(c)
		tc, err := r.Allowed(c.Request.Context(), s, perm)
		if err != nil {
			abortWith(c, err, perm)
			return
		}
		attach(c, s, tc)
		c.Next()
	}
}

func attach(c *gin.Context, s *Session, tc *Context) {
	s.Actor.PromoteurID = tc.PromoteurID
	c.Set(contextKey, tc)
	c.Set(PromoteurIDKey, tc.PromoteurID)
}

func abortWith(c *gin.Context, err error, perm Permission) {
	switch {
	case errors.Is(err, ErrEvaluation):
		_ = c.Error(err)
		response.Abort(c, http.StatusServiceUnavailable, "EVALUATION_FAILED", "Unable to evaluate permissions, retry later")
	case errors.Is(err, ErrPermissionDenied):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PERMISSION_DENIED",
				"message": "Your team role does not allow this action",
				"details": gin.H{"required_permission": perm},
			},
		})
	default:
		response.Abort(c, http.StatusForbidden, "ACCESS_DENIED", "No promoteur profile is linked to this account")
	}
}

// Guard adapts RequirePermission for route tables that name permissions as strings.
func (r *Resolver) Guard(permission string) gin.HandlerFunc {
	return r.RequirePermission(Permission(permission))
}
