package team

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type errorBody struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string         `json:"code"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func guardRouter(r *Resolver, userID int64, guard gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if userID != 0 {
			c.Set("user_id", userID)
		}
		c.Next()
	})
	router.GET("/t", guard, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"promoteur_id": PromoteurID(c)})
	})
	return router
}

func serve(router *gin.Engine) (*httptest.ResponseRecorder, errorBody) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/t", nil)
	router.ServeHTTP(w, req)
	var body errorBody
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestRequirePermissionUnauthenticated(t *testing.T) {
	r := NewResolver(new(MockPromoteurFinder), new(MockRoleFinder), nil, nil)
	w, body := serve(guardRouter(r, 0, r.RequirePermission(PermViewLeads)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", body.Error.Code)
}

func TestRequirePermissionOwnerPasses(t *testing.T) {
	finder := new(MockPromoteurFinder)
	finder.On("GetByOwnerUserID", mock.Anything, ownerID).Return(orgPromoteur(), nil)
	r := NewResolver(finder, new(MockRoleFinder), nil, nil)

	w, _ := serve(guardRouter(r, ownerID, r.RequirePermission(PermManageBilling)))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"promoteur_id":10}`, w.Body.String())
}

func TestRequirePermissionWithoutProfile(t *testing.T) {
	finder := new(MockPromoteurFinder)
	roles := new(MockRoleFinder)
	finder.On("GetByOwnerUserID", mock.Anything, commercialID).Return(nil, nil)
	r := NewResolver(finder, roles, nil, nil)

	// commercial account with no attached profile and no owned profile
	w, body := serve(guardRouter(r, commercialID, r.RequirePermission(PermDeleteProjects)))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "ACCESS_DENIED", body.Error.Code)
}

func TestRequirePermissionForbiddenForRole(t *testing.T) {
	finder := new(MockPromoteurFinder)
	roles := new(MockRoleFinder)
	finder.On("GetByID", mock.Anything, uint(10)).Return(orgPromoteur(), nil)
	roles.On("GetByName", mock.Anything, uint(10), "commercial").Return(nil, nil)
	r := NewResolver(finder, roles, nil, nil)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", commercialID)
		c.Set(PromoteurIDKey, uint(10))
		c.Next()
	})
	router.GET("/t", r.RequirePermission(PermDeleteProjects), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w, body := serve(router)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "PERMISSION_DENIED", body.Error.Code)
	assert.Equal(t, "deleteProjects", body.Error.Details["required_permission"])
}

func TestRequireAccessEvaluationFailure(t *testing.T) {
	finder := new(MockPromoteurFinder)
	finder.On("GetByOwnerUserID", mock.Anything, ownerID).Return(nil, errors.New("connection refused"))
	r := NewResolver(finder, new(MockRoleFinder), nil, nil)

	w, body := serve(guardRouter(r, ownerID, r.RequireAccess()))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "EVALUATION_FAILED", body.Error.Code)
	assert.False(t, body.Success)
}
