package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"immotrust/internal/config"
	"immotrust/internal/database"
	"immotrust/internal/metrics"
)

type testServer struct {
	app    *App
	router *gin.Engine
}

func setupServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(fmt.Sprintf("file:app_%s?mode=memory&cache=shared", t.Name()), nil)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.AppConfig{
		JWTSecret:      "test-secret",
		JWTTTL:         time.Hour,
		MetricsEnabled: true,
		SweepBatchSize: 1,
	}
	reg := prometheus.NewRegistry()
	a := New(cfg, db, metrics.New(reg), nil)
	require.NoError(t, a.Seed(context.Background()))

	return &testServer{app: a, router: a.Router(reg)}
}

func (s *testServer) token(t *testing.T, userID int64, role string) string {
	t.Helper()
	tok, err := s.app.JWT.GenerateToken(userID, role, 0)
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func TestPublicRoutes(t *testing.T) {
	s := setupServer(t)

	assert.Equal(t, http.StatusOK, s.do("GET", "/health", "", nil).Code)
	assert.Equal(t, http.StatusOK, s.do("GET", "/api/v1/plans", "", nil).Code)

	w := s.do("GET", "/api/v1/badges", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "kyc_verifie")

	assert.Equal(t, http.StatusOK, s.do("GET", "/metrics", "", nil).Code)
}

func TestPromoteurFlowHitsStarterLimit(t *testing.T) {
	s := setupServer(t)
	owner := s.token(t, 1, "promoteur")

	w := s.do("GET", "/api/v1/promoteur", owner, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "ACCESS_DENIED", errorCode(t, w))

	w = s.do("POST", "/api/v1/promoteur", owner, map[string]string{"company_name": "Atlas Immobilier"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assert.Equal(t, http.StatusOK, s.do("GET", "/api/v1/promoteur", owner, nil).Code)
	assert.Equal(t, http.StatusOK, s.do("GET", "/api/v1/promoteur/usage", owner, nil).Code)

	project := map[string]any{"title": "Residence Al Bahr", "type": "villa"}
	w = s.do("POST", "/api/v1/promoteur/projects", owner, project)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do("POST", "/api/v1/promoteur/projects", owner, project)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "PLAN_LIMIT_REACHED", errorCode(t, w))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := setupServer(t)

	w := s.do("GET", "/api/v1/promoteur", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_HEADER_MISSING", errorCode(t, w))
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	s := setupServer(t)

	w := s.do("POST", "/api/v1/admin/projects/1/suspend", s.token(t, 1, "promoteur"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(t, w))
}

func TestSweepReputationCoversEveryEntity(t *testing.T) {
	s := setupServer(t)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		_, err := s.app.PromoteurService.Create(ctx, i, fmt.Sprintf("Promoteur %d", i), "")
		require.NoError(t, err)
	}

	rep, err := s.app.SweepReputation(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, rep.Promoteurs)
	assert.Equal(t, 0, rep.Projects)
	assert.Zero(t, rep.Failures)
}
