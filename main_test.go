package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"showcase-api/analytics"
	"showcase-api/config"
	"showcase-api/environment"
	"showcase-api/lookups"
	"showcase-api/memstore"
	"showcase-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestRouter(t *testing.T) (*gin.Engine, *environment.Environment, *environment.MemoryStores) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.DefaultConfig()
	cfg.DBDriver = config.DriverMemory
	cfg.AccessSecret = "test-secret"
	env, stores := environment.NewMemoryEnv(cfg, analytics.NewTracker(nil, "", ""))
	environment.Env = env

	return setupRouter(env), env, stores
}

func bearer(t *testing.T, env *environment.Environment, userID primitive.ObjectID) string {
	t.Helper()
	td, err := env.Authenticator.CreateToken(userID.Hex())
	require.NoError(t, err)
	require.NoError(t, env.Authenticator.CreateAuth(context.Background(), userID.Hex(), td))
	return "Bearer " + td.AccessToken
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	router, env, stores := newTestRouter(t)

	admin := memstore.User{UserIdentity: models.UserIdentity{ID: primitive.NewObjectID(), Name: "Admin"}, RoleCode: lookups.URadmin}
	member := memstore.User{UserIdentity: models.UserIdentity{ID: primitive.NewObjectID(), Name: "Member"}, RoleCode: lookups.URmember}
	stores.Users.Put(admin)
	stores.Users.Put(member)

	tests := []struct {
		name   string
		auth   string
		status int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"member", bearer(t, env, member.ID), http.StatusForbidden},
		{"admin", bearer(t, env, admin.ID), http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/showcase-sections", nil)
			if tc.auth != "" {
				req.Header.Set("Authorization", tc.auth)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestPublicRoutesAreOpen(t *testing.T) {
	router, _, _ := newTestRouter(t)

	for _, path := range []string{"/showcase-sections", "/yt-videos", "/lookups"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestReviewNeedsLogin(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/products/"+primitive.NewObjectID().Hex()+"/reviews", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSeedMemoryStores(t *testing.T) {
	router, env, stores := newTestRouter(t)
	seedMemoryStores(env, stores)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/showcase-sections", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "New Arrivals")
}

func TestPreflight(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/admin/showcase-sections", nil)
	req.Header.Set("Origin", "http://localhost:4200")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
