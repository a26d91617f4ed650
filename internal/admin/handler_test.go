// AngelaMos | 2026
// handler_test.go

package admin

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radar/precatorios-api/internal/user"
)

type fakeUserStats struct {
	stats *user.Stats
	err   error
	calls int
}

func (f *fakeUserStats) Stats(context.Context) (*user.Stats, error) {
	f.calls++
	return f.stats, f.err
}

func passthrough(next http.Handler) http.Handler { return next }

func newRouter(cfg HandlerConfig) chi.Router {
	r := chi.NewRouter()
	NewHandler(cfg).RegisterRoutes(r, passthrough, passthrough)
	return r
}

func get(r chi.Router, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestGetSystemStats(t *testing.T) {
	users := &fakeUserStats{stats: &user.Stats{
		Total:  4,
		Active: 3,
		ByRole: map[string]int{"ADMIN": 1, "VIEWER": 3},
	}}

	r := newRouter(HandlerConfig{
		DBStats:   func() sql.DBStats { return sql.DBStats{MaxOpenConnections: 25, InUse: 2} },
		DBPing:    func(context.Context) error { return nil },
		UserStats: users,
	})

	rec := get(r, "/admin/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data SystemStatsResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	assert.True(t, resp.Data.Database.Healthy)
	require.NotNil(t, resp.Data.Database.Stats)
	assert.Equal(t, 25, resp.Data.Database.Stats.MaxOpenConnections)
	require.NotNil(t, resp.Data.Users)
	assert.Equal(t, 4, resp.Data.Users.Total)
	assert.NotEmpty(t, resp.Data.Runtime.GoVersion)
}

func TestGetSystemStats_DatabaseDown(t *testing.T) {
	users := &fakeUserStats{}

	r := newRouter(HandlerConfig{
		DBPing:    func(context.Context) error { return errors.New("down") },
		UserStats: users,
	})

	rec := get(r, "/admin/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data SystemStatsResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Data.Database.Healthy)
	assert.Nil(t, resp.Data.Users)
	assert.Zero(t, users.calls)
}

func TestGetUserStats(t *testing.T) {
	r := newRouter(HandlerConfig{UserStats: &fakeUserStats{err: errors.New("boom")}})
	assert.Equal(t, http.StatusInternalServerError, get(r, "/admin/stats/users").Code)

	r = newRouter(HandlerConfig{})
	assert.Equal(t, http.StatusOK, get(r, "/admin/stats/users").Code)
	assert.Equal(t, http.StatusOK, get(r, "/admin/stats/runtime").Code)
	assert.Equal(t, http.StatusOK, get(r, "/admin/stats/db").Code)
}
