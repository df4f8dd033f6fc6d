package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rentledger/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func healthy() HealthChecker {
	return HealthCheckerFunc(func(context.Context, time.Duration) error { return nil })
}

func failing() HealthChecker {
	return HealthCheckerFunc(func(context.Context, time.Duration) error { return errors.New("down") })
}

func TestNewSystemHandler(t *testing.T) {
	h := NewSystemHandler("", healthy(), nil)
	assert.NotNil(t, h)
	assert.False(t, h.startTime.IsZero())
	assert.Equal(t, "1.0.0", h.version)
}

func TestSystemHandler_GetSystemInfo(t *testing.T) {
	h := NewSystemHandler("2.1.0", healthy(), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/system/info", nil)

	h.GetSystemInfo(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]any)
	assert.Equal(t, "Rentledger API", data["name"])
	assert.Equal(t, "2.1.0", data["version"])
	assert.NotEmpty(t, data["go_version"])
	assert.NotEmpty(t, data["uptime"])
}

func TestSystemHandler_Ping(t *testing.T) {
	h := NewSystemHandler("", healthy(), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/system/ping", nil)

	h.Ping(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]any)
	assert.Equal(t, "pong", data["message"])

	_, err := time.Parse(time.RFC3339, data["timestamp"].(string))
	assert.NoError(t, err)
}

func TestSystemHandler_Health(t *testing.T) {
	tests := []struct {
		name         string
		database     HealthChecker
		redis        HealthChecker
		wantStatus   int
		wantDatabase string
		wantRedis    any
	}{
		{"all healthy", healthy(), healthy(), http.StatusOK, "ok", "ok"},
		{"no redis configured", healthy(), nil, http.StatusOK, "ok", nil},
		{"redis down degrades only", healthy(), failing(), http.StatusOK, "ok", "unreachable"},
		{"database down", failing(), nil, http.StatusServiceUnavailable, "unreachable", nil},
		{"database missing", nil, nil, http.StatusServiceUnavailable, "not configured", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSystemHandler("", tt.database, tt.redis)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request, _ = http.NewRequest(http.MethodGet, "/health", nil)

			h.Health(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp dto.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantStatus == http.StatusOK, resp.Success)

			data := resp.Data.(map[string]any)
			assert.Equal(t, tt.wantDatabase, data["database"])
			assert.Equal(t, tt.wantRedis, data["redis"])
		})
	}
}
