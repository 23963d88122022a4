package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-bank-cards/models"
)

func TestLiveness(t *testing.T) {
	router, s := newTestRouter(t)
	s.health.EXPECT().Liveness(gomock.Any()).Return(models.HealthReport{Status: models.HealthUp})

	rr := serve(router, newRequest(http.MethodGet, "/actuator/health/liveness", "", ""))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"UP"}`, rr.Body.String())
}

func TestReadiness(t *testing.T) {
	tests := []struct {
		name       string
		report     models.HealthReport
		wantStatus int
	}{
		{
			name:       "up",
			report:     models.HealthReport{Status: models.HealthUp, Components: map[string]string{"db": models.HealthUp}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "down",
			report:     models.HealthReport{Status: models.HealthDown, Components: map[string]string{"db": models.HealthDown}},
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, s := newTestRouter(t)
			s.health.EXPECT().Readiness(gomock.Any()).Return(tt.report)

			rr := serve(router, newRequest(http.MethodGet, "/actuator/health/readiness", "", ""))

			require.Equal(t, tt.wantStatus, rr.Code)
			var got models.HealthReport
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			assert.Equal(t, tt.report, got)
		})
	}
}

func TestAPIDocs(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := serve(router, newRequest(http.MethodGet, "/v3/api-docs", "", ""))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var doc struct {
		OpenAPI string                    `json:"openapi"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &doc))
	assert.Equal(t, "3.0.3", doc.OpenAPI)
	assert.Contains(t, doc.Paths, "/api/auth/signup")
	assert.Contains(t, doc.Paths["/api/card/{cardId}/balance"], "patch")
}

func TestSwaggerUI(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := serve(router, newRequest(http.MethodGet, "/swagger-ui", "", ""))
	assert.Equal(t, http.StatusMovedPermanently, rr.Code)
	assert.Equal(t, "/swagger-ui/", rr.Header().Get("Location"))

	rr = serve(router, newRequest(http.MethodGet, "/swagger-ui/", "", ""))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "/v3/api-docs")
}

func TestGetServerVersion(t *testing.T) {
	router, s := newTestRouter(t)
	s.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1.2.3")

	rr := serve(router, newRequest(http.MethodGet, "/public/version", "", ""))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/plain", rr.Header().Get("Content-Type"))
	assert.Equal(t, "1.2.3", rr.Body.String())
}

func TestGetBuildInfo(t *testing.T) {
	router, s := newTestRouter(t)
	s.appInfo.EXPECT().GetBuildInfo(gomock.Any()).Return(models.NewAppBuildInfo("1.2.3", "2026-10-01", "abc123"))

	rr := serve(router, newRequest(http.MethodGet, "/public/build-info", "", ""))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"version":"1.2.3","date":"2026-10-01","commit":"abc123"}`, rr.Body.String())
}
