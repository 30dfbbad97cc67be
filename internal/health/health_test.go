package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type stubProbe struct {
	name string
	err  error
}

func (p stubProbe) Name() string                 { return p.name }
func (p stubProbe) Ping(_ context.Context) error { return p.err }

func TestChecker_Check(t *testing.T) {
	tests := []struct {
		name       string
		probes     []Probe
		wantStatus Status
		wantChecks map[string]Status
	}{
		{
			name:       "no probes",
			wantStatus: StatusHealthy,
			wantChecks: map[string]Status{},
		},
		{
			name:       "all healthy",
			probes:     []Probe{stubProbe{name: "redis"}, stubProbe{name: "firestore"}},
			wantStatus: StatusHealthy,
			wantChecks: map[string]Status{"redis": StatusHealthy, "firestore": StatusHealthy},
		},
		{
			name: "one failing",
			probes: []Probe{
				stubProbe{name: "redis"},
				stubProbe{name: "firestore", err: errors.New("unavailable")},
			},
			wantStatus: StatusUnhealthy,
			wantChecks: map[string]Status{"redis": StatusHealthy, "firestore": StatusUnhealthy},
		},
		{
			name:       "nil probe ignored",
			probes:     []Probe{nil, stubProbe{name: "firestore"}},
			wantStatus: StatusHealthy,
			wantChecks: map[string]Status{"firestore": StatusHealthy},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewChecker("v1", tt.probes...).Check(context.Background())

			if got.Status != tt.wantStatus {
				t.Errorf("Check().Status = %v, want %v", got.Status, tt.wantStatus)
			}
			if len(got.Checks) != len(tt.wantChecks) {
				t.Fatalf("len(Check().Checks) = %d, want %d", len(got.Checks), len(tt.wantChecks))
			}
			for name, want := range tt.wantChecks {
				if got.Checks[name].Status != want {
					t.Errorf("Check().Checks[%q] = %v, want %v", name, got.Checks[name].Status, want)
				}
			}
		})
	}
}

func TestChecker_ReadyHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		probe    Probe
		wantCode int
	}{
		{name: "ready", probe: stubProbe{name: "firestore"}, wantCode: http.StatusOK},
		{name: "not ready", probe: stubProbe{name: "firestore", err: errors.New("down")}, wantCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/health/ready", NewChecker("v1", tt.probe).ReadyHandler())

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}

			var body HealthStatus
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Version != "v1" {
				t.Errorf("Version = %q, want %q", body.Version, "v1")
			}
		})
	}
}

func TestRedisProbe_NilClient(t *testing.T) {
	if p := RedisProbe(nil); p != nil {
		t.Errorf("RedisProbe(nil) = %v, want nil", p)
	}
	if p := FirestoreProbe(nil, "users"); p != nil {
		t.Errorf("FirestoreProbe(nil) = %v, want nil", p)
	}
}
