package services

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promdto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m promdto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatal(err)
	}
	return m.GetCounter().GetValue()
}

func TestMonitoringMiddlewareRecordsHandledErrors(t *testing.T) {
	f := newGameFixture(t)
	jwtSvc := NewJWTService("metrics-secret", time.Hour)
	limiter := NewDBRateLimitService(f.svc.db, nil)
	app := NewRouter(jwtSvc, limiter, f.svc, &MonitoringService{}, "*", nil)

	token, err := jwtSvc.ToJWT(f.users[0].ID)
	if err != nil {
		t.Fatal(err)
	}

	const route = "/api/v1/lessons/:lessonId/questions"
	failed := httpRequestsFailedTotal.WithLabelValues(route, http.MethodGet)
	succeeded := httpRequestsSuccessfulTotal.WithLabelValues(route, http.MethodGet)
	notFound := httpRequestsTotal.WithLabelValues(route, http.MethodGet, "404")
	failedBefore := counterValue(t, failed)
	succeededBefore := counterValue(t, succeeded)
	notFoundBefore := counterValue(t, notFound)

	get := func(path string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		return resp.StatusCode
	}

	if status := get("/api/v1/lessons/999/questions"); status != http.StatusNotFound {
		t.Fatalf("unknown lesson: status %d", status)
	}
	if status := get(fmt.Sprintf("/api/v1/lessons/%d/questions", f.lessons["Day 2"].ID)); status != http.StatusOK {
		t.Fatalf("known lesson: status %d", status)
	}

	if got := counterValue(t, failed) - failedBefore; got != 1 {
		t.Errorf("failed requests under %s grew by %v, want 1", route, got)
	}
	if got := counterValue(t, notFound) - notFoundBefore; got != 1 {
		t.Errorf("404 requests under %s grew by %v, want 1", route, got)
	}
	if got := counterValue(t, succeeded) - succeededBefore; got != 1 {
		t.Errorf("successful requests under %s grew by %v, want 1", route, got)
	}
}
