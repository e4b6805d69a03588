package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRouterEndToEnd(t *testing.T) {
	f := newGameFixture(t)
	jwtSvc := NewJWTService("router-secret", time.Hour)
	limiter := NewDBRateLimitService(f.svc.db, nil)
	app := NewRouter(jwtSvc, limiter, f.svc, nil, "*", nil)

	token, err := jwtSvc.ToJWT(f.users[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	lessonID := f.lessons["Day 2"].ID

	send := func(method, path, body string, authorized bool) (int, map[string]interface{}) {
		var req *http.Request
		if body != "" {
			req = httptest.NewRequest(method, path, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
		} else {
			req = httptest.NewRequest(method, path, nil)
		}
		if authorized {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()

		var out map[string]interface{}
		_ = json.NewDecoder(resp.Body).Decode(&out)
		return resp.StatusCode, out
	}

	if status, _ := send(http.MethodGet, fmt.Sprintf("/api/v1/lessons/%d/questions", lessonID), "", false); status != http.StatusUnauthorized {
		t.Errorf("anonymous request: status %d", status)
	}

	status, body := send(http.MethodGet, fmt.Sprintf("/api/v1/lessons/%d/questions", lessonID), "", true)
	if status != http.StatusOK || body["total_questions"] == nil {
		t.Fatalf("questions: status %d body %v", status, body)
	}

	status, body = send(http.MethodPost, fmt.Sprintf("/api/v1/lessons/%d/result", lessonID), `{"correct_answers":18,"total_questions":20}`, true)
	if status != http.StatusOK || body["passed"] != true || body["accuracy"] != float64(90) {
		t.Fatalf("result: status %d body %v", status, body)
	}

	status, body = send(http.MethodGet, fmt.Sprintf("/api/v1/lessons/%d/progress", lessonID), "", true)
	if status != http.StatusOK || body["completed"] != true || body["game_score"] != float64(90) {
		t.Errorf("progress: status %d body %v", status, body)
	}

	if status, _ := send(http.MethodGet, "/api/v1/nowhere", "", true); status != http.StatusNotFound {
		t.Errorf("unknown route: status %d", status)
	}
	if status, body := send(http.MethodGet, "/ping", "", false); status != http.StatusOK || body["data"] != "pong" {
		t.Errorf("ping: status %d body %v", status, body)
	}
}
