package recommend

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"career-backend/internal/careers"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, _ := fileBackedService(t, NewChain(time.Second))
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api"))
	return r
}

func TestRecommendHandlerReturnsRecommendation(t *testing.T) {
	r := newTestRouter(t)
	body := `{"name":"Grace","email":"Grace@Example.com","skills":["JavaScript","React"],"hobbies":["gaming"],"careerGoal":"Full Stack Web Developer"}`

	req := httptest.NewRequest(http.MethodPost, "/api/recommend", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got careers.Recommendation
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got.CareerPaths) != 1 || got.CareerPaths[0].Title != "Full Stack Developer" {
		t.Fatalf("unexpected career paths: %+v", got.CareerPaths)
	}
	if len(got.ActionPlan.ShortTerm) != 3 {
		t.Fatalf("expected full action plan, got %+v", got.ActionPlan)
	}
}

func TestRecommendHandlerValidation(t *testing.T) {
	r := newTestRouter(t)
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{name: "missing name", body: `{"email":"a@b.co","skills":[],"hobbies":[],"careerGoal":"x"}`, field: "name"},
		{name: "bad email", body: `{"name":"A","email":"not-an-email","skills":[],"hobbies":[],"careerGoal":"x"}`, field: "email"},
		{name: "skills missing", body: `{"name":"A","email":"a@b.co","hobbies":[],"careerGoal":"x"}`, field: "skills"},
		{name: "goal missing", body: `{"name":"A","email":"a@b.co","skills":[],"hobbies":[]}`, field: "careerGoal"},
		{name: "malformed", body: `{"name":`, field: "body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/recommend", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			var payload struct {
				Error struct {
					Code    string              `json:"code"`
					Details []map[string]string `json:"details"`
				} `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if payload.Error.Code != "validation_error" {
				t.Fatalf("unexpected code %q", payload.Error.Code)
			}
			found := false
			for _, d := range payload.Error.Details {
				if d["field"] == tt.field {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected detail for %s, got %v", tt.field, payload.Error.Details)
			}
		})
	}
}
