package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/swapstack/pkg/pipeline"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	r := pipeline.NewRunner(nil, nil, log.New(io.Discard))
	t.Cleanup(func() { _ = r.Close() })
	return NewServer(r, log.New(io.Discard))
}

func doRequest(t *testing.T, s *Server, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var env errorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error envelope: %v (body %q)", err, rec.Body.String())
	}
	return env.Error
}

func TestHealthz(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want %q", body["status"], "ok")
	}
}

func TestRequestIDGenerated(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodGet, "/healthz", nil)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("response should carry a generated X-Request-ID")
	}
}

func TestRequestIDEchoed(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "upstream-id-42")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "upstream-id-42" {
		t.Errorf("X-Request-ID = %q, want the inbound id echoed", got)
	}
}

func TestCounts(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodGet, "/v1/counts?n=4", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %q)", rec.Code, rec.Body.String())
	}

	var counts pipeline.Counts
	if err := json.Unmarshal(rec.Body.Bytes(), &counts); err != nil {
		t.Fatalf("decode counts: %v", err)
	}
	if counts.Elements != 4 {
		t.Errorf("elements = %d, want 4", counts.Elements)
	}
	if want := []int{1, 6, 11, 6}; !slices.Equal(counts.Levels, want) {
		t.Errorf("levels = %v, want %v", counts.Levels, want)
	}
	if counts.Total != 24 {
		t.Errorf("total = %d, want 24", counts.Total)
	}
}

func TestCountsDefaultElements(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodGet, "/v1/counts", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var counts pipeline.Counts
	if err := json.Unmarshal(rec.Body.Bytes(), &counts); err != nil {
		t.Fatalf("decode counts: %v", err)
	}
	if counts.Elements != pipeline.DefaultElements {
		t.Errorf("elements = %d, want default %d", counts.Elements, pipeline.DefaultElements)
	}
}

func TestCountsInvalid(t *testing.T) {
	s := testServer(t)

	tests := []struct {
		name     string
		target   string
		wantCode string
	}{
		{"non-numeric", "/v1/counts?n=abc", "INVALID_INPUT"},
		{"too large", "/v1/counts?n=25", "INVALID_DIMENSION"},
		{"zero", "/v1/counts?n=0", "INVALID_DIMENSION"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, s, http.MethodGet, tt.target, nil)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if e := decodeError(t, rec); e.Code != tt.wantCode {
				t.Errorf("error code = %q, want %q", e.Code, tt.wantCode)
			}
		})
	}
}

func TestPlans(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodGet, "/v1/plans?n=4&l=1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %q)", rec.Code, rec.Body.String())
	}

	var resp plansResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode plans: %v", err)
	}
	if resp.Elements != 4 || resp.Level != 1 {
		t.Errorf("got n=%d l=%d, want n=4 l=1", resp.Elements, resp.Level)
	}
	if resp.Count != 6 || len(resp.Plans) != 6 {
		t.Fatalf("count = %d with %d plans, want 6", resp.Count, len(resp.Plans))
	}
	if got := resp.Plans[0].String(); got != "P(0,1)" {
		t.Errorf("first plan = %q, want %q", got, "P(0,1)")
	}
}

func TestPlansLimit(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodGet, "/v1/plans?n=5&l=2&limit=3", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp plansResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode plans: %v", err)
	}
	if resp.Count != 3 {
		t.Errorf("count = %d, want 3 (limited)", resp.Count)
	}
}

func TestPlansInvalid(t *testing.T) {
	s := testServer(t)

	tests := []struct {
		name     string
		target   string
		wantCode string
	}{
		{"missing level", "/v1/plans?n=4", "INVALID_INPUT"},
		{"missing elements", "/v1/plans?l=1", "INVALID_INPUT"},
		{"zero elements", "/v1/plans?n=0&l=0", "INVALID_DIMENSION"},
		{"non-numeric level", "/v1/plans?n=4&l=x", "INVALID_INPUT"},
		{"level equals elements", "/v1/plans?n=3&l=3", "INVALID_DIMENSION"},
		{"negative limit", "/v1/plans?n=4&l=1&limit=-2", "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, s, http.MethodGet, tt.target, nil)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %q)", rec.Code, rec.Body.String())
			}
			if e := decodeError(t, rec); e.Code != tt.wantCode {
				t.Errorf("error code = %q, want %q", e.Code, tt.wantCode)
			}
		})
	}
}

func TestApply(t *testing.T) {
	s := testServer(t)

	body := `{"items":["a","b","c"],"plan":[{"first":0,"second":1},{"first":1,"second":2}]}`
	rec := doRequest(t, s, http.MethodPost, "/v1/apply", strings.NewReader(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %q)", rec.Code, rec.Body.String())
	}

	var resp applyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode apply: %v", err)
	}
	if want := []string{"b", "c", "a"}; !slices.Equal(resp.Result, want) {
		t.Errorf("result = %v, want %v", resp.Result, want)
	}
	if resp.Plan != "P(0,1) P(1,2)" {
		t.Errorf("plan = %q, want %q", resp.Plan, "P(0,1) P(1,2)")
	}
}

func TestApplyIdentity(t *testing.T) {
	s := testServer(t)

	body := `{"items":["x","y"],"plan":[]}`
	rec := doRequest(t, s, http.MethodPost, "/v1/apply", strings.NewReader(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp applyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode apply: %v", err)
	}
	if want := []string{"x", "y"}; !slices.Equal(resp.Result, want) {
		t.Errorf("result = %v, want unchanged items %v", resp.Result, want)
	}
}

func TestApplyInvalid(t *testing.T) {
	s := testServer(t)

	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"malformed json", `{`, "INVALID_INPUT"},
		{"empty items", `{"items":[],"plan":[]}`, "INVALID_ITEMS"},
		{"index out of range", `{"items":["a","b"],"plan":[{"first":0,"second":5}]}`, "INVALID_PLAN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, s, http.MethodPost, "/v1/apply", strings.NewReader(tt.body))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %q)", rec.Code, rec.Body.String())
			}
			if e := decodeError(t, rec); e.Code != tt.wantCode {
				t.Errorf("error code = %q, want %q", e.Code, tt.wantCode)
			}
		})
	}
}

func TestApplyWrongMethod(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodGet, "/v1/apply", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}
