package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	apperrors "github.com/matzehuels/swapstack/pkg/errors"
	"github.com/matzehuels/swapstack/pkg/perm"
	"github.com/matzehuels/swapstack/pkg/pipeline"
)

// maxBodyBytes caps request bodies. Plans and item lists are tiny; anything
// close to this limit is malformed or hostile.
const maxBodyBytes = 1 << 20

// =============================================================================
// Request / Response Types
// =============================================================================

type plansResponse struct {
	Elements int         `json:"elements"`
	Level    int         `json:"level"`
	Count    int         `json:"count"`
	Plans    []perm.Plan `json:"plans"`
}

type applyRequest struct {
	Items []string    `json:"items"`
	Plan  []perm.Pair `json:"plan"`
}

type applyResponse struct {
	Items  []string `json:"items"`
	Plan   string   `json:"plan"`
	Result []string `json:"result"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCounts returns the per-level plan counts for n elements.
// The n parameter is optional and defaults to pipeline.DefaultElements.
func (s *Server) handleCounts(w http.ResponseWriter, r *http.Request) {
	n, err := queryInt(r, "n", 0)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	// The pipeline treats a zero element count as unset, so an explicit
	// n is range-checked here instead of being left to stage validation.
	if r.URL.Query().Get("n") != "" {
		if err := apperrors.ValidateElementCount(n); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	counts, err := s.Runner.Count(r.Context(), pipeline.Options{Elements: n})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, counts)
}

// handlePlans returns the full level-l plan set for n elements.
// Both n and l are required; limit optionally caps the result.
func (s *Server) handlePlans(w http.ResponseWriter, r *http.Request) {
	n, err := requireQueryInt(r, "n")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := apperrors.ValidateElementCount(n); err != nil {
		s.writeError(w, r, err)
		return
	}
	l, err := requireQueryInt(r, "l")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	plans, err := s.Runner.Generate(r.Context(), pipeline.Options{
		Elements: n,
		Level:    l,
		Limit:    limit,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, plansResponse{
		Elements: n,
		Level:    l,
		Count:    len(plans),
		Plans:    plans,
	})
}

// handleApply applies a single user-supplied plan to a list of items.
func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.writeError(w, r, apperrors.New(apperrors.ErrCodeInvalidInput,
			"request body must be valid JSON"))
		return
	}
	if err := apperrors.ValidateItems(req.Items); err != nil {
		s.writeError(w, r, err)
		return
	}

	plan := perm.Plan(req.Plan)
	result, err := perm.Apply(req.Items, plan)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, applyResponse{
		Items:  req.Items,
		Plan:   plan.String(),
		Result: result,
	})
}

// =============================================================================
// Helpers
// =============================================================================

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.New(apperrors.ErrCodeInvalidInput,
			"query parameter %q must be an integer", name)
	}
	return v, nil
}

// requireQueryInt parses a required integer query parameter.
func requireQueryInt(r *http.Request, name string) (int, error) {
	if r.URL.Query().Get(name) == "" {
		return 0, apperrors.New(apperrors.ErrCodeInvalidInput,
			"missing query parameter %q", name)
	}
	return queryInt(r, name, 0)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("encode response", "error", err)
	}
}

// writeError maps an error to an HTTP status and JSON envelope.
// Coded errors carry their own code; core sentinels from the perm package
// are translated to the matching code first.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperrors.GetCode(err)
	if code == "" {
		switch {
		case errors.Is(err, perm.ErrInvalidDimension):
			code = apperrors.ErrCodeInvalidDimension
		case errors.Is(err, perm.ErrIndexOutOfRange), errors.Is(err, perm.ErrInvalidPair):
			code = apperrors.ErrCodeInvalidPlan
		default:
			code = apperrors.ErrCodeInternal
		}
	}

	status := statusForCode(code)
	msg := apperrors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
			"request_id", RequestID(r.Context()))
		msg = "internal error"
	}

	s.writeJSON(w, status, errorEnvelope{Error: errorBody{
		Code:    string(code),
		Message: msg,
	}})
}

func statusForCode(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeInvalidInput,
		apperrors.ErrCodeInvalidDimension,
		apperrors.ErrCodeInvalidPlan,
		apperrors.ErrCodeInvalidItems,
		apperrors.ErrCodeInvalidFormat,
		apperrors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
