package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sort"

	"creator-pricing-workers/internal/common/camunda"
	"creator-pricing-workers/internal/common/errors"
	qe "creator-pricing-workers/internal/workers/pricing/calculate-quick-estimate"
)

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code     errors.ErrorCode       `json:"code"`
	Message  string                 `json:"message"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

type readyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady runs every dependency check and reports 503 if any fails.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	names := make([]string, 0, len(s.deps.Checks))
	for name := range s.deps.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := readyResponse{Status: "ready", Checks: make(map[string]string, len(names))}
	status := http.StatusOK
	for _, name := range names {
		if err := s.deps.Checks[name](ctx); err != nil {
			resp.Checks[name] = err.Error()
			resp.Status = "not_ready"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleQuickEstimate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, errors.NewParseError(err))
		return
	}

	var input qe.Input
	if err := camunda.DecodeVariables(qe.TaskType, s.deps.Validator, string(body), &input); err != nil {
		s.writeFailure(w, err)
		return
	}

	out, err := s.deps.Estimator.Execute(r.Context(), &input)
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) writeFailure(w http.ResponseWriter, err error) {
	stdErr := errors.Normalize(err)
	switch stdErr.Code {
	case errors.ErrCodeParseError:
		writeError(w, http.StatusBadRequest, &errors.StandardError{Code: stdErr.Code, Message: "Request body must be a JSON object"})
	case errors.ErrCodeValidationFailed:
		writeError(w, http.StatusBadRequest, stdErr)
	default:
		s.deps.Logger.Error("quick estimate failed", map[string]interface{}{
			"code":  stdErr.Code,
			"error": err.Error(),
		})
		writeError(w, http.StatusInternalServerError, stdErr)
	}
}

func writeError(w http.ResponseWriter, status int, stdErr *errors.StandardError) {
	writeJSON(w, status, errorResponse{Error: errorBody{
		Code:     stdErr.Code,
		Message:  stdErr.Message,
		Metadata: stdErr.Metadata,
	}})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
