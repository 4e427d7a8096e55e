package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/meltforce/intervals/internal/models"
	"github.com/meltforce/intervals/internal/workout"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit(s.limits.MaxInputBytes, 1))

	var req models.EvaluateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.checkInput(req.Input); err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, err)
		return
	}

	ev := s.evaluate(r, req.Input)
	if ev.Failure != nil {
		writeJSON(w, failureStatus(ev.Failure), ev.Failure)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

func (s *Server) handleEvaluateBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit(s.limits.MaxInputBytes, s.limits.MaxBatch))

	var req models.BatchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if len(req.Inputs) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "inputs must not be empty"})
		return
	}
	if s.limits.MaxBatch > 0 && len(req.Inputs) > s.limits.MaxBatch {
		writeJSON(w, http.StatusRequestEntityTooLarge, &models.EvaluationError{
			Message: fmt.Sprintf("batch of %d inputs exceeds limit of %d", len(req.Inputs), s.limits.MaxBatch),
			Kind:    models.KindLimit,
		})
		return
	}
	for _, input := range req.Inputs {
		if err := s.checkInput(input); err != nil {
			writeJSON(w, http.StatusRequestEntityTooLarge, err)
			return
		}
	}

	policy := workout.SkipAndReport
	if req.StopOnError {
		policy = workout.StopOnError
	}

	outcomes := workout.EvaluateAll(req.Inputs, policy)
	resp := models.BatchResponse{
		Results: make([]models.Evaluation, 0, len(outcomes)),
		Failed:  workout.Failed(outcomes),
	}
	for _, o := range outcomes {
		id := uuid.NewString()
		if o.Err != nil {
			s.log.Info("evaluation failed", "id", id, "request_id", requestIDFromContext(r), "error", o.Err)
			resp.Results = append(resp.Results, models.Evaluation{ID: id, Input: o.Input, Failure: models.NewEvaluationError(o.Err)})
			continue
		}
		resp.Results = append(resp.Results, models.NewEvaluation(id, o.Input, o.Result))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleExamples(w http.ResponseWriter, r *http.Request) {
	evs := make([]models.Evaluation, 0, len(workout.Examples))
	for _, input := range workout.Examples {
		evs = append(evs, s.evaluate(r, input))
	}
	writeJSON(w, http.StatusOK, evs)
}

func (s *Server) evaluate(r *http.Request, input string) models.Evaluation {
	id := uuid.NewString()

	res, err := workout.Evaluate(input)
	if err != nil {
		s.log.Info("evaluation failed", "id", id, "request_id", requestIDFromContext(r), "error", err)
		return models.Evaluation{ID: id, Input: input, Failure: models.NewEvaluationError(err)}
	}
	return models.NewEvaluation(id, input, res)
}

func (s *Server) checkInput(input string) *models.EvaluationError {
	if s.limits.MaxInputBytes > 0 && len(input) > s.limits.MaxInputBytes {
		return &models.EvaluationError{
			Message: fmt.Sprintf("input of %d bytes exceeds limit of %d", len(input), s.limits.MaxInputBytes),
			Kind:    models.KindLimit,
		}
	}
	return nil
}

// decodeBody reads the JSON request body into v. A body cut off by
// MaxBytesReader is reported as a limit failure, anything else as bad JSON.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, &models.EvaluationError{
			Message: fmt.Sprintf("request body exceeds limit of %d bytes", tooLarge.Limit),
			Kind:    models.KindLimit,
		})
		return false
	}
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
	return false
}

// bodyLimit bounds a request body holding n inputs, leaving room for JSON
// escaping and framing.
func bodyLimit(maxInput, n int) int64 {
	if maxInput <= 0 || n <= 0 {
		return 1 << 20
	}
	return int64(n)*int64(2*maxInput+16) + 1024
}

func failureStatus(e *models.EvaluationError) int {
	switch e.Kind {
	case models.KindSyntax, models.KindOverflow:
		return http.StatusUnprocessableEntity
	case models.KindLimit:
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
