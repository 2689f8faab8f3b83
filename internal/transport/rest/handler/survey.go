// Package handler implements the HTTP endpoints.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/andy00614/sury-questions/internal/model"
	"github.com/andy00614/sury-questions/internal/service"
)

// SurveyHandler handles respondent-facing endpoints
type SurveyHandler struct {
	surveySvc *service.SurveyService
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(surveySvc *service.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveySvc: surveySvc}
}

// SubmitRequest is the request body for a survey submission
type SubmitRequest struct {
	Answers model.AnswerSet `json:"answers"`
}

// Submit handles POST /api/survey
func (h *SurveyHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Answers == nil {
		req.Answers = model.AnswerSet{}
	}

	meta := model.SubmissionMeta{
		UserAgent: r.Header.Get("User-Agent"),
		IPAddress: clientIP(r),
	}

	id, err := h.surveySvc.SaveResponse(r.Context(), req.Answers, meta)
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "提交失败，请重试")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"message":      "问卷提交成功",
		"submissionId": "survey_" + id,
	})
}

// Questions handles GET /api/survey/questions
func (h *SurveyHandler) Questions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.surveySvc.Questions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch questions")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"questions": questions,
	})
}

// Stats handles GET /api/survey/stats
func (h *SurveyHandler) Stats(w http.ResponseWriter, r *http.Request) {
	responses, count, err := h.surveySvc.Responses(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"count":     count,
		"responses": responses,
	})
}

func isValidationError(err error) bool {
	return errors.Is(err, model.ErrUnknownQuestion) ||
		errors.Is(err, model.ErrInvalidOption) ||
		errors.Is(err, model.ErrWrongShape)
}

// clientIP prefers proxy headers over the socket address
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	if real := r.Header.Get("X-Real-IP"); real != "" {
		return real
	}
	return r.RemoteAddr
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}
