// Package http holds the thin HTTP pass-through over the exam service:
// decode, delegate, encode. No business rules live here.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/examprom/examprom/internal/exam"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr maps domain errors onto HTTP statuses. Validation problems and
// policy violations are expected conditions, never 500s.
func writeErr(w http.ResponseWriter, err error) {
	switch {
	case exam.IsValidation(err), errors.Is(err, exam.ErrUnansweredQuestions):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, exam.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, exam.ErrInvalidCredentials):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, exam.ErrSelfDelete), errors.Is(err, exam.ErrWrongPassword):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, exam.ErrDuplicateDNI),
		errors.Is(err, exam.ErrDuplicateHabilitation),
		errors.Is(err, exam.ErrResultExists),
		errors.Is(err, exam.ErrSubmissionInFlight),
		errors.Is(err, exam.ErrExamNotAvailable):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
