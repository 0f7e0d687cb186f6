package http

import (
	"encoding/json"
	"net/http"

	"github.com/examprom/examprom/internal/auth"
	"github.com/examprom/examprom/internal/exam"
)

// Student-facing routes. The acting student is always the token subject;
// clients cannot start or submit on behalf of someone else.

func AvailableExamsHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dni := auth.SubjectFromContext(r.Context())
		exams, err := svc.AvailableExams(r.Context(), dni)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, exams)
	}
}

func CompletedExamsHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dni := auth.SubjectFromContext(r.Context())
		completed, err := svc.CompletedExams(r.Context(), dni)
		if err != nil {
			writeErr(w, err)
			return
		}
		// hide scores the habilitation chose not to reveal
		for i := range completed {
			if !completed[i].Result.ShowScore {
				completed[i].Result.Score = 0
				completed[i].Result.Answers = nil
			}
		}
		writeJSON(w, http.StatusOK, completed)
	}
}

func StartExamHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r, "examID")
		if err != nil {
			http.Error(w, "bad exam id", http.StatusBadRequest)
			return
		}
		dni := auth.SubjectFromContext(r.Context())
		a, err := svc.StartExam(r.Context(), dni, id)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

func SubmitExamHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r, "examID")
		if err != nil {
			http.Error(w, "bad exam id", http.StatusBadRequest)
			return
		}
		var req exam.SubmitExamRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		req.DNI = auth.SubjectFromContext(r.Context())
		req.ExamID = id
		res, err := svc.SubmitExam(r.Context(), req)
		if err != nil {
			writeErr(w, err)
			return
		}
		resp := submitResponse{ExamID: res.ExamID, Date: res.Date, Total: res.Total, ShowScore: res.ShowScore}
		if res.ShowScore {
			score := res.Score
			resp.Score = &score
		}
		writeJSON(w, http.StatusCreated, resp)
	}
}

// submitResponse reveals the score only when the habilitation allowed it.
type submitResponse struct {
	ExamID    int      `json:"examId"`
	Date      string   `json:"date"`
	Total     float64  `json:"total"`
	ShowScore bool     `json:"showScore"`
	Score     *float64 `json:"score,omitempty"`
}
