package http

import (
	"encoding/json"
	"net/http"

	"github.com/examprom/examprom/internal/exam"
)

func ListHabilitationsHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Snapshot().Habilitations)
	}
}

func HabilitateHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req exam.HabilitateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		h, err := svc.Habilitate(r.Context(), req)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, h)
	}
}

func DeleteHabilitationHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r, "habilitationID")
		if err != nil {
			http.Error(w, "bad habilitation id", http.StatusBadRequest)
			return
		}
		if err := svc.DeleteHabilitation(r.Context(), id); err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
