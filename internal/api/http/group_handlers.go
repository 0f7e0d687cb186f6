package http

import (
	"encoding/json"
	"net/http"

	"github.com/examprom/examprom/internal/exam"
)

func ListGroupsHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Snapshot().Groups)
	}
}

func CreateGroupHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req exam.CreateGroupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		g, err := svc.CreateGroup(r.Context(), req)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, g)
	}
}

func UpdateGroupHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r, "groupID")
		if err != nil {
			http.Error(w, "bad group id", http.StatusBadRequest)
			return
		}
		var req exam.UpdateGroupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		req.ID = id
		g, err := svc.UpdateGroup(r.Context(), req)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, g)
	}
}

func DeleteGroupHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r, "groupID")
		if err != nil {
			http.Error(w, "bad group id", http.StatusBadRequest)
			return
		}
		if err := svc.DeleteGroup(r.Context(), id); err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
