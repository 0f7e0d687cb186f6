package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/examprom/examprom/internal/auth"
	"github.com/examprom/examprom/internal/exam"
)

func ListUsersHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users := svc.Snapshot().Users
		for i := range users {
			users[i].Password = ""
		}
		writeJSON(w, http.StatusOK, users)
	}
}

func PendingStudentsHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pending := svc.PendingStudents(r.Context())
		for i := range pending {
			pending[i].Password = ""
		}
		writeJSON(w, http.StatusOK, pending)
	}
}

func UpdateUserHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req exam.UpdateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		req.DNI = chi.URLParam(r, "dni")
		u, err := svc.UpdateUser(r.Context(), req)
		if err != nil {
			writeErr(w, err)
			return
		}
		u.Password = ""
		writeJSON(w, http.StatusOK, u)
	}
}

func DeleteUserHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := auth.SubjectFromContext(r.Context())
		dni := chi.URLParam(r, "dni")
		if err := svc.DeleteUser(r.Context(), actor, dni); err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// POST /users/{dni}/approve  { "groupIds": [1,2] }
func ApproveStudentHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			GroupIDs []int `json:"groupIds"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		u, err := svc.ApproveStudent(r.Context(), chi.URLParam(r, "dni"), req.GroupIDs)
		if err != nil {
			writeErr(w, err)
			return
		}
		u.Password = ""
		writeJSON(w, http.StatusOK, u)
	}
}

// POST /account  updates the authenticated user's own DNI and/or password.
func UpdateAccountHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req exam.UpdateAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		req.DNI = auth.SubjectFromContext(r.Context())
		u, err := svc.UpdateAccount(r.Context(), req)
		if err != nil {
			writeErr(w, err)
			return
		}
		u.Password = ""
		writeJSON(w, http.StatusOK, u)
	}
}

// POST /account/change-password
func ChangePasswordHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req exam.ChangePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		req.DNI = auth.SubjectFromContext(r.Context())
		if err := svc.ChangePassword(r.Context(), req); err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
