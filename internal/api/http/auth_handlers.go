package http

import (
	"encoding/json"
	"net/http"

	"github.com/examprom/examprom/internal/auth"
	"github.com/examprom/examprom/internal/exam"
)

// POST /auth/login  { "role": "admin|student", "dni": "...", "password": "..." }
func LoginHandler(a *auth.Service, svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Role     string `json:"role"`
			DNI      string `json:"dni"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.Role != exam.RoleAdmin && req.Role != exam.RoleStudent {
			http.Error(w, "role must be admin or student", http.StatusBadRequest)
			return
		}
		u, err := svc.Authenticate(req.Role, req.DNI, req.Password)
		if err != nil {
			writeErr(w, err)
			return
		}
		tok, err := a.Issue(u.DNI, u.Role)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": tok,
			"user": map[string]any{
				"dni":      u.DNI,
				"name":     u.Name,
				"role":     u.Role,
				"groupIds": u.GroupIDs,
			},
		})
	}
}

// POST /auth/register creates a pending student account.
func RegisterHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req exam.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		u, err := svc.Register(r.Context(), req)
		if err != nil {
			writeErr(w, err)
			return
		}
		u.Password = ""
		writeJSON(w, http.StatusCreated, u)
	}
}
