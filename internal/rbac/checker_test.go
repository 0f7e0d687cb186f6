package rbac

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCheckerDefaults(t *testing.T) {
	c := NewChecker(nil)

	cases := []struct {
		role string
		perm string
		want bool
	}{
		{"admin", "exam:manage", true},
		{"admin", "anything:at:all", true},
		{"student", "exam:list", true},
		{"student", "attempt:submit", true},
		{"student", "exam:manage", false},
		{"student", "user:manage", false},
		{"", "exam:list", false},
		{"teacher", "exam:list", false},
	}
	for _, tc := range cases {
		if got := c.Has(tc.role, tc.perm); got != tc.want {
			t.Errorf("Has(%q, %q) = %v, want %v", tc.role, tc.perm, got, tc.want)
		}
	}
}

func TestCheckerPrefixWildcard(t *testing.T) {
	c := NewChecker(map[string][]string{
		"auditor": {"result:*"},
	})
	if !c.Has("auditor", "result:view") {
		t.Error("prefix wildcard should grant result:view")
	}
	if c.Has("auditor", "exam:manage") {
		t.Error("prefix wildcard must not grant other prefixes")
	}
}

func TestCheckerAny(t *testing.T) {
	c := NewChecker(nil)
	if !c.Any("student", "exam:manage", "exam:list") {
		t.Error("Any should pass when one permission matches")
	}
	if c.Any("student", "exam:manage", "user:manage") {
		t.Error("Any should fail when no permission matches")
	}
}

func TestRoleContext(t *testing.T) {
	ctx := WithRole(context.Background(), "student")
	if got := RoleFromContext(ctx); got != "student" {
		t.Errorf("RoleFromContext = %q", got)
	}
	if got := RoleFromContext(context.Background()); got != "" {
		t.Errorf("RoleFromContext on empty context = %q", got)
	}
}

func TestRequireMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := Require("exam:manage")(next)

	req := httptest.NewRequest(http.MethodGet, "/exams", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("no role: got %d, want 403", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(WithRole(req.Context(), "student")))
	if rec.Code != http.StatusForbidden {
		t.Errorf("student on admin route: got %d, want 403", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(WithRole(req.Context(), "admin")))
	if rec.Code != http.StatusNoContent {
		t.Errorf("admin: got %d, want 204", rec.Code)
	}
}
