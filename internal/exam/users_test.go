package exam

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	u, err := s.Register(ctx, RegisterRequest{
		FirstName: "Ana", LastName: "Suárez", DNI: "45678901", Password: "clave",
	})
	require.NoError(t, err)
	require.Equal(t, "Ana Suárez", u.Name)
	require.Equal(t, RoleStudent, u.Role)
	require.Equal(t, StatusPending, u.Status)
	require.Empty(t, u.GroupIDs)

	// duplicate DNI
	_, err = s.Register(ctx, RegisterRequest{
		FirstName: "Otra", LastName: "Persona", DNI: "45678901", Password: "clave",
	})
	require.ErrorIs(t, err, ErrDuplicateDNI)

	// missing fields
	_, err = s.Register(ctx, RegisterRequest{FirstName: "Ana", DNI: "x", Password: "y"})
	require.True(t, IsValidation(err))
}

func TestPendingStudentCannotAuthenticate(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	_, err := s.Register(ctx, RegisterRequest{
		FirstName: "Ana", LastName: "Suárez", DNI: "45678901", Password: "clave",
	})
	require.NoError(t, err)

	_, err = s.Authenticate(RoleStudent, "45678901", "clave")
	require.ErrorIs(t, err, ErrInvalidCredentials, "pending students get the generic credential error")
}

func TestAuthenticate(t *testing.T) {
	s, _ := newTestService(t)

	u, err := s.Authenticate(RoleAdmin, "admin", "1234")
	require.NoError(t, err)
	require.Equal(t, RoleAdmin, u.Role)

	_, err = s.Authenticate(RoleAdmin, "admin", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// role mismatch: the admin account is not a student
	_, err = s.Authenticate(RoleStudent, "admin", "1234")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateBcryptStored(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	hash, err := HashPassword("segura99", 4) // low cost keeps the test fast
	require.NoError(t, err)
	_, err = s.UpdateUser(ctx, UpdateUserRequest{
		DNI: "12345678", Password: hash, Role: RoleStudent, Status: StatusActive, GroupIDs: []int{1},
	})
	require.NoError(t, err)

	_, err = s.Authenticate(RoleStudent, "12345678", "segura99")
	require.NoError(t, err)
	_, err = s.Authenticate(RoleStudent, "12345678", "otra")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestApproveStudent(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	_, err := s.Register(ctx, RegisterRequest{
		FirstName: "Ana", LastName: "Suárez", DNI: "45678901", Password: "clave",
	})
	require.NoError(t, err)

	// approval requires at least one group
	_, err = s.ApproveStudent(ctx, "45678901", nil)
	require.True(t, IsValidation(err))

	u, err := s.ApproveStudent(ctx, "45678901", []int{2})
	require.NoError(t, err)
	require.Equal(t, StatusActive, u.Status)
	require.Equal(t, []int{2}, u.GroupIDs)

	// already active
	_, err = s.ApproveStudent(ctx, "45678901", []int{2})
	require.True(t, IsValidation(err))
}

func TestUpdateUserDNIUniqueness(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	_, err := s.UpdateUser(ctx, UpdateUserRequest{
		DNI: "12345678", NewDNI: "23456789", Role: RoleStudent, Status: StatusActive, GroupIDs: []int{1},
	})
	require.ErrorIs(t, err, ErrDuplicateDNI)
}

func TestUpdateUserDNIChangeFollowsReferences(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	_, err := s.UpdateUser(ctx, UpdateUserRequest{
		DNI: "12345678", NewDNI: "87654321", Role: RoleStudent, Status: StatusActive, GroupIDs: []int{1},
	})
	require.NoError(t, err)

	ds := s.Snapshot()
	for _, g := range ds.Groups {
		for _, m := range g.Members {
			require.NotEqual(t, "12345678", m)
		}
	}
	found := false
	for _, r := range ds.Results {
		require.NotEqual(t, "12345678", r.StudentDNI)
		if r.StudentDNI == "87654321" {
			found = true
		}
	}
	require.True(t, found, "results did not follow the DNI change")
}

func TestUpdateUserNonStudentLosesGroups(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	u, err := s.UpdateUser(ctx, UpdateUserRequest{
		DNI: "12345678", Role: RoleAdmin, Status: StatusActive, GroupIDs: []int{1, 2},
	})
	require.NoError(t, err)
	require.Empty(t, u.GroupIDs)
}

func TestUpdateUserKeepsPasswordWhenBlank(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	_, err := s.UpdateUser(ctx, UpdateUserRequest{
		DNI: "12345678", Role: RoleStudent, Status: StatusActive, GroupIDs: []int{1},
	})
	require.NoError(t, err)

	_, err = s.Authenticate(RoleStudent, "12345678", "1234")
	require.NoError(t, err, "blank password in the edit form must not clear the credential")
}

func TestDeleteUserCascades(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	require.NoError(t, s.DeleteUser(ctx, "admin", "12345678"))

	ds := s.Snapshot()
	for _, u := range ds.Users {
		require.NotEqual(t, "12345678", u.DNI)
	}
	for _, g := range ds.Groups {
		for _, m := range g.Members {
			require.NotEqual(t, "12345678", m)
		}
	}
	for _, r := range ds.Results {
		require.NotEqual(t, "12345678", r.StudentDNI)
	}
}

func TestDeleteUserSelfForbidden(t *testing.T) {
	s, _ := newTestService(t)
	err := s.DeleteUser(context.Background(), "admin", "admin")
	require.ErrorIs(t, err, ErrSelfDelete)
}

func TestUpdateAccount(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	// wrong current password
	_, err := s.UpdateAccount(ctx, UpdateAccountRequest{
		DNI: "admin", CurrentPassword: "nope", NewPassword: "nueva",
	})
	require.ErrorIs(t, err, ErrWrongPassword)

	// neither new DNI nor new password
	_, err = s.UpdateAccount(ctx, UpdateAccountRequest{DNI: "admin", CurrentPassword: "1234"})
	require.True(t, IsValidation(err))

	// taken DNI
	_, err = s.UpdateAccount(ctx, UpdateAccountRequest{
		DNI: "admin", CurrentPassword: "1234", NewDNI: "12345678",
	})
	require.ErrorIs(t, err, ErrDuplicateDNI)

	u, err := s.UpdateAccount(ctx, UpdateAccountRequest{
		DNI: "admin", CurrentPassword: "1234", NewDNI: "root", NewPassword: "nueva",
	})
	require.NoError(t, err)
	require.Equal(t, "root", u.DNI)

	_, err = s.Authenticate(RoleAdmin, "root", "nueva")
	require.NoError(t, err)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	err := s.ChangePassword(ctx, ChangePasswordRequest{
		DNI: "admin", CurrentPassword: "bad", NewPassword: "x",
	})
	require.ErrorIs(t, err, ErrWrongPassword)

	err = s.ChangePassword(ctx, ChangePasswordRequest{
		DNI: "admin", CurrentPassword: "1234", NewPassword: " ",
	})
	require.True(t, IsValidation(err))

	err = s.ChangePassword(ctx, ChangePasswordRequest{
		DNI: "admin", CurrentPassword: "1234", NewPassword: "nueva",
	})
	require.NoError(t, err)
	_, err = s.Authenticate(RoleAdmin, "admin", "nueva")
	require.NoError(t, err)
}

func TestChangePasswordStoresBcryptHash(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	err := s.ChangePassword(ctx, ChangePasswordRequest{
		DNI: "12345678", CurrentPassword: "1234", NewPassword: "nueva99",
	})
	require.NoError(t, err)

	for _, u := range s.Snapshot().Users {
		if u.DNI == "12345678" {
			require.True(t, strings.HasPrefix(u.Password, "$2"), "new credential stored in plaintext")
		}
	}
	_, err = s.Authenticate(RoleStudent, "12345678", "nueva99")
	require.NoError(t, err)
	_, err = s.Authenticate(RoleStudent, "12345678", "1234")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateAccountStoresBcryptHash(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	_, err := s.UpdateAccount(ctx, UpdateAccountRequest{
		DNI: "admin", CurrentPassword: "1234", NewPassword: "nueva99",
	})
	require.NoError(t, err)

	for _, u := range s.Snapshot().Users {
		if u.DNI == "admin" {
			require.True(t, strings.HasPrefix(u.Password, "$2"))
		}
	}
	_, err = s.Authenticate(RoleAdmin, "admin", "nueva99")
	require.NoError(t, err)
}

func TestDNIUniqueAfterEveryMutation(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	_, err := s.Register(ctx, RegisterRequest{FirstName: "Ana", LastName: "S", DNI: "45678901", Password: "clave"})
	require.NoError(t, err)
	_, _ = s.ApproveStudent(ctx, "45678901", []int{1})

	seen := map[string]bool{}
	for _, u := range s.Snapshot().Users {
		require.False(t, seen[u.DNI], "duplicate DNI %s", u.DNI)
		seen[u.DNI] = true
	}
}
