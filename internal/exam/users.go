package exam

import (
	"context"
	"strings"
)

type RegisterRequest struct {
	FirstName string `json:"name" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	DNI       string `json:"dni" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

type UpdateUserRequest struct {
	DNI      string `json:"dni" validate:"required"` // user being edited
	NewDNI   string `json:"newDni"`
	Name     string `json:"name"`
	Password string `json:"password"` // applied only when non-empty
	Role     string `json:"role" validate:"required,oneof=admin student"`
	Status   string `json:"status" validate:"required,oneof=active pending"`
	GroupIDs []int  `json:"groupIds"`
}

type UpdateAccountRequest struct {
	DNI             string `json:"dni" validate:"required"` // authenticated user
	CurrentPassword string `json:"currentPassword"`
	NewDNI          string `json:"newDni"`
	NewPassword     string `json:"newPassword"`
}

type ChangePasswordRequest struct {
	DNI             string `json:"dni" validate:"required"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Authenticate matches (role, dni, password, status active). Pending
// students get the same generic error as a wrong password.
func (s *Service) Authenticate(role, dni, password string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Role == role && u.DNI == dni && u.Status == StatusActive && CheckPassword(u.Password, password) {
			return u, nil
		}
	}
	return User{}, ErrInvalidCredentials
}

// Register creates a pending student; an administrator approves it later.
func (s *Service) Register(_ context.Context, req RegisterRequest) (User, error) {
	if err := s.checkReq(req); err != nil {
		return User{}, err
	}
	dni := strings.TrimSpace(req.DNI)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findUser(dni); ok {
		return User{}, ErrDuplicateDNI
	}
	u := User{
		DNI:      dni,
		Password: req.Password,
		Name:     strings.TrimSpace(req.FirstName) + " " + strings.TrimSpace(req.LastName),
		Role:     RoleStudent,
		Status:   StatusPending,
		GroupIDs: []int{},
	}
	s.users = append(append([]User(nil), s.users...), u)
	s.persistUsers()
	return u, nil
}

// ApproveStudent activates a pending student and assigns its groups.
func (s *Service) ApproveStudent(_ context.Context, dni string, groupIDs []int) (User, error) {
	if len(groupIDs) == 0 {
		return User{}, validationf("at least one group must be selected")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.findUser(dni)
	if !ok {
		return User{}, ErrNotFound
	}
	if u.Role != RoleStudent || u.Status != StatusPending {
		return User{}, validationf("user %s is not a pending student", dni)
	}
	for _, gid := range groupIDs {
		if _, ok := s.findGroup(gid); !ok {
			return User{}, validationf("group %d does not exist", gid)
		}
	}
	updated := u
	updated.Status = StatusActive
	updated.GroupIDs = append([]int(nil), groupIDs...)
	s.users = mapUsers(s.users, func(x User) User {
		if x.DNI == dni {
			return updated
		}
		return x
	})
	s.persistUsers()
	return updated, nil
}

// UpdateUser applies an admin edit: role, status and groups wholesale, the
// password only when a new non-empty value was supplied, and the DNI only
// after re-checking uniqueness. Non-student roles always end with no groups.
func (s *Service) UpdateUser(_ context.Context, req UpdateUserRequest) (User, error) {
	if err := s.checkReq(req); err != nil {
		return User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.findUser(req.DNI)
	if !ok {
		return User{}, ErrNotFound
	}
	newDNI := strings.TrimSpace(req.NewDNI)
	if newDNI == "" {
		newDNI = u.DNI
	}
	if newDNI != u.DNI {
		if _, taken := s.findUser(newDNI); taken {
			return User{}, ErrDuplicateDNI
		}
	}

	updated := u
	updated.DNI = newDNI
	if strings.TrimSpace(req.Name) != "" {
		updated.Name = strings.TrimSpace(req.Name)
	}
	if strings.TrimSpace(req.Password) != "" {
		updated.Password = req.Password
	}
	updated.Role = req.Role
	updated.Status = req.Status
	if req.Role == RoleStudent {
		updated.GroupIDs = append([]int(nil), req.GroupIDs...)
	} else {
		updated.GroupIDs = []int{}
	}

	s.users = mapUsers(s.users, func(x User) User {
		if x.DNI == req.DNI {
			return updated
		}
		return x
	})
	if newDNI != req.DNI {
		s.renameDNI(req.DNI, newDNI)
	}
	s.persistUsers()
	return updated, nil
}

// renameDNI keeps group member lists and result ownership pointing at a
// user whose DNI changed. Caller holds the lock and persists users itself.
func (s *Service) renameDNI(oldDNI, newDNI string) {
	s.groups = mapGroups(s.groups, func(g Group) Group {
		for i, m := range g.Members {
			if m == oldDNI {
				members := append([]string(nil), g.Members...)
				members[i] = newDNI
				g.Members = members
				break
			}
		}
		return g
	})
	results := append([]Result(nil), s.results...)
	for i := range results {
		if results[i].StudentDNI == oldDNI {
			results[i].StudentDNI = newDNI
		}
	}
	s.results = results
	s.persistGroups()
	s.persistResults()
}

// DeleteUser removes a user and cascades: membership in every group's
// member list and all of the user's results. Deleting yourself is refused.
func (s *Service) DeleteUser(_ context.Context, actorDNI, dni string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dni == actorDNI {
		return ErrSelfDelete
	}
	if _, ok := s.findUser(dni); !ok {
		return ErrNotFound
	}
	s.users = filterUsers(s.users, func(u User) bool { return u.DNI != dni })
	s.groups = mapGroups(s.groups, func(g Group) Group {
		g.Members = removeString(g.Members, dni)
		return g
	})
	s.results = filterResults(s.results, func(r Result) bool { return r.StudentDNI != dni })

	s.persistUsers()
	s.persistGroups()
	s.persistResults()
	return nil
}

// UpdateAccount lets the authenticated user change its own DNI and/or
// password after re-entering the current password.
func (s *Service) UpdateAccount(_ context.Context, req UpdateAccountRequest) (User, error) {
	if err := s.checkReq(req); err != nil {
		return User{}, err
	}
	newDNI := strings.TrimSpace(req.NewDNI)
	newPass := strings.TrimSpace(req.NewPassword)
	if newDNI == "" && newPass == "" {
		return User{}, validationf("a new DNI or a new password is required")
	}
	var hashed string
	if newPass != "" {
		var err error
		if hashed, err = HashPassword(newPass, s.bcryptCost); err != nil {
			return User{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.findUser(req.DNI)
	if !ok {
		return User{}, ErrNotFound
	}
	if !CheckPassword(u.Password, req.CurrentPassword) {
		return User{}, ErrWrongPassword
	}
	if newDNI != "" && newDNI != u.DNI {
		if _, taken := s.findUser(newDNI); taken {
			return User{}, ErrDuplicateDNI
		}
	}

	updated := u
	if newDNI != "" {
		updated.DNI = newDNI
	}
	if newPass != "" {
		updated.Password = hashed
	}
	s.users = mapUsers(s.users, func(x User) User {
		if x.DNI == req.DNI {
			return updated
		}
		return x
	})
	if updated.DNI != req.DNI {
		s.renameDNI(req.DNI, updated.DNI)
	}
	s.persistUsers()
	return updated, nil
}

// ChangePassword is the narrower variant: current password required, new
// password required.
func (s *Service) ChangePassword(_ context.Context, req ChangePasswordRequest) error {
	if err := s.checkReq(req); err != nil {
		return err
	}
	newPass := strings.TrimSpace(req.NewPassword)
	if newPass == "" {
		return validationf("new password is required")
	}
	hashed, err := HashPassword(newPass, s.bcryptCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.findUser(req.DNI)
	if !ok {
		return ErrNotFound
	}
	if !CheckPassword(u.Password, req.CurrentPassword) {
		return ErrWrongPassword
	}
	s.users = mapUsers(s.users, func(x User) User {
		if x.DNI == req.DNI {
			x.Password = hashed
		}
		return x
	})
	s.persistUsers()
	return nil
}
