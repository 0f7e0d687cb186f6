package exam

import (
	"context"
	"strings"
)

type CreateGroupRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

type UpdateGroupRequest struct {
	ID      int      `json:"id" validate:"required"`
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

func (s *Service) CreateGroup(_ context.Context, req CreateGroupRequest) (Group, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Group{}, validationf("group name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	members, err := s.checkMembers(req.Members)
	if err != nil {
		return Group{}, err
	}
	g := Group{ID: nextGroupID(s.groups), Name: name, Members: members}
	s.groups = append(append([]Group(nil), s.groups...), g)
	s.persistGroups()
	return g, nil
}

func (s *Service) UpdateGroup(_ context.Context, req UpdateGroupRequest) (Group, error) {
	if err := s.checkReq(req); err != nil {
		return Group{}, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Group{}, validationf("group name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findGroup(req.ID); !ok {
		return Group{}, ErrNotFound
	}
	members, err := s.checkMembers(req.Members)
	if err != nil {
		return Group{}, err
	}
	updated := Group{ID: req.ID, Name: name, Members: members}
	s.groups = mapGroups(s.groups, func(g Group) Group {
		if g.ID == req.ID {
			return updated
		}
		return g
	})
	s.persistGroups()
	return updated, nil
}

// DeleteGroup removes the group and strips its ID from every user's
// GroupIDs. Habilitations pointing at the removed group are left alone: no
// user can match them anymore and results keep their snapshot.
func (s *Service) DeleteGroup(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findGroup(id); !ok {
		return ErrNotFound
	}
	s.groups = filterGroups(s.groups, func(g Group) bool { return g.ID != id })
	s.users = mapUsers(s.users, func(u User) User {
		u.GroupIDs = removeInt(u.GroupIDs, id)
		return u
	})
	s.persistGroups()
	s.persistUsers()
	return nil
}

// checkMembers verifies the member list holds only active students and
// returns a defensive copy. Caller holds the lock.
func (s *Service) checkMembers(members []string) ([]string, error) {
	out := make([]string, 0, len(members))
	for _, dni := range members {
		u, ok := s.findUser(dni)
		if !ok {
			return nil, validationf("member %s: no such user", dni)
		}
		if u.Role != RoleStudent || u.Status != StatusActive {
			return nil, validationf("member %s: only active students can join a group", dni)
		}
		out = append(out, dni)
	}
	return out, nil
}
