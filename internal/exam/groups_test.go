package exam

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateGroup(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	g, err := s.CreateGroup(ctx, CreateGroupRequest{Name: "Grupo C", Members: []string{"12345678"}})
	require.NoError(t, err)
	require.Equal(t, 3, g.ID) // seed groups are 1 and 2
	require.Equal(t, []string{"12345678"}, g.Members)

	_, err = s.CreateGroup(ctx, CreateGroupRequest{Name: "  "})
	require.True(t, IsValidation(err))

	// only active students can join
	_, err = s.CreateGroup(ctx, CreateGroupRequest{Name: "X", Members: []string{"admin"}})
	require.True(t, IsValidation(err))
	_, err = s.CreateGroup(ctx, CreateGroupRequest{Name: "X", Members: []string{"00000000"}})
	require.True(t, IsValidation(err))
}

func TestUpdateGroup(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	g, err := s.UpdateGroup(ctx, UpdateGroupRequest{ID: 1, Name: "Grupo A bis", Members: []string{"23456789"}})
	require.NoError(t, err)
	require.Equal(t, "Grupo A bis", g.Name)

	_, err = s.UpdateGroup(ctx, UpdateGroupRequest{ID: 9, Name: "X"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteGroupStripsMemberships(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	require.NoError(t, s.DeleteGroup(ctx, 1))

	ds := s.Snapshot()
	for _, g := range ds.Groups {
		require.NotEqual(t, 1, g.ID)
	}
	for _, u := range ds.Users {
		for _, gid := range u.GroupIDs {
			require.NotEqual(t, 1, gid, "user %s still references the deleted group", u.DNI)
		}
	}
}
