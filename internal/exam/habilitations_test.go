package exam

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHabilitate(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	h, err := s.Habilitate(ctx, HabilitateRequest{ExamID: 1, GroupID: 2, ShowScore: false})
	require.NoError(t, err)
	require.Equal(t, 2, h.ID) // seed habilitation has ID 1

	// duplicate pair
	_, err = s.Habilitate(ctx, HabilitateRequest{ExamID: 1, GroupID: 2, ShowScore: true})
	require.ErrorIs(t, err, ErrDuplicateHabilitation)

	// dangling references
	_, err = s.Habilitate(ctx, HabilitateRequest{ExamID: 9, GroupID: 1})
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.Habilitate(ctx, HabilitateRequest{ExamID: 1, GroupID: 9})
	require.ErrorIs(t, err, ErrNotFound)

	// missing selection
	_, err = s.Habilitate(ctx, HabilitateRequest{ExamID: 1})
	require.True(t, IsValidation(err))
}

func TestHabilitationPairUniqueInvariant(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	_, _ = s.Habilitate(ctx, HabilitateRequest{ExamID: 1, GroupID: 2})
	seen := map[[2]int]bool{}
	for _, h := range s.Snapshot().Habilitations {
		key := [2]int{h.ExamID, h.GroupID}
		require.False(t, seen[key], "duplicate habilitation for %v", key)
		seen[key] = true
	}
}

func TestDeleteHabilitation(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	require.NoError(t, s.DeleteHabilitation(ctx, 1))
	require.Empty(t, s.Snapshot().Habilitations)
	require.ErrorIs(t, s.DeleteHabilitation(ctx, 1), ErrNotFound)
}
