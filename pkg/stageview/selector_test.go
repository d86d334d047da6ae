package stageview

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jitsi/jitsi-meet-load-test/pkg/policy/types"
)

func newTestSelector(self types.ParticipantID, members ...types.ParticipantID) (*Selector, map[types.ParticipantID]bool) {
	roster := make(map[types.ParticipantID]bool)
	for _, m := range members {
		roster[m] = true
	}
	return NewSelector(SelectorParams{
		Self: self,
		IsMember: func(id types.ParticipantID) bool {
			return roster[id]
		},
	}), roster
}

func TestSelector(t *testing.T) {
	t.Run("starts unselected", func(t *testing.T) {
		s, _ := newTestSelector("self", "p1")
		_, ok := s.Selected()
		require.False(t, ok)
	})

	t.Run("eligible primary is selected", func(t *testing.T) {
		s, _ := newTestSelector("self", "p1", "p2")
		require.True(t, s.Select("p1", []types.ParticipantID{"p2"}))
		id, ok := s.Selected()
		require.True(t, ok)
		require.Equal(t, types.ParticipantID("p1"), id)
	})

	t.Run("never selects self", func(t *testing.T) {
		s, _ := newTestSelector("self", "p1")
		require.False(t, s.Select("self", nil))
		_, ok := s.Selected()
		require.False(t, ok)

		require.True(t, s.Select("self", []types.ParticipantID{"self", "p1"}))
		id, _ := s.Selected()
		require.Equal(t, types.ParticipantID("p1"), id)
	})

	t.Run("never selects a non-member", func(t *testing.T) {
		s, _ := newTestSelector("self", "p1")
		require.False(t, s.Select("ghost", []types.ParticipantID{"other-ghost"}))
		_, ok := s.Selected()
		require.False(t, ok)
	})

	t.Run("no candidate keeps current selection", func(t *testing.T) {
		s, _ := newTestSelector("self", "p1")
		require.True(t, s.Select("p1", nil))
		require.False(t, s.Select("ghost", nil))
		id, ok := s.Selected()
		require.True(t, ok)
		require.Equal(t, types.ParticipantID("p1"), id)
	})

	t.Run("ineligible primary falls back then repeats as a no-op", func(t *testing.T) {
		s, _ := newTestSelector("self", "p2", "p3")
		fallback := []types.ParticipantID{"p2", "p3"}

		require.True(t, s.Select("p1", fallback))
		id, ok := s.Selected()
		require.True(t, ok)
		require.Equal(t, types.ParticipantID("p2"), id)

		require.False(t, s.Select("p1", fallback))
		id, _ = s.Selected()
		require.Equal(t, types.ParticipantID("p2"), id)
	})

	t.Run("selection is not cleared when the member leaves", func(t *testing.T) {
		s, roster := newTestSelector("self", "p1", "p2")
		require.True(t, s.Select("p1", nil))

		delete(roster, "p1")
		id, ok := s.Selected()
		require.True(t, ok)
		require.Equal(t, types.ParticipantID("p1"), id)

		// corrected on the next dominant speaker change
		require.True(t, s.Select("p1", []types.ParticipantID{"p2"}))
		id, _ = s.Selected()
		require.Equal(t, types.ParticipantID("p2"), id)
	})
}
