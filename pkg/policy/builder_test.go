package policy

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/livekit/protocol/logger"

	"github.com/jitsi/jitsi-meet-load-test/pkg/lastn"
	"github.com/jitsi/jitsi-meet-load-test/pkg/policy/types"
)

type staticSources map[types.ParticipantID]string

func (s staticSources) GetActiveVideoSourceID(id types.ParticipantID) (string, bool) {
	source, ok := s[id]
	return source, ok
}

func newTestContext(stageView bool, members ...types.ParticipantID) *PolicyContext {
	pc := NewPolicyContext("self", stageView, logger.GetLogger())
	pc.Roster.Reset(members)
	return pc
}

func remoteIDs(n int) []types.ParticipantID {
	ids := make([]types.ParticipantID, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, types.ParticipantID(fmt.Sprintf("p%d", i+1)))
	}
	return ids
}

func TestMaxHeight(t *testing.T) {
	t.Run("tile view tiers", func(t *testing.T) {
		h := DefaultHeightConfig
		require.Equal(t, int32(720), h.MaxHeight(false, 1))
		require.Equal(t, int32(720), h.MaxHeight(false, 2))
		require.Equal(t, int32(360), h.MaxHeight(false, 3))
		require.Equal(t, int32(360), h.MaxHeight(false, 4))
		require.Equal(t, int32(180), h.MaxHeight(false, 5))
		require.Equal(t, int32(180), h.MaxHeight(false, 100))
	})

	t.Run("tile view is non-increasing with roster size", func(t *testing.T) {
		h := DefaultHeightConfig
		prev := h.MaxHeight(false, 1)
		for count := 2; count <= 50; count++ {
			cur := h.MaxHeight(false, count)
			require.LessOrEqual(t, cur, prev, "count %d", count)
			prev = cur
		}
	})

	t.Run("stage view is constant", func(t *testing.T) {
		h := DefaultHeightConfig
		for count := 1; count <= 50; count++ {
			require.Equal(t, int32(2160), h.MaxHeight(true, count))
		}
	})

	t.Run("custom heights", func(t *testing.T) {
		h := HeightConfig{High: 1080, Medium: 540, Low: 90, Stage: 1080, HighMaxParticipants: 3, MediumMaxParticipants: 8}
		require.Equal(t, int32(1080), h.MaxHeight(false, 3))
		require.Equal(t, int32(540), h.MaxHeight(false, 8))
		require.Equal(t, int32(90), h.MaxHeight(false, 9))
	})
}

func TestBuilder(t *testing.T) {
	t.Run("tile view with unlimited cap and a single tier", func(t *testing.T) {
		b := NewBuilder(BuilderParams{
			ConfiguredLastN: lastn.Unlimited,
			LastNTiers:      []lastn.Tier{{MaxParticipants: 2, LastN: 10}},
			Heights:         DefaultHeightConfig,
		})
		pc := newTestContext(false, "p1")
		require.Equal(t, 2, pc.Roster.Count())

		c, publish := b.Build(pc, false)
		require.True(t, publish)
		require.Equal(t, int32(10), c.LastN)
		require.Equal(t, int32(720), c.DefaultMaxHeight)
		require.Empty(t, c.OnStageSources)
	})

	t.Run("configured cap below the tiered limit", func(t *testing.T) {
		b := NewBuilder(BuilderParams{
			ConfiguredLastN: 3,
			LastNTiers:      []lastn.Tier{{MaxParticipants: 4, LastN: 20}, {LastN: 5}},
			Heights:         DefaultHeightConfig,
		})
		pc := newTestContext(false, remoteIDs(4)...)
		require.Equal(t, 5, pc.Roster.Count())

		c, publish := b.Build(pc, false)
		require.True(t, publish)
		require.Equal(t, int32(3), c.LastN)
		require.Equal(t, int32(180), c.DefaultMaxHeight)
	})

	t.Run("unchanged value is not published unless forced", func(t *testing.T) {
		b := NewBuilder(BuilderParams{ConfiguredLastN: lastn.Unlimited, Heights: DefaultHeightConfig})
		pc := newTestContext(false, "p1", "p2")

		c, publish := b.Build(pc, false)
		require.True(t, publish)
		pc.SetLastPublished(c)

		_, publish = b.Build(pc, false)
		require.False(t, publish)

		forced, publish := b.Build(pc, true)
		require.True(t, publish)
		require.True(t, forced.Equal(c))
	})

	t.Run("any field change is published", func(t *testing.T) {
		b := NewBuilder(BuilderParams{
			ConfiguredLastN: lastn.Unlimited,
			Heights:         DefaultHeightConfig,
			Sources:         staticSources{"p1": "p1-v0"},
		})
		pc := newTestContext(true, "p1", "p2")
		c, _ := b.Build(pc, false)
		pc.SetLastPublished(c)

		require.True(t, pc.Stage.Select("p1", nil))
		c, publish := b.Build(pc, false)
		require.True(t, publish)
		require.Equal(t, []string{"p1-v0"}, c.OnStageSources)
		require.Equal(t, int32(2160), c.DefaultMaxHeight)
	})

	t.Run("selection without an active source yields no stage source", func(t *testing.T) {
		b := NewBuilder(BuilderParams{
			ConfiguredLastN: lastn.Unlimited,
			Heights:         DefaultHeightConfig,
			Sources:         staticSources{},
		})
		pc := newTestContext(true, "p1")
		require.True(t, pc.Stage.Select("p1", nil))

		c := b.Compute(pc)
		require.NotNil(t, c.OnStageSources)
		require.Empty(t, c.OnStageSources)
	})

	t.Run("last published is a copy", func(t *testing.T) {
		pc := newTestContext(true)
		c := types.ReceiverConstraints{LastN: 1, DefaultMaxHeight: 2160, OnStageSources: []string{"a"}}
		pc.SetLastPublished(c)
		c.OnStageSources[0] = "b"

		last, ok := pc.LastPublished()
		require.True(t, ok)
		require.Equal(t, []string{"a"}, last.OnStageSources)
	})
}

func TestRosterState(t *testing.T) {
	r := NewRosterState()
	require.Equal(t, 1, r.Count())
	require.True(t, r.Add("b"))
	require.True(t, r.Add("a"))
	require.False(t, r.Add("a"))
	require.Equal(t, 3, r.Count())
	require.Equal(t, []types.ParticipantID{"a", "b"}, r.Members())

	require.True(t, r.Remove("a"))
	require.False(t, r.Remove("a"))
	require.Equal(t, 2, r.Count())

	r.Reset([]types.ParticipantID{"x", "y", "z"})
	require.Equal(t, 4, r.Count())
	require.False(t, r.IsMember("b"))
}
