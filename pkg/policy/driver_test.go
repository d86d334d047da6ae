package policy

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jitsi/jitsi-meet-load-test/pkg/lastn"
	"github.com/jitsi/jitsi-meet-load-test/pkg/policy/types"
	"github.com/jitsi/jitsi-meet-load-test/pkg/policy/types/typesfakes"
)

func newFakeSession(remotes ...types.ParticipantID) *typesfakes.FakeConferenceSession {
	s := &typesfakes.FakeConferenceSession{}
	s.LocalParticipantIDReturns("self")
	s.GetParticipantIDsReturns(remotes)
	s.GetParticipantCountReturns(len(remotes) + 1)
	s.GetActiveVideoSourceIDCalls(func(id types.ParticipantID) (string, bool) {
		return string(id) + "-v0", true
	})
	return s
}

func newTestDriver(t *testing.T, conf Config, session types.ConferenceSession) *Driver {
	d, err := NewDriver(DriverParams{
		Config:  conf,
		Session: session,
	})
	require.NoError(t, err)
	return d
}

func publishedConstraints(s *typesfakes.FakeConferenceSession) []types.ReceiverConstraints {
	out := make([]types.ReceiverConstraints, 0, s.SetReceiverConstraintsCallCount())
	for i := 0; i < s.SetReceiverConstraintsCallCount(); i++ {
		out = append(out, s.SetReceiverConstraintsArgsForCall(i))
	}
	return out
}

func TestNewDriver(t *testing.T) {
	t.Run("requires a session", func(t *testing.T) {
		_, err := NewDriver(DriverParams{})
		require.ErrorIs(t, err, ErrMissingSession)
	})

	t.Run("rejects invalid tiers", func(t *testing.T) {
		_, err := NewDriver(DriverParams{
			Config: Config{
				ConfiguredLastN: lastn.Unlimited,
				LastNTiers:      []lastn.Tier{{MaxParticipants: 5, LastN: 1}, {MaxParticipants: 2, LastN: 3}},
			},
			Session: newFakeSession(),
		})
		require.ErrorIs(t, err, lastn.ErrConfiguration)
	})

	t.Run("defaults heights", func(t *testing.T) {
		d := newTestDriver(t, Config{ConfiguredLastN: lastn.Unlimited}, newFakeSession())
		require.Equal(t, DefaultHeightConfig, d.params.Config.Heights)
	})
}

func TestDriverDispatch(t *testing.T) {
	t.Run("nothing is published before the data channel opens", func(t *testing.T) {
		s := newFakeSession("p1")
		d := newTestDriver(t, Config{ConfiguredLastN: lastn.Unlimited}, s)

		require.NoError(t, d.Dispatch(ConferenceJoinedEvent{}))
		require.NoError(t, d.Dispatch(ParticipantJoinedEvent{ID: "p2"}))
		require.Equal(t, 0, s.SetReceiverConstraintsCallCount())

		snap := d.Snapshot()
		require.Equal(t, 3, snap.RosterCount)
		require.False(t, snap.Connected)
		require.False(t, snap.HasPublished)
	})

	t.Run("first data channel open forces a publish", func(t *testing.T) {
		s := newFakeSession("p1")
		d := newTestDriver(t, Config{ConfiguredLastN: lastn.Unlimited}, s)
		var forced []bool
		d.OnPublished(func(_ types.ReceiverConstraints, force bool) {
			forced = append(forced, force)
		})

		require.NoError(t, d.Dispatch(ConferenceJoinedEvent{}))
		require.NoError(t, d.Dispatch(DataChannelOpenEvent{}))
		require.Equal(t, 1, s.SetReceiverConstraintsCallCount())
		require.Equal(t, []bool{true}, forced)

		// reopening does not force again
		require.NoError(t, d.Dispatch(DataChannelOpenEvent{}))
		require.Equal(t, 1, s.SetReceiverConstraintsCallCount())
	})

	t.Run("join publishes the tiered lastN", func(t *testing.T) {
		s := newFakeSession()
		d := newTestDriver(t, Config{
			ConfiguredLastN: lastn.Unlimited,
			LastNTiers:      []lastn.Tier{{MaxParticipants: 2, LastN: 10}},
		}, s)

		require.NoError(t, d.Dispatch(ConferenceJoinedEvent{}))
		require.NoError(t, d.Dispatch(DataChannelOpenEvent{}))
		require.NoError(t, d.Dispatch(ParticipantJoinedEvent{ID: "p1"}))

		// 1 -> 2 keeps lastN=10 and 720p, so the forced value stands
		published := publishedConstraints(s)
		require.Len(t, published, 1)
		require.Equal(t, int32(10), published[0].LastN)
		require.Equal(t, int32(720), published[0].DefaultMaxHeight)
		require.Empty(t, published[0].OnStageSources)

		snap := d.Snapshot()
		require.Equal(t, 2, snap.RosterCount)
		require.True(t, snap.LastPublished.Equal(published[0]))
	})

	t.Run("configured cap wins over the catch-all tier", func(t *testing.T) {
		s := newFakeSession("p1", "p2", "p3", "p4")
		d := newTestDriver(t, Config{
			ConfiguredLastN: 3,
			LastNTiers:      []lastn.Tier{{MaxParticipants: 4, LastN: 20}, {LastN: 5}},
		}, s)

		require.NoError(t, d.Dispatch(ConferenceJoinedEvent{}))
		require.NoError(t, d.Dispatch(DataChannelOpenEvent{}))

		published := publishedConstraints(s)
		require.Len(t, published, 1)
		require.Equal(t, int32(3), published[0].LastN)
		require.Equal(t, int32(180), published[0].DefaultMaxHeight)
	})

	t.Run("fallback selection then identical event", func(t *testing.T) {
		s := newFakeSession("P2", "P3")
		d := newTestDriver(t, Config{ConfiguredLastN: lastn.Unlimited, StageView: true}, s)

		require.NoError(t, d.Dispatch(ConferenceJoinedEvent{}))
		require.NoError(t, d.Dispatch(DataChannelOpenEvent{}))
		require.Equal(t, 1, s.SetReceiverConstraintsCallCount())

		require.NoError(t, d.Dispatch(DominantSpeakerChangedEvent{Primary: "P1", Fallback: []types.ParticipantID{"P2", "P3"}}))
		require.Equal(t, 2, s.SetReceiverConstraintsCallCount())
		c := s.SetReceiverConstraintsArgsForCall(1)
		require.Equal(t, []string{"P2-v0"}, c.OnStageSources)
		require.Equal(t, int32(2160), c.DefaultMaxHeight)

		snap := d.Snapshot()
		require.True(t, snap.HasOnStage)
		require.Equal(t, types.ParticipantID("P2"), snap.OnStage)

		require.NoError(t, d.Dispatch(DominantSpeakerChangedEvent{Primary: "P1", Fallback: []types.ParticipantID{"P2", "P3"}}))
		require.Equal(t, 2, s.SetReceiverConstraintsCallCount())
	})

	t.Run("tile view ignores dominant speaker changes", func(t *testing.T) {
		s := newFakeSession("p1", "p2")
		d := newTestDriver(t, Config{ConfiguredLastN: lastn.Unlimited}, s)

		require.NoError(t, d.Dispatch(ConferenceJoinedEvent{}))
		require.NoError(t, d.Dispatch(DataChannelOpenEvent{}))
		require.NoError(t, d.Dispatch(DominantSpeakerChangedEvent{Primary: "p1"}))
		require.Equal(t, 1, s.SetReceiverConstraintsCallCount())
		require.False(t, d.Snapshot().HasOnStage)
		require.Equal(t, []types.ParticipantID{"p1", "p2"}, d.SelectedEndpoints())
	})

	t.Run("roster change with unchanged constraints is not published", func(t *testing.T) {
		s := newFakeSession("p1", "p2", "p3", "p4")
		d := newTestDriver(t, Config{ConfiguredLastN: lastn.Unlimited}, s)

		require.NoError(t, d.Dispatch(ConferenceJoinedEvent{}))
		require.NoError(t, d.Dispatch(DataChannelOpenEvent{}))
		// 5 -> 6 stays on the lowest height with unlimited lastN
		require.NoError(t, d.Dispatch(ParticipantJoinedEvent{ID: "p5"}))
		require.Equal(t, 1, s.SetReceiverConstraintsCallCount())

		// duplicate join and unknown leave do not recompute
		require.NoError(t, d.Dispatch(ParticipantJoinedEvent{ID: "p5"}))
		require.NoError(t, d.Dispatch(ParticipantLeftEvent{ID: "nobody"}))
		require.NoError(t, d.Dispatch(ParticipantJoinedEvent{ID: "self"}))
		require.Equal(t, 6, d.Snapshot().RosterCount)
		require.Equal(t, 1, s.SetReceiverConstraintsCallCount())

		// 6 -> 4 crosses into the medium tier
		require.NoError(t, d.Dispatch(ParticipantLeftEvent{ID: "p5"}))
		require.NoError(t, d.Dispatch(ParticipantLeftEvent{ID: "p4"}))
		require.Equal(t, 2, s.SetReceiverConstraintsCallCount())
		require.Equal(t, int32(360), s.SetReceiverConstraintsArgsForCall(1).DefaultMaxHeight)
	})

	t.Run("media session of the on-stage participant forces a publish", func(t *testing.T) {
		s := newFakeSession("p1", "p2")
		d := newTestDriver(t, Config{ConfiguredLastN: lastn.Unlimited, StageView: true}, s)
		var forced []bool
		d.OnPublished(func(_ types.ReceiverConstraints, force bool) {
			forced = append(forced, force)
		})

		require.NoError(t, d.Dispatch(ConferenceJoinedEvent{}))
		require.NoError(t, d.Dispatch(DataChannelOpenEvent{}))
		require.NoError(t, d.Dispatch(DominantSpeakerChangedEvent{Primary: "p1"}))
		require.Equal(t, 2, s.SetReceiverConstraintsCallCount())

		require.NoError(t, d.Dispatch(MediaSessionStartedEvent{ID: "p2"}))
		require.Equal(t, 2, s.SetReceiverConstraintsCallCount())

		require.NoError(t, d.Dispatch(MediaSessionStartedEvent{ID: "p1"}))
		require.Equal(t, 3, s.SetReceiverConstraintsCallCount())
		require.True(t, s.SetReceiverConstraintsArgsForCall(2).Equal(s.SetReceiverConstraintsArgsForCall(1)))
		require.Equal(t, []bool{true, false, true}, forced)
		require.Equal(t, []types.ParticipantID{"p1"}, d.SelectedEndpoints())
	})

	t.Run("on-stage participant leaving keeps the selection", func(t *testing.T) {
		s := newFakeSession("p1", "p2")
		d := newTestDriver(t, Config{ConfiguredLastN: lastn.Unlimited, StageView: true}, s)

		require.NoError(t, d.Dispatch(ConferenceJoinedEvent{}))
		require.NoError(t, d.Dispatch(DominantSpeakerChangedEvent{Primary: "p1"}))
		require.NoError(t, d.Dispatch(ParticipantLeftEvent{ID: "p1"}))

		snap := d.Snapshot()
		require.True(t, snap.HasOnStage)
		require.Equal(t, types.ParticipantID("p1"), snap.OnStage)
		require.Equal(t, 2, snap.RosterCount)
	})

	t.Run("transport failure is returned and not rolled back", func(t *testing.T) {
		s := newFakeSession("p1")
		failure := errors.New("data channel closed")
		s.SetReceiverConstraintsReturns(failure)
		d := newTestDriver(t, Config{ConfiguredLastN: lastn.Unlimited}, s)

		require.NoError(t, d.Dispatch(ConferenceJoinedEvent{}))
		err := d.Dispatch(DataChannelOpenEvent{})
		require.Error(t, err)
		require.ErrorIs(t, err, ErrTransport)
		require.ErrorIs(t, err, failure)

		var transportErr *TransportError
		require.True(t, errors.As(err, &transportErr))
		require.Equal(t, int32(720), transportErr.Constraints.DefaultMaxHeight)

		snap := d.Snapshot()
		require.True(t, snap.HasPublished)
		require.True(t, snap.LastPublished.Equal(transportErr.Constraints))

		// the failed value counts as published
		_, publish := d.builder.Build(d.pc, false)
		require.False(t, publish)
	})
}

func TestDriverQueue(t *testing.T) {
	var (
		lock     sync.Mutex
		handlers struct {
			joined      func()
			participant func(id types.ParticipantID)
			speaker     types.DominantSpeakerHandler
			open        func()
		}
	)
	s := newFakeSession("p1")
	s.OnConferenceJoinedCalls(func(f func()) {
		lock.Lock()
		handlers.joined = f
		lock.Unlock()
	})
	s.OnParticipantJoinedCalls(func(f func(id types.ParticipantID)) {
		lock.Lock()
		handlers.participant = f
		lock.Unlock()
	})
	s.OnDominantSpeakerChangedCalls(func(f types.DominantSpeakerHandler) {
		lock.Lock()
		handlers.speaker = f
		lock.Unlock()
	})
	s.OnDataChannelOpenCalls(func(f func()) {
		lock.Lock()
		handlers.open = f
		lock.Unlock()
	})

	d := newTestDriver(t, Config{ConfiguredLastN: lastn.Unlimited, StageView: true}, s)
	var publishErrors []error
	d.OnPublishError(func(err error) {
		lock.Lock()
		publishErrors = append(publishErrors, err)
		lock.Unlock()
	})
	d.Start()
	t.Cleanup(func() {
		<-d.Stop()
	})
	require.Equal(t, 1, s.OnDominantSpeakerChangedCallCount())

	lock.Lock()
	h := handlers
	lock.Unlock()

	h.joined()
	h.open()
	h.participant("p2")
	h.speaker("p2", nil)

	// the join alone changes nothing in stage view
	require.Eventually(t, func() bool {
		return s.SetReceiverConstraintsCallCount() == 2
	}, time.Second, 10*time.Millisecond)

	c := s.SetReceiverConstraintsArgsForCall(1)
	require.Equal(t, []string{"p2-v0"}, c.OnStageSources)
	require.Equal(t, 3, d.Snapshot().RosterCount)

	s.SetReceiverConstraintsReturns(errors.New("closed"))
	h.speaker("p1", nil)
	require.Eventually(t, func() bool {
		lock.Lock()
		defer lock.Unlock()
		return len(publishErrors) == 1
	}, time.Second, 10*time.Millisecond)

	lock.Lock()
	require.ErrorIs(t, publishErrors[0], ErrTransport)
	lock.Unlock()
}

func TestDriverTileViewDoesNotSubscribeToSpeakers(t *testing.T) {
	s := newFakeSession()
	d := newTestDriver(t, Config{ConfiguredLastN: lastn.Unlimited}, s)
	d.Start()
	<-d.Stop()

	require.Equal(t, 0, s.OnDominantSpeakerChangedCallCount())
	require.Equal(t, 1, s.OnParticipantJoinedCallCount())
	require.Equal(t, 1, s.OnMediaSessionStartedCallCount())
}
