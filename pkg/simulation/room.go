package simulation

import (
	"fmt"
	"sync"
	"time"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/frostbyte73/core"
	"github.com/gammazero/deque"
	"github.com/gammazero/workerpool"
	"github.com/thoas/go-funk"

	"github.com/livekit/protocol/logger"

	"github.com/jitsi/jitsi-meet-load-test/pkg/policy/types"
)

const (
	defaultPublishWorkers = 4
	maxSpeakerHistory     = 10
)

type RoomParams struct {
	Name string
	// 0 disables automatic dominant speaker rotation
	SpeakerInterval  time.Duration
	DataChannelDelay time.Duration
	PublishWorkers   int
	StartAudioMuted  bool
	StartVideoMuted  bool
	// 0 admits everyone as a main participant
	MaxMainParticipants int
	Logger              logger.Logger
}

type RoomStats struct {
	Participants    int
	Visitors        int
	DominantSpeaker types.ParticipantID
	// receiver constraints recorded by the bridge
	Publishes int
}

// Room is an in-memory conference with a bridge that records what each
// participant declares as its receiver constraints.
type Room struct {
	params RoomParams

	lock     sync.RWMutex
	sessions *orderedmap.OrderedMap[types.ParticipantID, *Session]
	dominant types.ParticipantID
	// previous dominant speakers, most recent first
	speakers    deque.Deque[types.ParticipantID]
	constraints map[types.ParticipantID]types.ReceiverConstraints
	publishes   int

	poolLock sync.RWMutex
	workers  *workerpool.WorkerPool
	closed   core.Fuse
}

func NewRoom(params RoomParams) *Room {
	if params.Logger == nil {
		params.Logger = logger.GetLogger()
	}
	params.Logger = params.Logger.WithValues("room", params.Name)
	if params.PublishWorkers <= 0 {
		params.PublishWorkers = defaultPublishWorkers
	}

	return &Room{
		params:      params,
		sessions:    orderedmap.NewOrderedMap[types.ParticipantID, *Session](),
		constraints: make(map[types.ParticipantID]types.ReceiverConstraints),
		workers:     workerpool.New(params.PublishWorkers),
	}
}

func (r *Room) Name() string {
	return r.params.Name
}

func (r *Room) Start() {
	if r.params.SpeakerInterval > 0 {
		go r.rotateSpeakers()
	}
}

func (r *Room) Close() {
	r.poolLock.Lock()
	if r.closed.IsBroken() {
		r.poolLock.Unlock()
		return
	}
	r.closed.Break()
	r.poolLock.Unlock()

	r.workers.StopWait()

	r.lock.Lock()
	sessions := r.sessionsLocked()
	r.sessions = orderedmap.NewOrderedMap[types.ParticipantID, *Session]()
	r.lock.Unlock()

	for _, s := range sessions {
		s.markClosed()
	}
	r.params.Logger.Infow("room closed", "participants", len(sessions))
}

// NewSession creates a session for id. It takes part in the conference once joined.
func (r *Room) NewSession(id types.ParticipantID, visitor bool) *Session {
	return newSession(SessionParams{
		ID:      id,
		Visitor: visitor,
		Room:    r,
		Logger:  r.params.Logger,
	})
}

func (r *Room) join(s *Session) error {
	r.lock.Lock()
	if r.closed.IsBroken() {
		r.lock.Unlock()
		return ErrRoomClosed
	}
	if _, ok := r.sessions.Get(s.ID()); ok {
		r.lock.Unlock()
		return ErrAlreadyJoined
	}
	if !s.IsVisitor() && r.params.MaxMainParticipants > 0 && r.mainCountLocked() >= r.params.MaxMainParticipants {
		r.lock.Unlock()
		return ErrRedirected
	}
	audience := r.audienceLocked(s)
	visible := r.visibleLocked(s)
	r.sessions.Set(s.ID(), s)
	count := r.sessions.Len()
	r.lock.Unlock()

	r.params.Logger.Debugw("participant joined", "participant", s.ID(), "visitor", s.IsVisitor(), "count", count)

	if r.params.StartAudioMuted || r.params.StartVideoMuted {
		s.applyStartMuted(r.params.StartAudioMuted, r.params.StartVideoMuted)
	}

	for _, o := range audience {
		o.emitParticipantJoined(s.ID())
	}
	s.emitConferenceJoined()

	if s.HasAudio() {
		r.announceAudio(s.ID())
	}
	if _, ok := s.activeVideoSource(); ok {
		r.announceMedia(s.ID())
	}
	for _, o := range visible {
		if o.HasAudio() {
			s.emitRemoteTrack(o.ID(), TrackKindAudio)
		}
		if _, ok := o.activeVideoSource(); ok {
			s.emitVideoStarted(o.ID())
		}
	}

	if r.params.DataChannelDelay <= 0 {
		s.openDataChannel()
	} else {
		time.AfterFunc(r.params.DataChannelDelay, s.openDataChannel)
	}
	return nil
}

func (r *Room) leave(s *Session) {
	r.lock.Lock()
	if !r.sessions.Delete(s.ID()) {
		r.lock.Unlock()
		return
	}
	delete(r.constraints, s.ID())
	r.removeSpeakerLocked(s.ID())
	if r.dominant == s.ID() {
		r.dominant = ""
	}
	audience := r.audienceLocked(s)
	count := r.sessions.Len()
	r.lock.Unlock()

	r.params.Logger.Debugw("participant left", "participant", s.ID(), "visitor", s.IsVisitor(), "count", count)
	for _, o := range audience {
		o.emitParticipantLeft(s.ID())
	}
}

// SetDominantSpeaker notifies every participant. The previous dominant
// speaker moves to the front of the fallback order.
func (r *Room) SetDominantSpeaker(id types.ParticipantID) error {
	r.lock.Lock()
	if _, ok := r.sessions.Get(id); !ok {
		r.lock.Unlock()
		return ErrParticipantNotFound
	}
	if id == r.dominant {
		r.lock.Unlock()
		return nil
	}

	r.removeSpeakerLocked(id)
	if r.dominant != "" {
		r.removeSpeakerLocked(r.dominant)
		r.speakers.PushFront(r.dominant)
		for r.speakers.Len() > maxSpeakerHistory {
			r.speakers.PopBack()
		}
	}
	r.dominant = id

	fallback := make([]types.ParticipantID, 0, r.speakers.Len())
	for i := 0; i < r.speakers.Len(); i++ {
		fallback = append(fallback, r.speakers.At(i))
	}
	sessions := r.sessionsLocked()
	r.lock.Unlock()

	r.params.Logger.Debugw("dominant speaker changed", "participant", id, "fallback", fallback)
	for _, s := range sessions {
		s.emitDominantSpeakerChanged(id, fallback)
	}
	return nil
}

func (r *Room) SendPrivateMessage(from, to types.ParticipantID, text string) error {
	r.lock.RLock()
	target, ok := r.sessions.Get(to)
	r.lock.RUnlock()
	if !ok {
		return ErrParticipantNotFound
	}

	target.emitPrivateMessage(from, text)
	return nil
}

// BridgeConstraints returns the receiver constraints the bridge last recorded for id.
func (r *Room) BridgeConstraints(id types.ParticipantID) (types.ReceiverConstraints, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	c, ok := r.constraints[id]
	return c.Clone(), ok
}

func (r *Room) Stats() RoomStats {
	r.lock.RLock()
	defer r.lock.RUnlock()

	stats := RoomStats{
		DominantSpeaker: r.dominant,
		Publishes:       r.publishes,
	}
	for el := r.sessions.Front(); el != nil; el = el.Next() {
		if el.Value.IsVisitor() {
			stats.Visitors++
		} else {
			stats.Participants++
		}
	}
	return stats
}

// participantCount is the conference size as seen by viewer, viewer included.
func (r *Room) participantCount(viewer *Session) int {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return len(r.visibleLocked(viewer)) + 1
}

func (r *Room) participantIDs(viewer *Session) []types.ParticipantID {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return funk.Map(r.visibleLocked(viewer), func(s *Session) types.ParticipantID {
		return s.ID()
	}).([]types.ParticipantID)
}

func (r *Room) activeVideoSource(id types.ParticipantID) (string, bool) {
	r.lock.RLock()
	s, ok := r.sessions.Get(id)
	r.lock.RUnlock()
	if !ok {
		return "", false
	}
	return s.activeVideoSource()
}

func (r *Room) announceMedia(id types.ParticipantID) {
	for _, s := range r.sessionsExcept(id) {
		s.emitVideoStarted(id)
	}
}

func (r *Room) announceAudio(id types.ParticipantID) {
	for _, s := range r.sessionsExcept(id) {
		s.emitRemoteTrack(id, TrackKindAudio)
	}
}

// deliver records constraints asynchronously, the way a data channel message
// reaches the bridge after the sender moved on.
func (r *Room) deliver(id types.ParticipantID, c types.ReceiverConstraints) error {
	r.poolLock.RLock()
	defer r.poolLock.RUnlock()

	if r.closed.IsBroken() {
		return ErrRoomClosed
	}
	r.workers.Submit(func() {
		r.lock.Lock()
		defer r.lock.Unlock()

		if _, ok := r.sessions.Get(id); !ok {
			return
		}
		r.constraints[id] = c
		r.publishes++
	})
	return nil
}

func (r *Room) rotateSpeakers() {
	ticker := time.NewTicker(r.params.SpeakerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.closed.Watch():
			return
		case <-ticker.C:
			candidates := r.speakerCandidates()
			if len(candidates) == 0 {
				continue
			}
			id := candidates[funk.RandomInt(0, len(candidates))]
			if err := r.SetDominantSpeaker(id); err != nil {
				r.params.Logger.Debugw("could not rotate dominant speaker", "participant", id, "error", err)
			}
		}
	}
}

// speakerCandidates are main participants with unmuted audio.
func (r *Room) speakerCandidates() []types.ParticipantID {
	r.lock.RLock()
	defer r.lock.RUnlock()

	candidates := make([]types.ParticipantID, 0, r.sessions.Len())
	for el := r.sessions.Front(); el != nil; el = el.Next() {
		if !el.Value.IsVisitor() && !el.Value.AudioMuted() {
			candidates = append(candidates, el.Key)
		}
	}
	return candidates
}

func (r *Room) sessionsLocked() []*Session {
	sessions := make([]*Session, 0, r.sessions.Len())
	for el := r.sessions.Front(); el != nil; el = el.Next() {
		sessions = append(sessions, el.Value)
	}
	return sessions
}

func (r *Room) sessionsExcept(id types.ParticipantID) []*Session {
	r.lock.RLock()
	defer r.lock.RUnlock()

	sessions := make([]*Session, 0, r.sessions.Len())
	for el := r.sessions.Front(); el != nil; el = el.Next() {
		if el.Key != id {
			sessions = append(sessions, el.Value)
		}
	}
	return sessions
}

// visibleLocked returns the main participants other than viewer. Visitors are
// hosted apart from the main conference, so nobody sees them.
func (r *Room) visibleLocked(viewer *Session) []*Session {
	sessions := make([]*Session, 0, r.sessions.Len())
	for el := r.sessions.Front(); el != nil; el = el.Next() {
		if el.Value != viewer && !el.Value.IsVisitor() {
			sessions = append(sessions, el.Value)
		}
	}
	return sessions
}

// audienceLocked returns the sessions notified about s joining or leaving.
func (r *Room) audienceLocked(s *Session) []*Session {
	if s.IsVisitor() {
		return nil
	}
	sessions := make([]*Session, 0, r.sessions.Len())
	for el := r.sessions.Front(); el != nil; el = el.Next() {
		if el.Value != s {
			sessions = append(sessions, el.Value)
		}
	}
	return sessions
}

func (r *Room) mainCountLocked() int {
	count := 0
	for el := r.sessions.Front(); el != nil; el = el.Next() {
		if !el.Value.IsVisitor() {
			count++
		}
	}
	return count
}

func (r *Room) removeSpeakerLocked(id types.ParticipantID) {
	kept := make([]types.ParticipantID, 0, r.speakers.Len())
	for i := 0; i < r.speakers.Len(); i++ {
		if s := r.speakers.At(i); s != id {
			kept = append(kept, s)
		}
	}
	if len(kept) == r.speakers.Len() {
		return
	}
	r.speakers.Clear()
	for _, s := range kept {
		r.speakers.PushBack(s)
	}
}

func videoSourceName(id types.ParticipantID) string {
	return fmt.Sprintf("%s-v0", id)
}
