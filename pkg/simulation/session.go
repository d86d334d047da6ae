package simulation

import (
	"sync"

	"go.uber.org/atomic"

	"github.com/livekit/protocol/logger"

	"github.com/jitsi/jitsi-meet-load-test/pkg/policy/types"
)

type SessionParams struct {
	ID      types.ParticipantID
	Visitor bool
	Room    *Room
	Logger  logger.Logger
}

type TrackKind string

const (
	TrackKindAudio TrackKind = "audio"
	TrackKindVideo TrackKind = "video"
)

type localTrack struct {
	published bool
	muted     bool
}

// Session is one participant's view of a simulated Room. It implements
// types.ConferenceSession.
type Session struct {
	params SessionParams

	joined          atomic.Bool
	closed          atomic.Bool
	dataChannelOpen atomic.Bool

	lock  sync.RWMutex
	audio localTrack
	video localTrack

	onConferenceJoined       func()
	onDominantSpeakerChanged types.DominantSpeakerHandler
	onParticipantJoined      func(id types.ParticipantID)
	onParticipantLeft        func(id types.ParticipantID)
	onDataChannelOpen        func()
	onMediaSessionStarted    func(id types.ParticipantID)
	onStartMuted             func(audio bool, video bool)
	onPrivateMessage         func(from types.ParticipantID, text string)
	onRemoteTrack            func(from types.ParticipantID, kind TrackKind)
}

var _ types.ConferenceSession = (*Session)(nil)

func newSession(params SessionParams) *Session {
	params.Logger = params.Logger.WithValues("participant", params.ID)
	return &Session{
		params: params,
	}
}

func (s *Session) ID() types.ParticipantID {
	return s.params.ID
}

func (s *Session) IsVisitor() bool {
	return s.params.Visitor
}

func (s *Session) Join() error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	if s.joined.Swap(true) {
		return ErrAlreadyJoined
	}
	if err := s.params.Room.join(s); err != nil {
		s.joined.Store(false)
		return err
	}
	return nil
}

func (s *Session) Leave() {
	if s.closed.Swap(true) {
		return
	}
	if s.joined.Load() {
		s.params.Room.leave(s)
	}
}

func (s *Session) markClosed() {
	s.closed.Store(true)
}

func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// ---- types.ConferenceSession

func (s *Session) LocalParticipantID() types.ParticipantID {
	return s.params.ID
}

func (s *Session) GetParticipantCount() int {
	return s.params.Room.participantCount(s)
}

func (s *Session) GetParticipantIDs() []types.ParticipantID {
	return s.params.Room.participantIDs(s)
}

func (s *Session) GetActiveVideoSourceID(id types.ParticipantID) (string, bool) {
	return s.params.Room.activeVideoSource(id)
}

// SetReceiverConstraints validates synchronously and hands the constraints to
// the bridge without waiting for them to be recorded.
func (s *Session) SetReceiverConstraints(constraints types.ReceiverConstraints) error {
	if s.closed.Load() || !s.joined.Load() {
		return ErrSessionClosed
	}
	if !s.dataChannelOpen.Load() {
		return ErrDataChannelUnavailable
	}
	return s.params.Room.deliver(s.params.ID, constraints.Clone())
}

func (s *Session) OnConferenceJoined(f func()) {
	s.lock.Lock()
	s.onConferenceJoined = f
	s.lock.Unlock()
}

func (s *Session) OnDominantSpeakerChanged(f types.DominantSpeakerHandler) {
	s.lock.Lock()
	s.onDominantSpeakerChanged = f
	s.lock.Unlock()
}

func (s *Session) OnParticipantJoined(f func(id types.ParticipantID)) {
	s.lock.Lock()
	s.onParticipantJoined = f
	s.lock.Unlock()
}

func (s *Session) OnParticipantLeft(f func(id types.ParticipantID)) {
	s.lock.Lock()
	s.onParticipantLeft = f
	s.lock.Unlock()
}

func (s *Session) OnDataChannelOpen(f func()) {
	s.lock.Lock()
	s.onDataChannelOpen = f
	s.lock.Unlock()
}

func (s *Session) OnMediaSessionStarted(f func(id types.ParticipantID)) {
	s.lock.Lock()
	s.onMediaSessionStarted = f
	s.lock.Unlock()
}

// ----

func (s *Session) OnStartMuted(f func(audio bool, video bool)) {
	s.lock.Lock()
	s.onStartMuted = f
	s.lock.Unlock()
}

func (s *Session) OnPrivateMessage(f func(from types.ParticipantID, text string)) {
	s.lock.Lock()
	s.onPrivateMessage = f
	s.lock.Unlock()
}

// OnRemoteTrack is called for every remote track added to this session.
func (s *Session) OnRemoteTrack(f func(from types.ParticipantID, kind TrackKind)) {
	s.lock.Lock()
	s.onRemoteTrack = f
	s.lock.Unlock()
}

func (s *Session) SendPrivateMessage(to types.ParticipantID, text string) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	return s.params.Room.SendPrivateMessage(s.params.ID, to, text)
}

// PublishTracks adds unmuted local tracks. Visitors cannot publish.
func (s *Session) PublishTracks(audio bool, video bool) {
	if s.params.Visitor {
		return
	}

	s.lock.Lock()
	announceAudio := audio && !s.audio.published
	if audio {
		s.audio = localTrack{published: true}
	}
	announce := video && (!s.video.published || s.video.muted)
	if video {
		s.video = localTrack{published: true}
	}
	s.lock.Unlock()

	if !s.joined.Load() {
		return
	}
	if announceAudio {
		s.params.Room.announceAudio(s.params.ID)
	}
	if announce {
		s.params.Room.announceMedia(s.params.ID)
	}
}

func (s *Session) MuteAudio(muted bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.audio.published {
		s.audio.muted = muted
	}
}

func (s *Session) MuteVideo(muted bool) {
	s.lock.Lock()
	announce := s.video.published && s.video.muted && !muted
	if s.video.published {
		s.video.muted = muted
	}
	s.lock.Unlock()

	if announce && s.joined.Load() {
		s.params.Room.announceMedia(s.params.ID)
	}
}

// HasAudio reports whether a local audio track is published.
func (s *Session) HasAudio() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.audio.published
}

func (s *Session) HasVideo() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.video.published
}

// AudioMuted is true when there is no audio track or it is muted.
func (s *Session) AudioMuted() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return !s.audio.published || s.audio.muted
}

func (s *Session) VideoMuted() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return !s.video.published || s.video.muted
}

func (s *Session) activeVideoSource() (string, bool) {
	if s.VideoMuted() {
		return "", false
	}
	return videoSourceName(s.params.ID), true
}

func (s *Session) applyStartMuted(audio bool, video bool) {
	s.lock.Lock()
	if audio && s.audio.published {
		s.audio.muted = true
	}
	if video && s.video.published {
		s.video.muted = true
	}
	f := s.onStartMuted
	s.lock.Unlock()

	if f != nil {
		f(audio, video)
	}
}

func (s *Session) openDataChannel() {
	if s.closed.Load() || s.dataChannelOpen.Swap(true) {
		return
	}

	s.lock.RLock()
	f := s.onDataChannelOpen
	s.lock.RUnlock()
	if f != nil {
		f()
	}
}

func (s *Session) emitConferenceJoined() {
	s.lock.RLock()
	f := s.onConferenceJoined
	s.lock.RUnlock()
	if f != nil {
		f()
	}
}

func (s *Session) emitParticipantJoined(id types.ParticipantID) {
	s.lock.RLock()
	f := s.onParticipantJoined
	s.lock.RUnlock()
	if f != nil {
		f(id)
	}
}

func (s *Session) emitParticipantLeft(id types.ParticipantID) {
	s.lock.RLock()
	f := s.onParticipantLeft
	s.lock.RUnlock()
	if f != nil {
		f(id)
	}
}

func (s *Session) emitDominantSpeakerChanged(primary types.ParticipantID, fallback []types.ParticipantID) {
	s.lock.RLock()
	f := s.onDominantSpeakerChanged
	s.lock.RUnlock()
	if f != nil {
		f(primary, append([]types.ParticipantID(nil), fallback...))
	}
}

func (s *Session) emitMediaSessionStarted(id types.ParticipantID) {
	s.lock.RLock()
	f := s.onMediaSessionStarted
	s.lock.RUnlock()
	if f != nil {
		f(id)
	}
}

// emitVideoStarted reports a remote video track and its media session.
func (s *Session) emitVideoStarted(id types.ParticipantID) {
	s.emitRemoteTrack(id, TrackKindVideo)
	s.emitMediaSessionStarted(id)
}

func (s *Session) emitRemoteTrack(from types.ParticipantID, kind TrackKind) {
	s.lock.RLock()
	f := s.onRemoteTrack
	s.lock.RUnlock()
	if f != nil {
		f(from, kind)
	}
}

func (s *Session) emitPrivateMessage(from types.ParticipantID, text string) {
	s.lock.RLock()
	f := s.onPrivateMessage
	s.lock.RUnlock()
	if f != nil {
		s.params.Logger.Debugw("private message received", "from", from, "text", text)
		f(from, text)
	}
}
