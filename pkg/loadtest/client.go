package loadtest

import (
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"github.com/livekit/protocol/logger"

	"github.com/jitsi/jitsi-meet-load-test/pkg/config"
	"github.com/jitsi/jitsi-meet-load-test/pkg/policy"
	"github.com/jitsi/jitsi-meet-load-test/pkg/policy/types"
	"github.com/jitsi/jitsi-meet-load-test/pkg/simulation"
	"github.com/jitsi/jitsi-meet-load-test/pkg/telemetry/prometheus"
)

const (
	videoOnMessage = "video on"
)

var ErrNotConnected = errors.New("client not connected")

type ClientParams struct {
	Index  int
	Config config.Config
	Room   *simulation.Room
	Logger logger.Logger
}

type ClientSnapshot struct {
	ID                types.ParticipantID
	Visitor           bool
	AudioMuted        bool
	VideoMuted        bool
	Policy            policy.Snapshot
	SelectedEndpoints []types.ParticipantID
	// remote participants this client receives a track of the kind from
	RemoteVideoTracks int
	RemoteAudioTracks int
	Publishes         int64
	PublishErrors     int64
}

// LoadTestClient is one simulated conference participant. It owns its session
// and the policy driver reporting receiver constraints for it.
type LoadTestClient struct {
	params ClientParams
	id     types.ParticipantID

	lock        sync.Mutex
	session     *simulation.Session
	driver      *policy.Driver
	unmuteTimer *time.Timer
	remoteVideo map[types.ParticipantID]struct{}
	remoteAudio map[types.ParticipantID]struct{}

	visitor    atomic.Bool
	localAudio atomic.Bool
	closed     atomic.Bool

	publishes     atomic.Int64
	publishErrors atomic.Int64
}

func NewLoadTestClient(params ClientParams) *LoadTestClient {
	id := types.ParticipantID(fmt.Sprintf("%s-%d", params.Config.Room, params.Index))
	if params.Logger == nil {
		params.Logger = logger.GetLogger()
	}
	params.Logger = params.Logger.WithValues("clientID", params.Index, "participant", id)

	c := &LoadTestClient{
		params:      params,
		id:          id,
		remoteVideo: make(map[types.ParticipantID]struct{}),
		remoteAudio: make(map[types.ParticipantID]struct{}),
	}
	c.localAudio.Store(params.Config.Media.LocalAudio)
	return c
}

func (c *LoadTestClient) ID() types.ParticipantID {
	return c.id
}

func (c *LoadTestClient) Index() int {
	return c.params.Index
}

func (c *LoadTestClient) IsVisitor() bool {
	return c.visitor.Load()
}

// Connect joins the room. A client turned away by a full room reconnects once
// as a visitor without local media.
func (c *LoadTestClient) Connect() error {
	prometheus.ClientStarted()

	err := c.connect()
	if errors.Is(err, simulation.ErrRedirected) {
		c.params.Logger.Infow("redirecting to visitor node")
		c.visitor.Store(true)
		err = c.connect()
	}
	if err != nil {
		prometheus.ClientStopped()
		return errors.Wrapf(err, "client %d could not connect", c.params.Index)
	}

	prometheus.ClientConnected()
	c.params.Logger.Infow("conference joined", "visitor", c.visitor.Load())
	return nil
}

func (c *LoadTestClient) connect() error {
	session := c.params.Room.NewSession(c.id, c.visitor.Load())
	driver, err := policy.NewDriver(policy.DriverParams{
		Config:  c.params.Config.PolicyConfig(),
		Session: session,
		Logger:  c.params.Logger,
	})
	if err != nil {
		return err
	}

	driver.OnPublished(func(_ types.ReceiverConstraints, _ bool) {
		c.publishes.Inc()
	})
	driver.OnPublishError(func(_ error) {
		c.publishErrors.Inc()
	})
	session.OnStartMuted(c.onStartMuted)
	session.OnPrivateMessage(c.onPrivateMessage)
	session.OnRemoteTrack(c.onRemoteTrack)

	media := c.params.Config.Media
	if !c.visitor.Load() {
		session.PublishTracks(true, media.LocalVideo)
		if !c.localAudio.Load() {
			session.MuteAudio(true)
		}
	}

	c.lock.Lock()
	c.session = session
	c.driver = driver
	c.lock.Unlock()

	driver.Start()
	if err := session.Join(); err != nil {
		<-driver.Stop()
		c.lock.Lock()
		c.session = nil
		c.driver = nil
		c.lock.Unlock()
		return err
	}
	return nil
}

func (c *LoadTestClient) current() (*simulation.Session, *policy.Driver) {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.session, c.driver
}

// onStartMuted undoes a conference start muted policy after a grace period,
// for the media this client wants on.
func (c *LoadTestClient) onStartMuted(audio bool, video bool) {
	c.params.Logger.Debugw("started muted", "audio", audio, "video", video)

	c.lock.Lock()
	defer c.lock.Unlock()

	if c.unmuteTimer != nil {
		c.unmuteTimer.Stop()
	}
	c.unmuteTimer = time.AfterFunc(c.params.Config.Media.UnmuteDelay, func() {
		session, _ := c.current()
		if session == nil || c.closed.Load() {
			return
		}
		if c.localAudio.Load() && session.HasAudio() && session.AudioMuted() {
			session.MuteAudio(false)
		}
		if c.params.Config.Media.LocalVideo && session.HasVideo() && session.VideoMuted() {
			session.MuteVideo(false)
		}
	})
}

// onRemoteTrack keeps the remote tracks of the kinds this client wants to receive.
func (c *LoadTestClient) onRemoteTrack(from types.ParticipantID, kind simulation.TrackKind) {
	media := c.params.Config.Media

	c.lock.Lock()
	defer c.lock.Unlock()

	switch {
	case kind == simulation.TrackKindVideo && media.RemoteVideo:
		c.remoteVideo[from] = struct{}{}
	case kind == simulation.TrackKindAudio && media.RemoteAudio:
		c.remoteAudio[from] = struct{}{}
	}
}

func (c *LoadTestClient) onPrivateMessage(from types.ParticipantID, text string) {
	switch text {
	case videoOnMessage:
		c.onVideoOnMessage()
	default:
		c.params.Logger.Debugw("ignoring private message", "from", from, "text", text)
	}
}

func (c *LoadTestClient) onVideoOnMessage() {
	if c.visitor.Load() {
		c.params.Logger.Warnw("in visitor mode, not turning video on", nil)
		return
	}
	session, _ := c.current()
	if session == nil {
		return
	}

	switch {
	case session.HasVideo() && session.VideoMuted():
		c.params.Logger.Debugw("unmuting existing video track")
		session.MuteVideo(false)
	case !session.HasVideo():
		c.params.Logger.Debugw("adding a new video track for unmute")
		session.PublishTracks(false, true)
	default:
		c.params.Logger.Infow("no-op, video already unmuted")
	}
}

func (c *LoadTestClient) MuteAudio(mute bool) error {
	c.localAudio.Store(!mute)

	session, _ := c.current()
	if session == nil {
		return ErrNotConnected
	}

	if mute {
		session.MuteAudio(true)
		return nil
	}
	if c.visitor.Load() {
		c.params.Logger.Warnw("in visitor mode, not unmuting audio", nil)
		return nil
	}
	if session.HasAudio() {
		session.MuteAudio(false)
	} else {
		session.PublishTracks(true, false)
	}
	return nil
}

func (c *LoadTestClient) SendPrivateMessage(to types.ParticipantID, text string) error {
	session, _ := c.current()
	if session == nil {
		return ErrNotConnected
	}
	return session.SendPrivateMessage(to, text)
}

func (c *LoadTestClient) Snapshot() ClientSnapshot {
	snap := ClientSnapshot{
		ID:            c.id,
		Visitor:       c.visitor.Load(),
		AudioMuted:    true,
		VideoMuted:    true,
		Publishes:     c.publishes.Load(),
		PublishErrors: c.publishErrors.Load(),
	}

	c.lock.Lock()
	snap.RemoteVideoTracks = len(c.remoteVideo)
	snap.RemoteAudioTracks = len(c.remoteAudio)
	c.lock.Unlock()

	session, driver := c.current()
	if session != nil {
		snap.AudioMuted = session.AudioMuted()
		snap.VideoMuted = session.VideoMuted()
	}
	if driver != nil {
		snap.Policy = driver.Snapshot()
		snap.SelectedEndpoints = driver.SelectedEndpoints()
	}
	return snap
}

func (c *LoadTestClient) Close() {
	if c.closed.Swap(true) {
		return
	}

	c.lock.Lock()
	if c.unmuteTimer != nil {
		c.unmuteTimer.Stop()
	}
	session, driver := c.session, c.driver
	c.lock.Unlock()

	if driver != nil {
		<-driver.Stop()
	}
	if session != nil {
		session.Leave()
		prometheus.ClientStopped()
	}
	c.params.Logger.Debugw("client closed")
}
