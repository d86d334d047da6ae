// Copyright 2023 LiveKit, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package policy

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"github.com/livekit/protocol/logger"

	"github.com/jitsi/jitsi-meet-load-test/pkg/lastn"
	"github.com/jitsi/jitsi-meet-load-test/pkg/policy/types"
	"github.com/jitsi/jitsi-meet-load-test/pkg/telemetry/prometheus"
	"github.com/jitsi/jitsi-meet-load-test/pkg/utils"
)

type Config struct {
	// lastN requested regardless of roster size, lastn.Unlimited when not configured
	ConfiguredLastN int32
	LastNTiers      []lastn.Tier
	StageView       bool
	Heights         HeightConfig
}

type DriverParams struct {
	Config  Config
	Session types.ConferenceSession
	Logger  logger.Logger
}

type Snapshot struct {
	RosterCount   int
	OnStage       types.ParticipantID
	HasOnStage    bool
	Connected     bool
	LastPublished types.ReceiverConstraints
	HasPublished  bool
}

// Driver feeds session events through the stage view selector and the
// constraints builder, and publishes receiver constraints to the session when
// they changed or a publish is forced.
type Driver struct {
	params DriverParams
	self   types.ParticipantID

	lock    sync.RWMutex
	pc      *PolicyContext
	builder *Builder

	connected atomic.Bool
	queue     *utils.OpsQueue

	onPublished    func(c types.ReceiverConstraints, force bool)
	onPublishError func(err error)
}

func NewDriver(params DriverParams) (*Driver, error) {
	if params.Session == nil {
		return nil, ErrMissingSession
	}
	if err := lastn.ValidateTiers(params.Config.LastNTiers); err != nil {
		return nil, errors.Wrap(err, "could not create policy driver")
	}
	if params.Logger == nil {
		params.Logger = logger.GetLogger()
	}
	if params.Config.Heights == (HeightConfig{}) {
		params.Config.Heights = DefaultHeightConfig
	}

	self := params.Session.LocalParticipantID()
	d := &Driver{
		params: params,
		self:   self,
		pc:     NewPolicyContext(self, params.Config.StageView, params.Logger),
		builder: NewBuilder(BuilderParams{
			ConfiguredLastN: params.Config.ConfiguredLastN,
			LastNTiers:      params.Config.LastNTiers,
			Heights:         params.Config.Heights,
			Sources:         params.Session,
		}),
		queue: utils.NewOpsQueue(utils.OpsQueueParams{
			Name:        "policy-events",
			FlushOnStop: false,
			Logger:      params.Logger,
		}),
	}
	return d, nil
}

func (d *Driver) OnPublished(f func(c types.ReceiverConstraints, force bool)) {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.onPublished = f
}

func (d *Driver) OnPublishError(f func(err error)) {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.onPublishError = f
}

// Start subscribes to the session and starts the event loop. Session handlers
// only enqueue, all state transitions run on the loop.
func (d *Driver) Start() {
	s := d.params.Session
	s.OnConferenceJoined(func() {
		d.enqueue(ConferenceJoinedEvent{})
	})
	s.OnParticipantJoined(func(id types.ParticipantID) {
		d.enqueue(ParticipantJoinedEvent{ID: id})
	})
	s.OnParticipantLeft(func(id types.ParticipantID) {
		d.enqueue(ParticipantLeftEvent{ID: id})
	})
	if d.params.Config.StageView {
		s.OnDominantSpeakerChanged(func(primary types.ParticipantID, fallback []types.ParticipantID) {
			d.enqueue(DominantSpeakerChangedEvent{Primary: primary, Fallback: fallback})
		})
	}
	s.OnDataChannelOpen(func() {
		d.enqueue(DataChannelOpenEvent{})
	})
	s.OnMediaSessionStarted(func(id types.ParticipantID) {
		d.enqueue(MediaSessionStartedEvent{ID: id})
	})

	d.queue.Start()
}

func (d *Driver) Stop() <-chan struct{} {
	return d.queue.Stop()
}

func (d *Driver) enqueue(ev Event) {
	d.queue.Enqueue(func() {
		if err := d.Dispatch(ev); err != nil {
			d.params.Logger.Warnw("could not publish receiver constraints", err, "event", ev.Type())

			d.lock.RLock()
			onPublishError := d.onPublishError
			d.lock.RUnlock()
			if onPublishError != nil {
				onPublishError(err)
			}
		}
	})
}

// Dispatch applies one event and publishes if needed. Only a publish failure
// returns an error, wrapped in a TransportError.
func (d *Driver) Dispatch(ev Event) error {
	d.lock.Lock()
	recompute, force := d.applyLocked(ev)
	if !recompute || !d.connected.Load() {
		d.lock.Unlock()
		return nil
	}

	c, publish := d.builder.Build(d.pc, force)
	if !publish {
		d.lock.Unlock()
		return nil
	}
	d.pc.SetLastPublished(c)
	onPublished := d.onPublished
	d.lock.Unlock()

	return d.publish(c, force, onPublished)
}

func (d *Driver) applyLocked(ev Event) (recompute bool, force bool) {
	switch e := ev.(type) {
	case ConferenceJoinedEvent:
		ids := make([]types.ParticipantID, 0)
		for _, id := range d.params.Session.GetParticipantIDs() {
			if id != d.self {
				ids = append(ids, id)
			}
		}
		d.pc.Roster.Reset(ids)
		if count := d.params.Session.GetParticipantCount(); count != d.pc.Roster.Count() {
			d.params.Logger.Warnw("session participant count mismatch", nil,
				"sessionCount", count,
				"rosterCount", d.pc.Roster.Count(),
			)
		}
		d.params.Logger.Debugw("conference joined", "rosterCount", d.pc.Roster.Count())
		prometheus.RecordRosterSize(d.pc.Roster.Count())
		return true, false

	case ParticipantJoinedEvent:
		if e.ID == d.self || !d.pc.Roster.Add(e.ID) {
			return false, false
		}
		d.params.Logger.Debugw("participant joined", "participant", e.ID, "rosterCount", d.pc.Roster.Count())
		prometheus.RecordRosterSize(d.pc.Roster.Count())
		return true, false

	case ParticipantLeftEvent:
		if !d.pc.Roster.Remove(e.ID) {
			return false, false
		}
		d.params.Logger.Debugw("participant left", "participant", e.ID, "rosterCount", d.pc.Roster.Count())
		prometheus.RecordRosterSize(d.pc.Roster.Count())
		return true, false

	case DominantSpeakerChangedEvent:
		if !d.pc.StageView {
			return false, false
		}
		if !d.pc.Stage.Select(e.Primary, e.Fallback) {
			return false, false
		}
		prometheus.RecordStageChange()
		return true, false

	case DataChannelOpenEvent:
		if d.connected.Swap(true) {
			return false, false
		}
		d.params.Logger.Debugw("data channel open", "rosterCount", d.pc.Roster.Count())
		return true, true

	case MediaSessionStartedEvent:
		selected, ok := d.pc.Stage.Selected()
		if !ok || selected != e.ID {
			return false, false
		}
		return true, true

	default:
		d.params.Logger.Warnw("unknown policy event", nil, "event", ev)
		return false, false
	}
}

func (d *Driver) publish(c types.ReceiverConstraints, force bool, onPublished func(types.ReceiverConstraints, bool)) error {
	if err := d.params.Session.SetReceiverConstraints(c); err != nil {
		prometheus.RecordPublishError()
		return &TransportError{Constraints: c, err: err}
	}

	reason := prometheus.PublishReasonChanged
	if force {
		reason = prometheus.PublishReasonForced
	}
	prometheus.RecordConstraintsPublished(reason, c.LastN, c.DefaultMaxHeight)
	d.params.Logger.Debugw("published receiver constraints",
		"lastN", c.LastN,
		"maxHeight", c.DefaultMaxHeight,
		"onStage", c.OnStageSources,
		"force", force,
	)

	if onPublished != nil {
		onPublished(c, force)
	}
	return nil
}

func (d *Driver) Snapshot() Snapshot {
	d.lock.RLock()
	defer d.lock.RUnlock()

	onStage, hasOnStage := d.pc.Stage.Selected()
	last, hasPublished := d.pc.LastPublished()
	return Snapshot{
		RosterCount:   d.pc.Roster.Count(),
		OnStage:       onStage,
		HasOnStage:    hasOnStage,
		Connected:     d.connected.Load(),
		LastPublished: last,
		HasPublished:  hasPublished,
	}
}

// SelectedEndpoints is the set of participants the client would display:
// every remote member in tile view, the on-stage participant in stage view.
func (d *Driver) SelectedEndpoints() []types.ParticipantID {
	d.lock.RLock()
	defer d.lock.RUnlock()

	if !d.pc.StageView {
		return d.pc.Roster.Members()
	}
	if id, ok := d.pc.Stage.Selected(); ok {
		return []types.ParticipantID{id}
	}
	return nil
}
