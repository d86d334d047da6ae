package policy

import (
	"github.com/jitsi/jitsi-meet-load-test/pkg/policy/types"
)

type EventType string

const (
	EventTypeConferenceJoined       EventType = "conference_joined"
	EventTypeParticipantJoined      EventType = "participant_joined"
	EventTypeParticipantLeft        EventType = "participant_left"
	EventTypeDominantSpeakerChanged EventType = "dominant_speaker_changed"
	EventTypeDataChannelOpen        EventType = "data_channel_open"
	EventTypeMediaSessionStarted    EventType = "media_session_started"
)

// Event is one input of the driver's event loop.
type Event interface {
	Type() EventType
}

type ConferenceJoinedEvent struct{}

func (ConferenceJoinedEvent) Type() EventType { return EventTypeConferenceJoined }

type ParticipantJoinedEvent struct {
	ID types.ParticipantID
}

func (ParticipantJoinedEvent) Type() EventType { return EventTypeParticipantJoined }

type ParticipantLeftEvent struct {
	ID types.ParticipantID
}

func (ParticipantLeftEvent) Type() EventType { return EventTypeParticipantLeft }

type DominantSpeakerChangedEvent struct {
	Primary types.ParticipantID
	// previous dominant speakers, most recent first
	Fallback []types.ParticipantID
}

func (DominantSpeakerChangedEvent) Type() EventType { return EventTypeDominantSpeakerChanged }

type DataChannelOpenEvent struct{}

func (DataChannelOpenEvent) Type() EventType { return EventTypeDataChannelOpen }

type MediaSessionStartedEvent struct {
	ID types.ParticipantID
}

func (MediaSessionStartedEvent) Type() EventType { return EventTypeMediaSessionStarted }
