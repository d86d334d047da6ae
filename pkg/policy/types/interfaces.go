package types

import (
	"fmt"
	"slices"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

type ParticipantID string

func (p ParticipantID) String() string {
	return string(p)
}

// ReceiverConstraints is the preference a client declares to the bridge.
type ReceiverConstraints struct {
	// -1 means unlimited
	LastN            int32
	DefaultMaxHeight int32
	// at most one source
	OnStageSources []string
}

func (r ReceiverConstraints) Equal(other ReceiverConstraints) bool {
	return r.LastN == other.LastN &&
		r.DefaultMaxHeight == other.DefaultMaxHeight &&
		slices.Equal(r.OnStageSources, other.OnStageSources)
}

func (r ReceiverConstraints) Clone() ReceiverConstraints {
	return ReceiverConstraints{
		LastN:            r.LastN,
		DefaultMaxHeight: r.DefaultMaxHeight,
		OnStageSources:   slices.Clone(r.OnStageSources),
	}
}

func (r ReceiverConstraints) String() string {
	return fmt.Sprintf("ReceiverConstraints{lastN: %d, maxHeight: %d, onStage: %v}", r.LastN, r.DefaultMaxHeight, r.OnStageSources)
}

type DominantSpeakerHandler func(primary ParticipantID, fallback []ParticipantID)

// ConferenceSession is the transport-side conference the policy reports to.
// Handlers may be invoked from any goroutine and must not block.
//
//counterfeiter:generate . ConferenceSession
type ConferenceSession interface {
	LocalParticipantID() ParticipantID
	// includes the local participant
	GetParticipantCount() int
	// remote participants only
	GetParticipantIDs() []ParticipantID
	GetActiveVideoSourceID(id ParticipantID) (string, bool)
	SetReceiverConstraints(constraints ReceiverConstraints) error

	OnConferenceJoined(f func())
	OnDominantSpeakerChanged(f DominantSpeakerHandler)
	OnParticipantJoined(f func(id ParticipantID))
	OnParticipantLeft(f func(id ParticipantID))
	OnDataChannelOpen(f func())
	OnMediaSessionStarted(f func(id ParticipantID))
}
