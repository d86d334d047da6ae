package stageview

import (
	"github.com/livekit/protocol/logger"

	"github.com/jitsi/jitsi-meet-load-test/pkg/policy/types"
)

type SelectorParams struct {
	Self types.ParticipantID
	// reports whether id is currently a remote roster member
	IsMember func(id types.ParticipantID) bool
	Logger   logger.Logger
}

// Selector tracks the on-stage participant of a stage view client.
// It starts unselected and only moves on dominant speaker changes;
// a selected participant leaving the roster is not cleared.
type Selector struct {
	params SelectorParams

	selected    types.ParticipantID
	hasSelected bool
}

func NewSelector(params SelectorParams) *Selector {
	if params.Logger == nil {
		params.Logger = logger.GetLogger()
	}
	return &Selector{
		params: params,
	}
}

func (s *Selector) Selected() (types.ParticipantID, bool) {
	return s.selected, s.hasSelected
}

func (s *Selector) IsEligible(id types.ParticipantID) bool {
	if id == "" || id == s.params.Self {
		return false
	}
	return s.params.IsMember != nil && s.params.IsMember(id)
}

// Select applies a dominant speaker change and returns true when the on-stage
// participant changed. primary wins if eligible, otherwise the first eligible
// entry of fallback (most recent first).
func (s *Selector) Select(primary types.ParticipantID, fallback []types.ParticipantID) bool {
	candidate, ok := s.candidate(primary, fallback)
	if !ok {
		s.params.Logger.Debugw("no eligible stage view candidate", "primary", primary, "fallback", fallback)
		return false
	}

	if s.hasSelected && candidate == s.selected {
		return false
	}

	s.params.Logger.Debugw("stage view participant changed", "from", s.selected, "to", candidate)
	s.selected = candidate
	s.hasSelected = true
	return true
}

func (s *Selector) candidate(primary types.ParticipantID, fallback []types.ParticipantID) (types.ParticipantID, bool) {
	if s.IsEligible(primary) {
		return primary, true
	}
	for _, id := range fallback {
		if s.IsEligible(id) {
			return id, true
		}
	}
	return "", false
}
