package policy

import (
	"slices"

	"github.com/livekit/protocol/logger"

	"github.com/jitsi/jitsi-meet-load-test/pkg/policy/types"
	"github.com/jitsi/jitsi-meet-load-test/pkg/stageview"
)

// RosterState holds the remote members of the conference. The local
// participant is implicit, so Count is always len(members)+1.
type RosterState struct {
	members map[types.ParticipantID]struct{}
}

func NewRosterState() RosterState {
	return RosterState{
		members: make(map[types.ParticipantID]struct{}),
	}
}

func (r *RosterState) Count() int {
	return len(r.members) + 1
}

func (r *RosterState) IsMember(id types.ParticipantID) bool {
	_, ok := r.members[id]
	return ok
}

// Add returns false when id was already a member.
func (r *RosterState) Add(id types.ParticipantID) bool {
	if r.IsMember(id) {
		return false
	}
	r.members[id] = struct{}{}
	return true
}

// Remove returns false when id was not a member.
func (r *RosterState) Remove(id types.ParticipantID) bool {
	if !r.IsMember(id) {
		return false
	}
	delete(r.members, id)
	return true
}

func (r *RosterState) Reset(ids []types.ParticipantID) {
	r.members = make(map[types.ParticipantID]struct{}, len(ids))
	for _, id := range ids {
		r.members[id] = struct{}{}
	}
}

// Members returns the member ids in sorted order.
func (r *RosterState) Members() []types.ParticipantID {
	ids := make([]types.ParticipantID, 0, len(r.members))
	for id := range r.members {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// PolicyContext is the mutable state of one client's policy. It is owned by a
// single Driver and never shared.
type PolicyContext struct {
	Roster    RosterState
	Stage     *stageview.Selector
	StageView bool

	lastPublished *types.ReceiverConstraints
}

func NewPolicyContext(self types.ParticipantID, stageView bool, logger logger.Logger) *PolicyContext {
	pc := &PolicyContext{
		Roster:    NewRosterState(),
		StageView: stageView,
	}
	pc.Stage = stageview.NewSelector(stageview.SelectorParams{
		Self:     self,
		IsMember: pc.Roster.IsMember,
		Logger:   logger,
	})
	return pc
}

func (pc *PolicyContext) LastPublished() (types.ReceiverConstraints, bool) {
	if pc.lastPublished == nil {
		return types.ReceiverConstraints{}, false
	}
	return pc.lastPublished.Clone(), true
}

func (pc *PolicyContext) SetLastPublished(c types.ReceiverConstraints) {
	c = c.Clone()
	pc.lastPublished = &c
}
