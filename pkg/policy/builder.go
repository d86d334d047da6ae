package policy

import (
	"github.com/jitsi/jitsi-meet-load-test/pkg/lastn"
	"github.com/jitsi/jitsi-meet-load-test/pkg/policy/types"
)

// HeightConfig is the default max frame height per layout. Tile view picks
// High up to HighMaxParticipants, Medium up to MediumMaxParticipants, else Low.
type HeightConfig struct {
	High                  int32 `yaml:"high,omitempty"`
	Medium                int32 `yaml:"medium,omitempty"`
	Low                   int32 `yaml:"low,omitempty"`
	Stage                 int32 `yaml:"stage,omitempty"`
	HighMaxParticipants   int   `yaml:"high_max_participants,omitempty"`
	MediumMaxParticipants int   `yaml:"medium_max_participants,omitempty"`
}

var DefaultHeightConfig = HeightConfig{
	High:                  720,
	Medium:                360,
	Low:                   180,
	Stage:                 2160,
	HighMaxParticipants:   2,
	MediumMaxParticipants: 4,
}

func (h HeightConfig) MaxHeight(stageView bool, rosterCount int) int32 {
	if stageView {
		return h.Stage
	}

	switch {
	case rosterCount <= h.HighMaxParticipants:
		return h.High
	case rosterCount <= h.MediumMaxParticipants:
		return h.Medium
	default:
		return h.Low
	}
}

type VideoSourceResolver interface {
	GetActiveVideoSourceID(id types.ParticipantID) (string, bool)
}

type BuilderParams struct {
	ConfiguredLastN int32
	LastNTiers      []lastn.Tier
	Heights         HeightConfig
	Sources         VideoSourceResolver
}

// Builder assembles receiver constraints from a PolicyContext and decides
// whether they need to be published.
type Builder struct {
	params BuilderParams
}

func NewBuilder(params BuilderParams) *Builder {
	return &Builder{
		params: params,
	}
}

func (b *Builder) Compute(pc *PolicyContext) types.ReceiverConstraints {
	count := pc.Roster.Count()
	c := types.ReceiverConstraints{
		LastN:            lastn.ComputeLastN(b.params.ConfiguredLastN, count, b.params.LastNTiers),
		DefaultMaxHeight: b.params.Heights.MaxHeight(pc.StageView, count),
		OnStageSources:   []string{},
	}

	if id, ok := pc.Stage.Selected(); ok && b.params.Sources != nil {
		if source, ok := b.params.Sources.GetActiveVideoSourceID(id); ok {
			c.OnStageSources = append(c.OnStageSources, source)
		}
	}
	return c
}

// Build returns the freshly computed constraints and true when they should be
// published: when forced, when nothing was published yet, or when any field
// differs from the last published value. The caller records what it publishes.
func (b *Builder) Build(pc *PolicyContext, force bool) (types.ReceiverConstraints, bool) {
	c := b.Compute(pc)
	if force {
		return c, true
	}

	last, ok := pc.LastPublished()
	if !ok || !last.Equal(c) {
		return c, true
	}
	return c, false
}
