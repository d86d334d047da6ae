package lastn

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

// Unlimited is the lastN value that requests video from every remote participant.
const Unlimited int32 = -1

var (
	ErrConfiguration = errors.New("invalid lastN configuration")
)

// Tier applies LastN while the roster count is at most MaxParticipants.
// A tier with MaxParticipants == 0 has no upper bound and must be the last entry.
type Tier struct {
	MaxParticipants int   `yaml:"max_participants,omitempty"`
	LastN           int32 `yaml:"last_n,omitempty"`
}

func (t Tier) IsCatchAll() bool {
	return t.MaxParticipants == 0
}

// ValidateTiers checks that thresholds are strictly ascending and that at most one
// catch-all tier exists, in last position. Errors wrap ErrConfiguration.
func ValidateTiers(tiers []Tier) error {
	prev := 0
	for i, t := range tiers {
		if t.LastN < Unlimited {
			return pkgerrors.Wrapf(ErrConfiguration, "tier %d: last_n %d below %d", i, t.LastN, Unlimited)
		}
		if t.MaxParticipants < 0 {
			return pkgerrors.Wrapf(ErrConfiguration, "tier %d: negative max_participants %d", i, t.MaxParticipants)
		}
		if t.IsCatchAll() {
			if i != len(tiers)-1 {
				return pkgerrors.Wrapf(ErrConfiguration, "tier %d: catch-all tier must be last", i)
			}
			continue
		}
		if i > 0 && t.MaxParticipants == prev {
			return pkgerrors.Wrapf(ErrConfiguration, "tier %d: duplicate max_participants %d", i, t.MaxParticipants)
		}
		if t.MaxParticipants < prev {
			return pkgerrors.Wrapf(ErrConfiguration, "tier %d: max_participants %d not ascending (previous %d)", i, t.MaxParticipants, prev)
		}
		prev = t.MaxParticipants
	}
	return nil
}

// TieredLimit returns the limit of the smallest tier covering rosterCount,
// falling back to the catch-all tier.
func TieredLimit(rosterCount int, tiers []Tier) (int32, bool) {
	for _, t := range tiers {
		if t.IsCatchAll() {
			return t.LastN, true
		}
		if t.MaxParticipants >= rosterCount {
			return t.LastN, true
		}
	}
	return 0, false
}

// ComputeLastN merges the configured cap with the tiered limit for rosterCount.
// tiers must have passed ValidateTiers.
func ComputeLastN(configuredCap int32, rosterCount int, tiers []Tier) int32 {
	tiered, ok := TieredLimit(rosterCount, tiers)
	if !ok {
		return configuredCap
	}

	if configuredCap == Unlimited {
		return tiered
	}
	return min(configuredCap, tiered)
}
