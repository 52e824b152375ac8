package story

// Standing is how a character regards the player, derived from affinity.
type Standing int

const (
	Hostile Standing = iota - 2
	Unfriendly
	Neutral
	Friendly
	Trusted
	Ally
)

const (
	MinAffinity = -10
	MaxAffinity = 10
)

// StandingFor maps an affinity score to its standing. Scores outside
// [MinAffinity, MaxAffinity] map to the nearest end of the scale.
func StandingFor(affinity int) Standing {
	switch {
	case affinity <= -7:
		return Hostile
	case affinity <= -3:
		return Unfriendly
	case affinity <= 2:
		return Neutral
	case affinity <= 6:
		return Friendly
	case affinity <= 9:
		return Trusted
	default:
		return Ally
	}
}

func (s Standing) String() string {
	switch s {
	case Hostile:
		return "HOSTILE"
	case Unfriendly:
		return "UNFRIENDLY"
	case Neutral:
		return "NEUTRAL"
	case Friendly:
		return "FRIENDLY"
	case Trusted:
		return "TRUSTED"
	case Ally:
		return "ALLY"
	default:
		return "UNKNOWN"
	}
}

func clampAffinity(v int) int {
	if v < MinAffinity {
		return MinAffinity
	}
	if v > MaxAffinity {
		return MaxAffinity
	}
	return v
}
