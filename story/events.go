package story

// InteractionType tags what a character does to the player in an interaction.
type InteractionType string

const (
	Challenge InteractionType = "challenge"
	Threat    InteractionType = "threat"
	Warning   InteractionType = "warning"
	Observe   InteractionType = "observe"
	Question  InteractionType = "question"
	Comment   InteractionType = "comment"
	Help      InteractionType = "help"
	Advice    InteractionType = "advice"
	Gift      InteractionType = "gift"
)

var (
	hostileInteractions  = []InteractionType{Challenge, Threat, Warning}
	neutralInteractions  = []InteractionType{Observe, Question, Comment}
	friendlyInteractions = []InteractionType{Help, Advice, Gift}
)

// Chances of each random branch in a turn.
const (
	eventChance       = 0.4
	interactionChance = 0.6
	discoveryChance   = 0.2
)

// TraitVocabulary is the pool traits are drawn from for newly discovered characters.
var TraitVocabulary = []string{"mysterious", "friendly", "suspicious", "wise", "playful", "serious", "eccentric"}

// InteractionsFor returns the interaction tags available for a standing.
func InteractionsFor(s Standing) []InteractionType {
	switch s {
	case Hostile, Unfriendly:
		return hostileInteractions
	case Neutral:
		return neutralInteractions
	default:
		return friendlyInteractions
	}
}

// Delta is the affinity change an interaction causes. Warnings and the
// neutral tags leave the relationship unchanged.
func (t InteractionType) Delta() int {
	switch t {
	case Help, Advice, Gift:
		return 1
	case Threat, Challenge:
		return -1
	default:
		return 0
	}
}

// Pacing hints fed to the continuation request.
const (
	HintCalm    = "The world feels calm, but something bigger is stirring."
	HintRising  = "You sense unseen forces nudging you toward a hidden truth."
	HintClimax  = "The climax draws near, every choice feels heavy with consequence."
	risingStart = 3
	climaxStart = 6
)

// PacingHint maps arc progress to an advisory hint.
func PacingHint(arcProgress int) string {
	switch {
	case arcProgress < risingStart:
		return HintCalm
	case arcProgress < climaxStart:
		return HintRising
	default:
		return HintClimax
	}
}

// sampleTraits draws 2 to 4 distinct traits from the vocabulary.
func sampleTraits(rng Rand) []string {
	pool := append([]string(nil), TraitVocabulary...)
	k := 2 + rng.Intn(3)
	for i := 0; i < k; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
