package story

import "strings"

const (
	OpeningLine      = "You awaken in a quiet village at dawn..."
	FallbackContinue = "The story continues smoothly..."
	maxActionChoices = 4
)

// DefaultSuggestions is used whenever suggestions cannot be generated.
var DefaultSuggestions = []string{"Look around", "Search the area", "Continue forward"}

// World holds static scene information shown alongside the story.
type World struct {
	Locations       []string
	CurrentLocation string
	TimeOfDay       string
}

type seedCharacter struct {
	name        string
	description string
	traits      []string
	delta       int
}

var seedCharacters = []seedCharacter{
	{"Old Man Jenkins", "An elderly villager with a long white beard and kind eyes.", []string{"wise", "friendly", "knowledgeable"}, 2},
	{"Captain Rourke", "The grizzled captain of the village guard, always on the lookout for trouble.", []string{"brave", "suspicious", "dutiful"}, -1},
	{"Mysterious Stranger", "A hooded figure who watches from the shadows.", []string{"mysterious", "elusive", "dangerous"}, -3},
}

// Session is the whole state of one story. It is owned by a single caller
// and mutated only through Engine.Advance.
type Session struct {
	segments    []string
	choices     []string
	arcProgress int
	roster      *Roster
	suggestions []string
	world       World
}

// NewSession returns a fresh story with the seed characters in place.
func NewSession() *Session {
	s := &Session{
		segments: []string{OpeningLine},
		roster:   NewRoster(),
		world: World{
			Locations:       []string{"Village Square", "Dark Forest", "Mystic Caverns", "Abandoned Tower"},
			CurrentLocation: "Village Square",
			TimeOfDay:       "morning",
		},
	}
	for _, sc := range seedCharacters {
		s.roster.Add(sc.name, sc.description, sc.traits)
		s.roster.ApplyDelta(sc.name, sc.delta)
	}
	return s
}

// Transcript is the full story text so far.
func (s *Session) Transcript() string { return strings.Join(s.segments, "") }

// Segments returns the transcript pieces in the order they were appended.
func (s *Session) Segments() []string { return append([]string(nil), s.segments...) }

func (s *Session) Choices() []string { return append([]string(nil), s.choices...) }

func (s *Session) ArcProgress() int { return s.arcProgress }

// ArcPercent is the arc progress on a 0-100 scale.
func (s *Session) ArcPercent() int {
	return min(100, s.arcProgress*10)
}

func (s *Session) Roster() *Roster { return s.roster }

func (s *Session) World() World { return s.world }

// Suggestions returns the cached suggested actions, if any.
func (s *Session) Suggestions() []string { return append([]string(nil), s.suggestions...) }

// ActionChoices is what the player is offered: the most recent choices
// followed by the suggestions, capped at four.
func (s *Session) ActionChoices() []string {
	recent := s.choices
	if len(recent) > maxActionChoices {
		recent = recent[len(recent)-maxActionChoices:]
	}
	out := append(append([]string(nil), recent...), s.suggestions...)
	if len(out) > maxActionChoices {
		out = out[:maxActionChoices]
	}
	return out
}

func (s *Session) append(segment string) {
	s.segments = append(s.segments, segment)
}

// CharacterView is a read-only snapshot of a character for display.
type CharacterView struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Standing        string   `json:"relationship"`
	Affinity        int      `json:"relationship_points"`
	Traits          []string `json:"traits"`
	Mentioned       bool     `json:"mentioned"`
	LastInteraction string   `json:"last_interaction"`
}

// Snapshot is what the presentation layer renders.
type Snapshot struct {
	Transcript  string          `json:"story"`
	Choices     []string        `json:"choices"`
	ArcProgress int             `json:"arc_progress"`
	ArcPercent  int             `json:"arc_percent"`
	Characters  []CharacterView `json:"characters"`
	Location    string          `json:"current_location"`
	TimeOfDay   string          `json:"time_of_day"`
}

func (s *Session) Snapshot() Snapshot {
	transcript := s.Transcript()
	views := make([]CharacterView, 0, s.roster.Len())
	for _, c := range s.roster.All() {
		views = append(views, CharacterView{
			Name:            c.Name,
			Description:     c.Description,
			Standing:        c.Standing().String(),
			Affinity:        c.Affinity(),
			Traits:          append([]string(nil), c.Traits...),
			Mentioned:       c.MentionedIn(transcript),
			LastInteraction: c.LastInteraction,
		})
	}
	return Snapshot{
		Transcript:  transcript,
		Choices:     s.Choices(),
		ArcProgress: s.arcProgress,
		ArcPercent:  s.ArcPercent(),
		Characters:  views,
		Location:    s.world.CurrentLocation,
		TimeOfDay:   s.world.TimeOfDay,
	}
}
