package story

// State is the persisted form of a Session.
type State struct {
	Segments    []string         `json:"segments"`
	Choices     []string         `json:"choices"`
	ArcProgress int              `json:"arc_progress"`
	Characters  []CharacterState `json:"characters"`
	Suggestions []string         `json:"suggestions,omitempty"`
	World       WorldState       `json:"world"`
}

// CharacterState stores a character's affinity. Standing is not stored;
// it is derived again on restore.
type CharacterState struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Traits          []string `json:"traits"`
	Affinity        int      `json:"relationship_points"`
	LastInteraction string   `json:"last_interaction,omitempty"`
}

// WorldState is the static scene information.
type WorldState struct {
	Locations       []string `json:"locations"`
	CurrentLocation string   `json:"current_location"`
	TimeOfDay       string   `json:"time_of_day"`
}

// State captures the session for persistence.
func (s *Session) State() State {
	st := State{
		Segments:    s.Segments(),
		Choices:     s.Choices(),
		ArcProgress: s.arcProgress,
		Suggestions: s.Suggestions(),
		World: WorldState{
			Locations:       append([]string(nil), s.world.Locations...),
			CurrentLocation: s.world.CurrentLocation,
			TimeOfDay:       s.world.TimeOfDay,
		},
	}
	for _, c := range s.roster.All() {
		st.Characters = append(st.Characters, CharacterState{
			Name:            c.Name,
			Description:     c.Description,
			Traits:          append([]string(nil), c.Traits...),
			Affinity:        c.Affinity(),
			LastInteraction: c.LastInteraction,
		})
	}
	return st
}

// Restore rebuilds a session from its persisted state. Affinities are
// clamped into range and arc progress cannot be negative.
func Restore(st State) *Session {
	s := &Session{
		segments:    append([]string(nil), st.Segments...),
		choices:     append([]string(nil), st.Choices...),
		arcProgress: max(0, st.ArcProgress),
		roster:      NewRoster(),
		suggestions: append([]string(nil), st.Suggestions...),
		world: World{
			Locations:       append([]string(nil), st.World.Locations...),
			CurrentLocation: st.World.CurrentLocation,
			TimeOfDay:       st.World.TimeOfDay,
		},
	}
	if len(s.segments) == 0 {
		s.segments = []string{OpeningLine}
	}
	for _, cs := range st.Characters {
		if !s.roster.Add(cs.Name, cs.Description, cs.Traits) {
			continue
		}
		c, _ := s.roster.Get(cs.Name)
		c.ApplyDelta(cs.Affinity)
		c.LastInteraction = cs.LastInteraction
	}
	return s
}
