package story

import "strings"

// Character is a named figure the player can meet.
type Character struct {
	Name            string
	Description     string
	Traits          []string
	LastInteraction string

	affinity int
}

// NewCharacter returns a neutral character with the given flavor metadata.
func NewCharacter(name, description string, traits []string) *Character {
	return &Character{
		Name:        name,
		Description: description,
		Traits:      append([]string(nil), traits...),
	}
}

// Affinity is the character's score in [MinAffinity, MaxAffinity].
func (c *Character) Affinity() int { return c.affinity }

// Standing is always derived from the current affinity.
func (c *Character) Standing() Standing { return StandingFor(c.affinity) }

// ApplyDelta shifts affinity by delta, clamped to the valid range.
func (c *Character) ApplyDelta(delta int) {
	c.affinity = clampAffinity(c.affinity + delta)
}

// MentionedIn reports whether the character's name appears in text, ignoring case.
func (c *Character) MentionedIn(text string) bool {
	if c.Name == "" {
		return false
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(c.Name))
}

// Roster keeps characters in insertion order, keyed by unique name, and
// tracks how each of them regards the player.
type Roster struct {
	order []string
	byKey map[string]*Character
}

func NewRoster() *Roster {
	return &Roster{byKey: make(map[string]*Character)}
}

// Add creates a character. It returns false if the name is already taken.
func (r *Roster) Add(name, description string, traits []string) bool {
	if _, ok := r.byKey[name]; ok {
		return false
	}
	r.byKey[name] = NewCharacter(name, description, traits)
	r.order = append(r.order, name)
	return true
}

func (r *Roster) Get(name string) (*Character, bool) {
	c, ok := r.byKey[name]
	return c, ok
}

func (r *Roster) Has(name string) bool {
	_, ok := r.byKey[name]
	return ok
}

// ApplyDelta adjusts the named character's affinity. Unknown names are ignored.
func (r *Roster) ApplyDelta(name string, delta int) bool {
	c, ok := r.byKey[name]
	if !ok {
		return false
	}
	c.ApplyDelta(delta)
	return true
}

// All returns the characters in the order they were added.
func (r *Roster) All() []*Character {
	out := make([]*Character, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byKey[name])
	}
	return out
}

// Mentioned returns the characters whose names occur in the transcript.
func (r *Roster) Mentioned(transcript string) []*Character {
	var out []*Character
	for _, c := range r.All() {
		if c.MentionedIn(transcript) {
			out = append(out, c)
		}
	}
	return out
}

func (r *Roster) Len() int { return len(r.order) }
