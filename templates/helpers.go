package templates

import (
	"fmt"
	"strings"

	"living_pages/story"
)

// StandingStatus is how a character's standing is shown: label, color and icon.
type StandingStatus struct {
	Description string
	Color       string
	Icon        string
}

// GetStandingStatus returns the display status for an affinity score.
func GetStandingStatus(affinity int) StandingStatus {
	switch story.StandingFor(affinity) {
	case story.Ally:
		return StandingStatus{"Ally", "#66d9ef", "★"} // Cyan
	case story.Trusted:
		return StandingStatus{"Trusted", "#a6e22e", "♥"} // Lime Green
	case story.Friendly:
		return StandingStatus{"Friendly", "#e6db74", "☺"} // Yellow
	case story.Neutral:
		return StandingStatus{"Neutral", "#75715e", "•"} // Gray
	case story.Unfriendly:
		return StandingStatus{"Unfriendly", "#fd971f", "▲"} // Orange
	default:
		return StandingStatus{"Hostile", "#f92672", "✖"} // Pink/Red
	}
}

// FormatTraits creates a string from a slice of character traits.
func FormatTraits(traits []string) string {
	if len(traits) == 0 {
		return ""
	}
	return strings.Join(traits, ", ")
}

// VignetteStyle generates a CSS style for the vignette effect based on arc progress (0-100).
func VignetteStyle(arcPercent int) string {
	arcPercent = max(0, min(100, arcPercent))
	opacity := float64(arcPercent) / 200.0 // Scale opacity from 0.0 to 0.5
	spread := arcPercent / 2
	blur := arcPercent / 4

	style := fmt.Sprintf(`
		<style>
			#story-container::before {
				content: '';
				position: absolute;
				top: 0;
				left: 0;
				right: 0;
				bottom: 0;
				box-shadow: inset 0 0 %dpx %dpx rgba(0,0,0,%.2f);
				transition: box-shadow 0.5s ease-in-out;
				pointer-events: none;
				border-radius: 8px;
			}
		</style>
	`, blur, spread, opacity)

	return style
}
