package templates

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"living_pages/story"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

var markdown = goldmark.New(goldmark.WithRendererOptions(html.WithHardWraps()))

// RenderMarkdown converts transcript markdown to HTML. Raw HTML in the
// source is omitted.
func RenderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

const pageHead = `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8">
	<meta name="viewport" content="width=device-width, initial-scale=1">
	<title>%s</title>
	<script src="https://unpkg.com/htmx.org@1.9.12"></script>
	<style>
		body { background: #1e1e1e; color: #f8f8f2; font-family: Georgia, serif; margin: 0; }
		main { display: flex; gap: 24px; max-width: 1100px; margin: 0 auto; padding: 24px; }
		#story-container { position: relative; flex: 3; padding: 16px; background: #272822; border-radius: 8px; }
		#roster { flex: 1; }
		blockquote { border-left: 3px solid #66d9ef; margin: 12px 0; padding-left: 12px; color: #66d9ef; }
		.choices button { margin: 4px; }
		.character { margin-bottom: 12px; }
		.unmet { opacity: 0.5; }
		.arc { height: 6px; background: #3e3d32; border-radius: 3px; }
		.arc div { height: 6px; background: #f92672; border-radius: 3px; }
	</style>
</head>
<body>
`

// Index is the full page. The story itself is loaded with /start.
func Index(title string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, pageHead, templ.EscapeString(title)); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, `<h1 style="text-align:center">%s</h1>
<main hx-post="/start" hx-trigger="load" hx-swap="innerHTML"><p>Loading your story...</p></main>
</body>
</html>
`, templ.EscapeString(title))
		return err
	})
}

// StoryView renders the story panel and the character roster.
func StoryView(snap story.Snapshot, choices []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		body, err := RenderMarkdown(snap.Transcript)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, VignetteStyle(snap.ArcPercent)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<section id="story-container">
<div class="arc" title="Story arc"><div style="width:%d%%"></div></div>
<p><small>%s, %s</small></p>
<div id="story">%s</div>
`, snap.ArcPercent, templ.EscapeString(snap.Location), templ.EscapeString(snap.TimeOfDay), body); err != nil {
			return err
		}
		if err := Choices(choices).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<form hx-post="/generate" hx-target="main" hx-swap="innerHTML">
<input type="text" name="prompt" placeholder="What do you do? (or 'restart')" autocomplete="off" autofocus>
<button type="submit">Act</button>
<a href="/download">Download story</a>
</form>
</section>
`); err != nil {
			return err
		}
		return Roster(snap.Characters).Render(ctx, w)
	})
}

// Choices renders one button per suggested action.
func Choices(choices []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(choices) == 0 {
			return nil
		}
		if _, err := io.WriteString(w, `<div class="choices">`); err != nil {
			return err
		}
		for _, c := range choices {
			vals, err := json.Marshal(map[string]string{"prompt": c})
			if err != nil {
				return fmt.Errorf("encode choice: %w", err)
			}
			if _, err := fmt.Fprintf(w, `<button hx-post="/generate" hx-vals="%s" hx-target="main" hx-swap="innerHTML">%s</button>`,
				templ.EscapeString(string(vals)), templ.EscapeString(c)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</div>\n")
		return err
	})
}

// Roster renders the character sidebar. Characters not yet in the story
// are shown dimmed.
func Roster(characters []story.CharacterView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<aside id="roster"><h2>Characters</h2>`); err != nil {
			return err
		}
		for _, c := range characters {
			status := GetStandingStatus(c.Affinity)
			class := "character"
			met := ""
			if !c.Mentioned {
				class += " unmet"
				met = " <em>(not yet met)</em>"
			}
			last := ""
			if c.LastInteraction != "" {
				last = fmt.Sprintf("<br><small>Last interaction: %s</small>", templ.EscapeString(c.LastInteraction))
			}
			if _, err := fmt.Fprintf(w, `<div class="%s"><strong>%s</strong>%s<br><span style="color:%s">%s %s (%d)</span><br><small>%s</small><br><small>%s</small>%s</div>`,
				class,
				templ.EscapeString(c.Name), met,
				status.Color, status.Icon, status.Description, c.Affinity,
				templ.EscapeString(c.Description),
				templ.EscapeString(FormatTraits(c.Traits)),
				last,
			); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</aside>\n")
		return err
	})
}
