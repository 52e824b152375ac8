package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"living_pages/session"
	"living_pages/story"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var resumeID string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the story in your terminal",
	Long: `Play an interactive story in the terminal.

Pick a numbered action or type your own; a number with no matching
choice is played as written. Type "restart" to start over and "quit"
to leave. The session ID is printed on exit so the story can be
picked up again with --resume.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().StringVar(&resumeID, "resume", "", "Session ID to continue")
}

var (
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F780FF")).Bold(true)
	actionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BE9FD")).Bold(true)
	twistStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB86C")).Italic(true)
	storyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#E9E9F4"))
	choiceStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B"))
	characterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4")).Italic(true)
)

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.shutdown()

	id, err := playLoop(ctx, os.Stdin, os.Stdout, a.engine, a.manager, resumeID)
	if id != "" {
		fmt.Println(characterStyle.Render("Session: " + id))
	}
	return err
}

// playLoop runs the terminal game until the input ends or the player quits.
// It returns the session ID that was played.
func playLoop(ctx context.Context, in io.Reader, out io.Writer, engine *story.Engine, manager *session.Manager, id string) (string, error) {
	id, s, err := manager.GetOrCreate(ctx, id)
	if err != nil {
		return "", err
	}

	fmt.Fprintln(out, titleStyle.Render("Living Pages"))
	fmt.Fprintln(out)
	fmt.Fprintln(out, storyStyle.Render(s.Transcript()))

	scanner := bufio.NewScanner(in)
	for {
		choices, err := offerChoices(ctx, out, engine, manager, id)
		if err != nil {
			return id, err
		}

		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return id, scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(input) {
		case "":
			continue
		case "quit", "exit":
			return id, nil
		case "restart":
			s, err := manager.Reset(ctx, id)
			if err != nil {
				return id, err
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, storyStyle.Render(s.Transcript()))
			continue
		}

		// Numbers outside the offered range are played as typed.
		action := input
		if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(choices) {
			action = choices[n-1]
		}

		var turn story.TurnResult
		err = manager.Update(ctx, id, func(s *story.Session) error {
			var err error
			turn, err = engine.Advance(ctx, s, action)
			return err
		})
		if errors.Is(err, story.ErrEmptyAction) {
			continue
		}
		if err != nil {
			return id, err
		}
		printTurn(out, turn)
	}
}

func offerChoices(ctx context.Context, out io.Writer, engine *story.Engine, manager *session.Manager, id string) ([]string, error) {
	var (
		choices    []string
		characters []story.CharacterView
	)
	err := manager.Update(ctx, id, func(s *story.Session) error {
		engine.Suggestions(ctx, s)
		choices = s.ActionChoices()
		characters = s.Snapshot().Characters
		return nil
	})
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(out)
	for _, c := range characters {
		if c.Mentioned {
			fmt.Fprintln(out, characterStyle.Render(fmt.Sprintf("%s: %s (%d)", c.Name, c.Standing, c.Affinity)))
		}
	}
	for i, c := range choices {
		fmt.Fprintln(out, choiceStyle.Render(fmt.Sprintf("%d. %s", i+1, c)))
	}
	return choices, nil
}

func printTurn(out io.Writer, turn story.TurnResult) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, actionStyle.Render("> "+turn.Action))
	if turn.Twist != "" {
		fmt.Fprintln(out, twistStyle.Render(turn.Twist))
	}
	fmt.Fprintln(out, storyStyle.Render(turn.Continuation))
}
