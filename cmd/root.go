package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "living_pages",
	Short: "Living Pages - an AI-driven interactive story",
	Long: `Living Pages tells a branching story that reacts to what you type.

Characters remember how you treat them, twists interrupt the plot, and the
story builds toward a climax the longer you play. Run it as a web server
with "serve" or in your terminal with "play".`,
}

// Execute runs the root command
func Execute() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
