package internal

import (
	"context"
	"log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "packtest",
	Short: "packtest verifies that a packaged library is consumable",
	Long: `packtest builds a small consumer program against a packaged library
and, when the host can execute binaries for the target settings, runs the
produced executable to verify the package is consumable.`,
	// Errors are reported once, by Execute; a failed build is not a
	// usage mistake.
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		log.Fatal(err)
	}
}
