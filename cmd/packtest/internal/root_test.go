package internal

import "testing"

func TestRootReportsErrorsOnce(t *testing.T) {
	// Execute prints the error itself; cobra must not print it again
	// or dump usage for a failed build.
	if !rootCmd.SilenceErrors {
		t.Error("rootCmd.SilenceErrors = false, want true")
	}
	if !rootCmd.SilenceUsage {
		t.Error("rootCmd.SilenceUsage = false, want true")
	}
}
