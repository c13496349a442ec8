package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doistemposcafe/totem/internal/config"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove the stored session file",
	Long: `Remove the session file and its lock file.

Equivalent to logout, plus cleaning up the lock file the credential
store keeps next to it. Useful when the file was damaged by hand.

Examples:
  # Reset with confirmation
  totem reset

  # Reset without prompting
  totem reset --force`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetForce, "force", false, "Skip confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	// Resolve session file path the same way buildDeps does.
	sessionPath := sessionFilePath
	if sessionPath == "" {
		sessionPath = os.Getenv("TOTEM_SESSION_PATH")
	}
	if sessionPath == "" {
		cfg, err := config.LoadConfigRaw()
		if err != nil {
			return err
		}
		sessionPath = cfg.Session.Path
	}

	targets := []string{sessionPath, sessionPath + ".lock"}

	var existing []string
	for _, t := range targets {
		if _, err := os.Stat(t); err == nil {
			existing = append(existing, t)
		}
	}
	if len(existing) == 0 {
		fmt.Fprintln(os.Stderr, "Nothing to reset — no session files found.")
		return nil
	}

	fmt.Fprintln(os.Stderr, "The following will be removed:")
	for _, t := range existing {
		fmt.Fprintf(os.Stderr, "  - %s\n", t)
	}

	if !resetForce {
		fmt.Fprint(os.Stderr, "\nProceed? [y/N] ")
		var answer string
		fmt.Scanln(&answer) //nolint:errcheck // interactive prompt, error irrelevant
		if answer != "y" && answer != "Y" {
			fmt.Fprintln(os.Stderr, "Aborted.")
			return nil
		}
	}

	var failures int
	for _, t := range existing {
		if err := os.Remove(t); err != nil {
			fmt.Fprintf(os.Stderr, "  ERROR removing %s: %v\n", t, err)
			failures++
		} else {
			fmt.Fprintf(os.Stderr, "  Removed %s\n", t)
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d file(s) could not be removed", failures)
	}

	fmt.Fprintln(os.Stderr, "\nReset complete.")
	return nil
}
