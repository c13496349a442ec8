package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	Long: `Remove the stored token and cached user record.

Logging out without a session is a no-op; running it twice leaves the
same state as running it once.`,
	RunE: runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	d, err := buildDeps()
	if err != nil {
		return err
	}
	if err := d.sessions.Logout(); err != nil {
		return err
	}
	fmt.Println("Signed out.")
	return nil
}
