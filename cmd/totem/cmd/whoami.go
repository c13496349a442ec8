package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Long: `Show the identity, roles, and expiry of the stored session.

An expired or corrupt stored token is purged during this check, the
same way any other status check purges it.`,
	RunE: runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	d, err := buildDeps()
	if err != nil {
		return err
	}

	sess, ok := d.sessions.Current()
	if !ok {
		fmt.Println("Not signed in.")
		return nil
	}

	role, roleOK := d.sessions.MainRole()
	if !roleOK {
		role = "(none)"
	}

	fmt.Printf("Subject: %s\n", sess.Subject)
	fmt.Printf("Roles:   %s\n", formatRoles(sess.Roles))
	fmt.Printf("Main:    %s\n", role)
	if !sess.IssuedAt.IsZero() {
		fmt.Printf("Issued:  %s\n", sess.IssuedAt.Format("2006-01-02 15:04:05 MST"))
	}
	if !sess.ExpiresAt.IsZero() {
		fmt.Printf("Expires: %s\n", sess.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
	}
	if profile, hasProfile := d.sessions.Profile(); hasProfile {
		fmt.Printf("Name:    %s\n", profile.Name)
		fmt.Printf("Email:   %s\n", profile.Email)
	}
	return nil
}
