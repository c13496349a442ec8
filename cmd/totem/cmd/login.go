package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doistemposcafe/totem/internal/domain/auth"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session",
	Long: `Sign in against the café backend and store the returned token
(and user record, when the backend sends one) in the local session file.

A successful login replaces any previous session unconditionally.
On failure nothing is stored and any previous session stays intact.

Examples:
  totem login --email you@example.com
  totem login --email you@example.com --password s3cret`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	d, err := buildDeps()
	if err != nil {
		return err
	}

	email := loginEmail
	if email == "" {
		email, err = promptLine("Email: ")
		if err != nil {
			return err
		}
	}
	password := loginPassword
	if password == "" {
		password, err = promptLine("Password: ")
		if err != nil {
			return err
		}
	}

	sess, err := d.sessions.Login(cmd.Context(), email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	role, ok := auth.MainRole(sess.Roles)
	if !ok {
		role = "(none)"
	}
	fmt.Printf("Signed in as %s\n", sess.Subject)
	fmt.Printf("  Roles:   %s\n", formatRoles(sess.Roles))
	fmt.Printf("  Main:    %s\n", role)
	if !sess.ExpiresAt.IsZero() {
		fmt.Printf("  Expires: %s\n", sess.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
	}
	return nil
}

// promptLine reads one line from stdin after printing a prompt.
func promptLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// formatRoles renders an authority set for terminal output.
func formatRoles(roles []auth.Role) string {
	if len(roles) == 0 {
		return "(none)"
	}
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}
