package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doistemposcafe/totem/internal/adapter/outbound/api"
)

var (
	registerName     string
	registerEmail    string
	registerPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	Long: `Create a new account on the café backend.

Registration is open; accounts created here get the CLIENT authority.
Registering does not sign you in — run "totem login" afterwards.`,
	RunE: runRegister,
}

func init() {
	registerCmd.Flags().StringVar(&registerName, "name", "", "display name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "account email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "account password (prompted when omitted)")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(registerCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	d, err := buildDeps()
	if err != nil {
		return err
	}

	password := registerPassword
	if password == "" {
		password, err = promptLine("Password: ")
		if err != nil {
			return err
		}
	}

	user, err := d.client.Register(cmd.Context(), api.User{
		Name:     registerName,
		Email:    registerEmail,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	fmt.Printf("Account created for %s (id %d). Sign in with: totem login --email %s\n",
		user.Email, user.ID, user.Email)
	return nil
}
