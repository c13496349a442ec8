package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var forgotPasswordEmail string

var forgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password",
	Short: "Request a password reset email",
	Long: `Ask the backend to send a password reset link.

The backend answers the same way whether or not the address exists,
so a missing account is not distinguishable from this side.`,
	RunE: runForgotPassword,
}

var (
	resetPasswordToken string
	resetPasswordNew   string
)

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Redeem a reset token for a new password",
	RunE:  runResetPassword,
}

func init() {
	forgotPasswordCmd.Flags().StringVar(&forgotPasswordEmail, "email", "", "account email")
	_ = forgotPasswordCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(forgotPasswordCmd)

	resetPasswordCmd.Flags().StringVar(&resetPasswordToken, "token", "", "reset token from the email link")
	resetPasswordCmd.Flags().StringVar(&resetPasswordNew, "new-password", "", "new password (prompted when omitted)")
	_ = resetPasswordCmd.MarkFlagRequired("token")
	rootCmd.AddCommand(resetPasswordCmd)
}

func runForgotPassword(cmd *cobra.Command, args []string) error {
	d, err := buildDeps()
	if err != nil {
		return err
	}
	if err := d.client.ForgotPassword(cmd.Context(), forgotPasswordEmail); err != nil {
		return fmt.Errorf("forgot-password request failed: %w", err)
	}
	fmt.Printf("If an account matches %s, a reset link is on its way.\n", forgotPasswordEmail)
	return nil
}

func runResetPassword(cmd *cobra.Command, args []string) error {
	d, err := buildDeps()
	if err != nil {
		return err
	}

	newPassword := resetPasswordNew
	if newPassword == "" {
		newPassword, err = promptLine("New password: ")
		if err != nil {
			return err
		}
	}

	if err := d.client.ResetPassword(cmd.Context(), resetPasswordToken, newPassword); err != nil {
		return fmt.Errorf("reset-password request failed: %w", err)
	}
	fmt.Println("Password updated. Sign in with: totem login")
	return nil
}
