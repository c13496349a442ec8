package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doistemposcafe/totem/internal/config"
)

var initOutput string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: `Write a commented totem.yaml with defaults to the current
directory. Edit backend.base_url to point at your café backend.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.WriteDefault(initOutput); err != nil {
			return err
		}
		fmt.Printf("Wrote %s — set backend.base_url, then run: totem login\n", initOutput)
		return nil
	},
}

func init() {
	initCmd.Flags().StringVarP(&initOutput, "output", "o", "totem.yaml", "where to write the config file")
	rootCmd.AddCommand(initCmd)
}
