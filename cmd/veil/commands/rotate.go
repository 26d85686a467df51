package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func rotateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rotate",
		Short: "Replace the identity with a fresh one",
		Long: "Generates new keys, a new alias and a new recovery phrase. " +
			"Existing contacts must pair with you again.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			id, err := wire.Identity.Rotate(cmd.Context(), passphrase)
			if err != nil {
				return err
			}
			fmt.Println("Identity rotated.")
			fmt.Printf("New alias: %s\n", color.CyanString(id.Alias.String()))
			return nil
		},
	}
}
