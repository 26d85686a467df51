package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the local identity and publish its public record",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			id, err := wire.Identity.Generate(cmd.Context(), passphrase)
			if err != nil {
				return err
			}
			fmt.Println("Identity created.")
			fmt.Printf("Alias: %s\n", color.CyanString(id.Alias.String()))
			fmt.Println("Run `veil backup` and write down your recovery phrase.")
			return nil
		},
	}
}
