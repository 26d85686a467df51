package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"veil/internal/crypto"
	"veil/internal/domain"
)

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print your alias and key code",
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, ok, err := wire.Identity.Public()
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrNoIdentity
			}
			fmt.Printf("Alias:    %s\n", color.CyanString(rec.Alias.String()))
			fmt.Printf("Key code: %s\n", crypto.DeriveKeyCode(rec.SigningPub.Slice()))
			return nil
		},
	}
}
