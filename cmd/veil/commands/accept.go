package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"veil/internal/domain"
)

// accept <handshake-id>: establish a contact from a pending handshake.
func acceptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accept <handshake-id>",
		Short: "Accept a handshake and establish a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			contact, err := wire.Handshakes.Accept(cmd.Context(), passphrase, domain.HandshakeID(args[0]))
			if err != nil {
				return err
			}
			fmt.Printf("Contact established with %s.\n", color.CyanString(contact.PeerAlias.String()))
			return nil
		},
	}
}
