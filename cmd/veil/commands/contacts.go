package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func contactsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contacts",
		Short: "List established contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			contacts, err := wire.Handshakes.Contacts(cmd.Context())
			if err != nil {
				return err
			}
			if len(contacts) == 0 {
				fmt.Println("No contacts yet. Use `veil pair <alias>` to start a handshake.")
				return nil
			}
			for _, c := range contacts {
				fmt.Println(color.CyanString(c.PeerAlias.String()))
			}
			return nil
		},
	}
}
