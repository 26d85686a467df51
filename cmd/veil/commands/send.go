package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"veil/internal/domain"
)

// send <alias> <message>: encrypt and send a message to a contact.
func sendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <alias> <message>",
		Short: "Encrypt and send a message to a contact",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.Messages.Send(cmd.Context(), domain.Alias(args[0]), []byte(args[1])); err != nil {
				return err
			}
			fmt.Println("sent")
			return nil
		},
	}
}
