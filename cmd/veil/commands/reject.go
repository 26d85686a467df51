package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"veil/internal/domain"
)

func rejectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reject <handshake-id>",
		Short: "Decline a handshake",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.Handshakes.Reject(cmd.Context(), domain.HandshakeID(args[0])); err != nil {
				return err
			}
			fmt.Println("Handshake rejected.")
			return nil
		},
	}
}
