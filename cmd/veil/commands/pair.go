package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"veil/internal/domain"
)

// pair <alias>: open a handshake toward a peer.
func pairCmd() *cobra.Command {
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "pair <alias>",
		Short: "Open a handshake toward a peer's alias",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hs, err := wire.Handshakes.Create(cmd.Context(), domain.Alias(args[0]), ttl)
			if err != nil {
				return err
			}
			fmt.Printf("Handshake %s sent to %s, expires %s.\n",
				hs.ID, hs.TargetAlias, hs.ExpiresAt.Local().Format(time.RFC822))
			return nil
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "validity window (default 1h)")
	return cmd
}
