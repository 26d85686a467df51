package commands

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// handshakes: list incoming pending handshakes, oldest first.
func handshakesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "handshakes",
		Short: "List incoming pending handshakes",
		RunE: func(cmd *cobra.Command, args []string) error {
			incoming, err := wire.Handshakes.Incoming(cmd.Context())
			if err != nil {
				return err
			}
			if len(incoming) == 0 {
				fmt.Println("No pending handshakes.")
				return nil
			}
			for _, hs := range incoming {
				fmt.Printf("%s  from %s  expires %s\n",
					color.YellowString(hs.ID.String()),
					hs.InitiatorID,
					hs.ExpiresAt.Local().Format(time.RFC822))
			}
			return nil
		},
	}
}
