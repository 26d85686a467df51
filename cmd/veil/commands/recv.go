package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// recv: fetch and decrypt queued messages.
func recvCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "recv",
		Short: "Fetch and decrypt your queued messages",
		RunE: func(cmd *cobra.Command, args []string) error {
			msgs, err := wire.Messages.Receive(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(msgs) == 0 {
				fmt.Println("No new messages.")
				return nil
			}
			for _, m := range msgs {
				from := m.SenderAlias.String()
				if from == "" {
					from = m.SenderID.String()
				}
				if m.Undecryptable {
					fmt.Printf("[%s] %s\n", from, color.RedString(string(m.Plaintext)))
					continue
				}
				fmt.Printf("[%s] %s\n", color.CyanString(from), string(m.Plaintext))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "max messages to fetch (0 = all)")
	return cmd
}
