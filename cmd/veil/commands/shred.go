package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func shredCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "shred",
		Short: "Destroy the local identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("shred is irreversible; re-run with --yes")
			}
			if err := wire.Identity.Shred(); err != nil {
				return err
			}
			fmt.Println("Local identity destroyed.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm destruction")
	return cmd
}
