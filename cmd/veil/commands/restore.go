package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// restore <word>...: derive a replacement identity from a recovery phrase.
func restoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <word>...",
		Short: "Derive a replacement identity from a recovery phrase",
		Long: "Restore derives a fresh identity deterministically from the 12-word " +
			"phrase. It is a replacement, not a recovery: prior contacts and " +
			"queued messages stay unreadable, and peers must pair again.",
		Args: cobra.ExactArgs(12),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			id, err := wire.Identity.RestoreFromMnemonic(cmd.Context(), args, passphrase)
			if err != nil {
				return err
			}
			fmt.Println("Identity restored.")
			fmt.Printf("Alias: %s\n", color.CyanString(id.Alias.String()))
			return nil
		},
	}
}
