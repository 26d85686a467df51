package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func backupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Print the recovery phrase",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			words, err := wire.Identity.BackupMnemonic(passphrase)
			if err != nil {
				return err
			}
			fmt.Println("Recovery phrase. Write it down and keep it offline:")
			fmt.Println(color.GreenString(strings.Join(words, " ")))
			return nil
		},
	}
}
