package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"veil/internal/app"
)

var (
	home       string
	passphrase string
	relayURL   string

	wire *app.Wire
)

func Execute() error {
	root := &cobra.Command{
		Use:           "veil",
		Short:         "Local-first encrypted messaging over an untrusted relay",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := app.DefaultHome()
				if err != nil {
					return err
				}
				home = dir
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}

			cfg, err := app.LoadConfig(home, relayURL)
			if err != nil {
				return err
			}
			wire, err = app.NewWire(cfg)
			return err
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.veil)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the local identity")
	root.PersistentFlags().StringVar(&relayURL, "relay", "", "relay base URL (overrides config.yaml)")

	root.AddCommand(
		initCmd(), whoamiCmd(), rotateCmd(),
		pairCmd(), handshakesCmd(), acceptCmd(), rejectCmd(), contactsCmd(),
		sendCmd(), recvCmd(),
		backupCmd(), restoreCmd(), shredCmd(),
	)
	return root.Execute()
}

func requirePassphrase() error {
	if passphrase == "" {
		return fmt.Errorf("passphrase required (-p)")
	}
	return nil
}
