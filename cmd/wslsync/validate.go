package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// validateCmd checks the config file without touching the filesystem.
func validateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the config file and print the resolved sync plan",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "windows_base: %s\n", cfg.WindowsBase)
			fmt.Fprintf(os.Stdout, "wsl2_base:    %s\n", cfg.WSL2Base)
			fmt.Fprintf(os.Stdout, "files:        %d entries\n", len(cfg.Files))
			for _, f := range cfg.Files {
				fmt.Fprintf(os.Stdout, "  %s\n", f)
			}
			return nil
		},
	}
}
