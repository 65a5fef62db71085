package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func DocwriterCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:                "docwriter",
		Short:              `docwriter generates documentation for the code under your cursor`,
		DisableSuggestions: true,
		SilenceUsage:       true,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "", "", "path to config.toml (default $DOCWRITER_HOME/config.toml)")
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.AddCommand(CmdServe(&configPath))
	cmd.AddCommand(CmdWrite(&configPath))
	cmd.AddCommand(CmdVersion())

	return cmd
}

func Execute() {
	if err := DocwriterCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
