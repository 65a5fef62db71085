package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/harry-hov/docwriter/internal/env"
	"github.com/harry-hov/docwriter/internal/lsp"
	"github.com/spf13/cobra"
)

func CmdServe(configPath *string) *cobra.Command {
	var host string
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run docwriter as a server using the Language Server Protocol",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			slog.Info("Initializing Server...")
			env, err := env.Load(*configPath)
			if err != nil {
				return err
			}
			if err := applyServiceFlags(cmd, env, host, port); err != nil {
				return err
			}
			return lsp.RunServer(cmd.Context(), env, os.Stdin, os.Stdout)
		},
	}

	addServiceFlags(cmd, &host, &port)

	return cmd
}

func addServiceFlags(cmd *cobra.Command, host *string, port *int) {
	cmd.Flags().StringVarP(host, "host", "", "", "generate_docs service host")
	cmd.Flags().IntVarP(port, "port", "", 0, "generate_docs service port")
}

// applyServiceFlags lets explicitly set flags win over config.toml, then
// validates the result the same way the file is validated.
func applyServiceFlags(cmd *cobra.Command, env *env.Env, host string, port int) error {
	if cmd.Flags().Changed("host") {
		env.Config.Service.Host = host
	}
	if cmd.Flags().Changed("port") {
		env.Config.Service.Port = port
	}
	if err := env.Config.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}
