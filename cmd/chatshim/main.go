// Command chatshim bridges block-structured completion requests onto an
// OpenAI-compatible Chat Completions backend.
//
// Two modes are available:
//
//	chatshim complete   read one envelope from stdin, write the result to stdout
//	chatshim serve      accept envelopes over HTTP on POST /v1/bridge
//
// Configuration via chatshim.yaml, CHATSHIM_* environment variables, or
// the legacy OPENAI_* names (OPENAI_BASE_URL, OPENAI_ENDPOINT,
// OPENAI_MODEL, OPENAI_API_KEY, OPENAI_TIMEOUT_SEC).
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mwalther/chatshim/pkg/bridge"
	"github.com/mwalther/chatshim/pkg/config"
	"github.com/mwalther/chatshim/pkg/debug"
	"github.com/mwalther/chatshim/pkg/server"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("chatshim failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "chatshim",
		Short:         "Translate block-structured completion requests to Chat Completions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")

	root.AddCommand(newCompleteCmd(&configPath))
	root.AddCommand(newServeCmd(&configPath))
	return root
}

func newCompleteCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "complete",
		Short: "Read one envelope from stdin and write the result to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			debug.Init(cfg.Logging.Debug, cfg.Logging.Level)

			b := bridge.New(cfg)
			defer b.Close()
			return b.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Accept envelopes over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			debug.Init(cfg.Logging.Debug, cfg.Logging.Level)

			b := bridge.New(cfg)
			defer b.Close()
			return server.New(b, cfg).ListenAndServe()
		},
	}
}
