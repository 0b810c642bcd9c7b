package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"modelswitch/internal/logging"
	"modelswitch/internal/mockbackend"
	"modelswitch/pkg/types"
)

// defaultMockModels is served when no --models file is given.
var defaultMockModels = []types.Model{
	{Name: "qwen2.5-coder:14b", Size: 8_988_124_069},
	{Name: "qwen3:14b", Size: 9_276_198_565},
	{Name: "llama3.1:8b", Size: 4_920_753_328},
	{Name: "nomic-embed-text:latest", Size: 274_302_450},
}

func newMockBackendCmd(streams IO, opts *options) *cobra.Command {
	var addr, modelsFile string
	cmd := &cobra.Command{
		Use:    "mock-backend",
		Short:  "Serve a fixed model catalog at /api/tags for local testing",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level := opts.logLevel
			if level == "" {
				level = "info"
			}
			log := logging.New(streams.Err, level, streams.Getenv("NO_COLOR") != "")
			models := defaultMockModels
			if modelsFile != "" {
				m, err := mockbackend.LoadModels(modelsFile)
				if err != nil {
					return err
				}
				models = m
			}
			b := mockbackend.New(models)
			b.SetLogger(log)
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return mockbackend.ListenAndServe(ctx, addr, b.Router(), log)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:11435", "Listen address")
	cmd.Flags().StringVar(&modelsFile, "models", "", "YAML or JSON file with the catalog to serve")
	return cmd
}
