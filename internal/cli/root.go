package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"modelswitch/internal/launch"
)

// IO bundles the process resources a command touches, so tests can swap them.
type IO struct {
	In      io.Reader
	Out     io.Writer
	Err     io.Writer
	Getenv  func(string) string
	Environ func() []string
	// Exec replaces the current process; nil means syscall.Exec.
	Exec func(path string, argv []string, env []string) error
}

// options holds raw flag values; only flags the user set override config.
type options struct {
	configPath  string
	backendURL  string
	timeout     time.Duration
	logLevel    string
	shell       string
	metricsFile string
	export      bool
}

// usageError marks bad flags or arguments.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

const rootLong = `modelswitch lists the models of a local model backend, asks for one,
and assigns it to the model variables of the chosen agent frontends:

  aider      AIDER_MODEL
  goose      GOOSE_MODEL
  opencode   OPENCODE_MODEL
  openhands  OPENHANDS_MODEL
  all        all of the above plus AGENT_MODEL (default)

Leading frontend names select targets. Anything after them, or after "--",
is a command that is executed with the variables set. Use --export to print
shell statements instead, for example:

  eval "$(modelswitch --export aider goose)"`

func buildRootCmd(streams IO) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "modelswitch [flags] [aider|goose|opencode|openhands|all ...] [--] [command [args...]]",
		Short:         "Pick a backend model and hand it to agent frontends",
		Long:          rootLong,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSwitch(cmd, opts, streams, args)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return &usageError{err: err} })

	f := root.Flags()
	// Flags end at the first target or command token so the command keeps its own flags.
	f.SetInterspersed(false)
	f.StringVar(&opts.configPath, "config", "", "Config file (.yaml|.yml|.toml|.json); defaults to MODELSWITCH_CONFIG or ~/.config/modelswitch/config.*")
	f.StringVar(&opts.backendURL, "backend-url", "", "Model backend base URL (defaults OLLAMA_URL, OLLAMA_HOST or http://localhost:11434)")
	f.DurationVar(&opts.timeout, "timeout", 0, "Catalog request timeout (default 10s)")
	f.BoolVar(&opts.export, "export", false, "Print shell statements for the calling shell to evaluate instead of running a command")
	f.StringVar(&opts.shell, "shell", "", "Syntax for --export: posix|fish (defaults MODELSWITCH_SHELL or posix)")
	f.StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics in textfile format to this path")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug|info|warn|error|off (defaults MODELSWITCH_LOG_LEVEL or warn)")

	root.AddCommand(newVarsCmd(streams))
	root.AddCommand(newMockBackendCmd(streams, opts))
	root.AddCommand(newCompletionCmd(root, streams))
	return root
}

func newCompletionCmd(root *cobra.Command, streams IO) *cobra.Command {
	completionCmd := &cobra.Command{Use: "completion", Short: "Generate the autocompletion script for the specified shell"}
	completionCmd.AddCommand(&cobra.Command{
		Use:   "bash",
		Short: "Bash completion",
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.GenBashCompletion(streams.Out)
		},
	})
	completionCmd.AddCommand(&cobra.Command{
		Use:   "zsh",
		Short: "Zsh completion",
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.GenZshCompletion(streams.Out)
		},
	})
	completionCmd.AddCommand(&cobra.Command{
		Use:   "fish",
		Short: "Fish completion",
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.GenFishCompletion(streams.Out, true)
		},
	})
	completionCmd.AddCommand(&cobra.Command{
		Use:   "powershell",
		Short: "PowerShell completion",
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.GenPowerShellCompletionWithDesc(streams.Out)
		},
	})
	return completionCmd
}

// exitCode maps an error to the process status: 127 when a passthrough
// command is missing, 2 for usage errors, 1 otherwise.
func exitCode(err error) int {
	var ee *launch.ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	var ue *usageError
	if errors.As(err, &ue) {
		return 2
	}
	return 1
}

// MainWithArgs is a testable variant of Main that accepts args and streams explicitly.
// It returns an exit code (0 for success, non-zero on error).
func MainWithArgs(ctx context.Context, args []string, streams IO) int {
	if streams.Getenv == nil {
		streams.Getenv = os.Getenv
	}
	if streams.Environ == nil {
		streams.Environ = os.Environ
	}
	root := buildRootCmd(streams)
	root.SetArgs(args)
	root.SetIn(streams.In)
	root.SetOut(streams.Out)
	root.SetErr(streams.Err)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(streams.Err, "modelswitch: %v\n", err)
		return exitCode(err)
	}
	return 0
}

// Main returns an exit code for use by cmd/modelswitch.
func Main() int {
	return MainWithArgs(context.Background(), os.Args[1:], IO{
		In:      os.Stdin,
		Out:     os.Stdout,
		Err:     os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
	})
}
