package cli

import (
	"fmt"
	"io"
	"math"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"modelswitch/internal/catalog"
	"modelswitch/internal/config"
	"modelswitch/internal/launch"
	"modelswitch/internal/logging"
	"modelswitch/internal/metrics"
	"modelswitch/internal/selector"
	"modelswitch/pkg/types"
)

// runSwitch is the root command: resolve targets, fetch, select, deliver.
func runSwitch(cmd *cobra.Command, opts *options, streams IO, args []string) error {
	cfg, source, err := resolveConfig(cmd, opts, streams.Getenv)
	if err != nil {
		return err
	}
	log := logging.New(streams.Err, cfg.LogLevel, streams.Getenv("NO_COLOR") != "")
	if source != "" {
		log.Debug().Str("path", source).Msg("loaded config file")
	}

	// A "--" before any positional token is swallowed by the flag parser.
	if cmd.ArgsLenAtDash() == 0 {
		args = append([]string{selector.Separator}, args...)
	}
	targets, passthrough := selector.ParseArgs(args)
	mode := types.ModeChild
	if opts.export {
		mode = types.ModeExport
	}
	log.Debug().Interface("targets", targets).Strs("passthrough", passthrough).Str("mode", string(mode)).Msg("resolved arguments")

	// Prompts never go to stdout in export mode; the caller's shell evaluates it.
	prompts := streams.Out
	if mode == types.ModeExport {
		prompts = streams.Err
	}

	rec := metrics.New()
	res, err := selectModel(cmd, cfg, log, rec, streams.In, prompts, targets, passthrough)
	if werr := rec.WriteTextfile(cfg.MetricsFile); werr != nil {
		log.Warn().Err(werr).Str("path", cfg.MetricsFile).Msg("writing metrics file failed")
	}
	if err != nil {
		return err
	}

	l := &launch.Launcher{
		Mode:    mode,
		Shell:   types.Shell(cfg.Shell),
		Program: cmd.Root().Name(),
		Stdout:  streams.Out,
		Stderr:  streams.Err,
		Environ: streams.Environ,
		Exec:    streams.Exec,
		Log:     log,
	}
	return l.Deliver(res)
}

func selectModel(cmd *cobra.Command, cfg config.Config, log zerolog.Logger, rec *metrics.Recorder, in io.Reader, out io.Writer, targets []types.Frontend, passthrough []string) (types.SelectionResult, error) {
	base, err := config.NormalizeBackendURL(cfg.BackendURL)
	if err != nil {
		return types.SelectionResult{}, err
	}
	client := catalog.New(base, cfg.Timeout(), catalog.WithLogger(log), catalog.WithMetrics(rec))
	models, err := client.Fetch(cmd.Context())
	if err != nil {
		return types.SelectionResult{}, err
	}
	return selector.New(in, out, log, rec).Select(models, targets, passthrough)
}

// resolveConfig layers defaults, the config file, the environment and set
// flags, in increasing precedence. It returns the config file used, if any.
func resolveConfig(cmd *cobra.Command, opts *options, getenv func(string) string) (config.Config, string, error) {
	path := opts.configPath
	explicit := cmd.Flags().Changed("config")
	if !explicit {
		if v := getenv("MODELSWITCH_CONFIG"); v != "" {
			path, explicit = v, true
		}
	}
	if !explicit {
		p, err := config.Discover()
		if err != nil {
			return config.Config{}, "", err
		}
		path = p
	}

	var fileCfg config.Config
	if path != "" {
		c, err := config.Load(path)
		if err != nil {
			return config.Config{}, "", fmt.Errorf("load config: %w", err)
		}
		fileCfg = c
	}

	var flagCfg config.Config
	fl := cmd.Flags()
	if fl.Changed("backend-url") {
		flagCfg.BackendURL = opts.backendURL
	}
	if fl.Changed("timeout") && opts.timeout > 0 {
		flagCfg.TimeoutSeconds = int(math.Ceil(opts.timeout.Seconds()))
	}
	if fl.Changed("log-level") {
		flagCfg.LogLevel = opts.logLevel
	}
	if fl.Changed("shell") {
		flagCfg.Shell = opts.shell
	}
	if fl.Changed("metrics-file") {
		flagCfg.MetricsFile = opts.metricsFile
	}

	cfg := config.Defaults().Merge(fileCfg).Merge(config.FromEnv(getenv)).Merge(flagCfg)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, "", fmt.Errorf("invalid config: %w", err)
	}
	return cfg, path, nil
}
