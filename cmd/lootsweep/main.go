package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lootsweep/cmd/lootsweep/ui"
	"lootsweep/internal/config"
	"lootsweep/internal/confirm"
	"lootsweep/internal/lcu"
	"lootsweep/internal/lockfile"
	"lootsweep/internal/logging"
	"lootsweep/internal/loot"
	"lootsweep/internal/sweep"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose    bool
	debug      bool
	assumeYes  bool
	configPath string
	paths      []string
	exclude    string
	timeout    time.Duration
	force      bool

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd disenchants champion shards
var rootCmd = &cobra.Command{
	Use:   "lootsweep",
	Short: "Disenchant League of Legends champion shards",
	Long: `lootsweep reads the loot inventory of the running League client and
disenchants every owned champion shard into blue essence.

The client is located through its lockfile, probed in each --path in order.
Shards listed in --exclude (display names, case-insensitive) are kept.
Nothing is deleted without an explicit "yes" at the prompt.

Examples:
  lootsweep -p "C:\Riot Games\League of Legends"
  lootsweep -e "Vayne,Lee Sin" --debug
  lootsweep list`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runSweep(cmd, false)
		return err
	},
}

// listCmd only reports what would be disenchanted
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the champion shards that would be disenchanted",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runSweep(cmd, true)
		return err
	},
}

// initCmd writes the default configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to --config",
	// The file being written need not be valid yet.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configPath); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
		}
		if err := config.DefaultConfig().Save(configPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", configPath)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Alias for --verbose")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Path to the YAML config file")
	rootCmd.PersistentFlags().StringArrayVarP(&paths, "path", "p", nil, "Candidate League of Legends directory holding the lockfile (repeatable)")
	rootCmd.PersistentFlags().StringVarP(&exclude, "exclude", "e", "", "Comma-separated champion names to keep (case insensitive)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Timeout for the fetch and the disenchant steps (default from config)")
	rootCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Disenchant without asking for confirmation")

	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	rootCmd.AddCommand(listCmd, initCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the config, applies flags on top and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("path") {
		cfg.Client.Paths = paths
	}
	if flags.Changed("exclude") {
		cfg.Run.Exclude = loot.ParseExclusionList(exclude)
	}
	if flags.Changed("timeout") {
		cfg.Run.Timeout = timeout.String()
	}
	if assumeYes {
		cfg.Run.AssumeYes = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err = logging.New(cfg.Logging, logging.Options{Verbose: verbose || debug})
	if err != nil {
		return err
	}
	logging.Get(logger, logging.CategoryBoot).Debug("Configuration loaded",
		zap.String("config", configPath),
		zap.Strings("paths", cfg.Client.Paths),
		zap.Strings("exclude", cfg.Run.Exclude))
	return nil
}

// newRunner wires the production collaborators.
func newRunner(cmd *cobra.Command) *sweep.Runner {
	out := cmd.OutOrStdout()

	resolver := lockfile.NewResolver(logging.Get(logger, logging.CategoryLockfile))
	resolver.Name = cfg.Client.LockfileName

	clientCfg := lcu.DefaultConfig()
	if cfg.Client.Host != "" {
		clientCfg.Host = cfg.Client.Host
	}
	if cfg.Client.Username != "" {
		clientCfg.Username = cfg.Client.Username
	}
	clientCfg.Timeout = cfg.GetRequestTimeout()
	clientLogger := logging.Get(logger, logging.CategoryLCU)

	report := ui.NewReport(out, ui.DetectTheme())
	prompter := confirm.NewLinePrompter(cmd.InOrStdin(), out)
	prompter.Format = report.Prompt

	return &sweep.Runner{
		Resolver: resolver,
		Dial: func(creds lockfile.Credentials) sweep.Session {
			return lcu.NewClient(creds, clientCfg, clientLogger)
		},
		Gate: confirm.Gate{
			Prompter:  prompter,
			AssumeYes: cfg.Run.AssumeYes,
		},
		Reporter:    report,
		Logger:      logging.Get(logger, logging.CategorySweep),
		CraftLogger: logging.Get(logger, logging.CategoryDisenchant),
		Timeout:     cfg.GetRunTimeout(),
	}
}

// runSweep performs one run. Only errors make the process exit non-zero.
func runSweep(cmd *cobra.Command, listOnly bool) (sweep.Report, error) {
	baseCtx := cmd.Context()
	if baseCtx == nil {
		baseCtx = context.Background()
	}

	// Ctrl-C at the prompt declines. During the disenchant step it stops
	// before the next request and the rest is reported as not attempted.
	ctx, stop := signal.NotifyContext(baseCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rep, err := newRunner(cmd).Run(ctx, sweep.Options{
		Paths:    cfg.Client.Paths,
		Exclude:  cfg.Run.Exclude,
		ListOnly: listOnly,
	})
	if err != nil {
		return rep, err
	}
	logger.Info("Run finished", zap.Stringer("outcome", rep.Outcome))
	return rep, nil
}
