package cli

import (
	"fmt"
	"time"

	"github.com/pablasso/kanban/internal/api"
	"github.com/pablasso/kanban/internal/config"
	"github.com/pablasso/kanban/internal/logging"
	"github.com/pablasso/kanban/internal/tui"
	"github.com/pablasso/kanban/internal/version"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Commands carrying this annotation run without loading config or building
// an API client.
const skipSetup = "kanban/skip-setup"

// app is the state shared by every command of one invocation.
type app struct {
	configFile string
	apiURL     string
	timeout    time.Duration
	logLevel   string
	logFile    string

	cfg      *config.Config
	logger   *log.Logger
	client   *api.Client
	closeLog func() error
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kanban",
		Short: "Kanban board for a task API",
		Long: `Kanban shows the tasks of a task API as a three-column board (To Do, In Progress, Done).
Run without arguments to open the board; use the subcommands for scripting.`,
		Version:           version.Version,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(tui.Options{
				Service: a.client,
				Logger:  a.logger,
				APIURL:  a.cfg.APIURL,
			})
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (merged after ~/.kanban and ./.kanban)")
	flags.StringVar(&a.apiURL, "api-url", config.DefaultAPIURL, "task API base URL")
	flags.DurationVar(&a.timeout, "timeout", config.DefaultTimeout, "per-request timeout")
	flags.StringVar(&a.logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&a.logFile, "log-file", "", "append logs to this file")

	rootCmd.AddCommand(
		newListCmd(a),
		newAddCmd(a),
		newMoveCmd(a),
		newEditCmd(a),
		newRmCmd(a),
		newPingCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// setup resolves configuration (defaults, files, environment, then flags the
// user actually set) and builds the logger and API client.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[skipSetup] != "" {
		return nil
	}

	cfg, err := config.Load(config.LoadOptions{File: a.configFile})
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.APIURL = a.apiURL
	}
	if flags.Changed("timeout") {
		cfg.Timeout = a.timeout
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = a.logFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// The board owns the terminal, so without a log file it logs nowhere.
	fallback := cmd.ErrOrStderr()
	if cmd == cmd.Root() {
		fallback = nil
	}
	logger, closeLog, err := logging.New(cfg.Log.Level, cfg.Log.File, fallback)
	if err != nil {
		return err
	}

	client, err := api.New(cfg.APIURL, api.WithTimeout(cfg.Timeout), api.WithLogger(logger))
	if err != nil {
		_ = closeLog()
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.client = client
	a.closeLog = closeLog
	logger.WithFields(log.Fields{
		"command": cmd.CommandPath(),
		"api_url": cfg.APIURL,
	}).Debug("configuration loaded")
	return nil
}

func (a *app) close() error {
	if a.closeLog == nil {
		return nil
	}
	err := a.closeLog()
	a.closeLog = nil
	return err
}

// Execute runs the root command.
func Execute() error {
	a := &app{}
	err := newRootCmd(a).Execute()
	if cerr := a.close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close log file: %w", cerr)
	}
	return err
}
