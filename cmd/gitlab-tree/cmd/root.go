package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"gitlabtree/internal/adapters/browser"
	"gitlabtree/internal/adapters/clipboard"
	"gitlabtree/internal/adapters/tui"
	"gitlabtree/internal/application"
	"gitlabtree/internal/config"
	"gitlabtree/internal/logging"
)

// annotationNoToken marks commands that run without GitLab credentials
const annotationNoToken = "no-token"

var (
	cfgFile   string
	v         = config.New()
	cfg       *config.Config
	cacheCfg  config.CacheSettings
	logger    *logrus.Logger
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "gitlab-tree",
	Short: "Browse GitLab groups and projects as a tree",
	Long: `gitlab-tree is a terminal browser for the groups, subgroups and projects
you can see on a GitLab instance.

Without a subcommand it opens the interactive tree. Configuration comes from
GITLAB_* environment variables, an optional YAML config file and flags.

Keys: j/k move, h/l collapse/expand, gg/G top/bottom, / search, y copy URL,
o open URL, r reload, q quit.`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		return setup(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser != nil {
			return logCloser.Close()
		}
		return nil
	},
	RunE: runBrowser,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/gitlab-tree/config.yaml)")
	flags.String("url", "", "GitLab base URL (env GITLAB_URL)")
	flags.String("cache-path", "", "snapshot cache file; .db/.sqlite selects SQLite (env GITLAB_CACHE_PATH)")
	flags.String("log-file", "", "write logs to this file (env GITLAB_TREE_LOG_FILE)")
	flags.String("log-level", "", "log level: debug, info, warn, error (env GITLAB_TREE_LOG_LEVEL)")

	bindFlags(v, flags, map[string]string{
		config.KeyURL:       "url",
		config.KeyCachePath: "cache-path",
		config.KeyLogFile:   "log-file",
		config.KeyLogLevel:  "log-level",
	})
}

func setup(cmd *cobra.Command) error {
	if err := config.ReadFile(v, cfgFile); err != nil {
		return err
	}

	var err error
	if cmd.Annotations[annotationNoToken] == "true" {
		if cacheCfg, err = config.LoadCacheSettings(v); err != nil {
			return err
		}
	} else {
		if cfg, err = config.Load(v); err != nil {
			return err
		}
		cacheCfg = cfg.Cache
	}

	logger, logCloser, err = logging.New(v.GetString(config.KeyLogFile), v.GetString(config.KeyLogLevel))
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"command": cmd.CommandPath(),
		"cache":   cacheCfg.Path,
	}).Debug("starting")
	return nil
}

func runBrowser(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("the interactive browser needs a terminal; use `gitlab-tree dump` for scripted output")
	}

	ingestor := newIngestor(cfg, logger)

	sink, backend := clipboard.New(clipboard.SystemProbe{})
	logging.Component(logger, "clipboard").WithField("backend", backend).Info("clipboard selected")

	app := tui.NewApp(tui.Options{
		Load: ingestor.Acquire,
		Session: application.SessionOptions{
			Clipboard: sink,
			Browser:   browser.NewOpener(),
			BaseURL:   cfg.URL,
			TokenSet:  cfg.TokenSet(),
			Log:       logging.Component(logger, "session"),
		},
		Log: logging.Component(logger, "tui"),
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run interface: %w", err)
	}
	return nil
}

// bindFlags lets a flag override the matching environment variable
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		_ = v.BindPFlag(key, flags.Lookup(name))
	}
}
