package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	apppkg "github.com/kk-code-lab/asfb/internal/app"
	"github.com/kk-code-lab/asfb/internal/config"
	"github.com/kk-code-lab/asfb/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type rootOptions struct {
	configFile     string
	debug          bool
	logFile        string
	hideDotfiles   bool
	followSymlinks bool
	autoRefresh    bool
	maxEntries     int
}

// Swapped in tests.
var (
	isTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
	runBrowser = func(opts apppkg.Options) error {
		app, err := apppkg.NewApplication(opts)
		if err != nil {
			return fmt.Errorf("error initializing application: %w", err)
		}
		defer func() {
			_ = app.Close()
		}()
		app.Run()
		return nil
	}
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "asfb [flags] [DIR]",
		Short: "A small terminal directory browser",
		Long: `asfb lists one directory at a time, directories first.

Keys: j/k move, l/Enter open, h up, g<char> jump, / and ? search,
t toggle dotfiles, r refresh, y yank path, q quit.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/asfb/config.yaml)")
	flags.BoolVar(&opts.debug, "debug", false, "write debug logs")
	flags.StringVar(&opts.logFile, "log-file", "", "log file (default is discard, or $XDG_CACHE_HOME/asfb/asfb.log with --debug)")
	flags.BoolVar(&opts.hideDotfiles, "hide-dotfiles", false, "start with dotfiles hidden")
	flags.BoolVar(&opts.followSymlinks, "follow-symlinks", false, "list symlinks by the kind of their target")
	flags.BoolVar(&opts.autoRefresh, "auto-refresh", false, "reload the listing when the directory changes")
	flags.IntVar(&opts.maxEntries, "max-entries", 0, "maximum entries kept per directory")

	return cmd
}

func run(cmd *cobra.Command, opts *rootOptions, args []string) error {
	cfg, err := loadConfig(opts.configFile)
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, opts, cfg)

	closer, err := logging.Setup(logging.Options{Debug: opts.debug, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer closer.Close()

	if !isTerminal() {
		return errors.New("standard input is not a terminal")
	}

	startDir, err := resolveStartDir(args, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	loadOpts, err := cfg.LoadOptions()
	if err != nil {
		return err
	}
	editor, ok := config.DetectEditor()
	if !ok {
		logrus.Info("no editor found; text files open with vi")
	}

	logrus.WithFields(logrus.Fields{
		"dir":          startDir,
		"hideDotfiles": cfg.HideDotfiles,
		"autoRefresh":  cfg.AutoRefresh,
	}).Info("starting")

	return runBrowser(apppkg.Options{
		StartDir:    startDir,
		LoadOptions: loadOpts,
		Handlers:    cfg.HandlerTable(editor),
		AutoRefresh: cfg.AutoRefresh,
	})
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// applyFlagOverrides lets explicitly set flags win over the config file.
func applyFlagOverrides(cmd *cobra.Command, opts *rootOptions, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("hide-dotfiles") {
		cfg.HideDotfiles = opts.hideDotfiles
	}
	if flags.Changed("follow-symlinks") {
		cfg.FollowSymlinks = opts.followSymlinks
	}
	if flags.Changed("auto-refresh") {
		cfg.AutoRefresh = opts.autoRefresh
	}
	if flags.Changed("max-entries") && opts.maxEntries > 0 {
		cfg.MaxEntries = opts.maxEntries
	}
	if flags.Changed("log-file") {
		cfg.LogFile = opts.logFile
	}
}

// resolveStartDir changes into the requested directory. Failing to do so is
// only a warning; the browser then starts in the current directory.
func resolveStartDir(args []string, stderr io.Writer) (string, error) {
	if len(args) == 1 {
		if err := os.Chdir(args[0]); err != nil {
			logrus.WithField("dir", args[0]).WithError(err).Warn("cannot change directory")
			fmt.Fprintf(stderr, "Warning: cannot change to %s: %v\n", args[0], err)
		}
	}
	return os.Getwd()
}
