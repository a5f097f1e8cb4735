package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"seresa/node"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		handle(err)
	}
}

// app holds the global flags and the config they resolve to.
type app struct {
	cfgPath string
	dataDir string
	verbose bool
	debug   bool
	cfg     Config
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           appName,
		Short:         "Shares research articles and resources on an append-only post network.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd.ErrOrStderr(), a.verbose, a.debug)
			return a.configure(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgPath, "config", defaultConfigPath(), "Config file.")
	flags.StringVarP(&a.dataDir, "datadir", "d", "", "Node store directory, overrides the config file.")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Log informational messages.")
	flags.BoolVar(&a.debug, "debug", os.Getenv(debugEnv) == "1", "Log debug messages.")

	root.AddCommand(
		a.chainCommand(),
		a.rateCommand(),
		a.shareCommand(),
		a.resourceCommand(),
	)
	return root
}

func (a *app) configure(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.cfgPath, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	if a.dataDir != "" {
		cfg.DataDir = a.dataDir
	}
	if cfg.DataDir == "" {
		return errors.New("no node store directory, set datadir in the config or pass --datadir")
	}
	a.cfg = cfg
	log.WithField("datadir", cfg.DataDir).Debug("configured")
	return nil
}

// withStore runs fn on the node store and closes it afterwards.
func (a *app) withStore(fn func(s *node.Store) error) error {
	if err := os.MkdirAll(a.cfg.DataDir, 0o755); err != nil {
		return errors.Wrap(err, "creating node store directory")
	}
	s, err := node.Open(a.cfg.nodeOptions())
	if err != nil {
		return err
	}
	err = fn(s)
	if cerr := s.Close(); err == nil {
		err = cerr
	}
	return err
}

func setupLogging(w io.Writer, verbose, debug bool) {
	log.SetOutput(w)
	log.SetLevel(log.WarnLevel)
	if verbose {
		log.SetLevel(log.InfoLevel)
	}
	if debug {
		log.SetLevel(log.DebugLevel)
	}
	formatter := &log.TextFormatter{
		FullTimestamp: true,
	}
	formatter.TimestampFormat = timestampForm
	log.SetFormatter(formatter)
}

func handle(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}
