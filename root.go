package main

import (
	"context"
	"errors"
	"fmt"

	"japanesevariants/charform"
	"japanesevariants/config"
	"japanesevariants/history"
	"japanesevariants/logger"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var errNoHistoryDB = errors.New("history_db is not set in the config")

// app carries the state shared by every subcommand.
type app struct {
	cfgPath string
	cfg     config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "japanesevariants",
		Short: "Full-width/half-width candidate variants for Japanese input",
		Long: "japanesevariants expands conversion candidates with their full-width\n" +
			"and half-width twins, ordered by the stored width preferences.",
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "Path to YAML config")

	root.AddCommand(newRewriteCmd(a))
	root.AddCommand(newClassifyCmd(a))
	root.AddCommand(newSetFormCmd(a))
	root.AddCommand(newLearnCmd(a))
	root.AddCommand(newClearHistoryCmd(a))
	root.AddCommand(newResetCmd(a))
	root.Version = version
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger.Init(level, cfg.LogFormat, cmd.ErrOrStderr())
	a.cfg = cfg
	return nil
}

// openManager builds the preference store from the config and, when a
// history db is configured, loads the stored rules into it. The returned
// Store is nil without a history db.
func (a *app) openManager(ctx context.Context) (*charform.Manager, *history.Store, error) {
	baseline, err := a.cfg.Baseline()
	if err != nil {
		return nil, nil, err
	}
	m := charform.New(charform.WithBaseline(baseline), charform.WithLogger(logger.New("charform")))
	if a.cfg.HistoryDB == "" {
		return m, nil, nil
	}
	st, err := history.Open(a.cfg.HistoryDB)
	if err != nil {
		return nil, nil, err
	}
	if err := st.Load(ctx, m); err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("load history: %w", err)
	}
	return m, st, nil
}

// withStore runs fn against a Manager loaded from the history db and saves
// the result afterwards.
func (a *app) withStore(ctx context.Context, fn func(*charform.Manager, *history.Store) error) error {
	if a.cfg.HistoryDB == "" {
		return errNoHistoryDB
	}
	m, st, err := a.openManager(ctx)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := fn(m, st); err != nil {
		return err
	}
	return st.Save(ctx, m)
}
