package main

import (
	"fmt"

	"japanesevariants/charform"
	"japanesevariants/history"
	"japanesevariants/script"

	"github.com/spf13/cobra"
)

func newSetFormCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set-form <sample> <full|half>",
		Short: "Set the explicit width rule for the category of sample",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := script.ParseForm(args[1])
			if err != nil {
				return err
			}
			cat, err := variantCategoryOf(args[0])
			if err != nil {
				return err
			}
			return a.withStore(cmd.Context(), func(m *charform.Manager, _ *history.Store) error {
				m.SetCharacterForm(args[0], form)
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (explicit)\n", cat, form)
				return nil
			})
		},
	}
}

func newLearnCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "learn <sample> [full|half]",
		Short: "Record a learned width preference",
		Long: "learn records the width of sample for its category. With a form\n" +
			"argument the form is recorded instead of the width sample is written in.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := variantCategoryOf(args[0])
			if err != nil {
				return err
			}
			return a.withStore(cmd.Context(), func(m *charform.Manager, _ *history.Store) error {
				if len(args) == 2 {
					form, err := script.ParseForm(args[1])
					if err != nil {
						return err
					}
					m.AddConversionRule(args[0], form)
				} else if !m.GuessAndAddConversionRule(args[0]) {
					return fmt.Errorf("cannot tell the width of %q", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (learned)\n", cat, m.GetPreferredForm(cat))
				return nil
			})
		},
	}
}

func newClearHistoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-history",
		Short: "Forget learned width preferences, keeping explicit rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(cmd.Context(), func(m *charform.Manager, st *history.Store) error {
				m.ClearHistory()
				return st.Clear(cmd.Context())
			})
		},
	}
}

func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Drop explicit rules and learned history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(cmd.Context(), func(m *charform.Manager, st *history.Store) error {
				m.SetDefaultRule()
				return st.Reset(cmd.Context())
			})
		},
	}
}

func variantCategoryOf(sample string) (script.Category, error) {
	cat := script.Classify(sample)
	if !cat.HasVariants() {
		return cat, fmt.Errorf("%q is %s, which has no width variants", sample, cat)
	}
	return cat, nil
}
