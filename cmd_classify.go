package main

import (
	"fmt"

	"japanesevariants/script"

	"github.com/spf13/cobra"
)

func newClassifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <text...>",
		Short: "Show the script category, width and preferred width of text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, st, err := a.openManager(cmd.Context())
			if err != nil {
				return err
			}
			if st != nil {
				defer st.Close()
			}
			out := cmd.OutOrStdout()
			for _, text := range args {
				info := script.Inspect(text)
				preferred := "-"
				if info.Category.HasVariants() {
					preferred = m.GetPreferredForm(info.Category).String()
				}
				fmt.Fprintf(out, "%s\t%s\t%s\t%s", text, info.Category, info.Form, preferred)
				if script.IsPlatformDependent(text) {
					fmt.Fprint(out, "\tplatform-dependent")
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}
