package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [LANGUAGE...]",
		Short: "Validate the classification tables of the languages",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if len(names) == 0 {
				names = a.reg.Names()
			}
			var errs []error
			for _, name := range names {
				l, err := a.reg.Lookup(name)
				if err == nil {
					err = l.Highlighter.Validate()
				}
				if err != nil {
					errs = append(errs, err)
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", name, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok   %s %s\n", l.Name, strings.Join(l.Extensions, " "))
			}
			return errors.Join(errs...)
		},
	}
}
