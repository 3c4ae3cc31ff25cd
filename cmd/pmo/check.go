package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <subject> <type/id> <level>",
		Short: "Check whether a subject reaches a permission level",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(d *Deps) error {
				ref, err := parseRef(args[1])
				if err != nil {
					return err
				}

				ok, err := d.Permission.HandleCheck(ctx, args[0], ref.ParentType, ref.ParentID, args[2])
				if err != nil {
					return fmt.Errorf("checking: %w", err)
				}
				if ok {
					fmt.Println("allowed")
				} else {
					fmt.Println("denied")
				}
				return nil
			})
		},
	}
}

func newAllowedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "allowed <subject> <type> <level>",
		Short: "Show the listing predicate for a subject, type and level",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(d *Deps) error {
				pred, err := d.Permission.HandleWhere(ctx, args[0], args[1], args[2])
				if err != nil {
					return fmt.Errorf("building predicate: %w", err)
				}

				clause, params := pred.SQL("entity_id")
				values := make([]string, len(params))
				for i, p := range params {
					values[i] = fmt.Sprintf("%v", p)
				}
				fmt.Printf("%s\n", clause)
				if len(values) > 0 {
					fmt.Printf("params: %s\n", strings.Join(values, ", "))
				}
				return nil
			})
		},
	}
}
