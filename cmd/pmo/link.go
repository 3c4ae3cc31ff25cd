package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLinkCmd() *cobra.Command {
	var label string
	cmd := &cobra.Command{
		Use:   "link <parent-type/parent-id> <child-type/child-id>",
		Short: "Link a child under a parent (idempotent)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(d *Deps) error {
				parent, err := parseRef(args[0])
				if err != nil {
					return err
				}
				child, err := parseRef(args[1])
				if err != nil {
					return err
				}

				edge, err := d.Graph.HandleLink(ctx, parent.ParentType, parent.ParentID, child.ParentType, child.ParentID, label)
				if err != nil {
					return fmt.Errorf("linking: %w", err)
				}
				fmt.Printf("Edge %s: %s/%s -[%s]-> %s/%s\n",
					edge.ID, edge.ParentType, edge.ParentID, edge.Label, edge.ChildType, edge.ChildID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&label, "label", "", "Relationship label (default \"contains\")")
	return cmd
}

func newUnlinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlink <edge-id>",
		Short: "Remove an edge by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(d *Deps) error {
				if err := d.Graph.HandleUnlink(ctx, args[0]); err != nil {
					return fmt.Errorf("unlinking: %w", err)
				}
				fmt.Printf("Removed edge %s\n", args[0])
				return nil
			})
		},
	}
}
