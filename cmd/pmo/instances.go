package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newInstancesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instances",
		Short: "Manage the instance registry",
	}

	cmd.AddCommand(newInstancesRegisterCmd())
	cmd.AddCommand(newInstancesUpdateCmd())
	cmd.AddCommand(newInstancesListCmd())
	cmd.AddCommand(newInstancesRemoveCmd())

	return cmd
}

func newInstancesRegisterCmd() *cobra.Command {
	var name, code string
	var parent, owner string
	cmd := &cobra.Command{
		Use:   "register <type> <id>",
		Short: "Register an instance (idempotent)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(d *Deps) error {
				rec, err := bootstrapInstance(ctx, d, args[0], args[1], name, code, parent, owner)
				if err != nil {
					return err
				}
				fmt.Printf("Registered %s/%s (%s)\n", rec.EntityType, rec.EntityID, rec.DisplayName)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	cmd.Flags().StringVar(&code, "code", "", "Display code")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent as type/id, links the new instance beneath it")
	cmd.Flags().StringVar(&owner, "owner", "", "Subject to grant OWNER on the new instance")
	return cmd
}

func newInstancesUpdateCmd() *cobra.Command {
	var name, code string
	cmd := &cobra.Command{
		Use:   "update <type> <id>",
		Short: "Update display fields of an instance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(d *Deps) error {
				rec, err := d.Registry.HandleUpdate(ctx, args[0], args[1], name, code)
				if err != nil {
					return fmt.Errorf("updating instance: %w", err)
				}
				fmt.Printf("Updated %s/%s (%s)\n", rec.EntityType, rec.EntityID, rec.DisplayName)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New display name")
	cmd.Flags().StringVar(&code, "code", "", "New display code")
	return cmd
}

func newInstancesListCmd() *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "list <type>",
		Short: "List registered instances of a type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(d *Deps) error {
				records, err := d.Registry.HandleList(ctx, args[0], limit, offset)
				if err != nil {
					return fmt.Errorf("listing instances: %w", err)
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tCODE")
				for _, rec := range records {
					fmt.Fprintf(w, "%s\t%s\t%s\n", rec.EntityID, rec.DisplayName, rec.DisplayCode)
				}
				return w.Flush()
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum results")
	cmd.Flags().IntVar(&offset, "offset", 0, "Results to skip")
	return cmd
}

func newInstancesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <type> <id>",
		Short: "Remove a registry record (edges and grants untouched)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(d *Deps) error {
				if err := d.Registry.HandleRemove(ctx, args[0], args[1]); err != nil {
					return fmt.Errorf("removing instance: %w", err)
				}
				fmt.Printf("Removed %s/%s\n", args[0], args[1])
				return nil
			})
		},
	}
}
