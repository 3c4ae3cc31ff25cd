package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newTypesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types",
		Short: "Manage entity types",
		Long:  "List, add, or deactivate entity types.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTypesList(cmd, false)
		},
	}

	cmd.AddCommand(newTypesListCmd())
	cmd.AddCommand(newTypesAddCmd())
	cmd.AddCommand(newTypesDeactivateCmd())
	cmd.AddCommand(newTypesParentsCmd())

	return cmd
}

func newTypesListCmd() *cobra.Command {
	var includeInactive bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entity types",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTypesList(cmd, includeInactive)
		},
	}
	cmd.Flags().BoolVar(&includeInactive, "all", false, "Include inactive types")
	return cmd
}

func runTypesList(cmd *cobra.Command, includeInactive bool) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		types, err := d.Catalog.HandleList(ctx, includeInactive)
		if err != nil {
			return fmt.Errorf("listing types: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tLABEL\tCHILDREN\tACTIVE")
		for _, et := range types {
			fmt.Fprintf(w, "%s\t%s\t%s\t%v\n",
				et.Code, et.Label, strings.Join(et.AllowedChildCodes, ","), et.Active)
		}
		return w.Flush()
	})
}

func newTypesAddCmd() *cobra.Command {
	var label, icon string
	var children []string
	cmd := &cobra.Command{
		Use:   "add <code>",
		Short: "Add or update an entity type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(d *Deps) error {
				if err := d.Catalog.HandleSave(ctx, args[0], label, icon, children); err != nil {
					return fmt.Errorf("saving type: %w", err)
				}
				fmt.Printf("Saved entity type %q\n", args[0])
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&label, "label", "", "Display label (required)")
	cmd.Flags().StringVar(&icon, "icon", "", "Icon name")
	cmd.Flags().StringSliceVar(&children, "children", nil, "Allowed child type codes")
	return cmd
}

func newTypesDeactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <code>",
		Short: "Deactivate an entity type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(d *Deps) error {
				if err := d.Catalog.HandleDeactivate(ctx, args[0]); err != nil {
					return fmt.Errorf("deactivating type: %w", err)
				}
				fmt.Printf("Deactivated entity type %q\n", args[0])
				return nil
			})
		},
	}
}

func newTypesParentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parents <code>",
		Short: "Show types that allow this type as a child",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(d *Deps) error {
				parents, err := d.Catalog.HandleParents(ctx, args[0])
				if err != nil {
					return fmt.Errorf("resolving parents: %w", err)
				}
				for _, code := range parents {
					fmt.Println(code)
				}
				return nil
			})
		},
	}
}
