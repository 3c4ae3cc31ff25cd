package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rabindrakharel/pmo-core/internal/domain/entities"
	"github.com/rabindrakharel/pmo-core/internal/domain/services"
)

func newDeleteCmd() *cobra.Command {
	var cascade, keepGrants, skipAuth bool
	var subject string
	cmd := &cobra.Command{
		Use:   "delete <type/id>",
		Short: "Run the orchestrated delete of an instance",
		Long: "Deregister the instance, remove its edges and (by default) its grants, " +
			"optionally cascading to linked children first.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(d *Deps) error {
				ref, err := parseRef(args[0])
				if err != nil {
					return err
				}

				opts := services.DeleteOptions{
					CascadeChildren:        cascade,
					RemoveGrants:           !keepGrants,
					SkipAuthorizationCheck: skipAuth,
					DisposePrimary: func(_ context.Context, entityType, entityID string) error {
						// The engine owns no primary tables; the CLI
						// just reports where disposal would happen.
						fmt.Printf("primary record disposal: %s/%s\n", entityType, entityID)
						return nil
					},
				}

				result, err := d.Lifecycle.HandleDelete(ctx, subject, ref.ParentType, ref.ParentID, opts)
				var partial *entities.PartialDeleteError
				if errors.As(err, &partial) {
					printDeleteResult(partial.Result)
					return fmt.Errorf("partial delete: %w", err)
				}
				if err != nil {
					return fmt.Errorf("deleting: %w", err)
				}

				printDeleteResult(result)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "Acting subject id (required unless --skip-auth)")
	cmd.Flags().BoolVar(&cascade, "cascade", false, "Recursively delete linked children")
	cmd.Flags().BoolVar(&keepGrants, "keep-grants", false, "Leave permission grants in place")
	cmd.Flags().BoolVar(&skipAuth, "skip-auth", false, "Bypass the DELETE permission check")
	return cmd
}

func printDeleteResult(r *entities.DeleteResult) {
	fmt.Printf("deregistered: %d\nedges removed: %d\ngrants revoked: %d\ncascaded children: %d\nprimary disposed: %v\n",
		r.Deregistered, r.EdgesRemoved, r.GrantsRevoked, r.CascadeDeleted, r.PrimaryDisposed)
}
