package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGrantCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grant <subject> <type/id> <level>",
		Short: "Grant a permission level (monotonic, never a downgrade)",
		Long:  "Grant a permission level. Use the id ALL for type-level scope; CREATE is only grantable at type-level scope.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(d *Deps) error {
				ref, err := parseRef(args[1])
				if err != nil {
					return err
				}

				grant, err := d.Permission.HandleGrant(ctx, args[0], ref.ParentType, ref.ParentID, args[2])
				if err != nil {
					return fmt.Errorf("granting: %w", err)
				}
				fmt.Printf("%s holds %s on %s/%s\n",
					grant.SubjectID, grant.Level, grant.EntityType, grant.EntityID)
				return nil
			})
		},
	}
}

func newRevokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revoke <subject> <type/id>",
		Short: "Remove all grants for a subject on an instance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(d *Deps) error {
				ref, err := parseRef(args[1])
				if err != nil {
					return err
				}

				if err := d.Permission.HandleRevoke(ctx, args[0], ref.ParentType, ref.ParentID); err != nil {
					return fmt.Errorf("revoking: %w", err)
				}
				fmt.Printf("Revoked grants for %s on %s/%s\n", args[0], ref.ParentType, ref.ParentID)
				return nil
			})
		},
	}
}
