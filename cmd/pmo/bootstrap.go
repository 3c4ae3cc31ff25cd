package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rabindrakharel/pmo-core/internal/domain/entities"
	"github.com/rabindrakharel/pmo-core/internal/domain/services"
)

// bootstrapInstance registers an instance through the lifecycle
// bootstrap, translating the CLI's "type/id" parent notation.
func bootstrapInstance(ctx context.Context, d *Deps, entityType, entityID, name, code, parent, owner string) (*entities.InstanceRecord, error) {
	opts := services.BootstrapOptions{OwnerSubjectID: owner}

	if parent != "" {
		ref, err := parseRef(parent)
		if err != nil {
			return nil, err
		}
		opts.Parent = ref
	}

	rec, err := d.Lifecycle.HandleBootstrap(ctx, entityType, entityID, name, code, opts)
	if err != nil {
		return nil, fmt.Errorf("registering instance: %w", err)
	}
	return rec, nil
}

// parseRef parses "type/id" into a ParentRef.
func parseRef(s string) (*entities.ParentRef, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("invalid reference %q: expected type/id", s)
	}
	return &entities.ParentRef{ParentType: parts[0], ParentID: parts[1]}, nil
}
