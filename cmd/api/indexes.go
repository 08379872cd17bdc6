package main

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	mongodb "github.com/artkulinaria/staffing-backoffice/internal/infrastructure/db/mongo"
)

// ensureIndexes creates all collection indexes up front so unique
// constraints (login, token value, zone grants) hold from the first write.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	type indexed interface {
		EnsureIndexes(ctx context.Context) error
	}

	for name, repo := range map[string]indexed{
		"hiring_cases":        mongodb.NewCaseRepository(db),
		"link_tokens":         mongodb.NewTokenRepository(db),
		"employee_identities": mongodb.NewIdentityRepository(db),
		"audit_entries":       mongodb.NewAuditRepository(db),
		"zone_accesses":       mongodb.NewAccessRepository(db),
	} {
		if err := repo.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
