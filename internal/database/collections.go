package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
)

// Collections are the collections the API serves. MongoDB creates a
// collection lazily on first insert, but creating them at startup makes
// an empty deployment list them and lets list endpoints hit a real
// collection from the first request.
var Collections = []string{"skills", "projects", "blogs"}

// EnsureCollections creates any missing collection from names.
//
// Behavior:
//   - List existing collection names
//   - Create the missing ones
//   - Log whether the database was already up to date
func EnsureCollections(ctx context.Context, logger *zerolog.Logger, db *Database, names []string) error {
	existing, err := db.DB.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("listing collections: %w", err)
	}

	missing := missingCollections(existing, names)
	for _, name := range missing {
		if err := db.DB.CreateCollection(ctx, name); err != nil {
			return fmt.Errorf("creating collection %s: %w", name, err)
		}
	}

	if len(missing) == 0 {
		logger.Info().Strs("collections", names).Msg("database collections up to date")
	} else {
		logger.Info().Strs("created", missing).Msg("created database collections")
	}
	return nil
}

// missingCollections returns the entries of want absent from existing,
// in want's order.
func missingCollections(existing, want []string) []string {
	have := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		have[name] = struct{}{}
	}

	var missing []string
	for _, name := range want {
		if _, ok := have[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
