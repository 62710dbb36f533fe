package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"elampillai/internal/app/shops"
)

// bootstrapShops loads the seed file into an empty directory.
func bootstrapShops(ctx context.Context, editor *shops.Editor, seedFile string, logger zerolog.Logger) error {
	if seedFile == "" {
		return nil
	}

	drafts, err := shops.LoadSeedFile(seedFile)
	if err != nil {
		return fmt.Errorf("bootstrap shops: %w", err)
	}

	added, err := editor.Seed(ctx, drafts)
	if err != nil {
		return fmt.Errorf("bootstrap shops: %w", err)
	}
	if added > 0 {
		logger.Info().Int("shops", added).Str("file", seedFile).Msg("seeded shop directory")
	}
	return nil
}
