package main

import (
	"context"
	"fmt"
	"os"

	"shareit/internal/database"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"
)

type seedItem struct {
	models.Item `yaml:",inline"`
	OwnerEmail  string `yaml:"owner_email"`
}

type seedFile struct {
	Users []models.User `yaml:"users"`
	Items []seedItem    `yaml:"items"`
}

func loadSeed(path string) (*seedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return &seed, nil
}

// seedIfEmpty loads demo users and items into a fresh store. Items point at their
// owner by email.
func seedIfEmpty(ctx context.Context, db *database.DB, path string, logger *zerolog.Logger) error {
	if path == "" {
		return nil
	}

	empty, err := db.IsEmpty(ctx)
	if err != nil {
		return err
	}
	if !empty {
		logger.Info().Str("seed_path", path).Msg("store not empty, skipping seed")
		return nil
	}

	seed, err := loadSeed(path)
	if err != nil {
		logger.Error().Err(err).Str("seed_path", path).Msg("load seed")
		return err
	}

	owners := make(map[string]int64, len(seed.Users))
	for i := range seed.Users {
		u := seed.Users[i]
		u.ID = 0
		if err := db.CreateUser(ctx, &u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
		owners[u.Email] = u.ID
	}

	for i := range seed.Items {
		item := seed.Items[i].Item
		ownerID, ok := owners[seed.Items[i].OwnerEmail]
		if !ok {
			return fmt.Errorf("seed item %q: unknown owner %q", item.Name, seed.Items[i].OwnerEmail)
		}
		item.ID = 0
		item.OwnerID = ownerID
		item.RequestID = nil
		if err := db.CreateItem(ctx, &item); err != nil {
			return fmt.Errorf("seed item %q: %w", item.Name, err)
		}
	}

	logger.Info().Int("users", len(seed.Users)).Int("items", len(seed.Items)).Msg("store seeded")
	return nil
}
