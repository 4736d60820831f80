// Package storage is the relational mirror of contract state plus the
// identity records. Uniqueness rules (wallet, cedula, attestation
// triple, on-chain election id) live in the schema itself so that
// concurrent requests race on a database constraint, not on
// application-level checks.
package storage

import (
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Randielfi/Sistema-Votacion-Blockchain/models"
)

// Store wraps the database handle. All services go through it; nothing
// else touches gorm directly, and not-found lookups come back as
// (nil, nil) so callers stay free of driver error types.
type Store struct {
	db *gorm.DB
}

// Open connects to the sqlite database and runs migrations.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	if err := db.AutoMigrate(
		&models.Voter{},
		&models.Candidate{},
		&models.Election{},
		&models.ElectionCandidate{},
		&models.Vote{},
		&models.ElectionSignature{},
	); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// IsDuplicate reports whether an insert failed on a uniqueness
// constraint, which is how concurrent duplicate registrations and
// attestations lose the race.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func notFoundAsNil(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
