package store

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

const insertBatchSize = 200

// GormStore keeps each collection in the table of the same name.
type GormStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewGormStore(db *gorm.DB, logger *slog.Logger) *GormStore {
	return &GormStore{db: db, logger: logger}
}

func (s *GormStore) LoadAll(ctx context.Context, c Collection, dest any) error {
	if err := checkCollection(c); err != nil {
		return err
	}

	table := string(c)
	if !s.db.WithContext(ctx).Migrator().HasTable(table) {
		s.logger.Debug("collection table missing, loading empty", "collection", table)
		return nil
	}

	if err := s.db.WithContext(ctx).Table(table).Order("id").Find(dest).Error; err != nil {
		return fmt.Errorf("loading %s: %w", table, err)
	}
	return nil
}

func (s *GormStore) SaveAll(ctx context.Context, c Collection, records any) error {
	if err := checkCollection(c); err != nil {
		return err
	}
	n, err := sliceLen(records)
	if err != nil {
		return err
	}

	table := string(c)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// table comes from the fixed Collections list
		if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		return tx.Table(table).CreateInBatches(addressable(records), insertBatchSize).Error
	})
	if err != nil {
		return fmt.Errorf("saving %s: %w", table, err)
	}

	s.logger.Debug("saved collection", "collection", table, "records", n)
	return nil
}
