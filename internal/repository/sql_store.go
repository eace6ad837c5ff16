package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nft-auction/internal/auctionerrors"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// KVRecord is one row of the kv_records table
type KVRecord struct {
	Key       string `gorm:"primaryKey;size:128"`
	Value     []byte `gorm:"type:bytea;not null"`
	UpdatedAt time.Time
}

// TableName pins the table name
func (KVRecord) TableName() string {
	return "kv_records"
}

// SQLStore keeps records in a single Postgres table through gorm
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore opens a Postgres connection and migrates kv_records
func NewSQLStore(dsn string) (*SQLStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewSQLStoreFromDB(db)
}

// NewSQLStoreFromDB wraps an open gorm handle and migrates kv_records
func NewSQLStoreFromDB(db *gorm.DB) (*SQLStore, error) {
	if err := db.AutoMigrate(&KVRecord{}); err != nil {
		return nil, fmt.Errorf("migrate kv_records: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// Load selects the row for key
func (s *SQLStore) Load(ctx context.Context, key string) ([]byte, error) {
	var rec KVRecord
	err := s.db.WithContext(ctx).First(&rec, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load %s: %w", key, auctionerrors.ErrRecordNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return rec.Value, nil
}

// Save upserts the row for key
func (s *SQLStore) Save(ctx context.Context, key string, value []byte) error {
	rec := KVRecord{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Delete removes the row for key
func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Delete(&KVRecord{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying connection pool
func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
