package sales

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Sale is the row stored in the sales table.
type Sale struct {
	ID      uint    `gorm:"primaryKey"`
	Country string  `gorm:"not null"`
	Sales   float64 `gorm:"not null"`
	Product string  `gorm:"not null"`
}

// SQLite reads records from the sales table of a SQLite database,
// in insertion order.
type SQLite struct {
	db *gorm.DB
}

// OpenSQLite opens (creating if needed) the database at path
// and migrates the sales table.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("sales: opening %s: %w", path, err)
	}
	if err := db.AutoMigrate(&Sale{}); err != nil {
		return nil, fmt.Errorf("sales: migrating %s: %w", path, err)
	}
	return &SQLite{db: db}, nil
}

// Records implements Source.
func (s *SQLite) Records(ctx context.Context) ([]Record, error) {
	var rows []Sale
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("sales: querying records: %w", err)
	}
	out := make([]Record, len(rows))
	for i, row := range rows {
		out[i] = Record{Category: row.Country, Value: row.Sales, Group: row.Product}
	}
	return out, nil
}

// Seed replaces the content of the sales table by records.
func (s *SQLite) Seed(ctx context.Context, records []Record) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&Sale{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		rows := make([]Sale, len(records))
		for i, r := range records {
			rows[i] = Sale{Country: r.Category, Sales: r.Value, Product: r.Group}
		}
		return tx.Create(&rows).Error
	})
}

// Close releases the underlying connection.
func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
