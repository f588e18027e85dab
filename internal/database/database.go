package database

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// AddressRecord is one row of the backend address index, the portal's
// own searchable copy of known addresses.
type AddressRecord struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	AdresseComplete string  `json:"adresse_complete"`
	Normalized      string  `gorm:"index" json:"-"`
	StreetNumber    string  `json:"street_number"`
	StreetType      string  `json:"street_type"`
	StreetName      string  `json:"street_name"`
	Commune         string  `json:"commune"`
	CodePostal      string  `json:"codepostal"`
	Lon             float64 `json:"lon"`
	Lat             float64 `json:"lat"`

	// Mutations keeps the raw sale payload attached to the address.
	Mutations string `json:"mutations"`
}

type Database struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewDatabase(dbPath string, logger *logrus.Logger) (*Database, error) {
	if logger == nil {
		logger = logrus.New()
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Database{db: db, logger: logger}, nil
}

// RunMigrations creates or updates the address index schema.
func (d *Database) RunMigrations() error {
	if err := d.db.AutoMigrate(&AddressRecord{}); err != nil {
		return fmt.Errorf("failed to migrate address index: %w", err)
	}
	return nil
}

// SearchAddresses runs the full-text lookup backing the suggestion
// engine. The query is matched token by token against the normalized
// address column so word order does not matter.
func (d *Database) SearchAddresses(normalizedQuery string, limit int) ([]AddressRecord, error) {
	tx := d.db.Model(&AddressRecord{})
	for _, token := range strings.Fields(normalizedQuery) {
		tx = tx.Where("normalized LIKE ?", "%"+token+"%")
	}

	var records []AddressRecord
	if err := tx.Limit(limit).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("address search failed: %w", err)
	}
	return records, nil
}

// UpsertAddresses inserts a batch of address rows inside a single
// transaction.
func (d *Database) UpsertAddresses(records []*AddressRecord) error {
	if len(records) == 0 {
		return nil
	}

	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.CreateInBatches(records, 100).Error; err != nil {
			return fmt.Errorf("failed to upsert address batch: %w", err)
		}
		return nil
	})
}

// GetDB exposes the underlying gorm handle.
func (d *Database) GetDB() *gorm.DB {
	return d.db
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
