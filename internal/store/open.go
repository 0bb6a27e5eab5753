package store

import (
	"log"

	"gorm.io/gorm"

	"dormitory-services-backend/config"
	"dormitory-services-backend/internal/db"
)

// Backend is the store chosen at startup together with its name.
type Backend struct {
	Store Store
	Name  string
	db    *gorm.DB
}

// Close releases the database connection of a persistent backend.
func (b *Backend) Close() error {
	if b.db == nil {
		return nil
	}
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Open builds the backend selected by storage.driver. When the persistent
// database cannot be opened and fallback_to_memory is set, it degrades to the
// transient store instead of failing.
func Open(cfg *config.Config) (*Backend, error) {
	if cfg.Storage.Driver == config.DriverMemory {
		return &Backend{Store: NewMemoryStore(), Name: config.DriverMemory}, nil
	}

	gormDB, err := db.Init(cfg.Storage.Driver, &cfg.Database)
	if err != nil {
		if !cfg.Storage.FallbackToMemory {
			return nil, err
		}
		log.Printf("Warning: %s storage unavailable (%v); falling back to in-memory storage. Reservations will be lost on restart.",
			cfg.Storage.Driver, err)
		return &Backend{Store: NewMemoryStore(), Name: config.DriverMemory}, nil
	}

	return &Backend{Store: NewGormStore(gormDB), Name: cfg.Storage.Driver, db: gormDB}, nil
}
