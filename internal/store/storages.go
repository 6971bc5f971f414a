package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/fx-desk/internal/config"
	"github.com/MKhiriev/fx-desk/internal/logger"
)

// ClientStorages groups the client-side storage backends.
type ClientStorages struct {
	// Local holds the session tokens and user objects.
	Local LocalStorage

	db *DB
}

// NewClientStorages opens the SQLite file named in cfg, applies migrations
// and wires the local key/value store on top of it.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Local: NewSQLiteLocalStorage(db, log),
		db:    db,
	}, nil
}

// Close releases the database connection, if any.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
