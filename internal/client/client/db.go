package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/simpletemp/internal/client/docstore"
	"github.com/dmitrijs2005/simpletemp/internal/client/migrations"
	"github.com/dmitrijs2005/simpletemp/internal/client/repositories/apps"
	"github.com/dmitrijs2005/simpletemp/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/simpletemp/internal/client/repositories/profiles"
	"github.com/dmitrijs2005/simpletemp/internal/client/repositories/reports"
	"github.com/dmitrijs2005/simpletemp/internal/filex"
	"github.com/dmitrijs2005/simpletemp/internal/logging"

	_ "modernc.org/sqlite"
)

const (
	EngineSQLite = "sqlite"
	EngineBadger = "badger"
)

// Repositories is everything backed by the local database.
type Repositories struct {
	Documents docstore.Store
	Metadata  metadata.Repository
	Apps      apps.Repository
	Profiles  profiles.Repository
	Reports   reports.Repository
}

// Close releases the underlying database.
func (r *Repositories) Close() error {
	return r.Documents.Close()
}

// RunMigrations applies the embedded SQLite migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrations.Up(ctx, db)
}

// OpenSQLite opens the SQLite file at path and migrates it.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		return nil, errors.Join(err, db.Close())
	}
	return db, nil
}

// InitDatabase opens the document store for engine at path and builds the
// repositories on top of it. For badger, path is a directory.
func InitDatabase(ctx context.Context, engine, path string, log logging.Logger) (*Repositories, error) {
	var (
		store docstore.Store
		meta  metadata.Repository
	)

	switch engine {
	case EngineSQLite, "":
		if err := filex.EnsureParentDir(path); err != nil {
			return nil, err
		}
		db, err := OpenSQLite(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("sqlite open error: %w", err)
		}
		store = docstore.NewSQLiteStore(db)
		meta = metadata.NewSQLiteRepository(db)

	case EngineBadger:
		if path != "" {
			if err := filex.EnsureDir(path); err != nil {
				return nil, err
			}
		}
		db, err := docstore.OpenBadger(path)
		if err != nil {
			return nil, err
		}
		bs, err := docstore.NewBadgerStore(db)
		if err != nil {
			return nil, errors.Join(err, db.Close())
		}
		store = bs
		meta = metadata.NewBadgerRepository(db)

	default:
		return nil, fmt.Errorf("unknown store engine %q", engine)
	}

	return &Repositories{
		Documents: store,
		Metadata:  meta,
		Apps:      apps.NewDocumentRepository(store, log.With("component", "apps")),
		Profiles:  profiles.NewDocumentRepository(store),
		Reports:   reports.NewDocumentRepository(store),
	}, nil
}
