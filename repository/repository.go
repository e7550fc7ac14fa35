// Package repository persists the game world and sessions in Postgres through
// gorm, implementing the engine's store contract. All session mutations run
// inside database transactions with the game row locked for update.
package repository

import (
	"errors"
	"fmt"
	"time"

	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jdwd40/sorstar-cli-sub000/engine"
	"github.com/jdwd40/sorstar-cli-sub000/repository/models"
)

// PostgreSQL error codes as constants
const (
	// Class 23 — Integrity Constraint Violation
	PgErrForeignKeyViolation = "23503" // foreign_key_violation
	PgErrUniqueViolation     = "23505" // unique_violation
	PgErrCheckViolation      = "23514" // check_violation
	PgErrNotNullViolation    = "23502" // not_null_violation

	// Class 40 — Transaction Rollback
	PgErrSerializationFailure = "40001" // serialization_failure
	PgErrTransactionRollback  = "40000" // transaction_rollback

	// Class 08 — Connection Exception
	PgErrConnectionException = "08000" // connection_exception
	PgErrConnectionFailure   = "08006" // connection_failure
)

const (
	connectAttempts = 10
	connectBackoff  = 2 * time.Second
)

// Repository wraps the gorm handle. The same type doubles as the transactional
// store handed to engine operations inside Atomic.
type Repository struct {
	db     *gorm.DB
	logger cmtlog.Logger
}

// NewRepository creates a repository; call ConnectDB before use.
func NewRepository(logger cmtlog.Logger) *Repository {
	return &Repository{logger: logger}
}

// ConnectDB opens the Postgres connection, retrying while the database comes
// up.
func (r *Repository) ConnectDB(dsn string) error {
	var lastErr error
	for i := range connectAttempts {
		db, err := gorm.Open(postgres.Open(dsn))
		if err == nil {
			r.db = db
			r.logger.Info("Connected to Postgres")
			return nil
		}
		lastErr = err
		r.logger.Info("Connection attempt failed", "attempt", i+1, "err", err)
		time.Sleep(connectBackoff)
	}
	return fmt.Errorf("connecting to postgres: %w", lastErr)
}

// Migrate creates or updates the relational schema.
func (r *Repository) Migrate() error {
	err := r.db.AutoMigrate(
		&models.User{},
		&models.Ship{},
		&models.Planet{},
		&models.Commodity{},
		&models.Market{},
		&models.Game{},
		&models.Cargo{},
		&models.Transaction{},
		&models.FuelTransaction{},
	)
	if err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	r.logger.Info("Database migration completed")
	return nil
}

// translate maps gorm and driver errors onto the store contract: missing rows
// become engine.ErrNotFound, Postgres errors keep their SQLSTATE in the
// message for the logs.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return engine.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("postgres error %s: %s", pgErr.Code, pgErr.Message)
	}
	return err
}
