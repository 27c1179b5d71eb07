package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/omniafit/omnia-backend/internal/pkg/logger"
)

// TxRepositories bundles repositories bound to one open transaction.
type TxRepositories struct {
	Slots       SlotRepository
	Classes     ClassRepository
	Instructors InstructorRepository
}

// TxManager runs multi-statement operations inside a single transaction.
// Instructor binding and cascade deletion must never partially apply.
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}

// PgxTxManager is the pgxpool-backed TxManager.
type PgxTxManager struct {
	pool *pgxpool.Pool
}

// NewPgxTxManager creates a transaction manager over the shared pool.
func NewPgxTxManager(pool *pgxpool.Pool) *PgxTxManager {
	return &PgxTxManager{pool: pool}
}

// WithTx begins a transaction, hands tx-bound repositories to fn, and
// commits on success. Any error from fn rolls the whole unit back.
func (m *PgxTxManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	repos := TxRepositories{
		Slots:       NewPostgresSlotRepository(tx),
		Classes:     NewPostgresClassRepository(tx),
		Instructors: NewPostgresInstructorRepository(tx),
	}

	if err := fn(ctx, repos); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			logger.Error().Err(rbErr).Msg("Failed to rollback transaction")
			return fmt.Errorf("error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
