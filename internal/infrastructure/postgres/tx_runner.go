package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sosmedical/clubsos-api/internal/application/onboarding"
	"github.com/sosmedical/clubsos-api/internal/domain/repository"
)

// Asegura que TxRunner implementa onboarding.TxRunner.
var _ onboarding.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Lo usa la finalización del onboarding para que la
// creación del miembro y la limpieza del asistente sean atómicas.
func (r *TxRunner) Run(ctx context.Context, fn func(
	miembroRepo repository.MiembroRepository,
	estadoRepo repository.OnboardingRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	miembroRepo := NewMiembroRepository(tx)
	estadoRepo := NewOnboardingRepository(tx)

	if err := fn(miembroRepo, estadoRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
