package uow

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"court-reservation/internal/domain/resource"
	"court-reservation/internal/infra/readstore"
	"court-reservation/internal/infra/repository"
	sqlc "court-reservation/internal/infra/sqlc/generated"
	"court-reservation/internal/pkg/errs"
	"court-reservation/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
	pgErrCodeLockNotAvailable     = "55P03"

	maxTxRetries = 3
	retryBase    = 50 * time.Millisecond
	// lockTimeout bounds how long an acquirer queues on a resource row.
	lockTimeout = "5s"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
	q    *sqlc.Queries
	loc  *time.Location
}

func NewPostgresUoW(pool *pgxpool.Pool, q *sqlc.Queries, loc *time.Location) shared.UnitOfWork {
	return &PostgresUoW{
		pool: pool,
		q:    q,
		loc:  loc,
	}
}

// Within runs fn in a READ COMMITTED transaction. Exclusion comes from the
// explicit row locks the repositories take, not from the isolation level.
// Serialization failures, deadlocks and lock timeouts are retried with
// jittered backoff.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	var err error
	for attempt := range maxTxRetries + 1 {
		if attempt > 0 {
			wait := backoff(attempt)
			slog.Warn("retrying transaction",
				"attempt", attempt+1,
				"wait_ms", wait.Milliseconds(),
				"error", err.Error())
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}

		err = u.attempt(ctx, fn)
		if err == nil || !isRetryableError(err) {
			return err
		}
	}

	slog.Error("transaction failed after max retries",
		"attempts", maxTxRetries+1,
		"error", err.Error())
	return errs.Mark(err, errMaxRetriesExceeded)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{resourceStore: readstore.NewResourceReadStore(u.q, u.pool, u.loc)}
}

// attempt owns one transaction; keeping it in its own frame releases the
// connection before the next retry.
func (u *PostgresUoW) attempt(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) (err error) {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := pgxTx.Rollback(ctx); rbErr != nil && !errs.Is(rbErr, pgx.ErrTxClosed) {
			slog.Warn("rollback failed", "error", rbErr.Error())
		}
	}()

	if _, err = pgxTx.Exec(ctx, "SELECT set_config('lock_timeout', $1, true)", lockTimeout); err != nil {
		return err
	}

	if err = fn(ctx, &pgTx{dbtx: pgxTx, uow: u}); err != nil {
		return err
	}
	if err = pgxTx.Commit(ctx); err != nil {
		return errs.Mark(err, errTransactionCommit)
	}
	return nil
}

func backoff(attempt int) time.Duration {
	wait := retryBase << (attempt - 1)
	return wait + rand.N(wait/2+1)
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errs.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected, pgErrCodeLockNotAvailable:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx sqlc.DBTX
	uow  *PostgresUoW

	// Lazy-initialized repositories
	resourceRepo    shared.ResourceRepository
	reservationRepo shared.ReservationRepository
	eventRepo       shared.EventRepository
}

func (t *pgTx) Resources() shared.ResourceRepository {
	if t.resourceRepo == nil {
		t.resourceRepo = repository.NewResourceRepository(t.uow.q, t.dbtx, t.uow.loc)
	}
	return t.resourceRepo
}

func (t *pgTx) Reservations() shared.ReservationRepository {
	if t.reservationRepo == nil {
		t.reservationRepo = repository.NewReservationRepository(t.uow.q, t.dbtx, t.uow.loc)
	}
	return t.reservationRepo
}

func (t *pgTx) Events() shared.EventRepository {
	if t.eventRepo == nil {
		t.eventRepo = repository.NewEventRepository(t.uow.q, t.dbtx)
	}
	return t.eventRepo
}

type commandReads struct {
	resourceStore *readstore.ResourceReadStore
}

func (r *commandReads) ResourceByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	return r.resourceStore.FindByID(ctx, id)
}
