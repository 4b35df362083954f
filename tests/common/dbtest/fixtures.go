//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// Seeded courts; ids match migrations/002_seed_courts.sql.
var (
	CourtA = uuid.MustParse("5b3c1f2e-8a41-4c1e-9d0a-000000000001")
	CourtB = uuid.MustParse("5b3c1f2e-8a41-4c1e-9d0a-000000000002")
	CourtC = uuid.MustParse("5b3c1f2e-8a41-4c1e-9d0a-000000000003")
	CourtD = uuid.MustParse("5b3c1f2e-8a41-4c1e-9d0a-000000000004")
)

type ResourceFixture struct {
	Name        string
	HourlyPrice string
	Status      string
	OpensAt     *string // "HH:MM"; nil means the default hours
	ClosesAt    *string
}

func CreateTestResource(t *testing.T, db DBLike, f ResourceFixture) uuid.UUID {
	t.Helper()

	if f.Status == "" {
		f.Status = "active"
	}
	if f.HourlyPrice == "" {
		f.HourlyPrice = "2000.00"
	}

	id := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO resources (id, name, hourly_price, status, opens_at, closes_at)
		VALUES ($1, $2, $3::text::numeric, $4, $5::text::time, $6::text::time)`,
		id, f.Name, f.HourlyPrice, f.Status, f.OpensAt, f.ClosesAt)
	require.NoError(t, err)
	return id
}

type ReservationFixture struct {
	ResourceID    uuid.UUID
	HolderID      uuid.UUID
	StartAt       time.Time
	DurationUnits int
	TotalPrice    string
	Status        string
	// held rows only
	HoldExpiresAt        *time.Time
	PaymentCooldownUntil *time.Time
	// confirmed rows only
	PaymentReference *string
}

// CreateTestReservation inserts a row directly, bypassing the lock manager.
// The exclusion constraint still applies.
func CreateTestReservation(t *testing.T, db DBLike, f ReservationFixture) uuid.UUID {
	t.Helper()

	if f.HolderID == uuid.Nil {
		f.HolderID = uuid.New()
	}
	if f.DurationUnits == 0 {
		f.DurationUnits = 1
	}
	if f.TotalPrice == "" {
		f.TotalPrice = "0.00"
	}
	if f.Status == "" {
		f.Status = "held"
	}
	if f.Status == "confirmed" && f.PaymentReference == nil {
		ref := "PAY-FIXTURE"
		f.PaymentReference = &ref
	}

	id := uuid.New()
	end := f.StartAt.Add(time.Duration(f.DurationUnits) * time.Hour)
	_, err := db.Exec(context.Background(), `
		INSERT INTO reservations (
			id, resource_id, holder_id, start_at, end_at, duration_units, total_price,
			status, payment_reference, hold_expires_at, payment_cooldown_until)
		VALUES ($1, $2, $3, $4, $5, $6, $7::text::numeric, $8, $9, $10, $11)`,
		id, f.ResourceID, f.HolderID, f.StartAt, end, f.DurationUnits, f.TotalPrice,
		f.Status, f.PaymentReference, f.HoldExpiresAt, f.PaymentCooldownUntil)
	require.NoError(t, err)
	return id
}

// ReservationStatus reads the stored status of a reservation.
func ReservationStatus(t *testing.T, db DBLike, id uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(), "SELECT status FROM reservations WHERE id = $1", id).Scan(&status)
	require.NoError(t, err)
	return status
}

// EventKinds lists outbox kinds for a reservation in insertion order.
func EventKinds(t *testing.T, db DBLike, reservationID uuid.UUID) []string {
	t.Helper()

	var kinds []string
	err := db.QueryRow(context.Background(), `
		SELECT COALESCE(array_agg(kind ORDER BY id), '{}')
		FROM reservation_events WHERE reservation_id = $1`, reservationID).Scan(&kinds)
	require.NoError(t, err)
	return kinds
}

// SeedReferenceData inserts the default courts.
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO resources (id, name, description, hourly_price, status, opens_at, closes_at) VALUES
		    ($1, 'Court A', 'Indoor hard court', 2000.00, 'active', NULL, NULL),
		    ($2, 'Court B', 'Indoor hard court', 2000.00, 'active', NULL, NULL),
		    ($3, 'Court C', 'Outdoor clay court', 1500.00, 'active', '09:00', '21:00'),
		    ($4, 'Court D', 'Outdoor clay court, lights until 20:00', 1500.00, 'active', '07:00', '20:00')
		ON CONFLICT (id) DO NOTHING;
	`, CourtA, CourtB, CourtC, CourtD)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('atlas_schema_revisions')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
