package pgconv

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

var ErrInvalidNumericValue = errors.New("invalid numeric text value")

func StringPtrFromPgtype(pt pgtype.Text) *string {
	if !pt.Valid {
		return nil
	}
	return &pt.String
}

func StringPtrToPgtype(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func TimePtrFromPgtype(pt pgtype.Timestamptz) *time.Time {
	if !pt.Valid {
		return nil
	}
	t := pt.Time
	return &t
}

func TimeToPgtype(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func TimePtrToPgtype(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{Valid: false}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}

// Numeric columns are selected as text so no precision is lost on the way to decimal.
func DecimalFromText(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidNumericValue
	}
	return d, nil
}

func DecimalToText(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// MinutesFromPgtime returns minutes since midnight of a TIME column, nil when NULL.
func MinutesFromPgtime(pt pgtype.Time) *int {
	if !pt.Valid {
		return nil
	}
	m := int(pt.Microseconds / int64(time.Minute/time.Microsecond))
	return &m
}

func MinutesToPgtime(minutes *int) pgtype.Time {
	if minutes == nil {
		return pgtype.Time{Valid: false}
	}
	return pgtype.Time{Microseconds: int64(*minutes) * int64(time.Minute/time.Microsecond), Valid: true}
}

// IsNoRows checks if the error is a "no rows" error from either sql or pgx
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}
