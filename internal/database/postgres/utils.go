package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/barovia-dm/tracker/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// textToStr converts a pgtype.Text to a plain string, empty when NULL.
func textToStr(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}
	return t.String
}

// strToText converts a string to pgtype.Text, NULL when empty.
func strToText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

// ptrToText converts a string pointer to pgtype.Text, NULL when nil.
func ptrToText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: *s, Valid: true}
}

// ptrToInt4 converts an int pointer to pgtype.Int4, NULL when nil.
func ptrToInt4(i *int) pgtype.Int4 {
	if i == nil {
		return pgtype.Int4{Valid: false}
	}
	return pgtype.Int4{Int32: int32(*i), Valid: true}
}

// boolPtrToInt4 converts an optional bool to the 0/1 integer convention the
// schema uses for flags, NULL when nil.
func boolPtrToInt4(b *bool) pgtype.Int4 {
	if b == nil {
		return pgtype.Int4{Valid: false}
	}
	v := int32(0)
	if *b {
		v = 1
	}
	return pgtype.Int4{Int32: v, Valid: true}
}
