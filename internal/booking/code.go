package booking

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// FormatCode renders BK-YYYYMM-NNNN. Sequences past 9999 keep all digits.
func FormatCode(period string, seq int) string {
	return fmt.Sprintf("BK-%s-%04d", period, seq)
}

// NextCode allocates the next code for the current UTC month. The month is
// read from the transaction clock, the same NOW() that stamps created_at on
// the inserted booking. The counter row stays locked until tx ends, so
// concurrent creations get distinct sequences.
func NextCode(ctx context.Context, tx pgx.Tx) (string, error) {
	const q = `
INSERT INTO booking_code_counters (period, last_value)
VALUES (to_char(NOW() AT TIME ZONE 'UTC', 'YYYYMM'), 1)
ON CONFLICT (period) DO UPDATE SET last_value = booking_code_counters.last_value + 1
RETURNING period, last_value
`
	var (
		period string
		seq    int
	)
	if err := tx.QueryRow(ctx, q).Scan(&period, &seq); err != nil {
		return "", err
	}
	return FormatCode(period, seq), nil
}
