package payment

import (
	"time"

	"github.com/shopspring/decimal"

	"venuebooking/internal/apperr"
)

type CurrencyScale int32

const DefaultCurrencyScale CurrencyScale = 2

// Quote prices a booking window at hourlyRate.
//
// Rules:
// - Duration is billed per started minute, converted to fractional hours.
// - The result is rounded to scale (half away from zero).
// - A zero rate yields a zero quote; callers decide whether that is acceptable.
func Quote(hourlyRate decimal.Decimal, start, end time.Time, scale CurrencyScale) (decimal.Decimal, error) {
	if hourlyRate.IsNegative() {
		return decimal.Zero, apperr.Validation("RATE_INVALID", "hourly rate must be >= 0")
	}
	if !start.Before(end) {
		return decimal.Zero, apperr.Validation("TIME_WINDOW_INVALID", "start time must be before end time")
	}
	if scale <= 0 {
		scale = DefaultCurrencyScale
	}

	d := end.Sub(start)
	minutes := int64(d / time.Minute)
	if d%time.Minute != 0 {
		minutes++
	}

	hours := decimal.NewFromInt(minutes).Div(decimal.NewFromInt(60))
	return hourlyRate.Mul(hours).Round(int32(scale)), nil
}
