package events

import (
	"context"

	"go.uber.org/zap"

	"venuebooking/internal/logger"
)

// Emit publishes e and logs failures. The state change has already been
// committed, so a broker outage must not fail the request.
func Emit(ctx context.Context, p Publisher, e Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, e); err != nil {
		logger.WithContext(ctx).Warn("event publish failed",
			zap.String("type", e.Type),
			zap.String("booking_id", e.BookingID),
			zap.Error(err),
		)
	}
}
