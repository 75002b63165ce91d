package usecase

import (
	"context"
	"time"
)

// withTimeout applies the configured timeout. A zero timeout leaves ctx without a deadline.
func withTimeout(ctx context.Context, to time.Duration) (context.Context, context.CancelFunc) {
	if to <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, to)
}
