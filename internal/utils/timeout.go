package utils

import (
	"context"
	"time"
)

// Every storage call runs under this bound so no cart operation can block
// indefinitely; an expired deadline surfaces as a transient error.
const DefaultDBTimeout = 5 * time.Second

func WithDBTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, DefaultDBTimeout)
}
