package cmd

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Cleaner removes expired rows and reports how many went.
type Cleaner interface {
	CleanExpired(ctx context.Context) (int64, error)
}

// TokenJanitor purges expired blacklist entries every interval until ctx is
// done.
func TokenJanitor(ctx context.Context, cleaner Cleaner, interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := cleaner.CleanExpired(ctx)
			if err != nil {
				logger.Error("Failed to clean revoked tokens", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Info("Cleaned revoked tokens", zap.Int64("count", n))
			}
		}
	}
}
