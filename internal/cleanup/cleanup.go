package cleanup

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// ExpiredDeleter removes rows whose expiration lies before the given time.
type ExpiredDeleter interface {
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// Run sweeps expired pending registrations on the given interval until the
// context is cancelled. The registration and verification paths already treat
// expired rows as absent; the sweeper only keeps the table from growing.
func Run(ctx context.Context, repo ExpiredDeleter, interval time.Duration, log *logrus.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := repo.DeleteExpired(ctx, time.Now().UTC())
			if err != nil {
				log.Errorf("expired registration cleanup failed: %v", err)
				continue
			}
			if deleted > 0 {
				log.Infof("expired registration cleanup: deleted %d rows", deleted)
			}
		}
	}
}
