package service

import (
	"auth-service/internal/metrics"
	"auth-service/internal/ports"
	"context"
	"log/slog"
	"time"
)

// RefreshTokenJanitor : периодически удаляет просроченные refresh записи
type RefreshTokenJanitor struct {
	store    ports.RefreshTokenStore
	interval time.Duration
	now      func() time.Time
}

func NewRefreshTokenJanitor(store ports.RefreshTokenStore, interval time.Duration) *RefreshTokenJanitor {
	return &RefreshTokenJanitor{store: store, interval: interval, now: time.Now}
}

// Run : блокируется до отмены ctx
func (j *RefreshTokenJanitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := j.PurgeOnce(ctx); err != nil {
				slog.ErrorContext(ctx, "refresh record purge failed", "error", err)
			}
		}
	}
}

func (j *RefreshTokenJanitor) PurgeOnce(ctx context.Context) (int64, error) {
	purged, err := j.store.DeleteExpired(ctx, j.now())
	if err != nil {
		return 0, err
	}
	if purged > 0 {
		metrics.RecordsPurged.Add(float64(purged))
		slog.InfoContext(ctx, "expired refresh records purged", "count", purged)
	}
	return purged, nil
}
