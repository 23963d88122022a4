package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-bank-cards/internal/logger"
	"github.com/MKhiriev/go-bank-cards/internal/service"
)

// CardExpiryWorker switches overdue ACTIVE cards to EXPIRED: once on start
// and then every interval.
type CardExpiryWorker struct {
	cards    service.CardService
	interval time.Duration
	now      func() time.Time

	logger *logger.Logger
}

func NewCardExpiryWorker(cards service.CardService, interval time.Duration, logger *logger.Logger) *CardExpiryWorker {
	return &CardExpiryWorker{
		cards:    cards,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

// Run attaches the worker logger to ctx, so the service and repository
// calls below it log through logger.FromContext.
func (w *CardExpiryWorker) Run(ctx context.Context) {
	ctx = w.logger.WithContext(ctx)
	w.logger.Info().Dur("interval", w.interval).Msg("card expiry worker started")

	w.expire(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("card expiry worker stopped")
			return
		case <-ticker.C:
			w.expire(ctx)
		}
	}
}

func (w *CardExpiryWorker) expire(ctx context.Context) {
	expired, err := w.cards.ExpireOverdue(ctx, w.now())
	if err != nil {
		// the next tick retries
		w.logger.Err(err).Msg("error expiring overdue cards")
		return
	}
	if expired > 0 {
		w.logger.Info().Int64("expired", expired).Msg("overdue cards expired")
	}
}
