package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-bank-cards/internal/logger"
	"github.com/MKhiriev/go-bank-cards/models"
)

const healthCheckTimeout = 2 * time.Second

type healthService struct {
	checkers []HealthChecker
	logger   *logger.Logger
}

func NewHealthService(logger *logger.Logger, checkers ...HealthChecker) HealthService {
	return &healthService{
		checkers: checkers,
		logger:   logger,
	}
}

// Liveness reports that the process is running.
func (s *healthService) Liveness(ctx context.Context) models.HealthReport {
	return models.HealthReport{Status: models.HealthUp}
}

// Readiness runs all checkers concurrently. The report is DOWN if any of
// them fails.
func (s *healthService) Readiness(ctx context.Context) models.HealthReport {
	report := models.HealthReport{
		Status:     models.HealthUp,
		Components: make(map[string]string, len(s.checkers)),
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, checker := range s.checkers {
		wg.Go(func() {
			checkCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
			defer cancel()

			status := models.HealthUp
			if err := checker.Check(checkCtx); err != nil {
				logger.FromContext(ctx).Err(err).Str("component", checker.Name()).Msg("health check failed")
				status = models.HealthDown
			}

			mu.Lock()
			defer mu.Unlock()
			report.Components[checker.Name()] = status
			if status == models.HealthDown {
				report.Status = models.HealthDown
			}
		})
	}
	wg.Wait()

	return report
}

// pingChecker adapts a ping function to [HealthChecker].
type pingChecker struct {
	name string
	ping func(ctx context.Context) error
}

// NewPingChecker returns a checker named name that succeeds when ping does.
func NewPingChecker(name string, ping func(ctx context.Context) error) HealthChecker {
	return &pingChecker{name: name, ping: ping}
}

func (c *pingChecker) Name() string {
	return c.name
}

func (c *pingChecker) Check(ctx context.Context) error {
	return c.ping(ctx)
}
