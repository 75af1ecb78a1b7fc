package processor

import (
	"context"

	"storefront/pkg/logger"
	"storefront/shop-service/internal/app/shop/service"

	"github.com/robfig/cron/v3"
)

// cronLogger направляет внутренние сообщения cron в общий логгер
type cronLogger struct{}

func (cronLogger) Printf(format string, args ...interface{}) {
	logger.Debug().Str("component", "cron").Msgf(format, args...)
}

// CronScheduler периодически пересчитывает статистику магазина
type CronScheduler struct {
	cron     *cron.Cron
	statsSvc service.StatsServiceInterface
}

func NewCronScheduler(statsSvc service.StatsServiceInterface) *CronScheduler {
	c := cron.New(cron.WithLogger(cron.PrintfLogger(cronLogger{})))

	return &CronScheduler{
		cron:     c,
		statsSvc: statsSvc,
	}
}

// Start регистрирует задачу по расписанию и сразу выполняет первый пересчет
func (s *CronScheduler) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("starting cron scheduler")

	_, err := s.cron.AddFunc(schedule, func() {
		s.refresh(ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()

	s.refresh(ctx)

	return nil
}

func (s *CronScheduler) refresh(ctx context.Context) {
	if err := s.statsSvc.Refresh(ctx); err != nil {
		logger.Error().Err(err).Msg("failed to refresh shop stats")
		return
	}
	logger.Debug().Msg("shop stats refreshed")
}

func (s *CronScheduler) Stop() {
	logger.Info().Msg("stopping cron scheduler")
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
