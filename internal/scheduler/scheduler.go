package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Spok95/community-bot/internal/domain/content"
)

// Scheduler раз в сутки вычищает просроченные временные сообщения.
type Scheduler struct {
	cron    *cron.Cron
	content *content.Repo
	log     *slog.Logger
}

func New(contentRepo *content.Repo, log *slog.Logger, loc *time.Location) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(loc)),
		content: contentRepo,
		log:     log,
	}
}

func (s *Scheduler) Start() error {
	// 08:30, до начала дневной активности
	_, err := s.cron.AddFunc("30 8 * * *", s.purgeExpired)
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) purgeExpired() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := s.content.PurgeExpired(ctx, time.Now())
	if err != nil {
		s.log.Error("purge expired failed", "err", err)
		return
	}
	if n > 0 {
		s.log.Info("expired temp messages purged", "count", n)
	}
}
