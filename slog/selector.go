package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/staffdir"
)

// Ensure LoggingSelectorService implements staffdir.SelectorService.
var _ staffdir.SelectorService = (*LoggingSelectorService)(nil)

// LoggingSelectorService wraps a SelectorService with logging. Reads are
// logged at debug level, writes at info level.
type LoggingSelectorService struct {
	next   staffdir.SelectorService
	logger *slog.Logger
}

// NewLoggingSelectorService creates a new LoggingSelectorService.
func NewLoggingSelectorService(next staffdir.SelectorService, logger *slog.Logger) *LoggingSelectorService {
	return &LoggingSelectorService{next: next, logger: logger}
}

func (s *LoggingSelectorService) FindSelectorConfig(ctx context.Context) (cfg *staffdir.SelectorConfig, err error) {
	defer func(begin time.Time) {
		var domains int
		if cfg != nil {
			domains = len(cfg.StaffClasses)
		}
		s.logger.Debug("find selector config",
			"count", domains,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindSelectorConfig(ctx)
}

func (s *LoggingSelectorService) ReplaceSelectorConfig(ctx context.Context, cfg *staffdir.SelectorConfig) (err error) {
	defer func(begin time.Time) {
		var domains int
		if cfg != nil {
			domains = len(cfg.StaffClasses)
		}
		s.logger.Info("replace selector config",
			"count", domains,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ReplaceSelectorConfig(ctx, cfg)
}

func (s *LoggingSelectorService) ApplySelectorUpdate(ctx context.Context, upd staffdir.SelectorUpdate) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("apply selector update",
			"url", upd.URL,
			"selector", upd.StaffClasses,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ApplySelectorUpdate(ctx, upd)
}

func (s *LoggingSelectorService) DeleteDomainSelector(ctx context.Context, domain string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete domain selector",
			"domain", domain,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteDomainSelector(ctx, domain)
}
