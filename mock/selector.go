package mock

import (
	"context"

	"github.com/fwojciec/staffdir"
)

var _ staffdir.SelectorService = (*SelectorService)(nil)

// SelectorService is a mock implementation of staffdir.SelectorService.
type SelectorService struct {
	FindSelectorConfigFn    func(ctx context.Context) (*staffdir.SelectorConfig, error)
	ReplaceSelectorConfigFn func(ctx context.Context, cfg *staffdir.SelectorConfig) error
	ApplySelectorUpdateFn   func(ctx context.Context, upd staffdir.SelectorUpdate) error
	DeleteDomainSelectorFn  func(ctx context.Context, domain string) error
}

func (s *SelectorService) FindSelectorConfig(ctx context.Context) (*staffdir.SelectorConfig, error) {
	return s.FindSelectorConfigFn(ctx)
}

func (s *SelectorService) ReplaceSelectorConfig(ctx context.Context, cfg *staffdir.SelectorConfig) error {
	return s.ReplaceSelectorConfigFn(ctx, cfg)
}

func (s *SelectorService) ApplySelectorUpdate(ctx context.Context, upd staffdir.SelectorUpdate) error {
	return s.ApplySelectorUpdateFn(ctx, upd)
}

func (s *SelectorService) DeleteDomainSelector(ctx context.Context, domain string) error {
	return s.DeleteDomainSelectorFn(ctx, domain)
}
