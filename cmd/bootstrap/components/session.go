package components

import (
	"log/slog"

	"rentwheels/internal/domain/pricing"
	"rentwheels/internal/pkg/clock"
	"rentwheels/internal/pkg/config"
	"rentwheels/internal/session"

	"go.uber.org/fx"
)

var SessionModule = fx.Module("session",
	fx.Provide(
		NewSessionManager,
	),
)

func NewSessionManager(store session.Store, pricer *pricing.Engine, clk clock.Clock, cfg config.Config, logger *slog.Logger) *session.Manager {
	autosave := session.AutosaveConfig{
		Interval: cfg.Autosave.Interval,
		Debounce: cfg.Autosave.Debounce,
	}
	return session.NewManager(store, pricer, clk, autosave, logger)
}
