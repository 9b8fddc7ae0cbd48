package components

import (
	"log/slog"

	"rentwheels/internal/domain/pricing"
	"rentwheels/internal/pkg/clock"
	"rentwheels/internal/pkg/config"
	"rentwheels/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		NewPricingEngine,
		usecase.NewAvailabilityResolver,
		usecase.NewVehicleQueries,
		usecase.NewBookingQueries,
		usecase.NewDraftQueries,
		NewBookingSubmitter,
	),
)

func NewPricingEngine(cfg config.Config) *pricing.Engine {
	return pricing.NewEngine(cfg.Pricing.InterstateFee, cfg.Pricing.ServiceFee, nil)
}

func NewBookingSubmitter(
	vehicles usecase.VehicleReads,
	resolver *usecase.AvailabilityResolver,
	writes usecase.BookingWrites,
	notifications usecase.NotificationJobs,
	drafts usecase.DraftStore,
	provider usecase.PaymentProvider,
	pricer *pricing.Engine,
	uow usecase.UnitOfWork,
	clk clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
) usecase.BookingSubmitter {
	return usecase.NewBookingSubmitter(
		vehicles, resolver, writes, notifications, drafts,
		provider, pricer, uow, clk, cfg.Payment.Timeout, logger,
	)
}
