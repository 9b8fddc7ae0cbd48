package components

import (
	"log/slog"

	"rentwheels/internal/infra/draftstore"
	"rentwheels/internal/infra/payment"
	"rentwheels/internal/infra/readstore"
	"rentwheels/internal/infra/uow"
	"rentwheels/internal/infra/writerepo"
	"rentwheels/internal/pkg/config"
	"rentwheels/internal/session"
	"rentwheels/internal/usecase"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			readstore.NewVehicleReadStore,
			fx.As(new(usecase.VehicleReads)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(usecase.BookingReads)),
		),
		fx.Annotate(
			writerepo.NewBookingRepository,
			fx.As(new(usecase.BookingWrites)),
		),
		fx.Annotate(
			writerepo.NewNotificationRepository,
			fx.As(new(usecase.NotificationJobs)),
		),
		fx.Annotate(
			NewDraftStore,
			fx.As(new(usecase.DraftStore)),
			fx.As(new(session.Store)),
		),
		NewPaymentProvider,
		uow.NewPostgresUoW,
	),
)

func NewPaymentProvider(cfg config.Config, logger *slog.Logger) usecase.PaymentProvider {
	return payment.NewProvider(cfg.Payment, logger)
}

func NewDraftStore(client *redis.Client, cfg config.Config) *draftstore.RedisDraftStore {
	return draftstore.NewRedisDraftStore(client, cfg.Redis.DraftTTL)
}
