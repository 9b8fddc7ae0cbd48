package payment

import (
	"context"
	"fmt"
	"log/slog"

	"rentwheels/internal/pkg/config"
	"rentwheels/internal/pkg/errs"
	"rentwheels/internal/usecase"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// StripeProvider collects online payments through Stripe PaymentIntents.
// Amounts arrive in whole rupees and are converted to paise on the wire.
type StripeProvider struct {
	currency string
	logger   *slog.Logger
}

func NewStripeProvider(cfg config.PaymentConfig, logger *slog.Logger) *StripeProvider {
	stripe.Key = cfg.StripeKey
	return &StripeProvider{
		currency: cfg.Currency,
		logger:   logger,
	}
}

func (p *StripeProvider) Charge(ctx context.Context, amountRupees int64, meta usecase.PaymentMeta) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountRupees * 100),
		Currency: stripe.String(p.currency),
		Confirm:  stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String(string(stripe.PaymentIntentAutomaticPaymentMethodsAllowRedirectsNever)),
		},
	}
	params.Context = ctx
	params.AddMetadata("draft_id", meta.DraftID.String())
	params.AddMetadata("user_id", meta.UserID.String())
	params.AddMetadata("vehicle_name", meta.VehicleName)

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", errs.Wrap(err, "stripe payment intent creation failed")
	}
	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		p.logger.Warn("payment intent not settled", "intent_id", intent.ID, "status", intent.Status)
		return "", errs.New(fmt.Sprintf("payment intent in state %s", intent.Status))
	}

	return intent.ID, nil
}

// SimulatedProvider stands in when no Stripe key is configured, so local
// environments can exercise the online flow end to end. It settles every
// charge immediately unless the context has already expired.
type SimulatedProvider struct {
	logger *slog.Logger
}

func NewSimulatedProvider(logger *slog.Logger) *SimulatedProvider {
	return &SimulatedProvider{logger: logger}
}

func (p *SimulatedProvider) Charge(ctx context.Context, amountRupees int64, meta usecase.PaymentMeta) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errs.Wrap(err, "simulated charge aborted")
	}
	ref := fmt.Sprintf("sim_%s", meta.DraftID)
	p.logger.Info("simulated payment settled", "ref", ref, "amount", amountRupees)
	return ref, nil
}

// NewProvider picks the real provider when a key is configured and the
// simulator otherwise.
func NewProvider(cfg config.PaymentConfig, logger *slog.Logger) usecase.PaymentProvider {
	if cfg.StripeKey == "" {
		logger.Warn("no stripe key configured, using simulated payment provider")
		return NewSimulatedProvider(logger)
	}
	return NewStripeProvider(cfg, logger)
}
