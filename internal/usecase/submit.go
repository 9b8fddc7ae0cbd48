package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"rentwheels/internal/domain/booking"
	"rentwheels/internal/domain/draft"
	"rentwheels/internal/domain/pricing"
	"rentwheels/internal/infra"
	"rentwheels/internal/pkg/clock"
	"rentwheels/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
)

// BookingSubmitter is the payment dispatcher: it turns a completed draft
// into exactly one confirmed booking, or into a typed retryable error with
// the draft intact.
type BookingSubmitter interface {
	Submit(ctx context.Context, d *draft.Draft) (*BookingView, error)
}

type submitterImpl struct {
	vehicles      VehicleReads
	resolver      *AvailabilityResolver
	writes        BookingWrites
	notifications NotificationJobs
	drafts        DraftStore
	provider      PaymentProvider
	pricer        *pricing.Engine
	uow           UnitOfWork
	clock         clock.Clock
	payTimeout    time.Duration
	logger        *slog.Logger
}

func NewBookingSubmitter(
	vehicles VehicleReads,
	resolver *AvailabilityResolver,
	writes BookingWrites,
	notifications NotificationJobs,
	drafts DraftStore,
	provider PaymentProvider,
	pricer *pricing.Engine,
	uow UnitOfWork,
	clk clock.Clock,
	payTimeout time.Duration,
	logger *slog.Logger,
) BookingSubmitter {
	return &submitterImpl{
		vehicles:      vehicles,
		resolver:      resolver,
		writes:        writes,
		notifications: notifications,
		drafts:        drafts,
		provider:      provider,
		pricer:        pricer,
		uow:           uow,
		clock:         clk,
		payTimeout:    payTimeout,
		logger:        logger,
	}
}

func (s *submitterImpl) Submit(ctx context.Context, d *draft.Draft) (*BookingView, error) {
	if err := d.ValidateStep(draft.StepReviewingPayment); err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	trip, err := d.Trip()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidDateRange)
	}

	// Authoritative availability check. Whatever the user saw while
	// browsing is stale by now.
	avail, err := s.resolver.Check(ctx, d.VehicleID, trip.Range)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !avail.Available {
		return nil, errs.ErrVehicleNoLongerAvailable
	}

	// Authoritative price. The client-cached breakdown is never trusted.
	v, err := s.vehicles.FindByID(ctx, d.VehicleID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrVehicleNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	bd, err := s.pricer.Quote(
		v.RatePerDay,
		d.PickupDate, d.DropoffDate,
		d.PickupState, d.DropoffState,
		d.CouponCode,
		d.PricingMode(),
	)
	if err != nil && !errors.Is(err, pricing.ErrCouponRejected) {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	paymentStatus := booking.PaymentStatusPending
	paymentRef := ""

	if d.PaymentMethod == booking.PaymentOnline {
		ref, payErr := s.charge(ctx, d, v, bd.Total)
		if payErr != nil {
			// No booking on any payment failure; the draft stays resumable
			// so the user retries without re-entering data.
			return nil, payErr
		}
		paymentStatus = booking.PaymentStatusPaid
		paymentRef = ref
	}

	entity, err := booking.NewBooking(
		d.UserID, d.VehicleID,
		trip, bd,
		d.PaymentMethod, paymentStatus, paymentRef,
		s.clock.Now(),
	)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	if err := s.persist(ctx, entity, v.Name); err != nil {
		return nil, err
	}

	// The draft converted into a booking; remove it from the resumable
	// list. The booking is already committed, so a failure here only
	// leaves a stale resumable entry behind.
	if err := s.drafts.Complete(ctx, d.UserID, d.ID); err != nil {
		s.logger.Warn("failed to complete draft after booking", "draft_id", d.ID, "error", err)
	}

	return toBookingView(entity, v.Name), nil
}

func (s *submitterImpl) charge(ctx context.Context, d *draft.Draft, v *VehicleView, total int64) (string, error) {
	chargeCtx, cancel := context.WithTimeout(ctx, s.payTimeout)
	defer cancel()

	ref, err := s.provider.Charge(chargeCtx, total, PaymentMeta{
		DraftID:     d.ID,
		UserID:      d.UserID,
		VehicleName: v.Name,
	})
	if err != nil {
		// Timeout never assumes success; it is the same retryable failure.
		return "", errs.Mark(err, errs.ErrPaymentFailed)
	}
	return ref, nil
}

// persist writes the booking and its confirmation job in one transaction.
// The bookings table carries an exclusion constraint over
// (vehicle_id, reserved range): when two submissions race, the first commit
// wins and the second surfaces as a conflict here.
func (s *submitterImpl) persist(ctx context.Context, entity *booking.Booking, vehicleName string) error {
	payload, err := json.Marshal(map[string]any{
		"booking_id":   entity.ID(),
		"user_id":      entity.UserID(),
		"vehicle_name": vehicleName,
		"pickup_date":  entity.Trip().Range.Pickup(),
		"dropoff_date": entity.Trip().Range.Dropoff(),
		"total":        entity.Breakdown().Total,
	})
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	err = s.uow.Within(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.writes.Create(ctx, tx, entity, vehicleName); err != nil {
			return err
		}
		// Receipt/email delivery is fire-and-forget for the consumer; a
		// send failure never rolls the booking back once the job row lands.
		return s.notifications.CreateJob(ctx, tx, "email", "booking_confirmed", payload, s.clock.Now())
	})
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return errs.ErrVehicleNoLongerAvailable
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func toBookingView(b *booking.Booking, vehicleName string) *BookingView {
	trip := b.Trip()
	bd := b.Breakdown()
	return &BookingView{
		ID:              b.ID(),
		UserID:          b.UserID(),
		VehicleID:       b.VehicleID(),
		VehicleName:     vehicleName,
		PickupLocation:  trip.PickupLocation,
		DropoffLocation: trip.DropoffLocation,
		PickupCity:      trip.PickupCity,
		DropoffCity:     trip.DropoffCity,
		PickupState:     trip.PickupState,
		DropoffState:    trip.DropoffState,
		PickupDate:      trip.Range.Pickup(),
		DropoffDate:     trip.Range.Dropoff(),
		PickupTime:      trip.PickupTime,
		DropoffTime:     trip.DropoffTime,
		Days:            bd.Days,
		BasePrice:       bd.BasePrice,
		Surcharge:       bd.InterstateSurcharge,
		ServiceFee:      bd.ServiceFee,
		Discount:        bd.Discount,
		Total:           bd.Total,
		PaymentMethod:   string(b.Method()),
		PaymentStatus:   string(b.PaymentStatus()),
		PaymentRef:      b.PaymentRef(),
		Status:          string(b.Status()),
		CreatedAt:       b.CreatedAt(),
	}
}
