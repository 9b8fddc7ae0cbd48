//go:build unit

package usecase_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"rentwheels/internal/domain/booking"
	"rentwheels/internal/domain/pricing"
	"rentwheels/internal/infra"
	"rentwheels/internal/pkg/clock"
	"rentwheels/internal/pkg/errs"
	"rentwheels/internal/usecase"
	"rentwheels/tests/common/builder"
	usecasemock "rentwheels/tests/mock/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type submitterMocks struct {
	vehicles      *usecasemock.MockVehicleReads
	bookings      *usecasemock.MockBookingReads
	writes        *usecasemock.MockBookingWrites
	notifications *usecasemock.MockNotificationJobs
	drafts        *usecasemock.MockDraftStore
	provider      *usecasemock.MockPaymentProvider
	uow           *usecasemock.MockUnitOfWork
}

func newSubmitter(t *testing.T) (usecase.BookingSubmitter, submitterMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := submitterMocks{
		vehicles:      usecasemock.NewMockVehicleReads(ctrl),
		bookings:      usecasemock.NewMockBookingReads(ctrl),
		writes:        usecasemock.NewMockBookingWrites(ctrl),
		notifications: usecasemock.NewMockNotificationJobs(ctrl),
		drafts:        usecasemock.NewMockDraftStore(ctrl),
		provider:      usecasemock.NewMockPaymentProvider(ctrl),
		uow:           usecasemock.NewMockUnitOfWork(ctrl),
	}
	s := usecase.NewBookingSubmitter(
		m.vehicles,
		usecase.NewAvailabilityResolver(m.bookings),
		m.writes,
		m.notifications,
		m.drafts,
		m.provider,
		pricing.NewEngine(400, 50, nil),
		m.uow,
		clock.NewMockClock(time.Date(2024, 12, 28, 10, 0, 0, 0, time.UTC)),
		5*time.Second,
		slog.New(slog.DiscardHandler),
	)
	return s, m
}

// expectWithin makes the unit of work run its callback immediately, without a
// real transaction underneath.
func expectWithin(m submitterMocks) {
	m.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error {
			return fn(ctx, nil)
		})
}

func TestSubmitRejectsIncompleteDraft(t *testing.T) {
	s, _ := newSubmitter(t)

	d := builder.NewDraftBuilder().BuildAtReview()
	d.PaymentMethod = ""

	_, err := s.Submit(context.Background(), d)
	require.ErrorIs(t, err, errs.ErrDomainValidation)
}

func TestSubmitRejectsReversedDates(t *testing.T) {
	s, _ := newSubmitter(t)

	b := builder.NewDraftBuilder().WithDates(
		time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 29, 0, 0, 0, 0, time.UTC),
	)
	d := b.BuildAtReview()

	_, err := s.Submit(context.Background(), d)
	require.ErrorIs(t, err, errs.ErrInvalidDateRange)
}

func TestSubmitFailsWhenVehicleBookedMeanwhile(t *testing.T) {
	s, m := newSubmitter(t)

	b := builder.NewDraftBuilder()
	d := b.BuildAtReview()

	conflicting, rngErr := booking.NewDateRange(b.PickupDate, b.DropoffDate)
	require.NoError(t, rngErr)
	m.bookings.EXPECT().ActiveWindowsByVehicle(gomock.Any(), b.VehicleID).
		Return([]usecase.BookingWindow{{Range: conflicting}}, nil)

	_, err := s.Submit(context.Background(), d)
	require.ErrorIs(t, err, errs.ErrVehicleNoLongerAvailable)
}

func TestSubmitFailsWhenVehicleGone(t *testing.T) {
	s, m := newSubmitter(t)

	b := builder.NewDraftBuilder()
	d := b.BuildAtReview()

	m.bookings.EXPECT().ActiveWindowsByVehicle(gomock.Any(), b.VehicleID).Return(nil, nil)
	m.vehicles.EXPECT().FindByID(gomock.Any(), b.VehicleID).
		Return(nil, infra.WrapRepoErr("vehicle not found", nil, infra.KindNotFound))

	_, err := s.Submit(context.Background(), d)
	require.ErrorIs(t, err, errs.ErrVehicleNotFound)
}

func TestSubmitPaymentFailureKeepsDraft(t *testing.T) {
	s, m := newSubmitter(t)

	b := builder.NewDraftBuilder().WithPaymentMethod(booking.PaymentOnline)
	d := b.BuildAtReview()

	m.bookings.EXPECT().ActiveWindowsByVehicle(gomock.Any(), b.VehicleID).Return(nil, nil)
	m.vehicles.EXPECT().FindByID(gomock.Any(), b.VehicleID).Return(b.BuildVehicleView(), nil)
	m.provider.EXPECT().Charge(gomock.Any(), int64(3000), gomock.Any()).
		Return("", errors.New("card declined"))

	// No booking write and no draft completion: the user retries with
	// everything still in place.
	_, err := s.Submit(context.Background(), d)
	require.ErrorIs(t, err, errs.ErrPaymentFailed)
}

func TestSubmitCashOnDelivery(t *testing.T) {
	s, m := newSubmitter(t)

	b := builder.NewDraftBuilder()
	d := b.BuildAtReview()

	m.bookings.EXPECT().ActiveWindowsByVehicle(gomock.Any(), b.VehicleID).Return(nil, nil)
	m.vehicles.EXPECT().FindByID(gomock.Any(), b.VehicleID).Return(b.BuildVehicleView(), nil)
	expectWithin(m)

	var created *booking.Booking
	m.writes.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), b.VehicleName).
		DoAndReturn(func(_ context.Context, _ pgx.Tx, entity *booking.Booking, _ string) error {
			created = entity
			return nil
		})
	m.notifications.EXPECT().
		CreateJob(gomock.Any(), gomock.Any(), "email", "booking_confirmed", gomock.Any(), gomock.Any()).
		Return(nil)
	m.drafts.EXPECT().Complete(gomock.Any(), b.UserID, d.ID).Return(nil)

	view, err := s.Submit(context.Background(), d)
	require.NoError(t, err)
	require.NotNil(t, created)

	// Cash settles at pickup: the booking is live but payment stays pending.
	require.Equal(t, booking.StatusBooked, created.Status())
	require.Equal(t, booking.PaymentStatusPending, created.PaymentStatus())
	require.Empty(t, created.PaymentRef())
	require.Equal(t, created.ID(), view.ID)
	require.Equal(t, "pending", view.PaymentStatus)
	require.Equal(t, "cash_on_delivery", view.PaymentMethod)
	require.Equal(t, int64(3000), view.Total)
}

func TestSubmitOnlinePaymentSuccess(t *testing.T) {
	s, m := newSubmitter(t)

	b := builder.NewDraftBuilder().WithPaymentMethod(booking.PaymentOnline)
	d := b.BuildAtReview()

	m.bookings.EXPECT().ActiveWindowsByVehicle(gomock.Any(), b.VehicleID).Return(nil, nil)
	m.vehicles.EXPECT().FindByID(gomock.Any(), b.VehicleID).Return(b.BuildVehicleView(), nil)
	m.provider.EXPECT().Charge(gomock.Any(), int64(3000), gomock.Any()).Return("pi_123", nil)
	expectWithin(m)
	m.writes.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), b.VehicleName).Return(nil)
	m.notifications.EXPECT().
		CreateJob(gomock.Any(), gomock.Any(), "email", "booking_confirmed", gomock.Any(), gomock.Any()).
		Return(nil)
	m.drafts.EXPECT().Complete(gomock.Any(), b.UserID, d.ID).Return(nil)

	view, err := s.Submit(context.Background(), d)
	require.NoError(t, err)
	require.Equal(t, "paid", view.PaymentStatus)
	require.Equal(t, "pi_123", view.PaymentRef)
}

func TestSubmitPersistConflictAfterCharge(t *testing.T) {
	s, m := newSubmitter(t)

	b := builder.NewDraftBuilder()
	d := b.BuildAtReview()

	m.bookings.EXPECT().ActiveWindowsByVehicle(gomock.Any(), b.VehicleID).Return(nil, nil)
	m.vehicles.EXPECT().FindByID(gomock.Any(), b.VehicleID).Return(b.BuildVehicleView(), nil)
	expectWithin(m)

	// A racing submission committed first; the exclusion constraint turns
	// this write into a conflict and the draft must survive.
	m.writes.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), b.VehicleName).
		Return(infra.WrapRepoErr("booking overlaps", nil, infra.KindConflict))

	_, err := s.Submit(context.Background(), d)
	require.ErrorIs(t, err, errs.ErrVehicleNoLongerAvailable)
}

func TestSubmitCompleteFailureStillReturnsBooking(t *testing.T) {
	s, m := newSubmitter(t)

	b := builder.NewDraftBuilder()
	d := b.BuildAtReview()

	m.bookings.EXPECT().ActiveWindowsByVehicle(gomock.Any(), b.VehicleID).Return(nil, nil)
	m.vehicles.EXPECT().FindByID(gomock.Any(), b.VehicleID).Return(b.BuildVehicleView(), nil)
	expectWithin(m)
	m.writes.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), b.VehicleName).Return(nil)
	m.notifications.EXPECT().
		CreateJob(gomock.Any(), gomock.Any(), "email", "booking_confirmed", gomock.Any(), gomock.Any()).
		Return(nil)
	m.drafts.EXPECT().Complete(gomock.Any(), b.UserID, d.ID).Return(errors.New("redis down"))

	// The booking already committed; a stale resumable entry is the only cost.
	view, err := s.Submit(context.Background(), d)
	require.NoError(t, err)
	require.Equal(t, "booked", view.Status)
}

func TestSubmitChargesRecomputedTotal(t *testing.T) {
	s, m := newSubmitter(t)

	// A stale client-side rate is ignored: the charge uses the catalog rate.
	b := builder.NewDraftBuilder().WithPaymentMethod(booking.PaymentOnline).WithCoupon("WELCOME50")
	d := b.BuildAtReview()
	d.RatePerDay = 1

	m.bookings.EXPECT().ActiveWindowsByVehicle(gomock.Any(), b.VehicleID).Return(nil, nil)
	m.vehicles.EXPECT().FindByID(gomock.Any(), b.VehicleID).Return(b.BuildVehicleView(), nil)
	m.provider.EXPECT().Charge(gomock.Any(), int64(2950), gomock.Any()).
		Return("", errors.New("card declined"))

	_, err := s.Submit(context.Background(), d)
	require.ErrorIs(t, err, errs.ErrPaymentFailed)
}
