//go:build unit

package draft_test

import (
	"testing"
	"time"

	"rentwheels/internal/domain/booking"
	"rentwheels/internal/domain/draft"
	"rentwheels/internal/domain/pricing"
	"rentwheels/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

	d := draft.New(userID, now)

	assert.NotEqual(t, uuid.Nil, d.ID)
	assert.Equal(t, userID, d.UserID)
	assert.Equal(t, draft.StepSelectingVehicle, d.Step)
	assert.Equal(t, now, d.CreatedAt)
	assert.Equal(t, now, d.UpdatedAt)
	assert.False(t, d.HasVehicle())
}

func TestValidateStep(t *testing.T) {
	t.Run("vehicle step requires a selection", func(t *testing.T) {
		d := builder.NewDraftBuilder().BuildEmpty()
		err := d.ValidateStep(draft.StepSelectingVehicle)

		var ve draft.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "vehicle", ve.Field)

		d.VehicleID = uuid.New()
		assert.NoError(t, d.ValidateStep(draft.StepSelectingVehicle))
	})

	t.Run("trip step gates", func(t *testing.T) {
		base := builder.NewDraftBuilder().BuildAtReview()

		cases := []struct {
			name   string
			mutate func(*draft.Draft)
			field  string
		}{
			{"missing pickup location", func(d *draft.Draft) { d.PickupLocation = "" }, "pickupLocation"},
			{"missing dropoff location", func(d *draft.Draft) { d.DropoffLocation = "" }, "dropoffLocation"},
			{"missing dates", func(d *draft.Draft) { d.PickupDate = time.Time{}; d.DropoffDate = time.Time{} }, "dates"},
			{"dropoff before pickup", func(d *draft.Draft) { d.DropoffDate = d.PickupDate.AddDate(0, 0, -1) }, "dropoffDate"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				d := *base
				tc.mutate(&d)

				var ve draft.ValidationError
				require.ErrorAs(t, d.ValidateStep(draft.StepEnteringTripDetails), &ve)
				assert.Equal(t, tc.field, ve.Field)
			})
		}

		assert.NoError(t, base.ValidateStep(draft.StepEnteringTripDetails))
	})

	t.Run("personal info step requires name and phone", func(t *testing.T) {
		d := builder.NewDraftBuilder().BuildAtReview()
		assert.NoError(t, d.ValidateStep(draft.StepEnteringPersonalInfo))

		noName := *d
		noName.FullName = ""
		assert.Error(t, noName.ValidateStep(draft.StepEnteringPersonalInfo))

		noPhone := *d
		noPhone.Phone = ""
		assert.Error(t, noPhone.ValidateStep(draft.StepEnteringPersonalInfo))
	})

	t.Run("review step requires vehicle and payment method", func(t *testing.T) {
		d := builder.NewDraftBuilder().BuildAtReview()
		assert.NoError(t, d.ValidateStep(draft.StepReviewingPayment))

		noVehicle := *d
		noVehicle.VehicleID = uuid.Nil
		assert.ErrorIs(t, noVehicle.ValidateStep(draft.StepReviewingPayment), draft.ErrNoVehicleSelected)

		noMethod := *d
		noMethod.PaymentMethod = ""
		assert.ErrorIs(t, noMethod.ValidateStep(draft.StepReviewingPayment), draft.ErrNoPaymentMethod)
	})
}

func TestStepTransitions(t *testing.T) {
	t.Run("forward order", func(t *testing.T) {
		order := []draft.Step{
			draft.StepSelectingVehicle,
			draft.StepEnteringTripDetails,
			draft.StepEnteringPersonalInfo,
			draft.StepReviewingPayment,
		}
		for i := 0; i < len(order)-1; i++ {
			next, ok := order[i].Next()
			require.True(t, ok)
			assert.Equal(t, order[i+1], next)
		}
	})

	t.Run("review has no forward successor via Next", func(t *testing.T) {
		_, ok := draft.StepReviewingPayment.Next()
		assert.False(t, ok)
	})

	t.Run("terminal steps", func(t *testing.T) {
		assert.True(t, draft.StepSubmitted.IsTerminal())
		assert.False(t, draft.StepFailed.IsTerminal())
		assert.False(t, draft.StepReviewingPayment.IsTerminal())
	})

	t.Run("backward order mirrors forward", func(t *testing.T) {
		prev, ok := draft.StepReviewingPayment.Prev()
		require.True(t, ok)
		assert.Equal(t, draft.StepEnteringPersonalInfo, prev)

		_, ok = draft.StepSelectingVehicle.Prev()
		assert.False(t, ok)
	})
}

func TestPricingMode(t *testing.T) {
	d := builder.NewDraftBuilder().BuildAtReview()
	assert.Equal(t, pricing.ModeInterstateOnly, d.PricingMode())

	local := *d
	local.DropoffState = local.PickupState
	assert.Equal(t, pricing.ModeStandard, local.PricingMode())

	unknown := *d
	unknown.PickupState = ""
	assert.Equal(t, pricing.ModeStandard, unknown.PricingMode())
}

func TestTrip(t *testing.T) {
	d := builder.NewDraftBuilder().BuildAtReview()

	trip, err := d.Trip()
	require.NoError(t, err)
	assert.Equal(t, d.PickupLocation, trip.PickupLocation)
	assert.Equal(t, 2, trip.Range.Days())

	bad := *d
	bad.DropoffDate = bad.PickupDate.AddDate(0, 0, -3)
	_, err = bad.Trip()
	assert.ErrorIs(t, err, booking.ErrDropoffBeforePickup)
}
