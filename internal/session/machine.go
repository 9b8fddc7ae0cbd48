package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"rentwheels/internal/domain/booking"
	"rentwheels/internal/domain/draft"
	"rentwheels/internal/domain/pricing"
	"rentwheels/internal/domain/vehicle"
	"rentwheels/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrAlreadySubmitted = errors.New("booking session already submitted")
	ErrNotFailed        = errors.New("session is not in the failed state")
)

// DraftStore is the durable home of in-progress drafts. Save must be
// idempotent: the whole draft is serialized every time, so concurrent
// autosave and save-now calls resolve as last write wins.
type DraftStore interface {
	Save(ctx context.Context, d *draft.Draft) error
}

// TripDetails carries one edit of the trip step.
type TripDetails struct {
	PickupLocation  string
	DropoffLocation string
	PickupCity      string
	DropoffCity     string
	PickupState     string
	DropoffState    string
	PickupDate      time.Time
	DropoffDate     time.Time
	PickupTime      string
	DropoffTime     string
}

// PersonalInfo carries one edit of the personal-info step.
type PersonalInfo struct {
	FullName  string
	Phone     string
	Email     string
	LicenseNo string
}

// Machine drives one booking wizard. It is the single owner of the mutable
// draft: every field edit goes through it so recompute and autosave happen
// uniformly. One machine per session; concurrent sessions (multiple tabs)
// get independent machines from the Manager.
type Machine struct {
	mu     sync.Mutex
	d      *draft.Draft
	pricer *pricing.Engine
	clock  clock.Clock
	saver  *Autosaver
	logger *slog.Logger
}

func NewMachine(d *draft.Draft, pricer *pricing.Engine, clk clock.Clock, store DraftStore, cfg AutosaveConfig, logger *slog.Logger) *Machine {
	m := &Machine{
		d:      d,
		pricer: pricer,
		clock:  clk,
		logger: logger,
	}
	m.saver = NewAutosaver(m.persist(store), cfg, logger)
	if d.HasVehicle() {
		m.saver.StartPeriodic()
	}
	return m
}

// persist builds the idempotent save shared by both autosave triggers and
// manual flushes. Snapshot is taken under the lock, the write happens
// outside it.
func (m *Machine) persist(store DraftStore) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		snap := m.Snapshot()
		return store.Save(ctx, &snap)
	}
}

// Snapshot returns a copy of the draft safe to serialize or inspect.
func (m *Machine) Snapshot() draft.Draft {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.d
}

func (m *Machine) DraftID() uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.ID
}

func (m *Machine) Step() draft.Step {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.Step
}

// SelectVehicle records the chosen vehicle and starts the periodic autosave
// timer; from here on the draft is resumable.
func (m *Machine) SelectVehicle(v *vehicle.Vehicle) {
	m.mu.Lock()
	m.d.VehicleID = v.ID()
	m.d.VehicleName = v.Name()
	m.d.RatePerDay = v.RatePerDay()
	m.touchLocked()
	m.mu.Unlock()

	m.saver.StartPeriodic()
	m.saver.Touch()
}

func (m *Machine) SetTripDetails(t TripDetails) {
	m.mu.Lock()
	m.d.PickupLocation = t.PickupLocation
	m.d.DropoffLocation = t.DropoffLocation
	m.d.PickupCity = t.PickupCity
	m.d.DropoffCity = t.DropoffCity
	m.d.PickupState = t.PickupState
	m.d.DropoffState = t.DropoffState
	m.d.PickupDate = t.PickupDate
	m.d.DropoffDate = t.DropoffDate
	m.d.PickupTime = t.PickupTime
	m.d.DropoffTime = t.DropoffTime
	m.recomputeLocked()
	m.touchLocked()
	m.mu.Unlock()

	m.saver.Touch()
}

func (m *Machine) SetPersonalInfo(p PersonalInfo) {
	m.mu.Lock()
	m.d.FullName = p.FullName
	m.d.Phone = p.Phone
	m.d.Email = p.Email
	m.d.LicenseNo = p.LicenseNo
	m.touchLocked()
	m.mu.Unlock()

	m.saver.Touch()
}

func (m *Machine) SetPaymentMethod(method booking.PaymentMethod) error {
	if !method.IsValid() {
		return draft.ValidationError{Field: "paymentMethod", Reason: "unsupported payment method"}
	}

	m.mu.Lock()
	m.d.PaymentMethod = method
	m.touchLocked()
	m.mu.Unlock()

	m.saver.Touch()
	return nil
}

// ApplyCoupon validates the code against the static table. A rejected code
// leaves the stored code and discount untouched and is reported to the
// caller; it is not a session failure.
func (m *Machine) ApplyCoupon(code string) error {
	if err := m.pricer.ValidateCoupon(code); err != nil {
		return err
	}

	m.mu.Lock()
	m.d.CouponCode = code
	m.recomputeLocked()
	m.touchLocked()
	m.mu.Unlock()

	m.saver.Touch()
	return nil
}

// Next advances the wizard one step if the current step's gate holds. A
// ValidationError is reported to the caller and leaves the step unchanged.
// Entering the review step recomputes the breakdown.
func (m *Machine) Next() (draft.Step, error) {
	m.mu.Lock()

	if m.d.Step.IsTerminal() {
		step := m.d.Step
		m.mu.Unlock()
		return step, ErrAlreadySubmitted
	}

	if err := m.d.ValidateStep(m.d.Step); err != nil {
		step := m.d.Step
		m.mu.Unlock()
		return step, err
	}

	next, ok := m.d.Step.Next()
	if !ok {
		step := m.d.Step
		m.mu.Unlock()
		return step, nil
	}

	m.d.Step = next
	if next == draft.StepReviewingPayment {
		m.recomputeLocked()
	}
	m.touchLocked()
	m.mu.Unlock()

	m.saver.Touch()
	return next, nil
}

// Back moves one step backward. Always permitted, never discards data, and
// cancels nothing in flight (recompute is synchronous and pure).
func (m *Machine) Back() draft.Step {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev, ok := m.d.Step.Prev()
	if !ok {
		return m.d.Step
	}
	m.d.Step = prev
	m.touchLocked()
	return prev
}

// ReadyToSubmit is the review-step gate: a vehicle must be selected and a
// payment method chosen before dispatch.
func (m *Machine) ReadyToSubmit() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.d.Step != draft.StepReviewingPayment && m.d.Step != draft.StepFailed {
		return draft.ValidationError{Field: "step", Reason: "complete the wizard before submitting"}
	}
	return m.d.ValidateStep(draft.StepReviewingPayment)
}

// MarkSubmitted finalizes the session after a successful dispatch and stops
// autosave; the draft has been completed by the dispatcher.
func (m *Machine) MarkSubmitted() {
	m.mu.Lock()
	m.d.Step = draft.StepSubmitted
	m.touchLocked()
	m.mu.Unlock()

	m.saver.Stop()
}

// MarkFailed records a submission failure. The draft is retained so the user
// can retry without re-entering anything.
func (m *Machine) MarkFailed() {
	m.mu.Lock()
	m.d.Step = draft.StepFailed
	m.touchLocked()
	m.mu.Unlock()

	m.saver.Touch()
}

// Retry re-enters the review step after a failed submission.
func (m *Machine) Retry() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.d.Step != draft.StepFailed {
		return ErrNotFailed
	}
	m.d.Step = draft.StepReviewingPayment
	m.touchLocked()
	return nil
}

// Flush persists the draft immediately, bypassing the debounce. Used before
// submission so the dispatcher sees the freshest draft.
func (m *Machine) Flush(ctx context.Context) error {
	return m.saver.Flush(ctx)
}

// Close stops the autosave timers without touching the draft.
func (m *Machine) Close() {
	m.saver.Stop()
}

func (m *Machine) touchLocked() {
	m.d.UpdatedAt = m.clock.Now()
}

// recomputeLocked refreshes the breakdown from current trip fields. Pricing
// is pure, so recomputing on every edit is safe. A rejected coupon clears
// the stored code and keeps the discount at zero.
func (m *Machine) recomputeLocked() {
	if !m.d.HasVehicle() || m.d.PickupDate.IsZero() || m.d.DropoffDate.IsZero() {
		return
	}
	if m.d.DropoffDate.Before(m.d.PickupDate) {
		return
	}

	bd, err := m.pricer.Quote(
		m.d.RatePerDay,
		m.d.PickupDate, m.d.DropoffDate,
		m.d.PickupState, m.d.DropoffState,
		m.d.CouponCode,
		m.d.PricingMode(),
	)
	if err != nil {
		if errors.Is(err, pricing.ErrCouponRejected) {
			m.d.CouponCode = ""
		} else {
			m.logger.Warn("price recompute failed", "draft_id", m.d.ID, "error", err)
			return
		}
	}
	m.d.Breakdown = bd
}
