package api

import (
	"errors"
	"net/http"

	"rentwheels/internal/domain/booking"
	"rentwheels/internal/domain/draft"
	"rentwheels/internal/domain/pricing"
	"rentwheels/internal/domain/vehicle"
	reqdto "rentwheels/internal/handler/dto/request"
	resdto "rentwheels/internal/handler/dto/response"
	"rentwheels/internal/handler/httperr"
	"rentwheels/internal/handler/middleware"
	"rentwheels/internal/pkg/errs"
	"rentwheels/internal/session"
	"rentwheels/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionHandler exposes the booking wizard. Every mutation returns the full
// session state so the client renders from one payload.
type SessionHandler struct {
	manager        *session.Manager
	vehicleQueries usecase.VehicleQueries
	submitter      usecase.BookingSubmitter
}

func NewSessionHandler(manager *session.Manager, vehicleQueries usecase.VehicleQueries, submitter usecase.BookingSubmitter) *SessionHandler {
	return &SessionHandler{
		manager:        manager,
		vehicleQueries: vehicleQueries,
		submitter:      submitter,
	}
}

// @Summary Start booking session
// @Description Open a fresh booking wizard with an empty draft
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Success 201 {object} resdto.SessionResponse
// @Failure 401 {object} map[string]string
// @Router /sessions [post]
func (h *SessionHandler) StartSession(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	sessionID, machine := h.manager.Start(userID)
	c.JSON(http.StatusCreated, resdto.FromDraft(sessionID, machine.Snapshot()))
}

// @Summary Resume booking session
// @Description Rebuild a session from a persisted draft
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ResumeSessionRequest true "Draft to resume"
// @Success 200 {object} resdto.SessionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /sessions/resume [post]
func (h *SessionHandler) ResumeSession(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.ResumeSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}
	draftID := uuid.MustParse(req.DraftID)

	sessionID, machine, err := h.manager.Resume(c.Request.Context(), userID, draftID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Draft not found",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromDraft(sessionID, machine.Snapshot()))
}

// @Summary Get session state
// @Description Get the current wizard state
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} resdto.SessionResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	sessionID, machine, ok := h.machine(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resdto.FromDraft(sessionID, machine.Snapshot()))
}

// @Summary Select vehicle
// @Description Record the chosen vehicle on the draft
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.SelectVehicleRequest true "Vehicle selection"
// @Success 200 {object} resdto.SessionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /sessions/{id}/vehicle [put]
func (h *SessionHandler) SelectVehicle(c *gin.Context) {
	sessionID, machine, ok := h.machine(c)
	if !ok {
		return
	}

	var req reqdto.SelectVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}
	vehicleID := uuid.MustParse(req.VehicleID)

	view, err := h.vehicleQueries.Get(c.Request.Context(), vehicleID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrVehicleNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Vehicle not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	v, err := vehicle.NewVehicle(view.ID, view.Name, view.RatePerDay, view.Seats, view.City, view.State, view.Registration)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	machine.SelectVehicle(v)
	c.JSON(http.StatusOK, resdto.FromDraft(sessionID, machine.Snapshot()))
}

// @Summary Set trip details
// @Description Record locations and the rental date window; reprices immediately
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.TripDetailsRequest true "Trip details"
// @Success 200 {object} resdto.SessionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /sessions/{id}/trip [put]
func (h *SessionHandler) SetTripDetails(c *gin.Context) {
	sessionID, machine, ok := h.machine(c)
	if !ok {
		return
	}

	var req reqdto.TripDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	machine.SetTripDetails(req.ToInput())
	c.JSON(http.StatusOK, resdto.FromDraft(sessionID, machine.Snapshot()))
}

// @Summary Set personal info
// @Description Record the renter's contact details
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.PersonalInfoRequest true "Personal info"
// @Success 200 {object} resdto.SessionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /sessions/{id}/personal [put]
func (h *SessionHandler) SetPersonalInfo(c *gin.Context) {
	sessionID, machine, ok := h.machine(c)
	if !ok {
		return
	}

	var req reqdto.PersonalInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	machine.SetPersonalInfo(req.ToInput())
	c.JSON(http.StatusOK, resdto.FromDraft(sessionID, machine.Snapshot()))
}

// @Summary Set payment method
// @Description Choose cash on delivery or online payment
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.PaymentMethodRequest true "Payment method"
// @Success 200 {object} resdto.SessionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /sessions/{id}/payment-method [put]
func (h *SessionHandler) SetPaymentMethod(c *gin.Context) {
	sessionID, machine, ok := h.machine(c)
	if !ok {
		return
	}

	var req reqdto.PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := machine.SetPaymentMethod(booking.PaymentMethod(req.Method)); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Unsupported payment method",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromDraft(sessionID, machine.Snapshot()))
}

// @Summary Apply coupon
// @Description Validate and apply a coupon code; a rejected code changes nothing
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.ApplyCouponRequest true "Coupon code"
// @Success 200 {object} resdto.SessionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /sessions/{id}/coupon [post]
func (h *SessionHandler) ApplyCoupon(c *gin.Context) {
	sessionID, machine, ok := h.machine(c)
	if !ok {
		return
	}

	var req reqdto.ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := machine.ApplyCoupon(req.TrimmedCode()); err != nil {
		if errors.Is(err, pricing.ErrCouponRejected) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Coupon code not recognized",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromDraft(sessionID, machine.Snapshot()))
}

// @Summary Advance wizard
// @Description Move forward one step if the current step's data is complete
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} resdto.SessionResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /sessions/{id}/next [post]
func (h *SessionHandler) Next(c *gin.Context) {
	sessionID, machine, ok := h.machine(c)
	if !ok {
		return
	}

	if _, err := machine.Next(); err != nil {
		h.stepError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromDraft(sessionID, machine.Snapshot()))
}

// @Summary Step back
// @Description Move one step backward; entered data is kept
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} resdto.SessionResponse
// @Failure 404 {object} map[string]string
// @Router /sessions/{id}/back [post]
func (h *SessionHandler) Back(c *gin.Context) {
	sessionID, machine, ok := h.machine(c)
	if !ok {
		return
	}

	machine.Back()
	c.JSON(http.StatusOK, resdto.FromDraft(sessionID, machine.Snapshot()))
}

// @Summary Submit booking
// @Description Dispatch the reviewed draft: re-check availability, charge if online, create the booking
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 201 {object} resdto.BookingResponse
// @Failure 402 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /sessions/{id}/submit [post]
func (h *SessionHandler) Submit(c *gin.Context) {
	sessionID, machine, ok := h.machine(c)
	if !ok {
		return
	}

	if err := machine.ReadyToSubmit(); err != nil {
		h.stepError(c, err)
		return
	}

	// The dispatcher reads the draft from a snapshot; flush first so the
	// durable copy matches what is being submitted.
	if err := machine.Flush(c.Request.Context()); err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError,
			errs.Mark(err, errs.ErrDraftPersistenceFailed), "Internal server error", nil)
		return
	}

	snap := machine.Snapshot()
	view, err := h.submitter.Submit(c.Request.Context(), &snap)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrDomainValidation), errors.Is(err, errs.ErrInvalidDateRange):
			// User-correctable input: the session stays on the review step
			// instead of forcing a retry round-trip.
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Booking details are incomplete or invalid",
			})
		case errors.Is(err, errs.ErrVehicleNoLongerAvailable):
			machine.MarkFailed()
			c.JSON(http.StatusConflict, gin.H{
				"error": "Vehicle no longer available for the requested dates",
			})
		case errors.Is(err, errs.ErrPaymentFailed):
			machine.MarkFailed()
			c.JSON(http.StatusPaymentRequired, gin.H{
				"error": "Payment failed, you can retry",
			})
		case errors.Is(err, errs.ErrVehicleNotFound):
			machine.MarkFailed()
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Vehicle not found",
			})
		default:
			machine.MarkFailed()
			// Unexpected dispatch failures keep their cause for the error
			// middleware log.
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	machine.MarkSubmitted()
	h.manager.Release(sessionID)
	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

// @Summary Retry failed submission
// @Description Re-enter the review step after a failed submission
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} resdto.SessionResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /sessions/{id}/retry [post]
func (h *SessionHandler) Retry(c *gin.Context) {
	sessionID, machine, ok := h.machine(c)
	if !ok {
		return
	}

	if err := machine.Retry(); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Session is not in a failed state",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromDraft(sessionID, machine.Snapshot()))
}

// @Summary Discard session
// @Description Abandon the wizard and delete its draft
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /sessions/{id} [delete]
func (h *SessionHandler) DiscardSession(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid session ID format",
		})
		return
	}

	if err := h.manager.Discard(c.Request.Context(), sessionID, userID); err != nil {
		h.sessionError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// machine resolves and authorizes the session named in the path. On failure
// the response has already been written.
func (h *SessionHandler) machine(c *gin.Context) (uuid.UUID, *session.Machine, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return uuid.Nil, nil, false
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid session ID format",
		})
		return uuid.Nil, nil, false
	}

	machine, err := h.manager.Get(sessionID, userID)
	if err != nil {
		h.sessionError(c, err)
		return uuid.Nil, nil, false
	}

	return sessionID, machine, true
}

func (h *SessionHandler) sessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrNoActiveDraft):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No active booking session",
		})
	case errors.Is(err, errs.ErrDraftNotOwned):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Session belongs to another user",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func (h *SessionHandler) stepError(c *gin.Context, err error) {
	var ve draft.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": ve.Reason,
			"field": ve.Field,
		})
	case errors.Is(err, draft.ErrNoVehicleSelected):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Select a vehicle before submitting",
		})
	case errors.Is(err, draft.ErrNoPaymentMethod):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Choose a payment method before submitting",
		})
	case errors.Is(err, session.ErrAlreadySubmitted):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Booking session already submitted",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
