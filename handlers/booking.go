package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fixify/models"
	"fixify/services/booking"
	"fixify/services/geo"
	"fixify/services/lifecycle"
	"fixify/services/scheduling"
)

// BookingHandler exposes the booking engine over HTTP.
type BookingHandler struct {
	Flow     booking.BookingFlowService
	Store    booking.BookingStore
	Resolver *geo.Resolver
	Logger   *zap.Logger
}

// NewBookingHandler wires the handler with its collaborators.
func NewBookingHandler(flow booking.BookingFlowService, store booking.BookingStore, resolver *geo.Resolver, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Flow: flow, Store: store, Resolver: resolver, Logger: logger}
}

// StartSession creates a new booking session.
func (h *BookingHandler) StartSession(c *gin.Context) {
	sessionID, state, err := h.Flow.StartSession(c.Request.Context())
	if err != nil {
		h.Logger.Error("Failed to start booking session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start booking session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionID": sessionID, "state": state})
}

// dispatchRequest carries one lifecycle action and its payload.
type dispatchRequest struct {
	Action    models.ActionType       `json:"action" binding:"required"`
	ServiceID string                  `json:"serviceId,omitempty"`
	Date      string                  `json:"date,omitempty"`
	Time      string                  `json:"time,omitempty"`
	Details   *models.CustomerDetails `json:"details,omitempty"`
	Payment   *models.PaymentInfo     `json:"payment,omitempty"`
}

// DispatchAction applies a lifecycle action to the session.
func (h *BookingHandler) DispatchAction(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var input dispatchRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	action, err := buildAction(input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := h.Flow.Dispatch(c.Request.Context(), sessionID, action)
	if err != nil {
		respondSessionError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": state})
}

// buildAction maps a request onto the closed lifecycle action set.
func buildAction(input dispatchRequest) (lifecycle.Action, error) {
	switch input.Action {
	case models.ActionSelectService:
		appt, ok := booking.AppointmentTypeByID(input.ServiceID)
		if !ok {
			return nil, errors.New("unknown service id")
		}
		return lifecycle.SelectService{Service: appt}, nil
	case models.ActionSelectDate:
		return lifecycle.SelectDate{Date: input.Date, Time: input.Time}, nil
	case models.ActionUpdateDetails:
		if input.Details == nil {
			return nil, errors.New("details payload is required")
		}
		return lifecycle.UpdateDetails{Details: *input.Details}, nil
	case models.ActionConfirm:
		return lifecycle.Confirm{}, nil
	case models.ActionProcessPayment:
		if input.Payment == nil {
			return nil, errors.New("payment payload is required")
		}
		return lifecycle.ProcessPayment{Payment: *input.Payment}, nil
	case models.ActionComplete:
		return lifecycle.Complete{}, nil
	case models.ActionCancel:
		return lifecycle.Cancel{}, nil
	case models.ActionRetry:
		return lifecycle.Retry{}, nil
	case models.ActionReset:
		return lifecycle.Reset{}, nil
	default:
		return nil, errors.New("unknown booking action")
	}
}

// confirmRequest is the payload for the admission path.
type confirmRequest struct {
	Slot  models.TimeSlot `json:"slot" binding:"required"`
	IsAMC bool            `json:"isAMC"`
}

// ConfirmBooking validates the selected slot, admits it against the day's
// quota and advances the session to payment processing.
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var input confirmRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	state, verdict, err := h.Flow.ConfirmBooking(c.Request.Context(), sessionID, input.Slot, input.IsAMC)
	if err != nil {
		respondSessionError(c, h.Logger, err)
		return
	}
	if !verdict.IsValid {
		c.JSON(http.StatusConflict, gin.H{"state": state, "result": verdict})
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": state, "result": verdict})
}

// CancelSession discards the booking session.
func (h *BookingHandler) CancelSession(c *gin.Context) {
	sessionID := c.Param("sessionID")
	if err := h.Flow.CancelSession(c.Request.Context(), sessionID); err != nil {
		respondSessionError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

// validateRequest is the payload for standalone slot validation.
type validateRequest struct {
	Slot              models.TimeSlot `json:"slot" binding:"required"`
	IsAMC             bool            `json:"isAMC"`
	AppointmentTypeID string          `json:"appointmentTypeId,omitempty"`
}

// ValidateSlot runs the slot validator against the day's committed bookings.
func (h *BookingHandler) ValidateSlot(c *gin.Context) {
	var input validateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	var apptType *models.AppointmentType
	if input.AppointmentTypeID != "" {
		appt, ok := booking.AppointmentTypeByID(input.AppointmentTypeID)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown service id"})
			return
		}
		apptType = &appt
	}

	date := input.Slot.DateTime.Format("2006-01-02")
	existing, err := h.Store.BookingsForDay(c.Request.Context(), date)
	if err != nil {
		h.Logger.Error("Failed to load bookings for day", zap.String("date", date), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load existing bookings"})
		return
	}

	result := scheduling.ValidateSlot(input.Slot, input.IsAMC, existing, apptType, time.Now())
	c.JSON(http.StatusOK, result)
}

// weightRequest carries candidate slots and the address to weight them by.
type weightRequest struct {
	Address string            `json:"address" binding:"required"`
	Slots   []models.TimeSlot `json:"slots"`
}

// WeightSlots resolves the address to its nearest region and applies the
// proximity weight to every candidate slot.
func (h *BookingHandler) WeightSlots(c *gin.Context) {
	var input weightRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resolution := h.Resolver.ResolveRegion(c.Request.Context(), input.Address)
	slots := geo.FilterSlotsByDistance(input.Slots, resolution.DistanceKm)
	c.JSON(http.StatusOK, gin.H{"resolution": resolution, "slots": slots})
}

// ResolveRegion resolves the nearest service region for an address.
func (h *BookingHandler) ResolveRegion(c *gin.Context) {
	var input struct {
		Address string `json:"address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.Resolver.ResolveRegion(c.Request.Context(), input.Address))
}

// GetAvailableServices lists the appointment catalog.
func (h *BookingHandler) GetAvailableServices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"services": booking.AvailableServices()})
}

func respondSessionError(c *gin.Context, logger *zap.Logger, err error) {
	var sessionErr *booking.SessionError
	if errors.As(err, &sessionErr) {
		c.JSON(http.StatusNotFound, gin.H{"error": sessionErr.Message})
		return
	}
	logger.Error("Booking request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
