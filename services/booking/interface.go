package booking

import (
	"context"

	"fixify/models"
	"fixify/services/lifecycle"
)

// BookingFlowService defines the interface for managing a stateful booking
// session from first service selection through confirmation.
type BookingFlowService interface {
	StartSession(ctx context.Context) (string, models.BookingState, error)
	GetSession(ctx context.Context, sessionID string) (models.BookingState, error)
	Dispatch(ctx context.Context, sessionID string, action lifecycle.Action) (models.BookingState, error)
	ConfirmBooking(ctx context.Context, sessionID string, slot models.TimeSlot, isAMC bool) (models.BookingState, models.ValidationResult, error)
	CancelSession(ctx context.Context, sessionID string) error
}
