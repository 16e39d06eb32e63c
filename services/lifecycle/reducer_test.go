package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixify/models"
)

var testService = models.AppointmentType{
	ID:       "general-service",
	Name:     "General Servicing",
	Duration: 60,
}

var testDetails = models.CustomerDetails{
	Name:    "Tan Wei Ming",
	Phone:   "+65 9123 4567",
	Address: "Blk 123 Jurong East St 13",
}

var testPayment = models.PaymentInfo{
	Method:    "card",
	Reference: "pay_123",
	Amount:    60,
}

// driveTo walks a fresh draft up to the requested status.
func driveTo(t *testing.T, status models.BookingStatus) models.BookingState {
	t.Helper()
	state := models.NewBookingState()
	steps := []struct {
		action Action
		status models.BookingStatus
	}{
		{SelectService{Service: testService}, models.StatusSelectingDate},
		{SelectDate{Date: "2025-01-21", Time: "10:00"}, models.StatusEnteringDetails},
		{UpdateDetails{Details: testDetails}, models.StatusConfirming},
		{Confirm{}, models.StatusProcessingPayment},
		{ProcessPayment{Payment: testPayment}, models.StatusConfirmed},
		{Complete{}, models.StatusCompleted},
	}
	for _, step := range steps {
		if state.Status == status {
			return state
		}
		state = Reduce(state, step.action)
		require.Equal(t, step.status, state.Status)
	}
	require.Equal(t, status, state.Status)
	return state
}

func TestReduceSelectDateWithoutServiceFails(t *testing.T) {
	state := Reduce(models.NewBookingState(), SelectDate{Date: "2025-01-21", Time: "10:00"})

	assert.Equal(t, models.StatusError, state.Status)
	assert.Equal(t, "Must select service first", state.Error)
	assert.Equal(t, models.ActionSelectDate, state.LastAction)
	assert.Nil(t, state.Service)
}

func TestReduceHappyPathEndsCompleted(t *testing.T) {
	state := driveTo(t, models.StatusCompleted)

	require.NotNil(t, state.Service)
	assert.Equal(t, testService.ID, state.Service.ID)
	assert.Equal(t, "2025-01-21", state.Date)
	assert.Equal(t, "10:00", state.Time)
	require.NotNil(t, state.Details)
	assert.Equal(t, testDetails.Name, state.Details.Name)
	require.NotNil(t, state.Payment)
	assert.Equal(t, testPayment.Reference, state.Payment.Reference)
	assert.Equal(t, models.ActionComplete, state.LastAction)
	assert.Empty(t, state.Error)
}

func TestReduceResetReturnsPristineState(t *testing.T) {
	states := []models.BookingState{
		models.NewBookingState(),
		driveTo(t, models.StatusConfirming),
		driveTo(t, models.StatusCompleted),
		Reduce(models.NewBookingState(), SelectDate{}),
	}
	for _, state := range states {
		assert.Equal(t, models.NewBookingState(), Reduce(state, Reset{}))
	}
}

func TestReduceUpdateDetailsRequiresDateAndTime(t *testing.T) {
	state := Reduce(models.NewBookingState(), SelectService{Service: testService})
	state = Reduce(state, UpdateDetails{Details: testDetails})

	assert.Equal(t, models.StatusError, state.Status)
	assert.Equal(t, "Must select service and date first", state.Error)
	// Prior fields survive a failed guard.
	require.NotNil(t, state.Service)
	assert.Equal(t, testService.ID, state.Service.ID)
}

func TestReduceConfirmRequiresDetails(t *testing.T) {
	state := driveTo(t, models.StatusEnteringDetails)
	state = Reduce(state, Confirm{})

	assert.Equal(t, models.StatusError, state.Status)
	assert.Equal(t, "Missing required details", state.Error)
}

func TestReduceProcessPaymentOnlyFromPaymentOrError(t *testing.T) {
	state := driveTo(t, models.StatusConfirming)
	state = Reduce(state, ProcessPayment{Payment: testPayment})

	assert.Equal(t, models.StatusError, state.Status)
	assert.Equal(t, "Invalid state for payment processing", state.Error)

	// From ERROR the payment may be retried directly.
	state = Reduce(state, ProcessPayment{Payment: testPayment})
	assert.Equal(t, models.StatusConfirmed, state.Status)
	assert.Empty(t, state.Error)
}

func TestReduceCompleteRequiresConfirmed(t *testing.T) {
	state := driveTo(t, models.StatusProcessingPayment)
	state = Reduce(state, Complete{})

	assert.Equal(t, models.StatusError, state.Status)
	assert.Equal(t, "Booking must be confirmed first", state.Error)
}

func TestReduceCancelFromAnyState(t *testing.T) {
	for _, status := range []models.BookingStatus{
		models.StatusIdle,
		models.StatusEnteringDetails,
		models.StatusConfirmed,
	} {
		state := driveTo(t, status)
		state = Reduce(state, Cancel{})
		assert.Equal(t, models.StatusCancelled, state.Status)
	}
}

func TestReduceRetryRoutesByFailedAction(t *testing.T) {
	// A payment failure retries back into payment processing.
	state := driveTo(t, models.StatusConfirming)
	state = Reduce(state, ProcessPayment{Payment: testPayment})
	require.Equal(t, models.StatusError, state.Status)
	state = Reduce(state, Retry{})
	assert.Equal(t, models.StatusProcessingPayment, state.Status)
	assert.Empty(t, state.Error)

	// Any other failure retries into confirmation.
	state = driveTo(t, models.StatusEnteringDetails)
	state = Reduce(state, Confirm{})
	require.Equal(t, models.StatusError, state.Status)
	state = Reduce(state, Retry{})
	assert.Equal(t, models.StatusConfirming, state.Status)
}

func TestReduceRetryOutsideErrorIsNoOp(t *testing.T) {
	state := driveTo(t, models.StatusConfirming)
	next := Reduce(state, Retry{})

	assert.Equal(t, state.Status, next.Status)
	assert.Equal(t, models.ActionRetry, next.LastAction)
}

func TestReduceSelectDateCarriesWarnings(t *testing.T) {
	warnings := []string{"Peak hours (2 PM - 6 PM): arrival times may vary"}
	state := Reduce(models.NewBookingState(), SelectService{Service: testService})
	state = Reduce(state, SelectDate{Date: "2025-01-21", Time: "14:30", Warnings: warnings})

	assert.Equal(t, warnings, state.Warnings)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	original := driveTo(t, models.StatusConfirming)
	snapshot := original

	Reduce(original, Cancel{})
	assert.Equal(t, snapshot, original)
}
