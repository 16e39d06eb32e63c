package lifecycle

import "fixify/models"

// Guard failure messages surfaced on the ERROR state.
const (
	ErrMustSelectService = "Must select service first"
	ErrMustSelectDate    = "Must select service and date first"
	ErrMissingDetails    = "Missing required details"
	ErrInvalidForPayment = "Invalid state for payment processing"
	ErrNotConfirmed      = "Booking must be confirmed first"
	ErrUnknownAction     = "Unknown booking action"
)

// Reduce applies one action to a booking state and returns the next state.
// It is pure: no clock, no I/O, no mutation of its input. Every dispatch,
// guard failure included, records the action as LastAction; a failed guard
// keeps all prior fields and only moves status to ERROR with the guard's
// message.
func Reduce(state models.BookingState, action Action) models.BookingState {
	next := state
	next.LastAction = action.Type()
	next.Error = ""

	switch a := action.(type) {
	case SelectService:
		svc := a.Service
		next.Status = models.StatusSelectingDate
		next.Service = &svc
		return next

	case SelectDate:
		if state.Service == nil {
			return guardFail(state, action, ErrMustSelectService)
		}
		next.Status = models.StatusEnteringDetails
		next.Date = a.Date
		next.Time = a.Time
		next.Warnings = copyWarnings(a.Warnings)
		return next

	case UpdateDetails:
		if state.Service == nil || state.Date == "" || state.Time == "" {
			return guardFail(state, action, ErrMustSelectDate)
		}
		details := a.Details
		next.Status = models.StatusConfirming
		next.Details = &details
		return next

	case Confirm:
		if state.Service == nil || state.Date == "" || state.Time == "" || state.Details == nil {
			return guardFail(state, action, ErrMissingDetails)
		}
		next.Status = models.StatusProcessingPayment
		return next

	case ProcessPayment:
		if state.Status != models.StatusProcessingPayment && state.Status != models.StatusError {
			return guardFail(state, action, ErrInvalidForPayment)
		}
		payment := a.Payment
		next.Status = models.StatusConfirmed
		next.Payment = &payment
		return next

	case Complete:
		if state.Status != models.StatusConfirmed {
			return guardFail(state, action, ErrNotConfirmed)
		}
		next.Status = models.StatusCompleted
		return next

	case Cancel:
		next.Status = models.StatusCancelled
		return next

	case Retry:
		if state.Status != models.StatusError {
			// Nothing to retry; record the dispatch and stay put.
			next.Status = state.Status
			next.Error = state.Error
			return next
		}
		if state.LastAction == models.ActionProcessPayment {
			next.Status = models.StatusProcessingPayment
		} else {
			next.Status = models.StatusConfirming
		}
		return next

	case Reset:
		return models.NewBookingState()

	default:
		// The action set is closed; anything else is a programming error and
		// must not pass as a silent no-op.
		return guardFail(state, action, ErrUnknownAction)
	}
}

// guardFail moves the state to ERROR with the guard's message, preserving all
// other fields.
func guardFail(state models.BookingState, action Action, msg string) models.BookingState {
	next := state
	next.Status = models.StatusError
	next.Error = msg
	next.LastAction = action.Type()
	return next
}

func copyWarnings(warnings []string) []string {
	out := make([]string, len(warnings))
	copy(out, warnings)
	return out
}
