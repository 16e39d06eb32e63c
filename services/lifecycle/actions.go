// Package lifecycle drives a booking draft through its states with a pure
// reducer over a closed set of actions. Side effects (notifications) hang off
// the Machine wrapper, which observes state deltas instead of being called
// from inside transitions.
package lifecycle

import "fixify/models"

// Action is the closed union of lifecycle actions. Exactly one struct exists
// per action kind; the reducer matches them exhaustively.
type Action interface {
	Type() models.ActionType
	isAction()
}

// SelectService picks the appointment type and opens date selection.
type SelectService struct {
	Service models.AppointmentType
}

// SelectDate fixes the chosen date and time. Warnings produced by slot
// validation ride along so the state carries them for the UI.
type SelectDate struct {
	Date     string
	Time     string
	Warnings []string
}

// UpdateDetails attaches the customer's contact details.
type UpdateDetails struct {
	Details models.CustomerDetails
}

// Confirm moves the draft into payment processing.
type Confirm struct{}

// ProcessPayment records the payment payload and confirms the booking.
type ProcessPayment struct {
	Payment models.PaymentInfo
}

// Complete marks a confirmed booking as done.
type Complete struct{}

// Cancel aborts the draft from any state.
type Cancel struct{}

// Retry re-enters the flow after an error, routed by the failed action.
type Retry struct{}

// Reset returns the draft to its pristine initial state.
type Reset struct{}

func (SelectService) Type() models.ActionType  { return models.ActionSelectService }
func (SelectDate) Type() models.ActionType     { return models.ActionSelectDate }
func (UpdateDetails) Type() models.ActionType  { return models.ActionUpdateDetails }
func (Confirm) Type() models.ActionType        { return models.ActionConfirm }
func (ProcessPayment) Type() models.ActionType { return models.ActionProcessPayment }
func (Complete) Type() models.ActionType       { return models.ActionComplete }
func (Cancel) Type() models.ActionType         { return models.ActionCancel }
func (Retry) Type() models.ActionType          { return models.ActionRetry }
func (Reset) Type() models.ActionType          { return models.ActionReset }

func (SelectService) isAction()  {}
func (SelectDate) isAction()     {}
func (UpdateDetails) isAction()  {}
func (Confirm) isAction()        {}
func (ProcessPayment) isAction() {}
func (Complete) isAction()       {}
func (Cancel) isAction()         {}
func (Retry) isAction()          {}
func (Reset) isAction()          {}
