package models

// BookingStatus enumerates the lifecycle states of a booking draft.
type BookingStatus string

const (
	StatusIdle              BookingStatus = "IDLE"
	StatusSelectingDate     BookingStatus = "SELECTING_DATE"
	StatusEnteringDetails   BookingStatus = "ENTERING_DETAILS"
	StatusConfirming        BookingStatus = "CONFIRMING"
	StatusProcessingPayment BookingStatus = "PROCESSING_PAYMENT"
	StatusConfirmed         BookingStatus = "CONFIRMED"
	StatusCompleted         BookingStatus = "COMPLETED"
	StatusCancelled         BookingStatus = "CANCELLED"
	StatusError             BookingStatus = "ERROR"
)

// ActionType names a lifecycle action for retry routing and auditing.
type ActionType string

const (
	ActionSelectService  ActionType = "SELECT_SERVICE"
	ActionSelectDate     ActionType = "SELECT_DATE"
	ActionUpdateDetails  ActionType = "UPDATE_DETAILS"
	ActionConfirm        ActionType = "CONFIRM"
	ActionProcessPayment ActionType = "PROCESS_PAYMENT"
	ActionComplete       ActionType = "COMPLETE"
	ActionCancel         ActionType = "CANCEL"
	ActionRetry          ActionType = "RETRY"
	ActionReset          ActionType = "RESET"
)

// CustomerDetails carries the contact and address information entered by the
// customer. The engine treats it as opaque apart from presence checks.
type CustomerDetails struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes,omitempty"`
}

// PaymentInfo is the opaque payment payload attached on payment processing.
// Capturing the payment itself is an external concern.
type PaymentInfo struct {
	Method    string  `json:"method"`
	Reference string  `json:"reference,omitempty"`
	Amount    float64 `json:"amount,omitempty"`
}

// BookingState is the full state of one booking draft. Every dispatch replaces
// the snapshot wholesale; callers must not mutate a returned state.
type BookingState struct {
	Status     BookingStatus    `json:"status"`
	Service    *AppointmentType `json:"service,omitempty"`
	Date       string           `json:"date,omitempty"`
	Time       string           `json:"time,omitempty"`
	Details    *CustomerDetails `json:"details,omitempty"`
	Payment    *PaymentInfo     `json:"payment,omitempty"`
	Error      string           `json:"error,omitempty"`
	Warnings   []string         `json:"warnings"`
	LastAction ActionType       `json:"lastAction,omitempty"`
}

// NewBookingState returns the pristine initial state.
func NewBookingState() BookingState {
	return BookingState{
		Status:   StatusIdle,
		Warnings: []string{},
	}
}
