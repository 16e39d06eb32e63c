// Package rules is the static rule registry for the booking engine: slot
// durations, business hours, daily quotas and the fixed customer-facing
// messages every other component quotes verbatim. Pure data, no behavior.
package rules

// Slot durations in minutes per service tier.
const (
	SlotDurationAMC     = 90
	SlotDurationRegular = 60
	SlotDurationRepair  = 120
)

// Booking window and spacing rules.
const (
	BufferMinutes   = 30  // mandatory idle time around every booking
	MinBookingHours = 24  // minimum lead time before an appointment starts
	MaxBookingDays  = 104 // furthest a booking may be placed in the future
)

// Business hours expressed as fractional hour-of-day values.
const (
	OpeningHour       = 9.5  // 9:30 AM
	ClosingHour       = 17.0 // 5:00 PM
	FridayClosingHour = 16.5 // 4:30 PM

	PeakStartHour = 14.0
	PeakEndHour   = 18.0

	AMCWindowStartHour = 9.5
	AMCWindowEndHour   = 13.0
)

// Daily admission caps, split between the AMC and regular tiers.
const (
	MaxAMCPerDay      = 3
	MaxTotalPerDay    = 6
	MinRegularReserve = 4 // floor of slots kept for regular bookings
)

// ServiceRadiusKm is the outer edge of the service area; addresses farther
// than this from every region center are out of range.
const ServiceRadiusKm = 8.0

// Fixed rejection messages. The validator and allocation counter return these
// byte-for-byte so the UI can match on them.
const (
	MsgBeforeOpening      = "Service hours start at 9:30 AM"
	MsgAfterClosing       = "Last booking of the day is 5:00 PM"
	MsgAfterClosingFriday = "Last booking for Friday is 4:30 PM"
	MsgAMCDailyLimit      = "Maximum AMC slots for the day reached"
	MsgRegularDailyLimit  = "No more slots available for regular bookings"
	MsgDayFull            = "No more slots available for this day"
	MsgReservedForRegular = "Remaining slots reserved for regular bookings"
	MsgSlotConflict       = "This time conflicts with an existing booking (30 min buffer required)"
	MsgSlotUnavailable    = "This slot is no longer available"
	MsgLeadTime           = "Bookings require at least 24 hours advance notice"
	MsgTooFarAhead        = "Bookings can only be made up to 104 days in advance"
)

// Fixed advisory messages appended as warnings on accepted slots.
const (
	MsgPeakHours      = "Peak hours (2 PM - 6 PM): arrival times may vary"
	MsgAMCRecommended = "AMC visits are best scheduled between 9:30 AM and 1:00 PM"
)

// DefaultDuration returns the tier default slot duration in minutes.
func DefaultDuration(isAMC bool) int {
	if isAMC {
		return SlotDurationAMC
	}
	return SlotDurationRegular
}
