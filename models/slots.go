package models

import "time"

// TimeSlot represents a candidate date/time offered to the customer.
// Slots are produced by an external availability source; the engine only
// annotates them (attaching a weight or flipping availability off).
type TimeSlot struct {
	ID        string    `json:"id"`
	DateTime  time.Time `json:"datetime"`
	Available bool      `json:"available"`
	Weight    *float64  `json:"weight,omitempty"` // proximity score in [0,1], set by geo weighting
}

// AppointmentType is an immutable catalog entry for a bookable service.
type AppointmentType struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Duration int      `json:"duration"` // minutes, always > 0
	IsAMC    bool     `json:"isAMC"`
	Price    *float64 `json:"price,omitempty"`
}

// ExistingBookingSnapshot is a read-only view of a booking already committed
// for the same day, supplied by the booking store.
type ExistingBookingSnapshot struct {
	DateTime time.Time `json:"datetime"`
	Duration int       `json:"duration"` // minutes
	Type     string    `json:"type"`     // "amc" or any other tier label
}

// IsAMC reports whether the snapshot belongs to the maintenance-contract tier.
func (b ExistingBookingSnapshot) IsAMC() bool {
	return b.Type == BookingTypeAMC
}

// BookingTypeAMC is the tier label carried by maintenance-contract bookings.
const BookingTypeAMC = "amc"

// ValidationResult is the outcome of a slot or allocation check. Failures are
// communicated as data, never as errors, so the engine stays embeddable in
// request handlers.
type ValidationResult struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings,omitempty"`
}

// Reject builds a failed result carrying a single rule message.
func Reject(msg string) ValidationResult {
	return ValidationResult{IsValid: false, Errors: []string{msg}}
}

// Accept builds a passing result with optional warnings.
func Accept(warnings ...string) ValidationResult {
	return ValidationResult{IsValid: true, Errors: []string{}, Warnings: warnings}
}
