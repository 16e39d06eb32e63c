// Package scheduling holds the slot validator, the daily allocation counter
// and the per-day admission guard. All checks are pure functions returning
// their verdict as data.
package scheduling

import (
	"time"

	"fixify/models"
	"fixify/services/rules"
)

// ValidateSlot decides whether a candidate slot may be booked, checking
// business hours, daily quotas, buffered overlap with existing bookings,
// availability and the lead-time window, in that order. The first failing
// check wins and is returned alone. Warnings (peak hours, the AMC
// recommended window) are only attached to an accepted slot.
//
// existing must contain the committed bookings for the slot's calendar day.
// now is injected so callers and tests control the clock.
func ValidateSlot(slot models.TimeSlot, isAMC bool, existing []models.ExistingBookingSnapshot, apptType *models.AppointmentType, now time.Time) models.ValidationResult {
	hour := fractionalHour(slot.DateTime)

	if hour < rules.OpeningHour {
		return models.Reject(rules.MsgBeforeOpening)
	}

	if slot.DateTime.Weekday() == time.Friday {
		if hour >= rules.FridayClosingHour {
			return models.Reject(rules.MsgAfterClosingFriday)
		}
	} else if hour >= rules.ClosingHour {
		return models.Reject(rules.MsgAfterClosing)
	}

	duration := rules.DefaultDuration(isAMC)
	if apptType != nil && apptType.Duration > 0 {
		duration = apptType.Duration
	}

	amcCount, regularCount := countByTier(existing)
	if isAMC && amcCount >= rules.MaxAMCPerDay {
		return models.Reject(rules.MsgAMCDailyLimit)
	}
	if !isAMC && regularCount >= rules.MinRegularReserve {
		return models.Reject(rules.MsgRegularDailyLimit)
	}
	if amcCount+regularCount >= rules.MaxTotalPerDay {
		return models.Reject(rules.MsgDayFull)
	}

	slotEnd := slot.DateTime.Add(time.Duration(duration) * time.Minute)
	buffer := rules.BufferMinutes * time.Minute
	for _, b := range existing {
		bufStart := b.DateTime.Add(-buffer)
		bufEnd := b.DateTime.Add(time.Duration(b.Duration)*time.Minute + buffer)
		// Half-open interval intersection: [start, end) vs [bufStart, bufEnd).
		if slot.DateTime.Before(bufEnd) && bufStart.Before(slotEnd) {
			return models.Reject(rules.MsgSlotConflict)
		}
	}

	if !slot.Available {
		return models.Reject(rules.MsgSlotUnavailable)
	}

	if slot.DateTime.Before(now.Add(rules.MinBookingHours * time.Hour)) {
		return models.Reject(rules.MsgLeadTime)
	}
	if slot.DateTime.After(now.AddDate(0, 0, rules.MaxBookingDays)) {
		return models.Reject(rules.MsgTooFarAhead)
	}

	var warnings []string
	if hour >= rules.PeakStartHour && hour < rules.PeakEndHour {
		warnings = append(warnings, rules.MsgPeakHours)
	}
	if isAMC && hour >= rules.AMCWindowStartHour && hour < rules.AMCWindowEndHour {
		warnings = append(warnings, rules.MsgAMCRecommended)
	}
	return models.Accept(warnings...)
}

// fractionalHour returns the slot's local hour-of-day as hour + minute/60.
func fractionalHour(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60
}

func countByTier(existing []models.ExistingBookingSnapshot) (amc, regular int) {
	for _, b := range existing {
		if b.IsAMC() {
			amc++
		} else {
			regular++
		}
	}
	return amc, regular
}
