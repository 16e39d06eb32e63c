package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fixify/models"
	"fixify/services/lifecycle"
)

type capturedMessage struct {
	title string
	body  string
}

func captureSender(out *[]capturedMessage) Sender {
	return SenderFunc(func(title, body string) error {
		*out = append(*out, capturedMessage{title, body})
		return nil
	})
}

func TestNotifierSkipsFormFillingTransitions(t *testing.T) {
	var sent []capturedMessage
	n := NewBookingEventNotifier(captureSender(&sent))

	n.OnBookingEvent(lifecycle.Event{
		Kind: lifecycle.EventStatusChanged,
		From: models.StatusIdle,
		To:   models.StatusSelectingDate,
	})
	n.OnBookingEvent(lifecycle.Event{
		Kind: lifecycle.EventStatusChanged,
		From: models.StatusSelectingDate,
		To:   models.StatusEnteringDetails,
	})

	assert.Empty(t, sent)
}

func TestNotifierReportsMilestonesAndProblems(t *testing.T) {
	var sent []capturedMessage
	n := NewBookingEventNotifier(captureSender(&sent))

	n.OnBookingEvent(lifecycle.Event{
		Kind: lifecycle.EventStatusChanged,
		From: models.StatusProcessingPayment,
		To:   models.StatusConfirmed,
	})
	n.OnBookingEvent(lifecycle.Event{
		Kind:    lifecycle.EventErrorRaised,
		Message: "Must select service first",
	})
	n.OnBookingEvent(lifecycle.Event{
		Kind:    lifecycle.EventWarningAdded,
		Message: "Peak hours (2 PM - 6 PM): arrival times may vary",
	})

	assert.Len(t, sent, 3)
	assert.Equal(t, "Booking confirmed", sent[0].title)
	assert.Equal(t, "Booking problem", sent[1].title)
	assert.Equal(t, "Must select service first", sent[1].body)
	assert.Equal(t, "Heads up", sent[2].title)
}

func TestSummaryFormats(t *testing.T) {
	state := models.BookingState{
		Service: &models.AppointmentType{ID: "general-service", Name: "General Service"},
		Date:    "2025-01-21",
		Time:    "10:00",
	}
	assert.Equal(t, "Booking for General Service on 2025-01-21 at 10:00", Summary(state))
	assert.Equal(t, "Booking for your service", Summary(models.BookingState{}))
}
