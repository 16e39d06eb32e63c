package notification

import (
	"fmt"

	"go.uber.org/zap"

	"fixify/models"
	"fixify/services/lifecycle"
	"fixify/utils"
)

// Sender delivers a composed message to the customer. The transport behind it
// (push, SMS, email) is deployment specific.
type Sender interface {
	Send(title, body string) error
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(title, body string) error

func (f SenderFunc) Send(title, body string) error { return f(title, body) }

// LogSender writes messages to the application log instead of an external
// channel. It is the default sender for deployments without a push provider.
type LogSender struct{}

func (LogSender) Send(title, body string) error {
	utils.GetLogger().Info("Booking notification",
		zap.String("title", title), zap.String("body", body))
	return nil
}

// BookingEventNotifier turns booking state deltas into customer-facing
// messages. It implements lifecycle.Subscriber so the flow service can feed
// it directly.
type BookingEventNotifier struct {
	sender Sender
}

func NewBookingEventNotifier(sender Sender) *BookingEventNotifier {
	if sender == nil {
		sender = LogSender{}
	}
	return &BookingEventNotifier{sender: sender}
}

func (n *BookingEventNotifier) OnBookingEvent(event lifecycle.Event) {
	title, body, ok := composeMessage(event)
	if !ok {
		return
	}
	if err := n.sender.Send(title, body); err != nil {
		utils.GetLogger().Warn("Failed to deliver booking notification",
			zap.String("title", title), zap.Error(err))
	}
}

// composeMessage maps an event to a message. Intermediate form-filling states
// produce no message; customers only hear about milestones and problems.
func composeMessage(event lifecycle.Event) (title, body string, ok bool) {
	switch event.Kind {
	case lifecycle.EventStatusChanged:
		switch event.To {
		case models.StatusProcessingPayment:
			return "Almost there", "Your slot is reserved. Complete payment to confirm your booking.", true
		case models.StatusConfirmed:
			return "Booking confirmed", "Your appointment is confirmed. We'll see you then!", true
		case models.StatusCompleted:
			return "Service completed", "Thanks for booking with us. We hope everything went well.", true
		case models.StatusCancelled:
			return "Booking cancelled", "Your booking has been cancelled.", true
		}
		return "", "", false
	case lifecycle.EventErrorRaised:
		return "Booking problem", event.Message, true
	case lifecycle.EventWarningAdded:
		return "Heads up", event.Message, true
	}
	return "", "", false
}

// Summary renders a short confirmation line for a booked slot, used in
// confirmation messages and receipts.
func Summary(state models.BookingState) string {
	service := "your service"
	if state.Service != nil {
		service = state.Service.Name
	}
	if state.Date == "" || state.Time == "" {
		return fmt.Sprintf("Booking for %s", service)
	}
	return fmt.Sprintf("Booking for %s on %s at %s", service, state.Date, state.Time)
}
