package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixify/models"
	"fixify/services/lifecycle"
	"fixify/services/rules"
	"fixify/services/scheduling"
)

var sessionTestNow = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

func newTestFlowService(t *testing.T) (*DefaultBookingFlowService, *MemoryBookingStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	store := NewMemoryBookingStore()
	svc := NewBookingFlowService(client, store, scheduling.NewLocalDayGuard(), 30*time.Minute)
	svc.Now = func() time.Time { return sessionTestNow }
	return svc, store
}

// driveToConfirming walks a session to the CONFIRMING state.
func driveToConfirming(t *testing.T, svc *DefaultBookingFlowService, sessionID string) models.BookingState {
	t.Helper()
	ctx := context.Background()

	appt, ok := AppointmentTypeByID("general-service")
	require.True(t, ok)

	state, err := svc.Dispatch(ctx, sessionID, lifecycle.SelectService{Service: appt})
	require.NoError(t, err)
	require.Equal(t, models.StatusSelectingDate, state.Status)

	state, err = svc.Dispatch(ctx, sessionID, lifecycle.SelectDate{Date: "2025-01-21", Time: "10:00"})
	require.NoError(t, err)
	require.Equal(t, models.StatusEnteringDetails, state.Status)

	state, err = svc.Dispatch(ctx, sessionID, lifecycle.UpdateDetails{Details: models.CustomerDetails{
		Name: "Lim Hui Fen", Phone: "+65 8123 4567", Address: "Blk 51 Toa Payoh Lor 5",
	}})
	require.NoError(t, err)
	require.Equal(t, models.StatusConfirming, state.Status)
	return state
}

func confirmSlot() models.TimeSlot {
	return models.TimeSlot{
		ID:        "slot-1",
		DateTime:  time.Date(2025, 1, 21, 10, 0, 0, 0, time.UTC),
		Available: true,
	}
}

func TestStartSessionCreatesIdleState(t *testing.T) {
	svc, _ := newTestFlowService(t)
	ctx := context.Background()

	sessionID, state, err := svc.StartSession(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)
	assert.Equal(t, models.StatusIdle, state.Status)

	loaded, err := svc.GetSession(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, state, loaded)
}

func TestDispatchUnknownSessionFails(t *testing.T) {
	svc, _ := newTestFlowService(t)

	_, err := svc.Dispatch(context.Background(), "missing", lifecycle.Cancel{})
	require.Error(t, err)
	var sessionErr *SessionError
	assert.ErrorAs(t, err, &sessionErr)
}

func TestDispatchPersistsStateAcrossCalls(t *testing.T) {
	svc, _ := newTestFlowService(t)
	ctx := context.Background()

	sessionID, _, err := svc.StartSession(ctx)
	require.NoError(t, err)

	state := driveToConfirming(t, svc, sessionID)
	require.NotNil(t, state.Service)

	loaded, err := svc.GetSession(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, state, loaded)
}

func TestConfirmBookingAdmitsAndAdvances(t *testing.T) {
	svc, store := newTestFlowService(t)
	ctx := context.Background()

	sessionID, _, err := svc.StartSession(ctx)
	require.NoError(t, err)
	driveToConfirming(t, svc, sessionID)

	state, verdict, err := svc.ConfirmBooking(ctx, sessionID, confirmSlot(), false)
	require.NoError(t, err)
	require.True(t, verdict.IsValid)
	assert.Equal(t, models.StatusProcessingPayment, state.Status)

	day, err := store.BookingsForDay(ctx, "2025-01-21")
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, 60, day[0].Duration)
	assert.Equal(t, "regular", day[0].Type)
}

func TestConfirmBookingRejectsInvalidSlotAsData(t *testing.T) {
	svc, store := newTestFlowService(t)
	ctx := context.Background()

	sessionID, _, err := svc.StartSession(ctx)
	require.NoError(t, err)
	driveToConfirming(t, svc, sessionID)

	early := confirmSlot()
	early.DateTime = time.Date(2025, 1, 21, 9, 0, 0, 0, time.UTC)

	state, verdict, err := svc.ConfirmBooking(ctx, sessionID, early, false)
	require.NoError(t, err)
	require.False(t, verdict.IsValid)
	assert.Equal(t, []string{rules.MsgBeforeOpening}, verdict.Errors)
	// The session stays where it was and nothing was committed.
	assert.Equal(t, models.StatusConfirming, state.Status)
	day, _ := store.BookingsForDay(ctx, "2025-01-21")
	assert.Empty(t, day)
}

func TestConfirmBookingOnUnreadySessionConsumesNoCapacity(t *testing.T) {
	svc, store := newTestFlowService(t)
	ctx := context.Background()

	sessionID, _, err := svc.StartSession(ctx)
	require.NoError(t, err)

	appt, ok := AppointmentTypeByID("general-service")
	require.True(t, ok)
	_, err = svc.Dispatch(ctx, sessionID, lifecycle.SelectService{Service: appt})
	require.NoError(t, err)

	// No date or details yet: the confirm guard must fire before anything
	// is committed for the day.
	state, verdict, err := svc.ConfirmBooking(ctx, sessionID, confirmSlot(), false)
	require.NoError(t, err)
	require.False(t, verdict.IsValid)
	assert.Equal(t, []string{lifecycle.ErrMissingDetails}, verdict.Errors)
	assert.Equal(t, models.StatusError, state.Status)

	day, err := store.BookingsForDay(ctx, "2025-01-21")
	require.NoError(t, err)
	assert.Empty(t, day)

	// After recovering and finishing the flow, the same slot still books.
	_, err = svc.Dispatch(ctx, sessionID, lifecycle.Retry{})
	require.NoError(t, err)
	_, err = svc.Dispatch(ctx, sessionID, lifecycle.SelectDate{Date: "2025-01-21", Time: "10:00"})
	require.NoError(t, err)
	_, err = svc.Dispatch(ctx, sessionID, lifecycle.UpdateDetails{Details: models.CustomerDetails{
		Name: "Lim Hui Fen", Phone: "+65 8123 4567", Address: "Blk 51 Toa Payoh Lor 5",
	}})
	require.NoError(t, err)

	state, verdict, err = svc.ConfirmBooking(ctx, sessionID, confirmSlot(), false)
	require.NoError(t, err)
	require.True(t, verdict.IsValid)
	assert.Equal(t, models.StatusProcessingPayment, state.Status)
}

func TestConfirmBookingRejectsWhenQuotaConsumed(t *testing.T) {
	svc, store := newTestFlowService(t)
	ctx := context.Background()

	for _, hour := range []int{9, 11, 13, 15} {
		require.NoError(t, store.Append(ctx, "2025-01-21", models.ExistingBookingSnapshot{
			DateTime: time.Date(2025, 1, 21, hour, 30, 0, 0, time.UTC),
			Duration: 60,
			Type:     "regular",
		}))
	}

	sessionID, _, err := svc.StartSession(ctx)
	require.NoError(t, err)
	driveToConfirming(t, svc, sessionID)

	state, verdict, err := svc.ConfirmBooking(ctx, sessionID, confirmSlot(), false)
	require.NoError(t, err)
	require.False(t, verdict.IsValid)
	assert.Equal(t, []string{rules.MsgRegularDailyLimit}, verdict.Errors)
	assert.Equal(t, models.StatusConfirming, state.Status)
}

func TestConcurrentConfirmationsNeverOvershootQuota(t *testing.T) {
	svc, store := newTestFlowService(t)
	ctx := context.Background()

	// Candidate slots sit 90 minutes apart so the buffered overlap check
	// never fires; the quota alone decides admissions.
	starts := []time.Time{
		time.Date(2025, 1, 21, 9, 30, 0, 0, time.UTC),
		time.Date(2025, 1, 21, 11, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 21, 12, 30, 0, 0, time.UTC),
		time.Date(2025, 1, 21, 14, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 21, 15, 30, 0, 0, time.UTC),
	}
	var wg sync.WaitGroup
	for _, start := range starts {
		sessionID, _, err := svc.StartSession(ctx)
		require.NoError(t, err)
		driveToConfirming(t, svc, sessionID)

		slot := confirmSlot()
		slot.DateTime = start

		wg.Add(1)
		go func(id string, s models.TimeSlot) {
			defer wg.Done()
			_, _, err := svc.ConfirmBooking(ctx, id, s, false)
			assert.NoError(t, err)
		}(sessionID, slot)
	}
	wg.Wait()

	day, err := store.BookingsForDay(ctx, "2025-01-21")
	require.NoError(t, err)
	assert.Equal(t, rules.MaxTotalPerDay-rules.MaxAMCPerDay, len(day))
}

func TestCancelSessionRemovesSession(t *testing.T) {
	svc, _ := newTestFlowService(t)
	ctx := context.Background()

	sessionID, _, err := svc.StartSession(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.CancelSession(ctx, sessionID))

	_, err = svc.GetSession(ctx, sessionID)
	require.Error(t, err)
	assert.Error(t, svc.CancelSession(ctx, sessionID))
}

func TestDispatchForwardsDeltasToNotifier(t *testing.T) {
	svc, _ := newTestFlowService(t)
	ctx := context.Background()

	var events []lifecycle.Event
	svc.Notifier = lifecycle.SubscriberFunc(func(event lifecycle.Event) {
		events = append(events, event)
	})

	sessionID, _, err := svc.StartSession(ctx)
	require.NoError(t, err)

	_, err = svc.Dispatch(ctx, sessionID, lifecycle.SelectDate{Date: "2025-01-21", Time: "10:00"})
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, lifecycle.EventStatusChanged, events[0].Kind)
	assert.Equal(t, lifecycle.EventErrorRaised, events[1].Kind)
}
