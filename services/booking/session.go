package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"fixify/models"
	"fixify/services/lifecycle"
	"fixify/services/rules"
	"fixify/services/scheduling"
	"fixify/utils"
)

// DefaultBookingFlowService implements BookingFlowService on a redis session
// cache. Each session holds one BookingState snapshot driven by the lifecycle
// reducer; confirmation runs the slot validator and, inside the day guard,
// the allocation counter before the booking is committed.
type DefaultBookingFlowService struct {
	Cache      *redis.Client
	Store      BookingStore
	Guard      scheduling.DayGuard
	Notifier   lifecycle.Subscriber // optional; receives state deltas
	SessionTTL time.Duration
	Now        func() time.Time
}

// NewBookingFlowService wires the flow service with its collaborators.
func NewBookingFlowService(cache *redis.Client, store BookingStore, guard scheduling.DayGuard, ttl time.Duration) *DefaultBookingFlowService {
	return &DefaultBookingFlowService{
		Cache:      cache,
		Store:      store,
		Guard:      guard,
		SessionTTL: ttl,
		Now:        time.Now,
	}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("bookingsession:%s", sessionID)
}

// StartSession creates a new booking session at the initial IDLE state.
func (s *DefaultBookingFlowService) StartSession(ctx context.Context) (string, models.BookingState, error) {
	sessionID := uuid.New().String()
	state := models.NewBookingState()

	if err := s.saveState(ctx, sessionID, state); err != nil {
		return "", models.BookingState{}, err
	}
	utils.GetLogger().Info("Booking session started", zap.String("sessionID", sessionID))
	return sessionID, state, nil
}

// GetSession returns the current state snapshot for a session.
func (s *DefaultBookingFlowService) GetSession(ctx context.Context, sessionID string) (models.BookingState, error) {
	return s.loadState(ctx, sessionID)
}

// Dispatch applies one lifecycle action to the session's state and stores the
// new snapshot. Deltas between the two snapshots are forwarded to the
// notifier, keeping side effects out of the reducer.
func (s *DefaultBookingFlowService) Dispatch(ctx context.Context, sessionID string, action lifecycle.Action) (models.BookingState, error) {
	prev, err := s.loadState(ctx, sessionID)
	if err != nil {
		return models.BookingState{}, err
	}

	next := lifecycle.Reduce(prev, action)
	if err := s.saveState(ctx, sessionID, next); err != nil {
		return models.BookingState{}, err
	}
	s.notify(prev, next)
	return next, nil
}

// ConfirmBooking runs the admission sequence for the session's selected slot:
// full slot validation against the day's committed bookings, then an
// allocation re-check and the store append inside the per-day critical
// section, and finally the CONFIRM dispatch. A failed check is returned as
// data with the session state untouched.
func (s *DefaultBookingFlowService) ConfirmBooking(ctx context.Context, sessionID string, slot models.TimeSlot, isAMC bool) (models.BookingState, models.ValidationResult, error) {
	logger := utils.GetLogger()

	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return models.BookingState{}, models.ValidationResult{}, err
	}

	// The CONFIRM guard must pass before any capacity is consumed: an
	// unready session (missing details, no date) must not commit a slot it
	// can never confirm.
	next := lifecycle.Reduce(state, lifecycle.Confirm{})
	if next.Status == models.StatusError {
		if err := s.saveState(ctx, sessionID, next); err != nil {
			return state, models.ValidationResult{}, err
		}
		s.notify(state, next)
		logger.Info("Confirm rejected, session not ready",
			zap.String("sessionID", sessionID), zap.String("reason", next.Error))
		return next, models.Reject(next.Error), nil
	}

	date := slot.DateTime.Format("2006-01-02")
	existing, err := s.Store.BookingsForDay(ctx, date)
	if err != nil {
		return state, models.ValidationResult{}, fmt.Errorf("failed to load bookings for %s: %w", date, err)
	}

	verdict := scheduling.ValidateSlot(slot, isAMC, existing, state.Service, s.Now())
	if !verdict.IsValid {
		logger.Info("Slot rejected by validator",
			zap.String("sessionID", sessionID), zap.Strings("errors", verdict.Errors))
		return state, verdict, nil
	}

	duration := rules.DefaultDuration(isAMC)
	if state.Service != nil && state.Service.Duration > 0 {
		duration = state.Service.Duration
	}
	tier := "regular"
	if isAMC {
		tier = models.BookingTypeAMC
	}

	// Quota counts can move between the validation above and the append, so
	// the decisive check runs inside the day's critical section.
	admitted := models.Accept()
	err = s.Guard.WithDay(ctx, date, func() error {
		current, err := s.Store.BookingsForDay(ctx, date)
		if err != nil {
			return fmt.Errorf("failed to reload bookings for %s: %w", date, err)
		}
		amcCount, regularCount := 0, 0
		for _, b := range current {
			if b.IsAMC() {
				amcCount++
			} else {
				regularCount++
			}
		}
		admitted = scheduling.CheckAllocation(isAMC, amcCount, regularCount)
		if !admitted.IsValid {
			return nil
		}
		return s.Store.Append(ctx, date, models.ExistingBookingSnapshot{
			DateTime: slot.DateTime,
			Duration: duration,
			Type:     tier,
		})
	})
	if err != nil {
		return state, models.ValidationResult{}, err
	}
	if !admitted.IsValid {
		logger.Info("Slot rejected by allocation counter",
			zap.String("sessionID", sessionID), zap.Strings("errors", admitted.Errors))
		return state, admitted, nil
	}

	if err := s.saveState(ctx, sessionID, next); err != nil {
		return state, models.ValidationResult{}, err
	}
	s.notify(state, next)

	// Carry the validator's advisories on the returned verdict.
	admitted.Warnings = verdict.Warnings
	return next, admitted, nil
}

// CancelSession drops the session from the cache.
func (s *DefaultBookingFlowService) CancelSession(ctx context.Context, sessionID string) error {
	deleted, err := s.Cache.Del(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete booking session: %w", err)
	}
	if deleted == 0 {
		return NewSessionError("booking session not found or expired")
	}
	utils.GetLogger().Info("Booking session cancelled", zap.String("sessionID", sessionID))
	return nil
}

func (s *DefaultBookingFlowService) loadState(ctx context.Context, sessionID string) (models.BookingState, error) {
	if sessionID == "" {
		return models.BookingState{}, NewSessionError("booking not initialized")
	}
	data, err := s.Cache.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return models.BookingState{}, NewSessionError("booking session not found or expired")
	}
	if err != nil {
		return models.BookingState{}, fmt.Errorf("failed to load booking session: %w", err)
	}
	var state models.BookingState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return models.BookingState{}, fmt.Errorf("failed to parse booking session: %w", err)
	}
	return state, nil
}

func (s *DefaultBookingFlowService) saveState(ctx context.Context, sessionID string, state models.BookingState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	if err := s.Cache.Set(ctx, sessionKey(sessionID), data, s.SessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to store booking session: %w", err)
	}
	return nil
}

func (s *DefaultBookingFlowService) notify(prev, next models.BookingState) {
	if s.Notifier == nil {
		return
	}
	for _, event := range lifecycle.Diff(prev, next) {
		s.Notifier.OnBookingEvent(event)
	}
}
