package booking

import (
	"context"
	"sync"

	"fixify/models"
)

// BookingStore supplies the committed bookings for a calendar day and accepts
// newly admitted ones. Persistence is external; implementations may sit on
// any backing store.
type BookingStore interface {
	BookingsForDay(ctx context.Context, date string) ([]models.ExistingBookingSnapshot, error)
	Append(ctx context.Context, date string, b models.ExistingBookingSnapshot) error
}

// MemoryBookingStore is the in-process implementation used by tests and
// single-instance deployments.
type MemoryBookingStore struct {
	mu   sync.RWMutex
	days map[string][]models.ExistingBookingSnapshot
}

// NewMemoryBookingStore returns an empty store.
func NewMemoryBookingStore() *MemoryBookingStore {
	return &MemoryBookingStore{days: make(map[string][]models.ExistingBookingSnapshot)}
}

// BookingsForDay returns a copy of the day's committed bookings.
func (s *MemoryBookingStore) BookingsForDay(_ context.Context, date string) ([]models.ExistingBookingSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	day := s.days[date]
	out := make([]models.ExistingBookingSnapshot, len(day))
	copy(out, day)
	return out, nil
}

// Append commits one booking to the day.
func (s *MemoryBookingStore) Append(_ context.Context, date string, b models.ExistingBookingSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.days[date] = append(s.days[date], b)
	return nil
}
