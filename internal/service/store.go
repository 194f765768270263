// Package service holds the in-memory domain state of the dashboard: the
// customer and booking collections, the authentication gate, and the
// reporting reads derived from them. Services depend on small persistence
// interfaces, not on a concrete backend.
package service

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/safari-hire/dashboard/internal/domain"
	"github.com/safari-hire/dashboard/internal/pkg/clock"
)

// Persisted keys shared with the auth gate.
const (
	KeyCustomers       = "customers"
	KeyBookings        = "bookings"
	KeyIsAuthenticated = "isAuthenticated"
	KeyCurrentUser     = "currentUser"
)

// Persister is the durability boundary the Store mirrors its collections to.
// *repo.Adapter satisfies it.
type Persister interface {
	Save(ctx context.Context, key string, v any) error
	Load(ctx context.Context, key string, dst any) bool
}

// IDGenerator returns a new identifier, unique for the life of the process.
type IDGenerator func() string

// Store owns the customer and booking collections. Every mutation persists
// the affected collection before returning. A failed write is logged and the
// in-memory state stays authoritative for the rest of the session.
//
// All methods are safe for concurrent use; a single mutex orders them.
type Store struct {
	mu        sync.Mutex
	persist   Persister
	clock     clock.Clock
	newID     IDGenerator
	log       *slog.Logger
	customers []domain.Customer
	bookings  []domain.Booking
}

// NewStore hydrates a Store from p. Each collection that is absent or
// unreadable is seeded with the sample dataset and written back.
// A nil ids falls back to random UUIDs.
func NewStore(ctx context.Context, p Persister, clk clock.Clock, ids IDGenerator, log *slog.Logger) *Store {
	if ids == nil {
		ids = uuid.NewString
	}
	s := &Store{persist: p, clock: clk, newID: ids, log: log}

	var customers []domain.Customer
	if p.Load(ctx, KeyCustomers, &customers) {
		s.customers = nonNil(customers)
		log.InfoContext(ctx, "hydrated collection", "key", KeyCustomers, "source", "storage", "count", len(customers))
	} else {
		s.customers = SampleCustomers()
		log.InfoContext(ctx, "hydrated collection", "key", KeyCustomers, "source", "sample", "count", len(s.customers))
		s.saveCustomers(ctx)
	}

	var bookings []domain.Booking
	if p.Load(ctx, KeyBookings, &bookings) {
		s.bookings = nonNil(bookings)
		log.InfoContext(ctx, "hydrated collection", "key", KeyBookings, "source", "storage", "count", len(bookings))
	} else {
		s.bookings = SampleBookings()
		log.InfoContext(ctx, "hydrated collection", "key", KeyBookings, "source", "sample", "count", len(s.bookings))
		s.saveBookings(ctx)
	}

	return s
}

// Customers returns a copy of the customer collection in insertion order.
func (s *Store) Customers() []domain.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.customers)
}

// Bookings returns a copy of the booking collection in insertion order.
func (s *Store) Bookings() []domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.bookings)
}

// CustomersByName returns the customers sorted by name, case-insensitively.
func (s *Store) CustomersByName() []domain.Customer {
	out := s.Customers()
	slices.SortStableFunc(out, func(a, b domain.Customer) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return out
}

// AddCustomer stores a new customer under a fresh id and returns it.
func (s *Store) AddCustomer(ctx context.Context, data domain.NewCustomer) domain.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := data.WithID(s.newID())
	s.customers = append(s.customers, c)
	s.saveCustomers(ctx)
	return c
}

// UpdateCustomer merges patch into the customer with the given id.
// It reports false, and changes nothing, when no customer has that id.
func (s *Store) UpdateCustomer(ctx context.Context, id string, patch domain.CustomerPatch) (domain.Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.customers, func(c domain.Customer) bool { return c.ID == id })
	if i < 0 {
		return domain.Customer{}, false
	}
	s.customers[i] = s.customers[i].Apply(patch)
	s.saveCustomers(ctx)
	return s.customers[i], true
}

// DeleteCustomer removes the customer with the given id together with every
// booking that references it. Bookings are cascaded even when the customer
// itself is already gone.
func (s *Store) DeleteCustomer(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.customers)
	s.customers = slices.DeleteFunc(s.customers, func(c domain.Customer) bool { return c.ID == id })
	if len(s.customers) != n {
		s.saveCustomers(ctx)
	}

	n = len(s.bookings)
	s.bookings = slices.DeleteFunc(s.bookings, func(b domain.Booking) bool { return b.CustomerID == id })
	if len(s.bookings) != n {
		s.saveBookings(ctx)
	}
}

// AddBooking stores a new booking under a fresh id, stamped with the current
// time in UTC at millisecond precision. CustomerID is not checked.
func (s *Store) AddBooking(ctx context.Context, data domain.NewBooking) domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := data.Build(s.newID(), s.clock.Now().UTC().Truncate(time.Millisecond))
	s.bookings = append(s.bookings, b)
	s.saveBookings(ctx)
	return b
}

// UpdateBooking merges patch into the booking with the given id.
// It reports false, and changes nothing, when no booking has that id.
func (s *Store) UpdateBooking(ctx context.Context, id string, patch domain.BookingPatch) (domain.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.bookings, func(b domain.Booking) bool { return b.ID == id })
	if i < 0 {
		return domain.Booking{}, false
	}
	s.bookings[i] = s.bookings[i].Apply(patch)
	s.saveBookings(ctx)
	return s.bookings[i], true
}

// DeleteBooking removes the booking with the given id, if any.
func (s *Store) DeleteBooking(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.bookings)
	s.bookings = slices.DeleteFunc(s.bookings, func(b domain.Booking) bool { return b.ID == id })
	if len(s.bookings) != n {
		s.saveBookings(ctx)
	}
}

// CustomerByID returns the customer with the given id.
func (s *Store) CustomerByID(id string) (domain.Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.customers, func(c domain.Customer) bool { return c.ID == id })
	if i < 0 {
		return domain.Customer{}, false
	}
	return s.customers[i], true
}

// BookingByID returns the booking with the given id.
func (s *Store) BookingByID(id string) (domain.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.bookings, func(b domain.Booking) bool { return b.ID == id })
	if i < 0 {
		return domain.Booking{}, false
	}
	return s.bookings[i], true
}

// BookingsWithCustomers joins every booking to its customer. A booking whose
// customer cannot be found gets the Unknown Customer placeholder.
func (s *Store) BookingsWithCustomers() []domain.BookingWithCustomer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.joinLocked(s.bookings)
}

// BookingWithCustomer returns the joined view of a single booking.
func (s *Store) BookingWithCustomer(id string) (domain.BookingWithCustomer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.bookings, func(b domain.Booking) bool { return b.ID == id })
	if i < 0 {
		return domain.BookingWithCustomer{}, false
	}
	return s.joinLocked(s.bookings[i : i+1])[0], true
}

// FilterBookings returns the joined bookings whose customer name, car name,
// plate, destination, or payment status contains query, ignoring case.
// A blank query returns every joined booking.
func (s *Store) FilterBookings(query string) []domain.BookingWithCustomer {
	all := s.BookingsWithCustomers()
	if strings.TrimSpace(query) == "" {
		return all
	}

	q := strings.ToLower(query)
	out := make([]domain.BookingWithCustomer, 0, len(all))
	for _, b := range all {
		if matches(b, q) {
			out = append(out, b)
		}
	}
	return out
}

// CustomerDetail returns a customer with their joined bookings. A booking is
// completed once its return date is before now and upcoming otherwise.
func (s *Store) CustomerDetail(id string, now time.Time) (domain.CustomerDetail, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.customers, func(c domain.Customer) bool { return c.ID == id })
	if i < 0 {
		return domain.CustomerDetail{}, false
	}

	var own []domain.Booking
	for _, b := range s.bookings {
		if b.CustomerID == id {
			own = append(own, b)
		}
	}

	detail := domain.CustomerDetail{Customer: s.customers[i], Bookings: s.joinLocked(own)}
	for _, b := range own {
		dateIn, ok := domain.ParseDate(b.DateIn)
		if !ok {
			continue
		}
		if dateIn.Before(now) {
			detail.Completed++
		} else {
			detail.Upcoming++
		}
	}
	return detail, true
}

func matches(b domain.BookingWithCustomer, q string) bool {
	for _, field := range []string{
		b.Customer.Name,
		b.CarName,
		b.CarNumberPlate,
		b.Destination,
		string(b.PaymentStatus),
	} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// joinLocked must be called with s.mu held.
func (s *Store) joinLocked(bookings []domain.Booking) []domain.BookingWithCustomer {
	byID := make(map[string]domain.Customer, len(s.customers))
	for _, c := range s.customers {
		if _, seen := byID[c.ID]; !seen {
			byID[c.ID] = c
		}
	}

	out := make([]domain.BookingWithCustomer, 0, len(bookings))
	for _, b := range bookings {
		c, ok := byID[b.CustomerID]
		if !ok {
			c = domain.UnknownCustomer()
		}
		out = append(out, domain.BookingWithCustomer{Booking: b, Customer: c})
	}
	return out
}

func (s *Store) saveCustomers(ctx context.Context) {
	s.save(ctx, KeyCustomers, s.customers)
}

func (s *Store) saveBookings(ctx context.Context) {
	s.save(ctx, KeyBookings, s.bookings)
}

func (s *Store) save(ctx context.Context, key string, v any) {
	if err := s.persist.Save(ctx, key, v); err != nil {
		s.log.WarnContext(ctx, "persist failed; keeping in-memory state", "key", key, "error", err)
	}
}

// nonNil turns a stored JSON null into an empty collection.
func nonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}
