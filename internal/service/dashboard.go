package service

import (
	"fmt"
	"slices"
	"time"

	"github.com/safari-hire/dashboard/internal/domain"
)

const (
	// DefaultRecentLimit is how many bookings the recent list shows.
	DefaultRecentLimit = 5
	// DefaultTrendMonths is how many months the booking trend covers.
	DefaultTrendMonths = 6
)

// BookingReader is the read side of the Store that reporting depends on.
type BookingReader interface {
	Customers() []domain.Customer
	Bookings() []domain.Booking
	BookingsWithCustomers() []domain.BookingWithCustomer
}

// Dashboard computes the aggregate figures and lists shown on the landing page.
type Dashboard struct {
	store BookingReader
}

// NewDashboard constructs a Dashboard over the given reader.
func NewDashboard(r BookingReader) *Dashboard {
	return &Dashboard{store: r}
}

// Stats returns the headline figures as of now. A booking is active until
// its return date has passed.
func (d *Dashboard) Stats(now time.Time) domain.DashboardStats {
	stats := domain.DashboardStats{TotalCustomers: len(d.store.Customers())}
	for _, b := range d.store.Bookings() {
		if dateIn, ok := domain.ParseDate(b.DateIn); ok && !dateIn.Before(now) {
			stats.ActiveBookings++
		}
		stats.TotalRevenue += b.AmountPaid
		if b.PaymentStatus == domain.PaymentPending {
			stats.PendingPayments += b.Balance()
		}
	}
	return stats
}

// RecentBookings returns the n most recently created joined bookings,
// newest first. n <= 0 means DefaultRecentLimit.
func (d *Dashboard) RecentBookings(n int) []domain.BookingWithCustomer {
	if n <= 0 {
		n = DefaultRecentLimit
	}
	out := NewestFirst(d.store.BookingsWithCustomers())
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// MonthlyTrend counts bookings created in each of the last months calendar
// months up to and including the month of now, oldest first. Months are
// taken in now's location. months <= 0 means DefaultTrendMonths.
func (d *Dashboard) MonthlyTrend(now time.Time, months int) []domain.MonthlyCount {
	if months <= 0 {
		months = DefaultTrendMonths
	}
	loc := now.Location()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)

	out := make([]domain.MonthlyCount, months)
	index := make(map[[2]int]int, months)
	for i := range months {
		m := first.AddDate(0, i-months+1, 0)
		out[i] = domain.MonthlyCount{
			Label: fmt.Sprintf("%s %d", m.Month().String()[:3], m.Year()),
			Year:  m.Year(),
			Month: int(m.Month()),
		}
		index[[2]int{m.Year(), int(m.Month())}] = i
	}

	for _, b := range d.store.Bookings() {
		created := b.CreatedAt.In(loc)
		if i, ok := index[[2]int{created.Year(), int(created.Month())}]; ok {
			out[i].Count++
		}
	}
	return out
}

// NewestFirst returns a copy of bookings ordered by creation time, newest first.
func NewestFirst(bookings []domain.BookingWithCustomer) []domain.BookingWithCustomer {
	out := slices.Clone(bookings)
	slices.SortStableFunc(out, func(a, b domain.BookingWithCustomer) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

// ByStatus keeps only the bookings with the given payment status.
func ByStatus(bookings []domain.BookingWithCustomer, status domain.PaymentStatus) []domain.BookingWithCustomer {
	out := make([]domain.BookingWithCustomer, 0, len(bookings))
	for _, b := range bookings {
		if b.PaymentStatus == status {
			out = append(out, b)
		}
	}
	return out
}
