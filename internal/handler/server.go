// Package handler is the HTTP view-layer adapter of the dashboard: it
// exposes the store, the auth gate, and the reporting reads as JSON
// endpoints. All handlers are methods on Server and are split into
// resource files (customer.go, booking.go, ...) sharing the same struct.
package handler

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/safari-hire/dashboard/internal/domain"
	"github.com/safari-hire/dashboard/internal/middleware"
	"github.com/safari-hire/dashboard/internal/pkg/clock"
)

// BookingStore is the part of the domain state store the handlers call.
// Defining it here, in the consumer package, lets tests substitute a double.
type BookingStore interface {
	CustomersByName() []domain.Customer
	CustomerDetail(id string, now time.Time) (domain.CustomerDetail, bool)
	AddCustomer(ctx context.Context, data domain.NewCustomer) domain.Customer
	UpdateCustomer(ctx context.Context, id string, patch domain.CustomerPatch) (domain.Customer, bool)
	DeleteCustomer(ctx context.Context, id string)

	FilterBookings(query string) []domain.BookingWithCustomer
	BookingWithCustomer(id string) (domain.BookingWithCustomer, bool)
	AddBooking(ctx context.Context, data domain.NewBooking) domain.Booking
	UpdateBooking(ctx context.Context, id string, patch domain.BookingPatch) (domain.Booking, bool)
	DeleteBooking(ctx context.Context, id string)
}

// SessionGate is the authentication gate the auth handlers and the route
// guard depend on.
type SessionGate interface {
	Login(ctx context.Context, username, password string) (domain.Identity, error)
	Logout(ctx context.Context)
	Session() (domain.Identity, bool)
	LastError() string
	IsAuthenticated() bool
}

// DashboardReader provides the aggregate reads behind /dashboard.
type DashboardReader interface {
	Stats(now time.Time) domain.DashboardStats
	RecentBookings(n int) []domain.BookingWithCustomer
	MonthlyTrend(now time.Time, months int) []domain.MonthlyCount
}

// Exporter provides the flat rows behind /export.
type Exporter interface {
	Export() []domain.ExportRow
}

// Options carries the non-service settings of a Server.
type Options struct {
	// Clock is the time source for "now" in date-relative reads. Defaults to the wall clock.
	Clock clock.Clock
	// LoginDelay is waited before every login check.
	LoginDelay time.Duration
}

// Server holds the dependencies shared by every handler.
type Server struct {
	store      BookingStore
	gate       SessionGate
	dashboard  DashboardReader
	export     Exporter
	clock      clock.Clock
	loginDelay time.Duration
	validate   *validator.Validate
}

// NewServer constructs the Server with all its dependencies.
func NewServer(store BookingStore, gate SessionGate, dashboard DashboardReader, export Exporter, opts Options) *Server {
	if opts.Clock == nil {
		opts.Clock = clock.NewRealClock()
	}
	return &Server{
		store:      store,
		gate:       gate,
		dashboard:  dashboard,
		export:     export,
		clock:      opts.Clock,
		loginDelay: opts.LoginDelay,
		validate:   newValidator(),
	}
}

// Routes returns the API router. Everything except the health check and the
// /auth endpoints sits behind the session guard. Logout is open so a stale
// persisted session can always be cleared.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Post("/auth/login", s.Login)
	r.Post("/auth/logout", s.Logout)
	r.Get("/auth/session", s.GetSession)

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionGuard(s.gate))

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", s.ListCustomers)
			r.Post("/", s.CreateCustomer)
			r.Get("/{id}", s.GetCustomer)
			r.Patch("/{id}", s.UpdateCustomer)
			r.Delete("/{id}", s.DeleteCustomer)
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", s.ListBookings)
			r.Post("/", s.CreateBooking)
			r.Get("/{id}", s.GetBooking)
			r.Patch("/{id}", s.UpdateBooking)
			r.Delete("/{id}", s.DeleteBooking)
		})

		r.Get("/dashboard/stats", s.GetDashboardStats)
		r.Get("/dashboard/recent", s.GetRecentBookings)
		r.Get("/dashboard/trend", s.GetMonthlyTrend)

		r.Get("/export", s.GetExport)
	})

	return r
}

// newValidator reports field errors under their JSON names and registers
// timeofday: empty, or a time in domain.TimeLayout.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("timeofday", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, err := time.Parse(domain.TimeLayout, s)
		return err == nil
	})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
