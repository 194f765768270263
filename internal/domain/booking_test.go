package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safari-hire/dashboard/internal/domain"
)

func TestReturnDate(t *testing.T) {
	tests := []struct {
		name   string
		dayOut string
		days   float64
		want   string
	}{
		{name: "same month", dayOut: "2025-01-15", days: 3, want: "2025-01-18"},
		{name: "crosses month end", dayOut: "2025-01-30", days: 3, want: "2025-02-02"},
		{name: "leap day", dayOut: "2024-02-28", days: 1, want: "2024-02-29"},
		{name: "zero days", dayOut: "2025-03-01", days: 0, want: "2025-03-01"},
		{name: "fractional days truncate", dayOut: "2025-01-15", days: 1.5, want: "2025-01-16"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ReturnDate(tt.dayOut, tt.days)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReturnDate_BadDayOut(t *testing.T) {
	_, err := domain.ReturnDate("15/01/2025", 2)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestParsePaymentStatus(t *testing.T) {
	s, err := domain.ParsePaymentStatus("Paid")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, s)

	_, err = domain.ParsePaymentStatus("paid")
	assert.True(t, errors.Is(err, domain.ErrValidation), "status match is exact")
}

func TestBookingApply_LeavesUnsetFieldsAndCreatedAt(t *testing.T) {
	created := time.Date(2025, 1, 12, 14, 45, 0, 0, time.UTC)
	b := domain.Booking{
		ID:            "2",
		CustomerID:    "2",
		CarName:       "Nissan Patrol",
		PaymentStatus: domain.PaymentPending,
		AmountPaid:    15000,
		TotalAmount:   30000,
		CreatedAt:     created,
	}
	paid := domain.PaymentPaid
	amount := 30000.0

	got := b.Apply(domain.BookingPatch{PaymentStatus: &paid, AmountPaid: &amount})

	assert.Equal(t, domain.PaymentPaid, got.PaymentStatus)
	assert.Equal(t, 30000.0, got.AmountPaid)
	assert.Equal(t, "Nissan Patrol", got.CarName)
	assert.Equal(t, "2", got.ID)
	assert.Equal(t, created, got.CreatedAt)
	assert.Zero(t, got.Balance())
}

func TestCustomerApply(t *testing.T) {
	c := domain.Customer{ID: "1", Name: "John Doe", PhoneNumber: "+254712345678"}
	name := "John M. Doe"

	got := c.Apply(domain.CustomerPatch{Name: &name})

	assert.Equal(t, domain.Customer{ID: "1", Name: "John M. Doe", PhoneNumber: "+254712345678"}, got)
}

func TestUnknownCustomer(t *testing.T) {
	u := domain.UnknownCustomer()
	assert.Equal(t, domain.UnknownCustomerID, u.ID)
	assert.Equal(t, "Unknown Customer", u.Name)
	assert.Equal(t, "N/A", u.IDNumber)
	assert.Equal(t, "N/A", u.LicenseID)
	assert.Equal(t, "N/A", u.PhoneNumber)
}

func TestBookingJSON_CreatedAtHasMilliseconds(t *testing.T) {
	tests := []struct {
		name    string
		created time.Time
		want    string
	}{
		{name: "whole second", created: time.Date(2025, 1, 10, 10, 30, 0, 0, time.UTC), want: "2025-01-10T10:30:00.000Z"},
		{name: "half second", created: time.Date(2025, 1, 10, 10, 30, 0, 500000000, time.UTC), want: "2025-01-10T10:30:00.500Z"},
		{name: "other zone", created: time.Date(2025, 1, 10, 13, 30, 0, 0, time.FixedZone("EAT", 3*60*60)), want: "2025-01-10T10:30:00.000Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(domain.Booking{ID: "1", CreatedAt: tt.created})
			require.NoError(t, err)

			var fields map[string]any
			require.NoError(t, json.Unmarshal(raw, &fields))
			assert.Equal(t, tt.want, fields["createdAt"])
			assert.Equal(t, "1", fields["id"])
		})
	}
}

func TestBookingWithCustomerJSON(t *testing.T) {
	created := time.Date(2025, 1, 12, 14, 45, 0, 0, time.UTC)
	in := domain.BookingWithCustomer{
		Booking:  domain.Booking{ID: "2", CustomerID: "2", NumberOfDays: 1.5, CreatedAt: created},
		Customer: domain.Customer{ID: "2", Name: "Jane Smith"},
	}

	raw, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"createdAt":"2025-01-12T14:45:00.000Z"`)
	assert.Contains(t, string(raw), `"customer":{"id":"2","name":"Jane Smith"`)

	var out domain.BookingWithCustomer
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.True(t, created.Equal(out.CreatedAt))
	assert.Equal(t, 1.5, out.NumberOfDays)
	assert.Equal(t, in.Customer, out.Customer)
}
