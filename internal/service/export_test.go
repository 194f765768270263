package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safari-hire/dashboard/internal/domain"
	"github.com/safari-hire/dashboard/internal/repo"
	"github.com/safari-hire/dashboard/internal/service"
)

func TestExportService_Export_OneRowPerBooking(t *testing.T) {
	s, _ := newTestStore(t, repo.NewMemoryKV())

	rows := service.NewExportService(s).Export()

	require.Len(t, rows, 3)
	assert.Equal(t, domain.ExportRow{
		BookingID:        "2",
		CreatedAt:        time.Date(2025, 1, 12, 14, 45, 0, 0, time.UTC),
		CustomerID:       "2",
		CustomerName:     "Jane Smith",
		CustomerIDNumber: "ID87654321",
		CustomerLicense:  "DL12345678",
		CustomerPhone:    "+254723456789",
		CarName:          "Nissan Patrol",
		CarNumberPlate:   "KDG 456B",
		Destination:      "Amboseli",
		NumberOfDays:     2,
		DayOut:           "2025-01-20",
		DateIn:           "2025-01-22",
		TimeOut:          "09:00",
		TimeIn:           "17:00",
		PaymentStatus:    domain.PaymentPending,
		AmountPaid:       15000,
		TotalAmount:      30000,
		Balance:          15000,
	}, rows[1])
}

func TestExportService_Export_OldestFirst(t *testing.T) {
	kv := seedKV(t, service.SampleCustomers(), []domain.Booking{
		{ID: "late", CustomerID: "1", CreatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "early", CustomerID: "1", CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	})
	s, _ := newTestStore(t, kv)

	rows := service.NewExportService(s).Export()

	require.Len(t, rows, 2)
	assert.Equal(t, "early", rows[0].BookingID)
	assert.Equal(t, "late", rows[1].BookingID)
}

func TestExportService_Export_DanglingCustomer(t *testing.T) {
	s, _ := newTestStore(t, repo.NewMemoryKV())
	b := s.AddBooking(context.Background(), newBookingFixture("deleted-long-ago"))

	rows := service.NewExportService(s).Export()

	last := rows[len(rows)-1]
	assert.Equal(t, b.ID, last.BookingID)
	assert.Equal(t, domain.UnknownCustomerID, last.CustomerID)
	assert.Equal(t, "Unknown Customer", last.CustomerName)
	assert.Equal(t, 15000.0, last.Balance)
}

func TestExportService_Export_Empty(t *testing.T) {
	s, _ := newTestStore(t, seedKV(t, []domain.Customer{}, []domain.Booking{}))

	rows := service.NewExportService(s).Export()

	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}
