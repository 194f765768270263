package service

import (
	"time"

	"github.com/safari-hire/dashboard/internal/domain"
)

// SampleCustomers is the seed used when no customers have been persisted.
func SampleCustomers() []domain.Customer {
	return []domain.Customer{
		{ID: "1", Name: "John Doe", IDNumber: "ID12345678", LicenseID: "DL98765432", PhoneNumber: "+254712345678"},
		{ID: "2", Name: "Jane Smith", IDNumber: "ID87654321", LicenseID: "DL12345678", PhoneNumber: "+254723456789"},
		{ID: "3", Name: "Michael Johnson", IDNumber: "ID45678901", LicenseID: "DL56789012", PhoneNumber: "+254734567890"},
	}
}

// SampleBookings is the seed used when no bookings have been persisted.
func SampleBookings() []domain.Booking {
	return []domain.Booking{
		{
			ID:             "1",
			CustomerID:     "1",
			CarName:        "Toyota Land Cruiser",
			CarNumberPlate: "KCB 123A",
			Destination:    "Maasai Mara",
			NumberOfDays:   3,
			DayOut:         "2025-01-15",
			DateIn:         "2025-01-18",
			TimeOut:        "08:00",
			TimeIn:         "18:00",
			PaymentStatus:  domain.PaymentPaid,
			AmountPaid:     45000,
			TotalAmount:    45000,
			CreatedAt:      time.Date(2025, 1, 10, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:             "2",
			CustomerID:     "2",
			CarName:        "Nissan Patrol",
			CarNumberPlate: "KDG 456B",
			Destination:    "Amboseli",
			NumberOfDays:   2,
			DayOut:         "2025-01-20",
			DateIn:         "2025-01-22",
			TimeOut:        "09:00",
			TimeIn:         "17:00",
			PaymentStatus:  domain.PaymentPending,
			AmountPaid:     15000,
			TotalAmount:    30000,
			CreatedAt:      time.Date(2025, 1, 12, 14, 45, 0, 0, time.UTC),
		},
		{
			ID:             "3",
			CustomerID:     "3",
			CarName:        "Toyota Prado",
			CarNumberPlate: "KCF 789C",
			Destination:    "Nakuru",
			NumberOfDays:   1,
			DayOut:         "2025-01-25",
			DateIn:         "2025-01-26",
			TimeOut:        "10:00",
			TimeIn:         "16:00",
			PaymentStatus:  domain.PaymentPaid,
			AmountPaid:     15000,
			TotalAmount:    15000,
			CreatedAt:      time.Date(2025, 1, 14, 9, 15, 0, 0, time.UTC),
		},
	}
}
