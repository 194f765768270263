package domain

import "time"

// ExportRow is a single row in the full-data export.
// It is a flat, denormalized view: one row per booking, with customer fields
// repeated on every booking that customer holds. Bookings whose customer no
// longer exists carry the Unknown Customer placeholder.
type ExportRow struct {
	BookingID string
	CreatedAt time.Time

	// Customer fields.
	CustomerID       string
	CustomerName     string
	CustomerIDNumber string
	CustomerLicense  string
	CustomerPhone    string

	// Booking fields.
	CarName        string
	CarNumberPlate string
	Destination    string
	NumberOfDays   float64
	DayOut         string
	DateIn         string
	TimeOut        string
	TimeIn         string
	PaymentStatus  PaymentStatus
	AmountPaid     float64
	TotalAmount    float64
	Balance        float64
}
