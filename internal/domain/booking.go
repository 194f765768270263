package domain

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/safari-hire/dashboard/internal/pkg/patch"
)

// DateLayout is the calendar-date format used for dayOut and dateIn.
const DateLayout = "2006-01-02"

// TimeLayout is the time-of-day format used for timeOut and timeIn.
const TimeLayout = "15:04"

// TimestampLayout is the serialized form of createdAt: UTC with exactly
// three fractional digits.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// PaymentStatus is the settlement state of a booking.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "Paid"
	PaymentPending PaymentStatus = "Pending"
)

// IsValid reports whether s is one of the known payment statuses.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPaid, PaymentPending:
		return true
	default:
		return false
	}
}

// ParsePaymentStatus converts s to a PaymentStatus.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	ps := PaymentStatus(s)
	if !ps.IsValid() {
		return "", errors.Mark(errors.Newf("unknown payment status %q", s), ErrValidation)
	}
	return ps, nil
}

// Booking is a vehicle reservation. CustomerID is a soft reference: the store
// does not check that it resolves. CreatedAt is set once by the store and
// never changes.
type Booking struct {
	ID             string        `json:"id"`
	CustomerID     string        `json:"customerId"`
	CarName        string        `json:"carName"`
	CarNumberPlate string        `json:"carNumberPlate"`
	Destination    string        `json:"destination"`
	NumberOfDays   float64       `json:"numberOfDays"`
	DayOut         string        `json:"dayOut"`
	DateIn         string        `json:"dateIn"`
	TimeOut        string        `json:"timeOut"`
	TimeIn         string        `json:"timeIn"`
	PaymentStatus  PaymentStatus `json:"paymentStatus"`
	AmountPaid     float64       `json:"amountPaid"`
	TotalAmount    float64       `json:"totalAmount"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// MarshalJSON writes CreatedAt in TimestampLayout.
func (b Booking) MarshalJSON() ([]byte, error) {
	type plain Booking
	return json.Marshal(struct {
		plain
		CreatedAt string `json:"createdAt"`
	}{plain(b), FormatTimestamp(b.CreatedAt)})
}

// Balance is the amount still owed on the booking.
func (b Booking) Balance() float64 {
	return b.TotalAmount - b.AmountPaid
}

// NewBooking is the data needed to create a Booking. The store assigns the id
// and the creation timestamp.
type NewBooking struct {
	CustomerID     string        `json:"customerId"`
	CarName        string        `json:"carName"`
	CarNumberPlate string        `json:"carNumberPlate"`
	Destination    string        `json:"destination"`
	NumberOfDays   float64       `json:"numberOfDays"`
	DayOut         string        `json:"dayOut"`
	DateIn         string        `json:"dateIn"`
	TimeOut        string        `json:"timeOut"`
	TimeIn         string        `json:"timeIn"`
	PaymentStatus  PaymentStatus `json:"paymentStatus"`
	AmountPaid     float64       `json:"amountPaid"`
	TotalAmount    float64       `json:"totalAmount"`
}

// Build returns the Booking that n describes under the given id and creation time.
func (n NewBooking) Build(id string, createdAt time.Time) Booking {
	return Booking{
		ID:             id,
		CustomerID:     n.CustomerID,
		CarName:        n.CarName,
		CarNumberPlate: n.CarNumberPlate,
		Destination:    n.Destination,
		NumberOfDays:   n.NumberOfDays,
		DayOut:         n.DayOut,
		DateIn:         n.DateIn,
		TimeOut:        n.TimeOut,
		TimeIn:         n.TimeIn,
		PaymentStatus:  n.PaymentStatus,
		AmountPaid:     n.AmountPaid,
		TotalAmount:    n.TotalAmount,
		CreatedAt:      createdAt,
	}
}

// BookingPatch is a partial update. Nil fields are left unchanged.
// There is no ID or CreatedAt field: neither can be overwritten.
type BookingPatch struct {
	CustomerID     *string        `json:"customerId,omitempty"`
	CarName        *string        `json:"carName,omitempty"`
	CarNumberPlate *string        `json:"carNumberPlate,omitempty"`
	Destination    *string        `json:"destination,omitempty"`
	NumberOfDays   *float64       `json:"numberOfDays,omitempty"`
	DayOut         *string        `json:"dayOut,omitempty"`
	DateIn         *string        `json:"dateIn,omitempty"`
	TimeOut        *string        `json:"timeOut,omitempty"`
	TimeIn         *string        `json:"timeIn,omitempty"`
	PaymentStatus  *PaymentStatus `json:"paymentStatus,omitempty"`
	AmountPaid     *float64       `json:"amountPaid,omitempty"`
	TotalAmount    *float64       `json:"totalAmount,omitempty"`
}

// Apply returns b with every non-nil field of p merged in.
func (b Booking) Apply(p BookingPatch) Booking {
	b.CustomerID = patch.Coalesce(p.CustomerID, b.CustomerID)
	b.CarName = patch.Coalesce(p.CarName, b.CarName)
	b.CarNumberPlate = patch.Coalesce(p.CarNumberPlate, b.CarNumberPlate)
	b.Destination = patch.Coalesce(p.Destination, b.Destination)
	b.NumberOfDays = patch.Coalesce(p.NumberOfDays, b.NumberOfDays)
	b.DayOut = patch.Coalesce(p.DayOut, b.DayOut)
	b.DateIn = patch.Coalesce(p.DateIn, b.DateIn)
	b.TimeOut = patch.Coalesce(p.TimeOut, b.TimeOut)
	b.TimeIn = patch.Coalesce(p.TimeIn, b.TimeIn)
	b.PaymentStatus = patch.Coalesce(p.PaymentStatus, b.PaymentStatus)
	b.AmountPaid = patch.Coalesce(p.AmountPaid, b.AmountPaid)
	b.TotalAmount = patch.Coalesce(p.TotalAmount, b.TotalAmount)
	return b
}

// BookingWithCustomer is the joined read view: a Booking with its Customer
// embedded. It is derived on every read and never stored.
type BookingWithCustomer struct {
	Booking
	Customer Customer `json:"customer"`
}

// MarshalJSON is defined so the promoted Booking.MarshalJSON does not drop
// the customer.
func (b BookingWithCustomer) MarshalJSON() ([]byte, error) {
	type plain Booking
	return json.Marshal(struct {
		plain
		CreatedAt string   `json:"createdAt"`
		Customer  Customer `json:"customer"`
	}{plain(b.Booking), FormatTimestamp(b.CreatedAt), b.Customer})
}

// ReturnDate computes the return date numberOfDays calendar days after dayOut.
// A fractional day count is truncated.
func ReturnDate(dayOut string, numberOfDays float64) (string, error) {
	d, err := time.Parse(DateLayout, dayOut)
	if err != nil {
		return "", errors.Mark(errors.Newf("dayOut %q is not a %s date", dayOut, DateLayout), ErrValidation)
	}
	return d.AddDate(0, 0, int(numberOfDays)).Format(DateLayout), nil
}

// ParseDate parses a dayOut/dateIn value as midnight UTC.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
