package service

import (
	"slices"

	"github.com/safari-hire/dashboard/internal/domain"
)

// ExportService assembles a flat export of every booking joined to its customer.
type ExportService struct {
	store BookingReader
}

// NewExportService constructs an ExportService over the given reader.
func NewExportService(r BookingReader) *ExportService {
	return &ExportService{store: r}
}

// Export returns one ExportRow per booking, oldest first. Bookings whose
// customer is gone carry the Unknown Customer placeholder fields.
func (s *ExportService) Export() []domain.ExportRow {
	joined := s.store.BookingsWithCustomers()
	slices.SortStableFunc(joined, func(a, b domain.BookingWithCustomer) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	rows := make([]domain.ExportRow, 0, len(joined))
	for _, b := range joined {
		rows = append(rows, domain.ExportRow{
			BookingID:        b.ID,
			CreatedAt:        b.CreatedAt,
			CustomerID:       b.Customer.ID,
			CustomerName:     b.Customer.Name,
			CustomerIDNumber: b.Customer.IDNumber,
			CustomerLicense:  b.Customer.LicenseID,
			CustomerPhone:    b.Customer.PhoneNumber,
			CarName:          b.CarName,
			CarNumberPlate:   b.CarNumberPlate,
			Destination:      b.Destination,
			NumberOfDays:     b.NumberOfDays,
			DayOut:           b.DayOut,
			DateIn:           b.DateIn,
			TimeOut:          b.TimeOut,
			TimeIn:           b.TimeIn,
			PaymentStatus:    b.PaymentStatus,
			AmountPaid:       b.AmountPaid,
			TotalAmount:      b.TotalAmount,
			Balance:          b.Balance(),
		})
	}
	return rows
}
