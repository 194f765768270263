package handler

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"

	"github.com/safari-hire/dashboard/internal/domain"
	"github.com/safari-hire/dashboard/internal/service"
)

// bookingRequest is the body of POST /bookings. It names an existing
// customer with customerId or creates one inline with newCustomer.
// When dateIn is omitted it is derived from dayOut and numberOfDays.
type bookingRequest struct {
	CustomerID     string           `json:"customerId"`
	NewCustomer    *customerRequest `json:"newCustomer"`
	CarName        string           `json:"carName" validate:"required"`
	CarNumberPlate string           `json:"carNumberPlate" validate:"required"`
	Destination    string           `json:"destination" validate:"required"`
	NumberOfDays   float64          `json:"numberOfDays" validate:"gte=0"`
	DayOut         string           `json:"dayOut" validate:"required,datetime=2006-01-02"`
	DateIn         string           `json:"dateIn" validate:"required,datetime=2006-01-02"`
	TimeOut        string           `json:"timeOut" validate:"timeofday"`
	TimeIn         string           `json:"timeIn" validate:"timeofday"`
	PaymentStatus  string           `json:"paymentStatus" validate:"omitempty,oneof=Paid Pending"`
	AmountPaid     float64          `json:"amountPaid" validate:"gte=0"`
	TotalAmount    float64          `json:"totalAmount" validate:"gte=0"`
}

func (b bookingRequest) toDomain(customerID string) domain.NewBooking {
	status := domain.PaymentStatus(b.PaymentStatus)
	if status == "" {
		status = domain.PaymentPending
	}
	return domain.NewBooking{
		CustomerID:     customerID,
		CarName:        b.CarName,
		CarNumberPlate: b.CarNumberPlate,
		Destination:    b.Destination,
		NumberOfDays:   b.NumberOfDays,
		DayOut:         b.DayOut,
		DateIn:         b.DateIn,
		TimeOut:        b.TimeOut,
		TimeIn:         b.TimeIn,
		PaymentStatus:  status,
		AmountPaid:     b.AmountPaid,
		TotalAmount:    b.TotalAmount,
	}
}

// bookingPatchRequest is the body of PATCH /bookings/{id}. There is no id or
// createdAt field, so neither can be changed even if a client sends one.
// An empty timeOut or timeIn clears it.
type bookingPatchRequest struct {
	CustomerID     *string  `json:"customerId" validate:"omitnil,min=1"`
	CarName        *string  `json:"carName" validate:"omitnil,min=1"`
	CarNumberPlate *string  `json:"carNumberPlate" validate:"omitnil,min=1"`
	Destination    *string  `json:"destination" validate:"omitnil,min=1"`
	NumberOfDays   *float64 `json:"numberOfDays" validate:"omitnil,gte=0"`
	DayOut         *string  `json:"dayOut" validate:"omitnil,datetime=2006-01-02"`
	DateIn         *string  `json:"dateIn" validate:"omitnil,datetime=2006-01-02"`
	TimeOut        *string  `json:"timeOut" validate:"omitnil,timeofday"`
	TimeIn         *string  `json:"timeIn" validate:"omitnil,timeofday"`
	PaymentStatus  *string  `json:"paymentStatus" validate:"omitnil,oneof=Paid Pending"`
	AmountPaid     *float64 `json:"amountPaid" validate:"omitnil,gte=0"`
	TotalAmount    *float64 `json:"totalAmount" validate:"omitnil,gte=0"`
}

func (b bookingPatchRequest) toDomain() domain.BookingPatch {
	p := domain.BookingPatch{
		CustomerID:     b.CustomerID,
		CarName:        b.CarName,
		CarNumberPlate: b.CarNumberPlate,
		Destination:    b.Destination,
		NumberOfDays:   b.NumberOfDays,
		DayOut:         b.DayOut,
		DateIn:         b.DateIn,
		TimeOut:        b.TimeOut,
		TimeIn:         b.TimeIn,
		AmountPaid:     b.AmountPaid,
		TotalAmount:    b.TotalAmount,
	}
	if b.PaymentStatus != nil {
		status := domain.PaymentStatus(*b.PaymentStatus)
		p.PaymentStatus = &status
	}
	return p
}

// ListBookings handles GET /bookings.
// ?q= filters by customer name, car, plate, destination or payment status,
// ?status= keeps only Paid or Pending bookings. Results are newest first.
func (s *Server) ListBookings(w http.ResponseWriter, r *http.Request) {
	q, err := queryParam[string](r, "q")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}
	status, err := queryParam[string](r, "status")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}

	var query string
	if q != nil {
		query = *q
	}
	bookings := s.store.FilterBookings(query)

	if status != nil && *status != "" {
		ps, err := domain.ParsePaymentStatus(*status)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
			return
		}
		bookings = service.ByStatus(bookings, ps)
	}

	page, ok := paginate(w, r, service.NewestFirst(bookings))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// CreateBooking handles POST /bookings.
func (s *Server) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.DateIn == "" && req.NumberOfDays > 0 {
		// A malformed dayOut is reported by check below.
		if dateIn, err := domain.ReturnDate(req.DayOut, req.NumberOfDays); err == nil {
			req.DateIn = dateIn
		}
	}
	if err := s.check(req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		return
	}

	customerID, err := s.resolveCustomer(r, req)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		return
	}

	created := s.store.AddBooking(r.Context(), req.toDomain(customerID))
	joined, _ := s.store.BookingWithCustomer(created.ID)
	writeJSON(w, http.StatusCreated, joined)
}

// resolveCustomer returns the id the new booking belongs to, creating the
// inline customer first when the request carries one.
func (s *Server) resolveCustomer(r *http.Request, req bookingRequest) (string, error) {
	switch {
	case req.NewCustomer != nil && req.CustomerID != "":
		return "", errors.Mark(errors.New("give either customerId or newCustomer, not both"), domain.ErrValidation)
	case req.NewCustomer != nil:
		return s.store.AddCustomer(r.Context(), req.NewCustomer.toDomain()).ID, nil
	case req.CustomerID != "":
		return req.CustomerID, nil
	default:
		return "", errors.Mark(errors.New("customerId or newCustomer is required"), domain.ErrValidation)
	}
}

// GetBooking handles GET /bookings/{id}.
func (s *Server) GetBooking(w http.ResponseWriter, r *http.Request) {
	booking, ok := s.store.BookingWithCustomer(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, notFoundBody("booking not found"))
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// UpdateBooking handles PATCH /bookings/{id}.
func (s *Server) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingPatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.check(req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		return
	}

	updated, ok := s.store.UpdateBooking(r.Context(), chi.URLParam(r, "id"), req.toDomain())
	if !ok {
		writeJSON(w, http.StatusNotFound, notFoundBody("booking not found"))
		return
	}
	joined, _ := s.store.BookingWithCustomer(updated.ID)
	writeJSON(w, http.StatusOK, joined)
}

// DeleteBooking handles DELETE /bookings/{id}. Deleting an unknown id is not an error.
func (s *Server) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	s.store.DeleteBooking(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}
