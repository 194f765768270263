package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/safari-hire/dashboard/internal/domain"
)

// customerRequest is the body of POST /customers and the inline
// newCustomer of POST /bookings.
type customerRequest struct {
	Name        string `json:"name" validate:"required"`
	IDNumber    string `json:"idNumber" validate:"required"`
	LicenseID   string `json:"licenseId"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
}

func (c customerRequest) toDomain() domain.NewCustomer {
	return domain.NewCustomer{
		Name:        c.Name,
		IDNumber:    c.IDNumber,
		LicenseID:   c.LicenseID,
		PhoneNumber: c.PhoneNumber,
	}
}

// customerPatchRequest is the body of PATCH /customers/{id}. Absent fields
// are left as they are; required fields cannot be blanked.
type customerPatchRequest struct {
	Name        *string `json:"name" validate:"omitnil,min=1"`
	IDNumber    *string `json:"idNumber" validate:"omitnil,min=1"`
	LicenseID   *string `json:"licenseId"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitnil,min=1"`
}

func (c customerPatchRequest) toDomain() domain.CustomerPatch {
	return domain.CustomerPatch{
		Name:        c.Name,
		IDNumber:    c.IDNumber,
		LicenseID:   c.LicenseID,
		PhoneNumber: c.PhoneNumber,
	}
}

// ListCustomers handles GET /customers.
// Customers are sorted by name. ?page= and ?limit= select a window and set
// X-Total-Count; without them every customer is returned.
func (s *Server) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers := s.store.CustomersByName()

	page, ok := paginate(w, r, customers)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// CreateCustomer handles POST /customers.
func (s *Server) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.check(req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		return
	}

	created := s.store.AddCustomer(r.Context(), req.toDomain())
	writeJSON(w, http.StatusCreated, created)
}

// GetCustomer handles GET /customers/{id}. The response carries the
// customer's bookings and how many are completed or upcoming.
func (s *Server) GetCustomer(w http.ResponseWriter, r *http.Request) {
	detail, ok := s.store.CustomerDetail(chi.URLParam(r, "id"), s.clock.Now())
	if !ok {
		writeJSON(w, http.StatusNotFound, notFoundBody("customer not found"))
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// UpdateCustomer handles PATCH /customers/{id}.
func (s *Server) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerPatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.check(req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		return
	}

	updated, ok := s.store.UpdateCustomer(r.Context(), chi.URLParam(r, "id"), req.toDomain())
	if !ok {
		writeJSON(w, http.StatusNotFound, notFoundBody("customer not found"))
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteCustomer handles DELETE /customers/{id}. The customer's bookings go
// with it. Deleting an unknown id is not an error.
func (s *Server) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	s.store.DeleteCustomer(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// paginate applies ?page= and ?limit= to items when either is present.
// It writes a 400 and returns false when a parameter does not parse.
func paginate[T any](w http.ResponseWriter, r *http.Request, items []T) ([]T, bool) {
	page, err := queryParam[int](r, "page")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return nil, false
	}
	limit, err := queryParam[int](r, "limit")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return nil, false
	}
	if page == nil && limit == nil {
		return items, true
	}

	w.Header().Set("X-Total-Count", strconv.Itoa(len(items)))
	return domain.Paginate(items, domain.NewPaginationParams(page, limit)), true
}
