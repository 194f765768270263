// Package domain contains the core data types for the tour and car-hire
// dashboard. It is imported by every other internal package (repo, service,
// handler) and holds no I/O.
package domain

import "github.com/safari-hire/dashboard/internal/pkg/patch"

// UnknownCustomerID is the id carried by the sentinel customer substituted
// when a booking references a customer that no longer exists.
const UnknownCustomerID = "unknown"

// Customer is an identity record for someone who hires a vehicle.
// LicenseID is optional; every other field is required at the HTTP boundary.
type Customer struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IDNumber    string `json:"idNumber"`
	LicenseID   string `json:"licenseId"`
	PhoneNumber string `json:"phoneNumber"`
}

// NewCustomer is the data needed to create a Customer. The store assigns the id.
type NewCustomer struct {
	Name        string `json:"name"`
	IDNumber    string `json:"idNumber"`
	LicenseID   string `json:"licenseId"`
	PhoneNumber string `json:"phoneNumber"`
}

// CustomerPatch is a partial update. Nil fields are left unchanged.
type CustomerPatch struct {
	Name        *string `json:"name,omitempty"`
	IDNumber    *string `json:"idNumber,omitempty"`
	LicenseID   *string `json:"licenseId,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
}

// UnknownCustomer returns the placeholder joined onto bookings whose
// customer reference cannot be resolved.
func UnknownCustomer() Customer {
	return Customer{
		ID:          UnknownCustomerID,
		Name:        "Unknown Customer",
		IDNumber:    "N/A",
		LicenseID:   "N/A",
		PhoneNumber: "N/A",
	}
}

// WithID builds the Customer that n describes under the given id.
func (n NewCustomer) WithID(id string) Customer {
	return Customer{
		ID:          id,
		Name:        n.Name,
		IDNumber:    n.IDNumber,
		LicenseID:   n.LicenseID,
		PhoneNumber: n.PhoneNumber,
	}
}

// Apply returns c with every non-nil field of p merged in. The id is never changed.
func (c Customer) Apply(p CustomerPatch) Customer {
	c.Name = patch.Coalesce(p.Name, c.Name)
	c.IDNumber = patch.Coalesce(p.IDNumber, c.IDNumber)
	c.LicenseID = patch.Coalesce(p.LicenseID, c.LicenseID)
	c.PhoneNumber = patch.Coalesce(p.PhoneNumber, c.PhoneNumber)
	return c
}
