package domain

// DashboardStats are the headline figures shown on the dashboard.
type DashboardStats struct {
	TotalCustomers int `json:"totalCustomers"`
	// ActiveBookings counts bookings whose return date has not passed.
	ActiveBookings int     `json:"activeBookings"`
	TotalRevenue   float64 `json:"totalRevenue"`
	// PendingPayments is the outstanding balance across Pending bookings.
	PendingPayments float64 `json:"pendingPayments"`
}

// MonthlyCount is one bar of the bookings-per-month trend.
type MonthlyCount struct {
	Label string `json:"label"` // e.g. "Jan 2025"
	Year  int    `json:"year"`
	Month int    `json:"month"` // 1-12
	Count int    `json:"count"`
}

// CustomerDetail is a customer with their joined bookings and how many of
// those have already been returned versus are still upcoming.
type CustomerDetail struct {
	Customer  Customer              `json:"customer"`
	Bookings  []BookingWithCustomer `json:"bookings"`
	Completed int                   `json:"completed"`
	Upcoming  int                   `json:"upcoming"`
}
