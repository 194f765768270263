package handler

import (
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/safari-hire/dashboard/internal/domain"
	"github.com/safari-hire/dashboard/internal/service"
)

// maxTrendMonths bounds ?months= on GET /dashboard/trend.
const maxTrendMonths = 24

// GetDashboardStats handles GET /dashboard/stats.
func (s *Server) GetDashboardStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.dashboard.Stats(s.clock.Now()))
}

// GetRecentBookings handles GET /dashboard/recent?limit=n.
func (s *Server) GetRecentBookings(w http.ResponseWriter, r *http.Request) {
	limit, err := queryParam[int](r, "limit")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}
	n := service.DefaultRecentLimit
	if limit != nil {
		if *limit < 1 {
			writeJSON(w, http.StatusUnprocessableEntity,
				validationBody(errors.Mark(errors.New("limit must be at least 1"), domain.ErrValidation)))
			return
		}
		n = *limit
	}
	writeJSON(w, http.StatusOK, s.dashboard.RecentBookings(n))
}

// GetMonthlyTrend handles GET /dashboard/trend?months=n.
func (s *Server) GetMonthlyTrend(w http.ResponseWriter, r *http.Request) {
	months, err := queryParam[int](r, "months")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}
	n := service.DefaultTrendMonths
	if months != nil {
		if *months < 1 || *months > maxTrendMonths {
			writeJSON(w, http.StatusUnprocessableEntity,
				validationBody(errors.Mark(errors.Newf("months must be between 1 and %d", maxTrendMonths), domain.ErrValidation)))
			return
		}
		n = *months
	}
	writeJSON(w, http.StatusOK, s.dashboard.MonthlyTrend(s.clock.Now(), n))
}
