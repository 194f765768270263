package handler

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/safari-hire/dashboard/internal/domain"
)

const (
	exportFormatJSON = "json"
	exportFormatCSV  = "csv"

	exportFilename = "bookings.csv"
)

// csvHeaders is the first row of every CSV export.
var csvHeaders = []string{
	"booking_id", "created_at",
	"customer_id", "customer_name", "customer_id_number", "customer_license", "customer_phone",
	"car_name", "car_number_plate", "destination", "number_of_days",
	"day_out", "date_in", "time_out", "time_in",
	"payment_status", "amount_paid", "total_amount", "balance",
}

// exportRow is the JSON shape of one export row.
type exportRow struct {
	BookingID        string               `json:"bookingId"`
	CreatedAt        time.Time            `json:"-"`
	CustomerID       string               `json:"customerId"`
	CustomerName     string               `json:"customerName"`
	CustomerIDNumber string               `json:"customerIdNumber"`
	CustomerLicense  string               `json:"customerLicense"`
	CustomerPhone    string               `json:"customerPhone"`
	CarName          string               `json:"carName"`
	CarNumberPlate   string               `json:"carNumberPlate"`
	Destination      string               `json:"destination"`
	NumberOfDays     float64              `json:"numberOfDays"`
	DayOut           string               `json:"dayOut"`
	DateIn           string               `json:"dateIn"`
	TimeOut          string               `json:"timeOut"`
	TimeIn           string               `json:"timeIn"`
	PaymentStatus    domain.PaymentStatus `json:"paymentStatus"`
	AmountPaid       float64              `json:"amountPaid"`
	TotalAmount      float64              `json:"totalAmount"`
	Balance          float64              `json:"balance"`
}

// GetExport handles GET /export. It returns one flat row per booking.
// ?format=csv returns a CSV attachment; the default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	format, err := queryParam[string](r, "format")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}
	f := exportFormatJSON
	if format != nil {
		f = *format
	}

	switch f {
	case exportFormatJSON:
		writeJSON(w, http.StatusOK, toExportRows(s.export.Export()))
	case exportFormatCSV:
		writeCSV(w, s.export.Export())
	default:
		writeJSON(w, http.StatusUnprocessableEntity,
			validationBody(errors.Mark(errors.Newf("format must be one of %s, %s", exportFormatJSON, exportFormatCSV), domain.ErrValidation)))
	}
}

// MarshalJSON writes createdAt in domain.TimestampLayout.
func (r exportRow) MarshalJSON() ([]byte, error) {
	type plain exportRow
	return json.Marshal(struct {
		plain
		CreatedAt string `json:"createdAt"`
	}{plain(r), domain.FormatTimestamp(r.CreatedAt)})
}

func toExportRows(rows []domain.ExportRow) []exportRow {
	out := make([]exportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, exportRow(r))
	}
	return out
}

// writeCSV encodes rows into a buffer first so a header row is always
// present and the status is only sent once encoding has succeeded.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	_ = cw.Write(csvHeaders)
	for _, r := range rows {
		_ = cw.Write(csvRecord(r))
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: errorDetail{Code: "internal", Message: "export failed"}})
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func csvRecord(r domain.ExportRow) []string {
	return []string{
		r.BookingID,
		domain.FormatTimestamp(r.CreatedAt),
		r.CustomerID,
		r.CustomerName,
		r.CustomerIDNumber,
		r.CustomerLicense,
		r.CustomerPhone,
		r.CarName,
		r.CarNumberPlate,
		r.Destination,
		formatNumber(r.NumberOfDays),
		r.DayOut,
		r.DateIn,
		r.TimeOut,
		r.TimeIn,
		string(r.PaymentStatus),
		formatNumber(r.AmountPaid),
		formatNumber(r.TotalAmount),
		formatNumber(r.Balance),
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
