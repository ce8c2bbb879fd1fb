package services

import (
	"strconv"
	"strings"

	"trimly-backend/utils"
)

var csvHeader = []string{"Client", "Phone", "Service", "Date", "Time", "Price", "Status", "Notes"}

// ExportCSV renders the full booking list as CSV. Every field is
// double-quoted with internal quotes doubled, and the suggested filename
// carries the export date.
func (s *BookingService) ExportCSV() ([]byte, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sb strings.Builder
	writeCSVRow(&sb, csvHeader)
	for _, b := range s.bookings {
		writeCSVRow(&sb, []string{
			b.Client,
			b.Phone,
			b.Service,
			b.Date,
			b.Time,
			strconv.Itoa(b.Price),
			string(b.Status),
			b.Notes,
		})
	}

	filename := "bookings_" + utils.DateKey(s.now()) + ".csv"
	return []byte(sb.String()), filename
}

func writeCSVRow(sb *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('"')
		sb.WriteString(strings.ReplaceAll(f, `"`, `""`))
		sb.WriteByte('"')
	}
	sb.WriteByte('\n')
}
