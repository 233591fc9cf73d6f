package workflow

import (
	"testing"
	"time"

	"github.com/mmdatafocus/autoservice_backend/models"
)

func TestClassifyBooking(t *testing.T) {
	loc := time.UTC
	today := time.Date(2025, time.November, 2, 0, 0, 0, 0, loc)
	vins := map[string]bool{"MA3ERLF1S00123456": true}

	cases := []struct {
		name        string
		vin         string
		bookingDate string
		wantStatus  models.BookingStatus
		wantMatched bool
	}{
		{"vin match wins", "MA3ERLF1S00123456", "05/11/2025", models.BookingStatusConverted, true},
		{"vin match is case and whitespace insensitive", "  ma3erlf1s00123456 ", "", models.BookingStatusConverted, true},
		{"date today", "UNKNOWN00000000001", "02/11/2025", models.BookingStatusProcessing, false},
		{"date in the past", "", "30/10/2025", models.BookingStatusProcessing, false},
		{"date tomorrow", "", "03/11/2025", models.BookingStatusTomorrowDelivery, false},
		{"date beyond tomorrow", "", "10/11/2025", models.BookingStatusFutureDelivery, false},
		{"dash-delimited date", "", "03-11-2025", models.BookingStatusTomorrowDelivery, false},
		{"serial date for today", "", "45963", models.BookingStatusProcessing, false},
		{"serial date for tomorrow", "", "45964", models.BookingStatusTomorrowDelivery, false},
		{"unparseable date defaults to processing", "", "when ready", models.BookingStatusProcessing, false},
		{"empty everything", "", "", models.BookingStatusProcessing, false},
	}

	for _, tc := range cases {
		status, matched := classifyBooking(tc.vin, tc.bookingDate, vins, today, loc)
		if status != tc.wantStatus || matched != tc.wantMatched {
			t.Errorf("%s: got (%s, %v), want (%s, %v)", tc.name, status, matched, tc.wantStatus, tc.wantMatched)
		}
	}
}
