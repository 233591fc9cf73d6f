package workflow

import (
	"context"
	"strings"
	"time"

	"github.com/mmdatafocus/autoservice_backend/config"
	"github.com/mmdatafocus/autoservice_backend/models"
	"github.com/mmdatafocus/autoservice_backend/utils"
)

// BookingWithStatus is one booking annotated with its computed workflow
// status. Statuses are derived fresh on every call, never persisted.
type BookingWithStatus struct {
	models.Booking
	VinMatched bool                 `json:"vin_matched"`
	Status     models.BookingStatus `json:"status"`
}

type VINMatchingResult struct {
	Bookings         []BookingWithStatus             `json:"bookings"`
	StatusSummary    map[models.BookingStatus]int    `json:"status_summary"`
	TotalBookings    int                             `json:"total_bookings"`
	MatchedVINs      int                             `json:"matched_vins"`
	UnmatchedVINs    int                             `json:"unmatched_vins"`
	AdvisorBreakdown map[string]map[string]map[models.BookingStatus]int `json:"advisor_breakdown"`
}

func emptyVINMatchingResult() *VINMatchingResult {
	return &VINMatchingResult{
		Bookings:         []BookingWithStatus{},
		StatusSummary:    map[models.BookingStatus]int{},
		AdvisorBreakdown: map[string]map[string]map[models.BookingStatus]int{},
	}
}

// classifyBooking applies the status rules for one booking: a VIN present in
// the repair-order set is Converted outright; otherwise the scheduled date
// decides, with unparseable dates conservatively treated as in progress.
func classifyBooking(vin string, bookingDate string, repairOrderVins map[string]bool, today time.Time, location *time.Location) (models.BookingStatus, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(vin))
	if normalized != "" && repairOrderVins[normalized] {
		return models.BookingStatusConverted, true
	}

	scheduled, ok := ParseBookingDate(bookingDate, location)
	if !ok {
		return models.BookingStatusProcessing, false
	}
	tomorrow := today.AddDate(0, 0, 1)
	switch {
	case !scheduled.After(today):
		return models.BookingStatusProcessing, false
	case scheduled.Equal(tomorrow):
		return models.BookingStatusTomorrowDelivery, false
	default:
		return models.BookingStatusFutureDelivery, false
	}
}

// PerformVINMatching classifies every booking of a business against the
// current repair-order VIN set and aggregates summary counts plus an
// advisor/work-type/status breakdown.
//
// Unlike ingestion, this path degrades quietly: any internal fault is logged
// and an empty result returned, so one tenant's bad data never breaks a
// dashboard request.
func PerformVINMatching(ctx context.Context, businessId string) *VINMatchingResult {
	logger := config.GetLogger()

	business, err := models.GetBusinessById(ctx, businessId)
	if err != nil {
		config.LogError(logger, "vinMatchingWorkflow.go", "PerformVINMatching", "GetBusinessById", businessId, err)
		return emptyVINMatchingResult()
	}

	// Today/tomorrow windows are anchored to the business's own calendar day.
	today, err := utils.ConvertToDate(time.Now(), business.Timezone)
	if err != nil {
		config.LogError(logger, "vinMatchingWorkflow.go", "PerformVINMatching", "ConvertToDate", business.Timezone, err)
		return emptyVINMatchingResult()
	}
	location := today.Location()

	bookings, err := utils.FetchAllModels[models.Booking](ctx, businessId)
	if err != nil {
		config.LogError(logger, "vinMatchingWorkflow.go", "PerformVINMatching", "FetchAllModels[Booking]", businessId, err)
		return emptyVINMatchingResult()
	}
	repairOrders, err := utils.FetchAllModels[models.RepairOrder](ctx, businessId)
	if err != nil {
		config.LogError(logger, "vinMatchingWorkflow.go", "PerformVINMatching", "FetchAllModels[RepairOrder]", businessId, err)
		return emptyVINMatchingResult()
	}

	repairOrderVins := make(map[string]bool, len(repairOrders))
	for _, repairOrder := range repairOrders {
		vin := strings.ToUpper(strings.TrimSpace(repairOrder.Vin))
		if vin != "" {
			repairOrderVins[vin] = true
		}
	}

	result := emptyVINMatchingResult()
	result.TotalBookings = len(bookings)
	for _, booking := range bookings {
		status, matched := classifyBooking(booking.Vin, booking.BookingDate, repairOrderVins, today, location)
		if matched {
			result.MatchedVINs++
		} else {
			result.UnmatchedVINs++
		}
		result.StatusSummary[status]++

		advisor := booking.ServiceAdvisor
		if advisor == "" {
			advisor = "Unassigned"
		}
		workType := booking.WorkType
		if workType == "" {
			workType = "General"
		}
		if result.AdvisorBreakdown[advisor] == nil {
			result.AdvisorBreakdown[advisor] = map[string]map[models.BookingStatus]int{}
		}
		if result.AdvisorBreakdown[advisor][workType] == nil {
			result.AdvisorBreakdown[advisor][workType] = map[models.BookingStatus]int{}
		}
		result.AdvisorBreakdown[advisor][workType][status]++

		result.Bookings = append(result.Bookings, BookingWithStatus{
			Booking:    *booking,
			VinMatched: matched,
			Status:     status,
		})
	}
	return result
}
