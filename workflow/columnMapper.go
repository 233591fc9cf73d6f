package workflow

import (
	"regexp"
	"sort"
	"strings"

	"github.com/mmdatafocus/autoservice_backend/models"
)

// headerMatcher is one strategy in the alias resolution chain. Each takes
// the raw header and the alias table and reports the canonical field, if
// any. Matchers run in order; the first hit wins.
type headerMatcher func(header string, aliases map[string]string) (string, bool)

var headerMatchers = []headerMatcher{
	func(header string, aliases map[string]string) (string, bool) {
		canonical, ok := aliases[header]
		return canonical, ok
	},
	func(header string, aliases map[string]string) (string, bool) {
		canonical, ok := aliases[strings.TrimSpace(header)]
		return canonical, ok
	},
	func(header string, aliases map[string]string) (string, bool) {
		wanted := strings.ToLower(strings.TrimSpace(header))
		for alias, canonical := range aliases {
			if strings.ToLower(strings.TrimSpace(alias)) == wanted {
				return canonical, true
			}
		}
		return "", false
	},
}

// Per-type alias tables. Keys are header spellings seen in real dealer
// exports; values are canonical field names.
var columnAliases = map[models.FileType]map[string]string{
	models.FileTypeROBilling: {
		"RO No":           "ro_number",
		"RO Number":       "ro_number",
		"Ro No.":          "ro_number",
		"Repair Order No": "ro_number",
		"RO Date":         "ro_date",
		"Bill Date":       "ro_date",
		"Customer":        "customer_name",
		"Customer Name":   "customer_name",
		"VIN":             "vin",
		"Chassis No":      "vin",
		"Chassis Number":  "vin",
		"Model":           "model",
		"Vehicle Model":   "model",
		"SA":              "service_advisor",
		"Service Advisor": "service_advisor",
		"Advisor":         "service_advisor",
		"Labour":          "labour_amount",
		"Labour Amount":   "labour_amount",
		"Labor Amount":    "labour_amount",
		"Parts":           "parts_amount",
		"Parts Amount":    "parts_amount",
		"Total":           "total_amount",
		"Total Amount":    "total_amount",
		"Bill Amount":     "total_amount",
	},
	models.FileTypeWarranty: {
		"Claim No":        "claim_number",
		"Claim Number":    "claim_number",
		"Claim#":          "claim_number",
		"RO No":           "ro_number",
		"RO Number":       "ro_number",
		"Claim Date":      "claim_date",
		"Date":            "claim_date",
		"VIN":             "vin",
		"Chassis No":      "vin",
		"Model":           "model",
		"Claim Amount":    "claim_amount",
		"Amount":          "claim_amount",
		"Approved Amount": "claim_amount",
		"Status":          "claim_status",
		"Claim Status":    "claim_status",
	},
	models.FileTypeBookingList: {
		"Reg No":           "registration_no",
		"Reg. No":          "registration_no",
		"Registration No":  "registration_no",
		"Registration No.": "registration_no",
		"Vehicle Reg No":   "registration_no",
		"VIN":              "vin",
		"Chassis No":       "vin",
		"Booking Date":     "booking_date",
		"Date":             "booking_date",
		"Appointment Date": "booking_date",
		"Booking Time":     "booking_time",
		"Time":             "booking_time",
		"Customer":         "customer_name",
		"Customer Name":    "customer_name",
		"Phone":            "phone",
		"Phone No":         "phone",
		"Contact No":       "phone",
		"Model":            "model",
		"SA":               "service_advisor",
		"Service Advisor":  "service_advisor",
		"Work Type":        "work_type",
		"Job Type":         "work_type",
		"Confirmed":        "confirmed",
		"Is Confirmed":     "confirmed",
		"Confirm":          "confirmed",
	},
	models.FileTypeOperationsPart: {
		"Part Code":   "part_code",
		"Part No":     "part_code",
		"Part Number": "part_code",
		"Part Name":   "part_name",
		"Description": "part_name",
		"RO No":       "ro_number",
		"RO Number":   "ro_number",
		"Issue Date":  "issue_date",
		"Date":        "issue_date",
		"Qty":         "quantity",
		"Quantity":    "quantity",
		"Unit Price":  "unit_price",
		"Rate":        "unit_price",
		"Amount":      "amount",
		"Total":       "amount",
	},
	models.FileTypeRepairOrderList: {
		"RO No":            "ro_number",
		"RO Number":        "ro_number",
		"Repair Order No":  "ro_number",
		"VIN":              "vin",
		"Chassis No":       "vin",
		"Chassis Number":   "vin",
		"RO Date":          "ro_date",
		"Open Date":        "ro_date",
		"Reg No":           "registration_no",
		"Registration No":  "registration_no",
		"Registration No.": "registration_no",
		"Customer":         "customer_name",
		"Customer Name":    "customer_name",
		"Model":            "model",
		"SA":               "service_advisor",
		"Service Advisor":  "service_advisor",
		"Status":           "ro_status",
		"RO Status":        "ro_status",
	},
}

var numericFields = map[models.FileType][]string{
	models.FileTypeROBilling:      {"labour_amount", "parts_amount", "total_amount"},
	models.FileTypeWarranty:       {"claim_amount"},
	models.FileTypeOperationsPart: {"quantity", "unit_price", "amount"},
}

var dateFields = map[models.FileType][]string{
	models.FileTypeROBilling:       {"ro_date"},
	models.FileTypeWarranty:        {"claim_date"},
	models.FileTypeBookingList:     {"booking_date"},
	models.FileTypeOperationsPart:  {"issue_date"},
	models.FileTypeRepairOrderList: {"ro_date"},
}

var boolFields = map[models.FileType][]string{
	models.FileTypeBookingList: {"confirmed"},
}

// Alternate booking headers tried, in order, when the registration number is
// still empty after alias resolution.
var registrationRecoveryHeaders = []string{
	"Vehicle No", "Vehicle Number", "Car No", "Plate No", "Plate Number", "License No",
}

var registrationValuePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 /-]{5,}$`)

var nonNumericPattern = regexp.MustCompile(`[^0-9.\-]`)

func coerceNumeric(value string) string {
	cleaned := nonNumericPattern.ReplaceAllString(value, "")
	if cleaned == "" || cleaned == "-" || cleaned == "." {
		return "0"
	}
	return cleaned
}

var truthyValues = map[string]bool{
	"y": true, "yes": true, "1": true, "true": true,
}

func coerceBool(value string) string {
	if truthyValues[strings.ToLower(strings.TrimSpace(value))] {
		return "true"
	}
	return "false"
}

// MapColumns resolves one raw spreadsheet row into canonical field names.
// Unmatched headers pass through under their original name. Pure: same row
// and file type always produce the same output.
func MapColumns(row map[string]string, fileType models.FileType) map[string]string {
	aliases := columnAliases[fileType]
	canonical := make(map[string]string, len(row))

	// Sorted header order keeps the result stable when two raw headers
	// resolve to the same canonical field.
	headers := make([]string, 0, len(row))
	for header := range row {
		headers = append(headers, header)
	}
	sort.Strings(headers)

	for _, header := range headers {
		key := header
		for _, match := range headerMatchers {
			if resolved, ok := match(header, aliases); ok {
				key = resolved
				break
			}
		}
		canonical[key] = row[header]
	}

	for _, field := range numericFields[fileType] {
		if value, ok := canonical[field]; ok {
			canonical[field] = coerceNumeric(value)
		}
	}
	for _, field := range dateFields[fileType] {
		if value, ok := canonical[field]; ok {
			canonical[field] = ConvertExcelDate(value)
		}
	}
	for _, field := range boolFields[fileType] {
		if value, ok := canonical[field]; ok {
			canonical[field] = coerceBool(value)
		}
	}

	if fileType == models.FileTypeBookingList {
		recoverRegistrationNo(row, canonical)
	}

	return canonical
}

// recoverRegistrationNo fills the registration number from progressively
// weaker sources: known alternate headers, then any header mentioning
// reg/vehicle/number whose value looks like a plate, then the VIN. Leaving
// it absent is fine; the validator rejects the row later if it matters.
func recoverRegistrationNo(raw map[string]string, canonical map[string]string) {
	if strings.TrimSpace(canonical["registration_no"]) != "" {
		return
	}

	for _, header := range registrationRecoveryHeaders {
		if value := strings.TrimSpace(raw[header]); value != "" {
			canonical["registration_no"] = value
			return
		}
	}

	// Headers are scanned in sorted order so recovery stays deterministic
	// when several columns qualify.
	headers := make([]string, 0, len(raw))
	for header := range raw {
		headers = append(headers, header)
	}
	sort.Strings(headers)
	for _, header := range headers {
		lowered := strings.ToLower(header)
		if !strings.Contains(lowered, "reg") && !strings.Contains(lowered, "vehicle") && !strings.Contains(lowered, "number") {
			continue
		}
		trimmed := strings.TrimSpace(raw[header])
		if registrationValuePattern.MatchString(trimmed) {
			canonical["registration_no"] = trimmed
			return
		}
	}

	if vin := strings.TrimSpace(canonical["vin"]); vin != "" {
		canonical["registration_no"] = vin
	}
}
