package workflow

import (
	"testing"
	"time"
)

func TestConvertExcelDate_SerialNumbers(t *testing.T) {
	cases := map[string]string{
		"45931": "01/10/2025",
		"45963": "02/11/2025",
		"45964": "03/11/2025",
		"25569": "01/01/1970",
	}
	for input, want := range cases {
		if got := ConvertExcelDate(input); got != want {
			t.Errorf("ConvertExcelDate(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestConvertExcelDate_DashesRewrittenVerbatim(t *testing.T) {
	if got := ConvertExcelDate("03-11-2025"); got != "03/11/2025" {
		t.Errorf("got %q, want 03/11/2025", got)
	}
	// No reordering: the segments stay exactly as given.
	if got := ConvertExcelDate("2025-11-03"); got != "2025/11/03" {
		t.Errorf("got %q, want 2025/11/03", got)
	}
}

func TestConvertExcelDate_PassThrough(t *testing.T) {
	for _, input := range []string{"", "not a date", "0", "1", "100001", "250000"} {
		if got := ConvertExcelDate(input); got != input {
			t.Errorf("ConvertExcelDate(%q) = %q, want unchanged", input, got)
		}
	}
}

func TestParseBookingDate(t *testing.T) {
	loc := time.UTC

	got, ok := ParseBookingDate("03/11/2025", loc)
	if !ok {
		t.Fatal("expected 03/11/2025 to parse")
	}
	want := time.Date(2025, time.November, 3, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	got, ok = ParseBookingDate("45964", loc)
	if !ok || !got.Equal(want) {
		t.Errorf("serial 45964: got %v ok=%v, want %v", got, ok, want)
	}

	if _, ok := ParseBookingDate("soon", loc); ok {
		t.Error("expected free text to fail parsing")
	}
	if _, ok := ParseBookingDate("", loc); ok {
		t.Error("expected empty input to fail parsing")
	}
}
