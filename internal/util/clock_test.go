package util

import "testing"

func TestParseClock(t *testing.T) {
	tests := []struct {
		name      string
		clock     string
		wantHour  int
		wantMin   int
		wantError bool
	}{
		{name: "24h start of workday", clock: "09:00", wantHour: 9, wantMin: 0},
		{name: "24h end of workday", clock: "18:00", wantHour: 18},
		{name: "24h midnight", clock: "00:00"},
		{name: "24h last minute", clock: "23:59", wantHour: 23, wantMin: 59},
		{name: "single digit hour", clock: "9:05", wantHour: 9, wantMin: 5},
		{name: "12h PM", clock: "6:30PM", wantHour: 18, wantMin: 30},
		{name: "12h AM padded", clock: "09:45AM", wantHour: 9, wantMin: 45},
		{name: "12h with space", clock: "10:30 PM", wantHour: 22, wantMin: 30},
		{name: "12h lowercase", clock: "08:15am", wantHour: 8, wantMin: 15},
		{name: "12h noon", clock: "12:00PM", wantHour: 12},
		{name: "12h midnight", clock: "12:00AM"},
		{name: "surrounding spaces", clock: "  17:59 ", wantHour: 17, wantMin: 59},

		{name: "missing minutes", clock: "18:", wantError: true},
		{name: "no separator", clock: "1800", wantError: true},
		{name: "wrong separator", clock: "18.00", wantError: true},
		{name: "trailing garbage", clock: "18:00xyz", wantError: true},
		{name: "hour out of range", clock: "24:00", wantError: true},
		{name: "minute out of range", clock: "18:60", wantError: true},
		{name: "empty", clock: "", wantError: true},
		{name: "spaces only", clock: "   ", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hour, minute, err := ParseClock(tt.clock)

			if tt.wantError {
				if err == nil {
					t.Errorf("ParseClock(%q) expected error but got none", tt.clock)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseClock(%q) unexpected error: %v", tt.clock, err)
			}
			if hour != tt.wantHour || minute != tt.wantMin {
				t.Errorf("ParseClock(%q) = %02d:%02d, want %02d:%02d", tt.clock, hour, minute, tt.wantHour, tt.wantMin)
			}
		})
	}
}
