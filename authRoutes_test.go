package main

import (
	"testing"
)

func TestNextEmployeeID(t *testing.T) {
	tests := []struct {
		name   string
		lastID string
		year   int
		want   string
	}{
		{"First user of the year", "", 2025, "EMP2025001"},
		{"Increments the 3 digit suffix", "EMP2025001", 2025, "EMP2025002"},
		{"Continues after double digits", "EMP2025041", 2025, "EMP2025042"},
		{"Year rolls over but sequence continues", "EMP2024123", 2025, "EMP2025124"},
		{"Malformed last ID falls back to 001", "EMPABC", 2025, "EMP2025001"},
		{"Too short last ID falls back to 001", "X", 2025, "EMP2025001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextEmployeeID(tt.lastID, tt.year)
			if got != tt.want {
				t.Errorf("NextEmployeeID(%q, %d) = %v, want %v", tt.lastID, tt.year, got, tt.want)
			}
		})
	}
}
