package main

import (
	"testing"
	"time"
)

func fptr(f float64) *float64 { return &f }

func tptr(t time.Time) *time.Time { return &t }

func TestCalculateWorkingHours(t *testing.T) {
	checkIn := time.Date(2025, 11, 3, 9, 0, 0, 0, time.Local)

	tests := []struct {
		name string
		rec  AttendanceModel
		want *float64
	}{
		{
			name: "Full day - 09:00 to 17:30 is 8.5 hours",
			rec: AttendanceModel{
				CheckInTime:  tptr(checkIn),
				CheckOutTime: tptr(time.Date(2025, 11, 3, 17, 30, 0, 0, time.Local)),
			},
			want: fptr(8.5),
		},
		{
			name: "Rounded to 2 decimal places - 8h20m is 8.33",
			rec: AttendanceModel{
				CheckInTime:  tptr(checkIn),
				CheckOutTime: tptr(time.Date(2025, 11, 3, 17, 20, 0, 0, time.Local)),
			},
			want: fptr(8.33),
		},
		{
			name: "Exact hours stay whole",
			rec: AttendanceModel{
				CheckInTime:  tptr(checkIn),
				CheckOutTime: tptr(time.Date(2025, 11, 3, 17, 0, 0, 0, time.Local)),
			},
			want: fptr(8),
		},
		{
			name: "No check-out yet - stays nil",
			rec: AttendanceModel{
				CheckInTime: tptr(checkIn),
			},
			want: nil,
		},
		{
			name: "No check-in - stays nil",
			rec: AttendanceModel{
				CheckOutTime: tptr(time.Date(2025, 11, 3, 17, 0, 0, 0, time.Local)),
			},
			want: nil,
		},
		{
			name: "Already set - frozen, not recomputed",
			rec: AttendanceModel{
				CheckInTime:  tptr(checkIn),
				CheckOutTime: tptr(time.Date(2025, 11, 3, 17, 30, 0, 0, time.Local)),
				WorkingHours: fptr(5),
			},
			want: fptr(5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateWorkingHours(&tt.rec)
			if tt.want == nil {
				if got != nil {
					t.Errorf("CalculateWorkingHours() = %v, want nil", *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("CalculateWorkingHours() = nil, want %v", *tt.want)
			}
			if *got != *tt.want {
				t.Errorf("CalculateWorkingHours() = %v, want %v", *got, *tt.want)
			}
			if tt.rec.WorkingHours == nil || *tt.rec.WorkingHours != *tt.want {
				t.Errorf("record WorkingHours = %v, want %v", tt.rec.WorkingHours, *tt.want)
			}
		})
	}
}

func TestMonthDateRange(t *testing.T) {
	tests := []struct {
		name      string
		month     int
		year      int
		wantStart string
		wantEnd   string
	}{
		{"November 2025", 11, 2025, "2025-11-01", "2025-11-31"},
		{"Single digit month is zero padded", 9, 2025, "2025-09-01", "2025-09-31"},
		{"February keeps the lenient day 31 bound", 2, 2024, "2024-02-01", "2024-02-31"},
		{"January", 1, 2026, "2026-01-01", "2026-01-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotStart, gotEnd := MonthDateRange(tt.month, tt.year)
			if gotStart != tt.wantStart || gotEnd != tt.wantEnd {
				t.Errorf("MonthDateRange() = (%v, %v), want (%v, %v)",
					gotStart, gotEnd, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestSummarizeRecords(t *testing.T) {
	tests := []struct {
		name    string
		records []AttendanceModel
		want    MonthlySummaryModel
	}{
		{
			name:    "No records returns zeroed summary",
			records: []AttendanceModel{},
			want: MonthlySummaryModel{
				TotalDays:           0,
				CompletedDays:       0,
				TotalWorkingHours:   0,
				AverageWorkingHours: "0.00",
			},
		},
		{
			name: "Mixed completed and checked-in records",
			records: []AttendanceModel{
				{Status: "completed", WorkingHours: fptr(8.5)},
				{Status: "completed", WorkingHours: fptr(7.5)},
				{Status: "checked-in", WorkingHours: nil},
			},
			want: MonthlySummaryModel{
				TotalDays:           3,
				CompletedDays:       2,
				TotalWorkingHours:   16,
				AverageWorkingHours: "5.33",
			},
		},
		{
			name: "Single completed day",
			records: []AttendanceModel{
				{Status: "completed", WorkingHours: fptr(8)},
			},
			want: MonthlySummaryModel{
				TotalDays:           1,
				CompletedDays:       1,
				TotalWorkingHours:   8,
				AverageWorkingHours: "8.00",
			},
		},
		{
			name: "NULL working hours counted as zero in total",
			records: []AttendanceModel{
				{Status: "checked-in", WorkingHours: nil},
				{Status: "completed", WorkingHours: fptr(6)},
			},
			want: MonthlySummaryModel{
				TotalDays:           2,
				CompletedDays:       1,
				TotalWorkingHours:   6,
				AverageWorkingHours: "3.00",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SummarizeRecords(tt.records)
			if got != tt.want {
				t.Errorf("SummarizeRecords() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name  string
		total int
		limit int
		want  int
	}{
		{"25 records with limit 10 is 3 pages", 25, 10, 3},
		{"Exact division", 20, 10, 2},
		{"Zero records", 0, 10, 0},
		{"One record", 1, 10, 1},
		{"Limit zero does not divide by zero", 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TotalPages(tt.total, tt.limit)
			if got != tt.want {
				t.Errorf("TotalPages(%d, %d) = %v, want %v", tt.total, tt.limit, got, tt.want)
			}
		})
	}
}

func TestRoundHours(t *testing.T) {
	tests := []struct {
		name  string
		hours float64
		want  float64
	}{
		{"Thirds round down", 8.333333, 8.33},
		{"Halves round up", 8.335, 8.34},
		{"Whole stays whole", 8, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RoundHours(tt.hours)
			if got != tt.want {
				t.Errorf("RoundHours(%v) = %v, want %v", tt.hours, got, tt.want)
			}
		})
	}
}
