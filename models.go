package main

import (
	"time"
)

type AttendanceModel struct {
	ID            int        `json:"id"`
	EmployeeID    string     `json:"employeeId"`
	EmployeeName  string     `json:"employeeName"`
	Date          string     `json:"date"` // format YYYY-MM-DD
	CheckInTime   *time.Time `json:"checkInTime"`
	CheckOutTime  *time.Time `json:"checkOutTime"` // NULLable, jadi pakai pointer
	WorkingHours  *float64   `json:"workingHours"` // NULL sampai check-out, lalu dibekukan
	Status        string     `json:"status"`       // ENUM: "checked-in", "completed"
	CheckInImage  *string    `json:"checkInImage"` // base64, NULLable
	CheckOutImage *string    `json:"checkOutImage"`
	Notes         *string    `json:"notes"`
	Latitude      *float64   `json:"latitude"`
	Longitude     *float64   `json:"longitude"`
	Address       *string    `json:"address"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type PaginationModel struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type MonthlySummaryModel struct {
	TotalDays           int     `json:"totalDays"`
	CompletedDays       int     `json:"completedDays"`
	TotalWorkingHours   float64 `json:"totalWorkingHours"`
	AverageWorkingHours string  `json:"averageWorkingHours"` // diformat 2 desimal, mis. "8.50"
}
