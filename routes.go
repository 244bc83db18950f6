// Semuanya masih dalam package main
package main

import (
	"database/sql"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// =======================
// 🧩 Helper Functions
// =======================

// todayDate mengembalikan tanggal hari ini (jam server) dalam format YYYY-MM-DD
func todayDate() string {
	return time.Now().Format("2006-01-02")
}

// RoundHours membulatkan jam kerja ke 2 angka di belakang koma
func RoundHours(hours float64) float64 {
	return math.Round(hours*100) / 100
}

// CalculateWorkingHours menghitung jam kerja dari selisih check-in dan check-out.
// Sekali terisi nilainya dibekukan: pemanggilan ulang tidak menimpa nilai lama.
func CalculateWorkingHours(rec *AttendanceModel) *float64 {
	if rec.WorkingHours != nil {
		return rec.WorkingHours
	}
	if rec.CheckInTime == nil || rec.CheckOutTime == nil {
		return nil
	}
	hours := RoundHours(rec.CheckOutTime.Sub(*rec.CheckInTime).Hours())
	rec.WorkingHours = &hours
	return rec.WorkingHours
}

// MonthDateRange mengembalikan batas bawah dan atas bulan dalam format YYYY-MM-DD.
// Batas atas selalu tanggal 31; untuk bulan pendek tidak apa-apa karena
// perbandingannya string dan tidak ada record dengan tanggal di luar kalender.
func MonthDateRange(month, year int) (string, string) {
	startDate := fmt.Sprintf("%d-%02d-01", year, month)
	endDate := fmt.Sprintf("%d-%02d-31", year, month)
	return startDate, endDate
}

// SummarizeRecords menghitung ringkasan bulanan dari kumpulan record.
// workingHours yang masih NULL dihitung 0, rata-rata = total / jumlah hari.
func SummarizeRecords(records []AttendanceModel) MonthlySummaryModel {
	summary := MonthlySummaryModel{AverageWorkingHours: "0.00"}

	for _, rec := range records {
		summary.TotalDays++
		if rec.Status == "completed" {
			summary.CompletedDays++
		}
		if rec.WorkingHours != nil {
			summary.TotalWorkingHours += *rec.WorkingHours
		}
	}

	if summary.TotalDays > 0 {
		summary.AverageWorkingHours = fmt.Sprintf("%.2f", summary.TotalWorkingHours/float64(summary.TotalDays))
	}
	return summary
}

// TotalPages menghitung jumlah halaman (pembagian dibulatkan ke atas)
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

const attendanceColumns = `id, employee_id, employee_name, date, check_in_time, check_out_time,
	working_hours, status, check_in_image, check_out_image, notes, latitude, longitude, address,
	created_at, updated_at`

func scanAttendance(rows *sql.Rows) (AttendanceModel, error) {
	var rec AttendanceModel
	err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.EmployeeName, &rec.Date,
		&rec.CheckInTime, &rec.CheckOutTime, &rec.WorkingHours, &rec.Status,
		&rec.CheckInImage, &rec.CheckOutImage, &rec.Notes,
		&rec.Latitude, &rec.Longitude, &rec.Address, &rec.CreatedAt, &rec.UpdatedAt)
	return rec, err
}

func queryAttendance(db *sql.DB, query string, args ...interface{}) ([]AttendanceModel, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []AttendanceModel{}
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// findTodayAttendance mencari record milik employee untuk tanggal tertentu
func findTodayAttendance(db *sql.DB, employeeID, date string) (AttendanceModel, bool) {
	rows, err := db.Query("SELECT "+attendanceColumns+" FROM attendances WHERE employee_id = ? AND date = ?",
		employeeID, date)
	if err != nil {
		return AttendanceModel{}, false
	}
	defer rows.Close()

	if !rows.Next() {
		return AttendanceModel{}, false
	}
	rec, err := scanAttendance(rows)
	return rec, err == nil
}

func respondInternalError(c *gin.Context, where string, err error) {
	log.Printf("Error in %s: %v", where, err)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
}

// =========================
// 🧩 Helper Functions END
// =========================

// =========================
// 🗂️ Attendance Management
// =========================
func AttendanceRoutes(r *gin.Engine, db *sql.DB) {
	api := r.Group("/api/attendance")

	api.GET("", func(c *gin.Context) {
		GetAllAttendance(c, db)
	})
	api.GET("/range", func(c *gin.Context) {
		GetAttendanceByDateRange(c, db)
	})
	api.GET("/today", func(c *gin.Context) {
		GetTodayAttendance(c, db)
	})
	api.POST("/checkin", func(c *gin.Context) {
		CheckIn(c, db)
	})
	api.POST("/checkout", func(c *gin.Context) {
		CheckOut(c, db)
	})
	api.GET("/summary/:month/:year", func(c *gin.Context) {
		GetMonthlySummary(c, db)
	})
	api.GET("/export", func(c *gin.Context) {
		ExportToExcel(c, db)
	})
}

// ++++++++++++++++++++++++
//
//	Attendance READ
//
// ++++++++++++++++++++++++

func GetAllAttendance(c *gin.Context, db *sql.DB) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	var total int
	if err := db.QueryRow("SELECT COUNT(*) FROM attendances").Scan(&total); err != nil {
		respondInternalError(c, "GetAllAttendance", err)
		return
	}

	records, err := queryAttendance(db, "SELECT "+attendanceColumns+` FROM attendances
		ORDER BY date DESC, check_in_time DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		respondInternalError(c, "GetAllAttendance", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    records,
		"pagination": PaginationModel{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: TotalPages(total, limit),
		},
	})
}

func GetAttendanceByDateRange(c *gin.Context, db *sql.DB) {
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")

	if startDate == "" || endDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Start date and end date are required"})
		return
	}

	records, err := queryAttendance(db, "SELECT "+attendanceColumns+` FROM attendances
		WHERE date >= ? AND date <= ? ORDER BY date DESC, check_in_time DESC`, startDate, endDate)
	if err != nil {
		respondInternalError(c, "GetAttendanceByDateRange", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    records,
	})
}

func GetTodayAttendance(c *gin.Context, db *sql.DB) {
	records, err := queryAttendance(db, "SELECT "+attendanceColumns+` FROM attendances
		WHERE date = ? ORDER BY check_in_time DESC`, todayDate())
	if err != nil {
		respondInternalError(c, "GetTodayAttendance", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    records,
	})
}

// ++++++++++++++++++++++++
//
//	Check-in / Check-out
//
// ++++++++++++++++++++++++

type LocationInput struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Address   *string  `json:"address"`
}

type CheckInInput struct {
	EmployeeID   string         `json:"employeeId"`
	EmployeeName string         `json:"employeeName"`
	CheckInImage *string        `json:"checkInImage"` // base64 dari kamera, boleh kosong
	Notes        *string        `json:"notes"`
	Location     *LocationInput `json:"location"`
}

func CheckIn(c *gin.Context, db *sql.DB) {
	var input CheckInInput
	if err := c.ShouldBindJSON(&input); err != nil || input.EmployeeID == "" || input.EmployeeName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Employee ID and name are required"})
		return
	}

	today := todayDate()
	checkInTime := time.Now() // jam server, bukan dari client

	// Cek dulu apakah sudah check-in hari ini
	if _, found := findTodayAttendance(db, input.EmployeeID, today); found {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Already checked in today"})
		return
	}

	var latitude, longitude *float64
	var address *string
	if input.Location != nil {
		latitude = input.Location.Latitude
		longitude = input.Location.Longitude
		address = input.Location.Address
	}

	res, err := db.Exec(`INSERT INTO attendances
		(employee_id, employee_name, date, check_in_time, status, check_in_image, notes, latitude, longitude, address, created_at, updated_at)
		VALUES (?, ?, ?, ?, 'checked-in', ?, ?, ?, ?, ?, ?, ?)`,
		input.EmployeeID, input.EmployeeName, today, checkInTime,
		input.CheckInImage, input.Notes, latitude, longitude, address, checkInTime, checkInTime)
	if err != nil {
		// Pre-check di atas bisa kalah race dengan request lain; unique key
		// (employee_id, date) yang jadi penentu akhir dan harus menghasilkan
		// pesan yang sama dengan jalur pre-check
		if isDuplicateKey(err) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Already checked in today"})
			return
		}
		respondInternalError(c, "CheckIn", err)
		return
	}
	id, _ := res.LastInsertId()

	record := AttendanceModel{
		ID:           int(id),
		EmployeeID:   input.EmployeeID,
		EmployeeName: input.EmployeeName,
		Date:         today,
		CheckInTime:  &checkInTime,
		Status:       "checked-in",
		CheckInImage: input.CheckInImage,
		Notes:        input.Notes,
		Latitude:     latitude,
		Longitude:    longitude,
		Address:      address,
		CreatedAt:    checkInTime,
		UpdatedAt:    checkInTime,
	}

	log.Printf("📝 Attendance saved: %s - %s - %s", record.EmployeeName, record.Date, record.Status)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Successfully checked in",
		"data":    record,
	})
}

type CheckOutInput struct {
	EmployeeID    string  `json:"employeeId"`
	CheckOutImage *string `json:"checkOutImage"`
}

func CheckOut(c *gin.Context, db *sql.DB) {
	var input CheckOutInput
	if err := c.ShouldBindJSON(&input); err != nil || input.EmployeeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Employee ID is required"})
		return
	}

	today := todayDate()
	checkOutTime := time.Now()

	record, found := findTodayAttendance(db, input.EmployeeID, today)
	if !found {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No check-in record found for today"})
		return
	}

	if record.CheckOutTime != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Already checked out today"})
		return
	}

	record.CheckOutTime = &checkOutTime
	record.CheckOutImage = input.CheckOutImage
	CalculateWorkingHours(&record)
	record.Status = "completed"
	record.UpdatedAt = checkOutTime

	// Syarat check_out_time IS NULL menjaga record yang sudah completed
	// tidak tertimpa kalau ada dua request check-out bersamaan
	res, err := db.Exec(`UPDATE attendances
		SET check_out_time = ?, check_out_image = ?, working_hours = ?, status = 'completed', updated_at = ?
		WHERE id = ? AND check_out_time IS NULL`,
		record.CheckOutTime, record.CheckOutImage, record.WorkingHours, record.UpdatedAt, record.ID)
	if err != nil {
		respondInternalError(c, "CheckOut", err)
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Already checked out today"})
		return
	}

	log.Printf("📝 Attendance saved: %s - %s - %s", record.EmployeeName, record.Date, record.Status)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Successfully checked out",
		"data":    record,
	})
}

// ++++++++++++++++++++++++
//
//	Monthly Summary
//
// ++++++++++++++++++++++++

func GetMonthlySummary(c *gin.Context, db *sql.DB) {
	month, errMonth := strconv.Atoi(c.Param("month"))
	year, errYear := strconv.Atoi(c.Param("year"))
	if errMonth != nil || errYear != nil || month < 1 || month > 12 || year < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Month and year are required"})
		return
	}

	startDate, endDate := MonthDateRange(month, year)

	records, err := queryAttendance(db, "SELECT "+attendanceColumns+` FROM attendances
		WHERE date >= ? AND date <= ? ORDER BY date DESC`, startDate, endDate)
	if err != nil {
		respondInternalError(c, "GetMonthlySummary", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"summary": SummarizeRecords(records),
			"records": records,
		},
	})
}

// ++++++++++++++++++++++++
//
//	Export Excel
//
// ++++++++++++++++++++++++

func ExportToExcel(c *gin.Context, db *sql.DB) {
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")

	query := "SELECT " + attendanceColumns + " FROM attendances"
	args := []interface{}{}
	if startDate != "" && endDate != "" {
		query += " WHERE date >= ? AND date <= ?"
		args = append(args, startDate, endDate)
	}
	query += " ORDER BY date DESC, check_in_time DESC"

	records, err := queryAttendance(db, query, args...)
	if err != nil {
		respondInternalError(c, "ExportToExcel", err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Attendance Report"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		respondInternalError(c, "ExportToExcel", err)
		return
	}

	headers := []struct {
		Title string
		Width float64
	}{
		{"Employee ID", 15},
		{"Employee Name", 25},
		{"Date", 15},
		{"Check In Time", 20},
		{"Check Out Time", 20},
		{"Working Hours", 15},
		{"Status", 15},
	}

	for i, h := range headers {
		col := string(rune('A' + i))
		f.SetCellValue(sheet, fmt.Sprintf("%s1", col), h.Title)
		f.SetColWidth(sheet, col, col, h.Width)
	}

	// Baris header dibuat tebal dengan latar abu-abu
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E0E0E0"}},
	})
	if err == nil {
		f.SetCellStyle(sheet, "A1", "G1", headerStyle)
	}

	for i, rec := range records {
		row := i + 2
		checkIn := ""
		if rec.CheckInTime != nil {
			checkIn = rec.CheckInTime.Format("15:04:05")
		}
		checkOut := ""
		if rec.CheckOutTime != nil {
			checkOut = rec.CheckOutTime.Format("15:04:05")
		}

		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), rec.EmployeeID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), rec.EmployeeName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), rec.Date)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), checkIn)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), checkOut)
		if rec.WorkingHours != nil {
			f.SetCellValue(sheet, fmt.Sprintf("F%d", row), *rec.WorkingHours)
		}
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), rec.Status)
	}

	filename := fmt.Sprintf("attendance_report_%s.xlsx", todayDate())
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Access-Control-Expose-Headers", "Content-Disposition")

	if err := f.Write(c.Writer); err != nil {
		log.Printf("Error in ExportToExcel: %v", err)
	}
}
