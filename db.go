package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

func InitDB() (*sql.DB, error) {
	err := godotenv.Load() // Load .env file if present
	if err != nil {
		log.Println("No .env file found or error loading .env:", err)
	}

	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASS")
	host := os.Getenv("DB_HOST")
	name := os.Getenv("DB_NAME")
	port := os.Getenv("DB_PORT")
	if user == "" || pass == "" || host == "" || name == "" || port == "" {
		return nil, fmt.Errorf("missing required environment variables")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", user, pass, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	log.Println("✅ Connected to database")
	return db, nil
}

// EnsureSchema membuat tabel users dan attendances kalau belum ada.
// UNIQUE KEY (employee_id, date) adalah penjaga utama supaya tidak ada
// double check-in di hari yang sama, walaupun ada request bersamaan.
func EnsureSchema(db *sql.DB) error {
	usersTable := `
	CREATE TABLE IF NOT EXISTS users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		employee_id VARCHAR(20) NOT NULL,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(255) NOT NULL,
		password VARCHAR(255) NOT NULL,
		role ENUM('employee', 'admin') NOT NULL DEFAULT 'employee',
		department VARCHAR(100) NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		last_login DATETIME NULL,
		created_at DATETIME NOT NULL,
		UNIQUE KEY uniq_employee_id (employee_id),
		UNIQUE KEY uniq_email (email)
	)`

	attendancesTable := `
	CREATE TABLE IF NOT EXISTS attendances (
		id INT AUTO_INCREMENT PRIMARY KEY,
		employee_id VARCHAR(20) NOT NULL,
		employee_name VARCHAR(100) NOT NULL,
		date CHAR(10) NOT NULL,
		check_in_time DATETIME NULL,
		check_out_time DATETIME NULL,
		working_hours DECIMAL(5,2) NULL,
		status ENUM('checked-in', 'completed') NOT NULL DEFAULT 'checked-in',
		check_in_image LONGTEXT NULL,
		check_out_image LONGTEXT NULL,
		notes VARCHAR(500) NULL,
		latitude DOUBLE NULL,
		longitude DOUBLE NULL,
		address VARCHAR(255) NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		UNIQUE KEY uniq_employee_date (employee_id, date),
		KEY idx_date (date),
		KEY idx_status (status)
	)`

	if _, err := db.Exec(usersTable); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	if _, err := db.Exec(attendancesTable); err != nil {
		return fmt.Errorf("failed to create attendances table: %w", err)
	}

	log.Println("✅ Database schema ready")
	return nil
}
