package main

import "time"

type User struct {
	ID         int        `json:"id"`
	EmployeeID string     `json:"employeeId"` // format EMP<tahun><3 digit urut>, mis. EMP2025001
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Password   string     `json:"-"` // hashed password, jangan pernah ikut ke response
	Role       string     `json:"role"` // employee, admin
	Department string     `json:"department"`
	IsActive   bool       `json:"isActive"`
	LastLogin  *time.Time `json:"lastLogin"` // NULL sebelum login pertama
	CreatedAt  time.Time  `json:"createdAt"`
}
