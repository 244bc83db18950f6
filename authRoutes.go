package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
)

// Route setup
func AuthRoutes(r *gin.Engine, db *sql.DB) {
	api := r.Group("/api/auth")

	api.POST("/register", func(c *gin.Context) {
		handleRegister(c, db)
	})
	api.POST("/login", func(c *gin.Context) {
		handleLogin(c, db)
	})
	api.GET("/verify", func(c *gin.Context) {
		handleVerifyToken(c, db)
	})

	// 🔐 Butuh token
	api.GET("/profile", AuthMiddleware(), func(c *gin.Context) {
		handleGetProfile(c, db)
	})
	api.PUT("/profile", AuthMiddleware(), func(c *gin.Context) {
		handleUpdateProfile(c, db)
	})

	// 🔐 Khusus admin
	api.GET("/users", AuthMiddleware(), RoleMiddleware("admin"), func(c *gin.Context) {
		handleListUsers(c, db)
	})
}

// =================== REGISTER ===================

type RegisterInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Department string `json:"department"`
}

func handleRegister(c *gin.Context, db *sql.DB) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil ||
		strings.TrimSpace(input.Name) == "" || input.Email == "" ||
		input.Password == "" || strings.TrimSpace(input.Department) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Semua field wajib diisi"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	// periksa format email
	// jika tidak valid, kembalikan status 400 Bad Request
	if !strings.Contains(email, "@") {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Format email tidak valid"})
		return
	}
	// periksa panjang password
	// jika kurang dari 6 karakter, kembalikan status 400 Bad Request
	if len(input.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Password minimal 6 karakter"})
		return
	}
	// periksa apakah email sudah terdaftar
	// jika sudah terdaftar, kembalikan status 409 Conflict
	if _, found := findUserByEmail(db, email); found {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Email sudah terdaftar"})
		return
	}

	// Generate Employee ID berurutan dari user terakhir (EMP2025001, EMP2025002, ...)
	employeeID := NextEmployeeID(lastEmployeeID(db), time.Now().Year())

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Gagal mengenkripsi password"})
		return
	}

	now := time.Now()
	res, err := db.Exec(`INSERT INTO users (employee_id, name, email, password, role, department, is_active, last_login, created_at)
		VALUES (?, ?, ?, ?, 'employee', ?, TRUE, ?, ?)`,
		employeeID, strings.TrimSpace(input.Name), email, string(hashedPwd),
		strings.TrimSpace(input.Department), now, now)
	if err != nil {
		// email bisa lolos pre-check tapi kalah race, unique key yang jadi penentu akhir
		if isDuplicateKey(err) && strings.Contains(err.Error(), "uniq_email") {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Email sudah terdaftar"})
			return
		}
		log.Println("Register error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Terjadi kesalahan server"})
		return
	}
	id, _ := res.LastInsertId()

	user := User{
		ID:         int(id),
		EmployeeID: employeeID,
		Name:       strings.TrimSpace(input.Name),
		Email:      email,
		Role:       "employee",
		Department: strings.TrimSpace(input.Department),
	}

	// Langsung login (generate token)
	respondWithToken(c, http.StatusCreated,
		fmt.Sprintf("Registrasi berhasil! Employee ID Anda: %s", employeeID), user)
}

// =================== LOGIN ===================

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func handleLogin(c *gin.Context, db *sql.DB) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email dan password wajib diisi"})
		return
	}

	user, found := findUserByEmail(db, strings.ToLower(strings.TrimSpace(input.Email)))
	if !found {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Email atau password salah"})
		return
	}

	// akun nonaktif tidak boleh login walaupun password benar
	if !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Akun Anda telah dinonaktifkan"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Email atau password salah"})
		return
	}

	updateLastLogin(db, user.ID)

	respondWithToken(c, http.StatusOK, "Login berhasil", user)
}

// =================== VERIFY TOKEN ===================

func handleVerifyToken(c *gin.Context, db *sql.DB) {
	tokenStr := BearerToken(c)
	if tokenStr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Token tidak ditemukan"})
		return
	}

	claims, err := ParseToken(tokenStr)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Token tidak valid"})
		return
	}

	// token yang lolos signature tetap ditolak kalau usernya hilang atau nonaktif
	user, found := findUserByID(db, claims.UserID)
	if !found || !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Token tidak valid"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    userPayload(user),
	})
}

// =================== PROFILE ===================

func handleGetProfile(c *gin.Context, db *sql.DB) {
	user, found := findUserByID(db, GetUserID(c))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User tidak ditemukan"})
		return
	}

	payload := userPayload(user)
	payload["lastLogin"] = user.LastLogin
	payload["createdAt"] = user.CreatedAt

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    payload,
	})
}

type UpdateProfileInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

func handleUpdateProfile(c *gin.Context, db *sql.DB) {
	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Body request tidak valid"})
		return
	}

	user, found := findUserByID(db, GetUserID(c))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User tidak ditemukan"})
		return
	}

	// email baru tidak boleh dipakai user lain
	if input.Email != "" {
		email := strings.ToLower(strings.TrimSpace(input.Email))
		if email != user.Email {
			if other, taken := findUserByEmail(db, email); taken && other.ID != user.ID {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email sudah digunakan oleh user lain"})
				return
			}
			user.Email = email
		}
	}
	if strings.TrimSpace(input.Name) != "" {
		user.Name = strings.TrimSpace(input.Name)
	}
	if strings.TrimSpace(input.Department) != "" {
		user.Department = strings.TrimSpace(input.Department)
	}

	_, err := db.Exec("UPDATE users SET name = ?, email = ?, department = ? WHERE id = ?",
		user.Name, user.Email, user.Department, user.ID)
	if err != nil {
		log.Println("Update profile error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Terjadi kesalahan server"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profil berhasil diperbarui",
		"user":    userPayload(user),
	})
}

// =================== USERS (ADMIN) ===================

func handleListUsers(c *gin.Context, db *sql.DB) {
	rows, err := db.Query(`SELECT id, employee_id, name, email, role, department, is_active, last_login, created_at
		FROM users ORDER BY created_at DESC`)
	if err != nil {
		log.Println("List users error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Terjadi kesalahan server"})
		return
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.EmployeeID, &u.Name, &u.Email, &u.Role,
			&u.Department, &u.IsActive, &u.LastLogin, &u.CreatedAt); err != nil {
			log.Println("Scan user error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Terjadi kesalahan server"})
			return
		}
		users = append(users, u)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    users,
	})
}

// =================== DATABASE HELPER ===================

func findUserByEmail(db *sql.DB, email string) (User, bool) {
	var u User
	err := db.QueryRow(`SELECT id, employee_id, name, email, password, role, department, is_active, last_login, created_at
		FROM users WHERE email = ?`, email).
		Scan(&u.ID, &u.EmployeeID, &u.Name, &u.Email, &u.Password, &u.Role,
			&u.Department, &u.IsActive, &u.LastLogin, &u.CreatedAt)
	return u, err == nil
}

func findUserByID(db *sql.DB, id int) (User, bool) {
	var u User
	err := db.QueryRow(`SELECT id, employee_id, name, email, password, role, department, is_active, last_login, created_at
		FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.EmployeeID, &u.Name, &u.Email, &u.Password, &u.Role,
			&u.Department, &u.IsActive, &u.LastLogin, &u.CreatedAt)
	return u, err == nil
}

// lastEmployeeID mengambil employee_id milik user yang paling baru dibuat, "" kalau belum ada
func lastEmployeeID(db *sql.DB) string {
	var employeeID string
	err := db.QueryRow("SELECT employee_id FROM users ORDER BY created_at DESC, id DESC LIMIT 1").
		Scan(&employeeID)
	if err != nil {
		return ""
	}
	return employeeID
}

func updateLastLogin(db *sql.DB, userID int) {
	if _, err := db.Exec("UPDATE users SET last_login = ? WHERE id = ?", time.Now(), userID); err != nil {
		log.Println("Update last_login error:", err)
	}
}

// =================== UTILITY ===================

// NextEmployeeID menghasilkan Employee ID berikutnya dengan format EMP<tahun><3 digit urut>.
// Nomor urut diambil dari 3 digit terakhir ID sebelumnya + 1, mulai dari 001 kalau belum ada.
// Pola baca-lalu-tambah ini bisa bentrok kalau ada registrasi bersamaan; unique key di kolom
// employee_id yang menggagalkan INSERT-nya, bukan logika di sini.
func NextEmployeeID(lastID string, year int) string {
	nextNumber := 1
	if len(lastID) >= 3 {
		if lastNumber, err := strconv.Atoi(lastID[len(lastID)-3:]); err == nil {
			nextNumber = lastNumber + 1
		}
	}
	return fmt.Sprintf("EMP%d%03d", year, nextNumber)
}

// isDuplicateKey true kalau error dari MySQL adalah pelanggaran unique key (error 1062)
func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return false
}

func respondWithToken(c *gin.Context, status int, message string, user User) {
	token, err := GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Gagal membuat token"})
		return
	}

	c.JSON(status, gin.H{
		"success": true,
		"message": message,
		"token":   token,
		"user":    userPayload(user),
	})
}

func userPayload(u User) gin.H {
	return gin.H{
		"id":         u.ID,
		"employeeId": u.EmployeeID,
		"name":       u.Name,
		"email":      u.Email,
		"role":       u.Role,
		"department": u.Department,
	}
}
