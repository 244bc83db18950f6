package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

// Inisialisasi secret key dari .env
var jwtSecret []byte

// Masa berlaku token 30 hari, setelah itu harus login ulang (tidak ada refresh token)
const tokenValidity = 30 * 24 * time.Hour

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️ File .env tidak ditemukan, lanjut pakai environment bawaan")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if gin.Mode() == gin.ReleaseMode {
			log.Fatal("❌ JWT_SECRET tidak ditemukan di environment")
		}
		log.Println("⚠️ JWT_SECRET tidak ditemukan, pakai secret default (hanya untuk development)")
		secret = "jjc-secret-key"
	}
	jwtSecret = []byte(secret)
}

// Claims sesuai payload token
type Claims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"` // employee, admin
	jwt.RegisteredClaims
}

// Fungsi untuk generate JWT token
func GenerateToken(userID int, email string, role string) (string, error) {
	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenValidity)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseToken memeriksa signature dan expiry, lalu mengembalikan claims-nya
func ParseToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// BearerToken mengambil token dari header Authorization, "" kalau tidak ada
func BearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

// Middleware untuk validasi token dan set data user ke context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := BearerToken(c)
		if tokenStr == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Access denied. Token required."})
			c.Abort()
			return
		}

		claims, err := ParseToken(tokenStr)
		if err != nil {
			log.Printf("Token error: %v\n", err)
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token"})
			c.Abort()
			return
		}

		// Simpan ke context
		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// Middleware untuk cek role (admin, employee)
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied. Authentication required."})
			c.Abort()
			return
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied. Insufficient permissions."})
		c.Abort()
	}
}

// Helper untuk mengambil data dari context
func GetUserID(c *gin.Context) int {
	return c.GetInt("user_id")
}

func GetEmail(c *gin.Context) string {
	return c.GetString("email")
}

func GetRole(c *gin.Context) string {
	return c.GetString("role")
}
