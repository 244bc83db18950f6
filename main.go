// --- main.go ---
package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
)

func main() {
	// Koneksi ke database
	db, err := InitDB()
	if err != nil {
		log.Fatalf("❌ Gagal terhubung ke database: %v", err)
		return
	}
	defer db.Close()

	// Pastikan tabel dan unique constraint sudah ada
	if err := EnsureSchema(db); err != nil {
		log.Fatalf("❌ Gagal menyiapkan schema: %v", err)
	}

	r := gin.Default()

	// Setup Routes langsung dari fungsi yang sudah dibuat
	AuthRoutes(r, db)
	AttendanceRoutes(r, db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Menjalankan server
	log.Printf("✅ Server running at http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Gagal menjalankan server: %v", err)
	}
}
