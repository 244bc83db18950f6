package main

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParseToken(t *testing.T) {
	tokenStr, err := GenerateToken(7, "budi@jjc.co.id", "employee")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := ParseToken(tokenStr)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}

	if claims.UserID != 7 {
		t.Errorf("claims.UserID = %v, want 7", claims.UserID)
	}
	if claims.Email != "budi@jjc.co.id" {
		t.Errorf("claims.Email = %v, want budi@jjc.co.id", claims.Email)
	}
	if claims.Role != "employee" {
		t.Errorf("claims.Role = %v, want employee", claims.Role)
	}

	// Masa berlaku harus sekitar 30 hari dari sekarang
	if claims.ExpiresAt == nil {
		t.Fatal("claims.ExpiresAt is nil")
	}
	until := time.Until(claims.ExpiresAt.Time)
	if until < 29*24*time.Hour || until > 31*24*time.Hour {
		t.Errorf("token validity = %v, want around 30 days", until)
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	claims := Claims{
		UserID: 7,
		Email:  "budi@jjc.co.id",
		Role:   "employee",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-31 * 24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString(jwtSecret)
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	if _, err := ParseToken(tokenStr); err == nil {
		t.Error("ParseToken() accepted an expired token")
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	claims := Claims{
		UserID: 7,
		Email:  "budi@jjc.co.id",
		Role:   "employee",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenValidity)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString([]byte("secret-yang-salah"))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	if _, err := ParseToken(tokenStr); err == nil {
		t.Error("ParseToken() accepted a token signed with the wrong secret")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	if _, err := ParseToken("bukan.token.jwt"); err == nil {
		t.Error("ParseToken() accepted a malformed token")
	}
}
