package jwt

import (
	"testing"
	"time"

	"github.com/ShikhaMathur02/Visitor-System/config"
)

func testManager(ttl time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret: "test-secret-key-0123456789",
		TokenTTL:  ttl,
	})
}

func TestManager_GenerateAndParse(t *testing.T) {
	mgr := testManager(time.Hour)

	token, err := mgr.GenerateToken("user-001", "faculty")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := mgr.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.UserID != "user-001" {
		t.Errorf("expected UserID=user-001, got %s", claims.UserID)
	}
	if claims.Role != "faculty" {
		t.Errorf("expected Role=faculty, got %s", claims.Role)
	}
	if claims.ID == "" {
		t.Error("expected a jti to be set")
	}
}

func TestManager_ParseExpired(t *testing.T) {
	mgr := testManager(-time.Minute)

	token, err := mgr.GenerateToken("user-001", "guard")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := mgr.ParseToken(token); err != ErrTokenExpired {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestManager_ParseTampered(t *testing.T) {
	mgr := testManager(time.Hour)

	token, err := mgr.GenerateToken("user-001", "guard")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	other := NewManager(&config.AuthConfig{
		JWTSecret: "another-secret-key-456789",
		TokenTTL:  time.Hour,
	})
	if _, err := other.ParseToken(token); err != ErrTokenInvalid {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}
