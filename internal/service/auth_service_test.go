package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ShikhaMathur02/Visitor-System/config"
	"github.com/ShikhaMathur02/Visitor-System/internal/dto"
	"github.com/ShikhaMathur02/Visitor-System/internal/model"
	"github.com/ShikhaMathur02/Visitor-System/internal/repository"
	"github.com/ShikhaMathur02/Visitor-System/pkg/jwt"
)

func setupAuthService(t *testing.T) (AuthService, *mockUserRepo, *jwt.Manager) {
	t.Helper()
	userRepo := newMockUserRepo()
	repo := &repository.Repository{User: userRepo, Entry: newMockEntryRepo()}
	jwtMgr := jwt.NewManager(&config.AuthConfig{
		JWTSecret: "test-secret-at-least-16-chars",
		TokenTTL:  time.Hour,
	})
	svc := NewAuthService(repo, jwtMgr, nil, zap.NewNop())
	return svc, userRepo, jwtMgr
}

func seedUser(t *testing.T, userRepo *mockUserRepo, email, password, role string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &model.User{
		UserID:       "user-" + email,
		Name:         "Test User",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	userRepo.users[user.UserID] = user
	return user
}

func TestAuthService_Login(t *testing.T) {
	svc, userRepo, jwtMgr := setupAuthService(t)
	user := seedUser(t, userRepo, "director@college.edu", "secret123", model.RoleDirector)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "director@college.edu",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
	if resp.User.ID != user.UserID || resp.User.Role != model.RoleDirector {
		t.Errorf("unexpected user in response: %+v", resp.User)
	}

	claims, err := jwtMgr.ParseToken(resp.Token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.UserID != user.UserID || claims.Role != model.RoleDirector {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	svc, userRepo, _ := setupAuthService(t)
	seedUser(t, userRepo, "guard@college.edu", "secret123", model.RoleGuard)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "guard@college.edu",
		Password: "wrong",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_LoginUnknownEmail(t *testing.T) {
	svc, _, _ := setupAuthService(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@college.edu",
		Password: "secret123",
	})
	// the same error as a bad password, so callers cannot probe for
	// registered addresses
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_LogoutWithoutRedis(t *testing.T) {
	svc, _, _ := setupAuthService(t)

	if err := svc.Logout(context.Background(), "some-jti", time.Now().Add(time.Hour)); err != nil {
		t.Errorf("logout without redis should degrade silently, got %v", err)
	}
}

func TestAuthService_Me(t *testing.T) {
	svc, userRepo, _ := setupAuthService(t)
	user := seedUser(t, userRepo, "faculty@college.edu", "secret123", model.RoleFaculty)

	resp, err := svc.Me(context.Background(), user.UserID)
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if resp.Email != user.Email {
		t.Errorf("expected email %s, got %s", user.Email, resp.Email)
	}

	if _, err := svc.Me(context.Background(), "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
