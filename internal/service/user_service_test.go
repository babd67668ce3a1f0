package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ShikhaMathur02/Visitor-System/internal/dto"
	"github.com/ShikhaMathur02/Visitor-System/internal/model"
	"github.com/ShikhaMathur02/Visitor-System/internal/repository"
)

func setupUserService() (UserService, *mockUserRepo) {
	userRepo := newMockUserRepo()
	repo := &repository.Repository{User: userRepo, Entry: newMockEntryRepo()}
	return NewUserService(repo, zap.NewNop()), userRepo
}

func TestUserService_Create(t *testing.T) {
	svc, userRepo := setupUserService()

	resp, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Name:     "Gate Guard",
		Email:    "guard@college.edu",
		Password: "secret123",
		Role:     model.RoleGuard,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if resp.ID == "" {
		t.Error("expected an assigned user ID")
	}

	stored := userRepo.users[resp.ID]
	if stored == nil {
		t.Fatal("user not persisted")
	}
	if stored.PasswordHash == "secret123" {
		t.Error("password must be stored hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
}

func TestUserService_CreateDuplicateEmail(t *testing.T) {
	svc, _ := setupUserService()
	ctx := context.Background()

	req := &dto.CreateUserRequest{
		Name:     "A",
		Email:    "dup@college.edu",
		Password: "secret123",
		Role:     model.RoleGuard,
	}
	if _, err := svc.Create(ctx, req); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	if _, err := svc.Create(ctx, req); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserService_CreateFacultyNeedsDepartment(t *testing.T) {
	svc, _ := setupUserService()

	_, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Name:     "Dr. Rao",
		Email:    "rao@college.edu",
		Password: "secret123",
		Role:     model.RoleFaculty,
	})
	if !errors.Is(err, ErrDepartmentRequired) {
		t.Errorf("expected ErrDepartmentRequired, got %v", err)
	}
}

func TestUserService_Update(t *testing.T) {
	svc, _ := setupUserService()
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateUserRequest{
		Name:     "Old Name",
		Email:    "u@college.edu",
		Password: "secret123",
		Role:     model.RoleGuard,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	newName := "New Name"
	updated, err := svc.Update(ctx, created.ID, &dto.UpdateUserRequest{Name: &newName})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Name != newName {
		t.Errorf("expected name %q, got %q", newName, updated.Name)
	}
	if updated.Email != "u@college.edu" {
		t.Error("untouched fields must survive the update")
	}
}

func TestUserService_UpdateToFacultyNeedsDepartment(t *testing.T) {
	svc, _ := setupUserService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, &dto.CreateUserRequest{
		Name:     "G",
		Email:    "g@college.edu",
		Password: "secret123",
		Role:     model.RoleGuard,
	})

	role := model.RoleFaculty
	if _, err := svc.Update(ctx, created.ID, &dto.UpdateUserRequest{Role: &role}); !errors.Is(err, ErrDepartmentRequired) {
		t.Errorf("expected ErrDepartmentRequired, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	svc, _ := setupUserService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, &dto.CreateUserRequest{
		Name:     "D",
		Email:    "d@college.edu",
		Password: "secret123",
		Role:     model.RoleGuard,
	})

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_FacultyDirectory(t *testing.T) {
	svc, userRepo := setupUserService()
	ctx := context.Background()

	userRepo.users["f1"] = &model.User{UserID: "f1", Name: "A", Email: "a@c.edu", Role: model.RoleFaculty, Department: "CSE"}
	userRepo.users["f2"] = &model.User{UserID: "f2", Name: "B", Email: "b@c.edu", Role: model.RoleFaculty, Department: "ECE"}
	userRepo.users["g1"] = &model.User{UserID: "g1", Name: "C", Email: "c@c.edu", Role: model.RoleGuard}

	all, err := svc.ListFaculty(ctx)
	if err != nil {
		t.Fatalf("ListFaculty failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 faculty members, got %d", len(all))
	}

	cse, err := svc.ListFacultyByDepartment(ctx, "CSE")
	if err != nil {
		t.Fatalf("ListFacultyByDepartment failed: %v", err)
	}
	if len(cse) != 1 || cse[0].ID != "f1" {
		t.Errorf("expected [f1], got %v", cse)
	}
}
