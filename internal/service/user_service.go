package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ShikhaMathur02/Visitor-System/internal/dto"
	"github.com/ShikhaMathur02/Visitor-System/internal/model"
	"github.com/ShikhaMathur02/Visitor-System/internal/repository"
)

// ── user module errors ──

var (
	ErrEmailTaken         = errors.New("a user with this email already exists")
	ErrDepartmentRequired = errors.New("department is required for faculty members")
)

// UserService covers admin account management and the faculty
// directory used by the visitor registration form.
type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	List(ctx context.Context, page *dto.PaginationRequest) ([]dto.UserResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, id string) error

	ListFaculty(ctx context.Context) ([]dto.UserResponse, error)
	ListFacultyByDepartment(ctx context.Context, department string) ([]dto.UserResponse, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService builds the UserService.
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if req.Role == model.RoleFaculty && req.Department == "" {
		return nil, ErrDepartmentRequired
	}

	existing, err := s.repo.User.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("check existing email", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Department:   req.Department,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("create user", zap.Error(err))
		return nil, err
	}

	return toUserResponse(user), nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("look up user", zap.String("user_id", id), zap.Error(err))
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) List(ctx context.Context, page *dto.PaginationRequest) ([]dto.UserResponse, int64, error) {
	users, total, err := s.repo.User.List(ctx, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("list users", zap.Error(err))
		return nil, 0, err
	}
	return toUserResponses(users), total, nil
}

func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("look up user", zap.String("user_id", id), zap.Error(err))
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		existing, err := s.repo.User.GetByEmail(ctx, *req.Email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, ErrEmailTaken
		}
		user.Email = *req.Email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Department != nil {
		user.Department = *req.Department
	}
	if user.Role == model.RoleFaculty && user.Department == "" {
		return nil, ErrDepartmentRequired
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("update user", zap.String("user_id", id), zap.Error(err))
		return nil, err
	}

	return toUserResponse(user), nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	rows, err := s.repo.User.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete user", zap.String("user_id", id), zap.Error(err))
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *userService) ListFaculty(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.User.ListByRole(ctx, model.RoleFaculty)
	if err != nil {
		s.logger.Error("list faculty", zap.Error(err))
		return nil, err
	}
	return toUserResponses(users), nil
}

func (s *userService) ListFacultyByDepartment(ctx context.Context, department string) ([]dto.UserResponse, error) {
	users, err := s.repo.User.ListByRoleAndDepartment(ctx, model.RoleFaculty, department)
	if err != nil {
		s.logger.Error("list faculty by department", zap.String("department", department), zap.Error(err))
		return nil, err
	}
	return toUserResponses(users), nil
}

// ── mapping ──

func toUserResponse(user *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:         user.UserID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       user.Role,
		Department: user.Department,
		CreatedAt:  user.CreatedAt.Format(time.RFC3339),
	}
}

func toUserResponses(users []model.User) []dto.UserResponse {
	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *toUserResponse(&users[i]))
	}
	return result
}
