package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ShikhaMathur02/Visitor-System/internal/model"
)

// UserRepository is the staff-account data access interface.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) (int64, error)
	List(ctx context.Context, offset, limit int) ([]model.User, int64, error)
	ListByRole(ctx context.Context, role string) ([]model.User, error)
	ListByRoleAndDepartment(ctx context.Context, role, department string) ([]model.User, error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepo builds the GORM-backed UserRepository.
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepo) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ?", id).
		Delete(&model.User{})
	return res.RowsAffected, res.Error
}

func (r *userRepo) List(ctx context.Context, offset, limit int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	db := r.db.WithContext(ctx).Model(&model.User{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepo) ListByRole(ctx context.Context, role string) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("name ASC").
		Find(&users).Error
	return users, err
}

func (r *userRepo) ListByRoleAndDepartment(ctx context.Context, role, department string) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("role = ? AND department = ?", role, department).
		Order("name ASC").
		Find(&users).Error
	return users, err
}
