package repository

import (
	"context"
	"errors"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	apperrors "todo-list/internal/errors"
	"todo-list/internal/model"
)

// UserRepository handles CRUD for users.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user. It reports false, without an error, when the
// username is already taken.
func (r *UserRepository) Create(ctx context.Context, username, password string) (bool, error) {
	user := model.User{Username: username, Password: password}
	err := r.db.WithContext(ctx).Create(&user).Error
	switch {
	case err == nil:
		return true, nil
	case isUniqueViolation(err):
		return false, nil
	default:
		return false, apperrors.Storage("create user", err)
	}
}

// FindByUsername returns nil when no such user exists.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	switch {
	case err == nil:
		return &user, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, apperrors.Storage("find user", err)
	}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
