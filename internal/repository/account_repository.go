package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fims/internal/account"
	apperrors "fims/internal/errors"
	"fims/internal/model"
)

// AccountRepository defines account persistence operations.
type AccountRepository interface {
	Upsert(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (account.Account, error)
	List(ctx context.Context) ([]model.User, error)
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository builds a GORM-backed repository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Upsert inserts the user or overwrites the password hash and role of the row
// holding the same username.
func (r *accountRepository) Upsert(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"password_hash", "role", "updated_at"}),
	}).Create(user).Error
	return apperrors.Storage("upsert user", err)
}

// FindByUsername returns the account variant for username, or nil when absent.
func (r *accountRepository) FindByUsername(ctx context.Context, username string) (account.Account, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Storage("find user", err)
	}
	return account.Decode(&user), nil
}

// List returns every account ordered by username.
func (r *accountRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("username").Find(&users).Error; err != nil {
		return nil, apperrors.Storage("list users", err)
	}
	return users, nil
}
