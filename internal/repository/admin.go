// Package repository provides data access interfaces and their GORM implementations.
package repository

import (
	"context"
	"errors"

	"inkwell/internal/apperr"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// AdminRepository defines the interface for admin data operations
type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByID(ctx context.Context, id uint) (*models.Admin, error)
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
}

// adminRepository implements AdminRepository
type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(ctx context.Context, admin *models.Admin) error {
	if err := r.db.WithContext(ctx).Create(admin).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("Username already exist")
		}
		return apperr.Internal(err)
	}
	return nil
}

func (r *adminRepository) GetByID(ctx context.Context, id uint) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.WithContext(ctx).
		Preload("BlogPosts").
		First(&admin, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Admin", id)
		}
		return nil, apperr.Internal(err)
	}
	if admin.BlogPosts == nil {
		// associations serialize as empty lists, not null
		admin.BlogPosts = []models.BlogPost{}
	}
	return &admin, nil
}

// GetByUsername returns (nil, nil) when no admin matches, so callers can
// distinguish a miss from a store failure.
func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperr.Internal(err)
	}
	return &admin, nil
}
