package repository

import (
	"context"
	"errors"

	"inkwell/internal/apperr"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error)
	Delete(ctx context.Context, id uint) error
	GetLikes(ctx context.Context, id uint) (*models.LikesProjection, error)
	SetLikes(ctx context.Context, id uint, likes int) (*models.Comment, error)
}

// commentRepository implements CommentRepository
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create persists the comment with its post back-reference in one
// transaction, so the post's comments list and the comment itself cannot
// half-apply.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(comment).Error
	})
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Preload("Post").
		First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Comment", id)
		}
		return nil, apperr.Internal(err)
	}
	return &comment, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if comments == nil {
		// an unknown post serializes as an empty list, not null
		comments = []*models.Comment{}
	}
	return comments, nil
}

// Delete removes the comment and, with it, the owning post's reference.
// Deleting an already-deleted comment fails only on the not-found lookup.
func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Comment{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Comment", id)
		}
		return apperr.Internal(err)
	}
	return nil
}

func (r *commentRepository) GetLikes(ctx context.Context, id uint) (*models.LikesProjection, error) {
	var likes models.LikesProjection
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select("id", "likes_count").
		Where("id = ?", id).
		First(&likes).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Comment", id)
		}
		return nil, apperr.Internal(err)
	}
	return &likes, nil
}

// SetLikes overwrites the counter. Last writer wins; this is not an increment.
func (r *commentRepository) SetLikes(ctx context.Context, id uint, likes int) (*models.Comment, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", id).
		Update("likes_count", likes)
	if res.Error != nil {
		return nil, apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("Comment", id)
	}
	return r.GetByID(ctx, id)
}
