package repository

import (
	"context"
	"errors"

	"inkwell/internal/apperr"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// StatusFilter selects posts by publish status in list queries.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusPublish   StatusFilter = "publish"
	StatusUnpublish StatusFilter = "unpublish"
)

// Valid reports whether the filter is one of the accepted values.
func (f StatusFilter) Valid() bool {
	return f == StatusAll || f == StatusPublish || f == StatusUnpublish
}

// PostRepository defines the interface for blog post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.BlogPost) error
	GetByID(ctx context.Context, id uint) (*models.BlogPost, error)
	List(ctx context.Context, status StatusFilter, limit, offset int) ([]*models.BlogPost, error)
	Count(ctx context.Context, status StatusFilter) (int64, error)
	Update(ctx context.Context, post *models.BlogPost) error
	Delete(ctx context.Context, id uint) error
	GetLikes(ctx context.Context, id uint) (*models.LikesProjection, error)
	SetLikes(ctx context.Context, id uint, likes int) (*models.BlogPost, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create persists the post together with its author back-reference. The
// insert is wrapped in a transaction so the pair cannot half-apply.
func (r *postRepository) Create(ctx context.Context, post *models.BlogPost) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(post).Error
	})
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.WithContext(ctx).
		Preload("Comments").
		Preload("Author").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Post", id)
		}
		return nil, apperr.Internal(err)
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	return &post, nil
}

func (r *postRepository) scopeStatus(db *gorm.DB, status StatusFilter) *gorm.DB {
	switch status {
	case StatusPublish:
		return db.Where("publish_status = ?", true)
	case StatusUnpublish:
		return db.Where("publish_status = ?", false)
	default:
		return db
	}
}

func (r *postRepository) List(ctx context.Context, status StatusFilter, limit, offset int) ([]*models.BlogPost, error) {
	var posts []*models.BlogPost
	err := r.scopeStatus(r.db.WithContext(ctx), status).
		Preload("Comments").
		Preload("Author").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if posts == nil {
		posts = []*models.BlogPost{}
	}
	for _, post := range posts {
		if post.Comments == nil {
			post.Comments = []models.Comment{}
		}
	}
	return posts, nil
}

func (r *postRepository) Count(ctx context.Context, status StatusFilter) (int64, error) {
	var count int64
	err := r.scopeStatus(r.db.WithContext(ctx).Model(&models.BlogPost{}), status).
		Count(&count).Error
	if err != nil {
		return 0, apperr.Internal(err)
	}
	return count, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.BlogPost) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Delete removes the post. The owner's blogPosts association loses the
// reference in the same statement, so removal is idempotent with respect to
// the back-reference bookkeeping. Comments are intentionally not cascaded.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.BlogPost{}, id)
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
			return apperr.NotFound("Post", id)
		}
		return apperr.Internal(err)
	}
	return nil
}

func (r *postRepository) GetLikes(ctx context.Context, id uint) (*models.LikesProjection, error) {
	var likes models.LikesProjection
	err := r.db.WithContext(ctx).
		Model(&models.BlogPost{}).
		Select("id", "likes_count").
		Where("id = ?", id).
		First(&likes).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Post", id)
		}
		return nil, apperr.Internal(err)
	}
	return &likes, nil
}

// SetLikes overwrites the counter. Last writer wins; this is not an increment.
func (r *postRepository) SetLikes(ctx context.Context, id uint, likes int) (*models.BlogPost, error) {
	res := r.db.WithContext(ctx).
		Model(&models.BlogPost{}).
		Where("id = ?", id).
		Update("likes_count", likes)
	if res.Error != nil {
		return nil, apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("Post", id)
	}
	return r.GetByID(ctx, id)
}
