package repository

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/apperr"
	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func assertNotFound(t *testing.T, err error) {
	t.Helper()

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.CodeNotFound, appErr.Code)
}

func seedPost(t *testing.T, posts PostRepository, title string, published bool) *models.BlogPost {
	t.Helper()

	post := &models.BlogPost{Title: title, Content: "content", PublishStatus: published}
	require.NoError(t, posts.Create(context.Background(), post))
	return post
}

func TestAdminRepository(t *testing.T) {
	db := newTestDB(t)
	admins := NewAdminRepository(db)
	ctx := context.Background()

	t.Run("CreateAndGetByUsername", func(t *testing.T) {
		admin := &models.Admin{FullName: "Jane Blogger", Username: "jane", Password: "hashed"}
		require.NoError(t, admins.Create(ctx, admin))
		require.NotZero(t, admin.ID)

		found, err := admins.GetByUsername(ctx, "jane")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, admin.ID, found.ID)
	})

	t.Run("DuplicateUsernameIsConflict", func(t *testing.T) {
		err := admins.Create(ctx, &models.Admin{FullName: "Other", Username: "jane", Password: "hashed"})
		var appErr *apperr.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperr.CodeConflict, appErr.Code)
	})

	t.Run("GetByUsernameMissIsNilNil", func(t *testing.T) {
		found, err := admins.GetByUsername(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("GetByIDPreloadsPosts", func(t *testing.T) {
		admin, err := admins.GetByUsername(ctx, "jane")
		require.NoError(t, err)

		posts := NewPostRepository(db)
		post := &models.BlogPost{Title: "Owned", Content: "body", PublishStatus: true, AuthorID: &admin.ID}
		require.NoError(t, posts.Create(ctx, post))

		found, err := admins.GetByID(ctx, admin.ID)
		require.NoError(t, err)
		require.Len(t, found.BlogPosts, 1)
		assert.Equal(t, "Owned", found.BlogPosts[0].Title)
	})

	t.Run("GetByIDMissIsNotFound", func(t *testing.T) {
		_, err := admins.GetByID(ctx, 99999)
		assertNotFound(t, err)
	})
}

func TestPostRepositoryListAndCount(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostRepository(db)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		seedPost(t, posts, "published", true)
	}
	for i := 0; i < 2; i++ {
		seedPost(t, posts, "draft", false)
	}

	cases := map[string]struct {
		status StatusFilter
		want   int
	}{
		"All":       {StatusAll, 6},
		"Publish":   {StatusPublish, 4},
		"Unpublish": {StatusUnpublish, 2},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			count, err := posts.Count(ctx, tc.status)
			require.NoError(t, err)
			assert.Equal(t, int64(tc.want), count)

			listed, err := posts.List(ctx, tc.status, 50, 0)
			require.NoError(t, err)
			assert.Len(t, listed, tc.want)
		})
	}

	t.Run("LimitAndOffset", func(t *testing.T) {
		listed, err := posts.List(ctx, StatusAll, 4, 4)
		require.NoError(t, err)
		assert.Len(t, listed, 2)
	})
}

func TestPostRepositoryDelete(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostRepository(db)
	ctx := context.Background()

	post := seedPost(t, posts, "doomed", true)

	require.NoError(t, posts.Delete(ctx, post.ID))

	_, err := posts.GetByID(ctx, post.ID)
	assertNotFound(t, err)

	assertNotFound(t, posts.Delete(ctx, post.ID))
}

func TestPostRepositoryLikes(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostRepository(db)
	ctx := context.Background()

	post := seedPost(t, posts, "liked", true)

	likes, err := posts.GetLikes(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, likes.ID)
	assert.Equal(t, 0, likes.LikesCount)

	// overwrite, not increment
	updated, err := posts.SetLikes(ctx, post.ID, 9)
	require.NoError(t, err)
	assert.Equal(t, 9, updated.LikesCount)

	updated, err = posts.SetLikes(ctx, post.ID, 9)
	require.NoError(t, err)
	assert.Equal(t, 9, updated.LikesCount)

	_, err = posts.SetLikes(ctx, 99999, 1)
	assertNotFound(t, err)
}

func TestCommentRepository(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	post := seedPost(t, posts, "host", true)
	other := seedPost(t, posts, "other", true)

	t.Run("CreateAndListByPost", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			require.NoError(t, comments.Create(ctx, &models.Comment{
				Author:  models.AnonymousAuthor,
				Content: "hello",
				PostID:  post.ID,
			}))
		}
		require.NoError(t, comments.Create(ctx, &models.Comment{
			Author:  models.AnonymousAuthor,
			Content: "elsewhere",
			PostID:  other.ID,
		}))

		listed, err := comments.ListByPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Len(t, listed, 3)

		listed, err = comments.ListByPost(ctx, other.ID)
		require.NoError(t, err)
		assert.Len(t, listed, 1)
	})

	t.Run("GetByIDPreloadsPost", func(t *testing.T) {
		listed, err := comments.ListByPost(ctx, post.ID)
		require.NoError(t, err)
		require.NotEmpty(t, listed)

		found, err := comments.GetByID(ctx, listed[0].ID)
		require.NoError(t, err)
		require.NotNil(t, found.Post)
		assert.Equal(t, "host", found.Post.Title)
	})

	t.Run("DeleteSecondTimeIsNotFound", func(t *testing.T) {
		comment := &models.Comment{Author: models.AnonymousAuthor, Content: "short lived", PostID: post.ID}
		require.NoError(t, comments.Create(ctx, comment))

		require.NoError(t, comments.Delete(ctx, comment.ID))
		assertNotFound(t, comments.Delete(ctx, comment.ID))
	})

	t.Run("Likes", func(t *testing.T) {
		comment := &models.Comment{Author: models.AnonymousAuthor, Content: "likeable", PostID: post.ID}
		require.NoError(t, comments.Create(ctx, comment))

		likes, err := comments.GetLikes(ctx, comment.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, likes.LikesCount)

		updated, err := comments.SetLikes(ctx, comment.ID, 3)
		require.NoError(t, err)
		assert.Equal(t, 3, updated.LikesCount)
	})
}
