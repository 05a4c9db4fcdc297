// Package seed populates the database with fake admins, posts and comments
// for local development.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"

	"inkwell/internal/auth"
	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options controls how much data the seeder generates.
type Options struct {
	Admins          int
	PostsPerAdmin   int
	CommentsPerPost int
	Clean           bool
}

// DefaultOptions matches a small but browsable development dataset.
func DefaultOptions() Options {
	return Options{
		Admins:          5,
		PostsPerAdmin:   8,
		CommentsPerPost: 4,
		Clean:           true,
	}
}

// Run seeds the database. All seeded admins share the password "password123"
// so the login flow can be exercised by hand.
func Run(db *gorm.DB, opts Options) error {
	if opts.Clean {
		if err := clean(db); err != nil {
			return err
		}
	}

	hashed, err := auth.HashPassword("password123")
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	for i := 0; i < opts.Admins; i++ {
		admin := models.Admin{
			FullName: gofakeit.Name(),
			Username: fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Username()), i),
			Password: hashed,
		}
		if err := db.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to create admin: %w", err)
		}

		for j := 0; j < opts.PostsPerAdmin; j++ {
			post := models.BlogPost{
				Title:         gofakeit.Sentence(6),
				Content:       gofakeit.Paragraph(2, 4, 12, " "),
				PublishStatus: gofakeit.Bool(),
				LikesCount:    rand.Intn(200),
				AuthorID:      &admin.ID,
			}
			if err := db.Create(&post).Error; err != nil {
				return fmt.Errorf("failed to create post: %w", err)
			}

			for k := 0; k < opts.CommentsPerPost; k++ {
				author := gofakeit.FirstName()
				// Sprinkle in anonymous commenters
				if rand.Intn(4) == 0 {
					author = models.AnonymousAuthor
				}
				comment := models.Comment{
					Author:     author,
					Content:    gofakeit.Sentence(10),
					PostID:     post.ID,
					LikesCount: rand.Intn(30),
				}
				if err := db.Create(&comment).Error; err != nil {
					return fmt.Errorf("failed to create comment: %w", err)
				}
			}
		}
	}

	log.Printf("Seeded %d admins, %d posts, %d comments",
		opts.Admins,
		opts.Admins*opts.PostsPerAdmin,
		opts.Admins*opts.PostsPerAdmin*opts.CommentsPerPost,
	)
	return nil
}

func clean(db *gorm.DB) error {
	// Hard-delete in dependency order
	for _, model := range []any{&models.Comment{}, &models.BlogPost{}, &models.Admin{}} {
		if err := db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("failed to clean table: %w", err)
		}
	}
	return nil
}
