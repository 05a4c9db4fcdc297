package models

import (
	"time"

	"gorm.io/gorm"
)

// BlogPost represents a blog post. The author back-reference is optional so a
// post survives its author, and comments are not cascaded on delete.
type BlogPost struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Title         string         `gorm:"not null" json:"title"`
	Content       string         `gorm:"not null" json:"content"`
	PublishStatus bool           `gorm:"not null" json:"publishStatus"`
	LikesCount    int            `gorm:"not null;default:0" json:"likesCount"`
	AuthorID      *uint          `gorm:"index" json:"-"`
	Author        *Admin         `gorm:"foreignKey:AuthorID" json:"belongToAuthor,omitempty"`
	Comments      []Comment      `gorm:"foreignKey:PostID" json:"comments"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// LikesProjection is the likesCount-only view of a post or comment.
type LikesProjection struct {
	ID         uint `json:"id"`
	LikesCount int  `json:"likesCount"`
}
