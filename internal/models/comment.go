package models

import (
	"time"

	"gorm.io/gorm"
)

// AnonymousAuthor is stored when a commenter leaves the author field empty.
const AnonymousAuthor = "Anonymous"

// Comment represents a public comment left on a blog post.
type Comment struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Author     string         `gorm:"not null;default:Anonymous" json:"author"`
	Content    string         `gorm:"not null" json:"content"`
	PostID     uint           `gorm:"not null;index" json:"belongToPost"`
	Post       *BlogPost      `gorm:"foreignKey:PostID" json:"post,omitempty"`
	LikesCount int            `gorm:"not null;default:0" json:"likesCount"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
