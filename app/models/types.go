package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// User represents a registered account that authors posts and follows others.
type User struct {
	ID           int       `json:"id" validate:"gte=0"`
	Username     string    `json:"username" validate:"required,min=2,max=50"`
	PasswordHash string    `json:"password_hash" validate:"required"`
	DisplayName  string    `json:"display_name" validate:"max=100"`
	JoinedAt     time.Time `json:"joined_at"`
}

// Post represents a text entry, optionally attached to a group and an image.
// A GroupID of zero means the post belongs to no group.
type Post struct {
	ID        int       `json:"id" validate:"gte=0"`
	AuthorID  int       `json:"author_id" validate:"required,gt=0"`
	Text      string    `json:"text" validate:"required,min=1"`
	GroupID   int       `json:"group_id,omitempty" validate:"gte=0"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Group represents a named community posts can be published into.
type Group struct {
	ID          int    `json:"id" validate:"gte=0"`
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Slug        string `json:"slug" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

// Comment represents a comment on a post. Comments are immutable once created.
type Comment struct {
	ID        int       `json:"id" validate:"gte=0"`
	PostID    int       `json:"post_id" validate:"required,gt=0"`
	AuthorID  int       `json:"author_id" validate:"required,gt=0"`
	Text      string    `json:"text" validate:"required,min=1,max=1000"`
	CreatedAt time.Time `json:"created_at"`
}

// Follow represents a directed relation from a follower to a followed author.
// The (FollowerID, AuthorID) pair is unique.
type Follow struct {
	FollowerID int       `json:"follower_id" validate:"required,gt=0"`
	AuthorID   int       `json:"author_id" validate:"required,gt=0"`
	CreatedAt  time.Time `json:"created_at"`
}
