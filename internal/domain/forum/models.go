package forum

import (
	"errors"
	"time"

	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/validators"
)

// Reaction values
const (
	Dislike    = -1
	NoReaction = 0
	Like       = 1
)

var (
	ErrTopicNotFound   = errors.New("topic not found")
	ErrTopicExists     = errors.New("topic already exists")
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrParentNotFound  = errors.New("parent comment not found")
	ErrNotOwner        = errors.New("comment owner does not match")
	ErrInvalidReaction = errors.New("reaction must be -1, 0 or 1")
)

// Topic groups posts under a unique name
type Topic struct {
	ID    uint
	Topic string `validate:"required,notblank,max=128"`
}

// Validate for validating Topic struct
func (t *Topic) Validate() error {
	return validators.ValidateStruct(t)
}

// Post entity
type Post struct {
	ID       uint
	TopicID  uint   `validate:"required"`
	UserID   uint   `validate:"required"`
	Title    string `validate:"required,notblank,max=256"`
	Content  string `validate:"required,max=65535"`
	PostedAt time.Time
}

// Validate for validating Post struct
func (p *Post) Validate() error {
	return validators.ValidateStruct(p)
}

// Comment entity. ParentID is nil for top-level comments.
type Comment struct {
	ID          uint
	PostID      uint   `validate:"required"`
	UserID      uint   `validate:"required"`
	ParentID    *uint  `validate:"omitempty,gt=0"`
	Text        string `validate:"required,notblank,max=4096"`
	CommentedAt time.Time
}

// Validate for validating Comment struct
func (c *Comment) Validate() error {
	return validators.ValidateStruct(c)
}

// IsTopLevel reports whether the comment has no parent.
func (c *Comment) IsTopLevel() bool {
	return c.ParentID == nil
}

// Reaction is a user's vote on a comment; at most one per user and comment
type Reaction struct {
	ID        uint
	CommentID uint `validate:"required"`
	UserID    uint `validate:"required"`
	Value     int  `validate:"oneof=-1 0 1"`
}

// Validate for validating Reaction struct
func (r *Reaction) Validate() error {
	return validators.ValidateStruct(r)
}
