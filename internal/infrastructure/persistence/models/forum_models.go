package models

import (
	"time"

	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/forum"
)

// ForumTopicModel is the GORM database model for forum topics
type ForumTopicModel struct {
	ID    uint   `gorm:"primaryKey"`
	Topic string `gorm:"not null;uniqueIndex;type:varchar(128)"`
}

// TableName specifies the table name for GORM
func (ForumTopicModel) TableName() string {
	return "forum_topic"
}

// ToDomain converts GORM model to domain entity
func (m *ForumTopicModel) ToDomain() *forum.Topic {
	return &forum.Topic{ID: m.ID, Topic: m.Topic}
}

// FromDomain converts domain entity to GORM model
func (m *ForumTopicModel) FromDomain(t *forum.Topic) {
	m.ID = t.ID
	m.Topic = t.Topic
}

// ForumPostModel is the GORM database model for forum posts
type ForumPostModel struct {
	ID          uint      `gorm:"primaryKey"`
	TopicID     uint      `gorm:"not null;index"`
	UserID      uint      `gorm:"not null;index"`
	PostTitle   string    `gorm:"not null;type:varchar(256)"`
	PostContent string    `gorm:"not null;type:text"`
	PostDate    time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ForumPostModel) TableName() string {
	return "forum_post"
}

// ToDomain converts GORM model to domain entity
func (m *ForumPostModel) ToDomain() *forum.Post {
	return &forum.Post{
		ID:       m.ID,
		TopicID:  m.TopicID,
		UserID:   m.UserID,
		Title:    m.PostTitle,
		Content:  m.PostContent,
		PostedAt: m.PostDate,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ForumPostModel) FromDomain(p *forum.Post) {
	m.ID = p.ID
	m.TopicID = p.TopicID
	m.UserID = p.UserID
	m.PostTitle = p.Title
	m.PostContent = p.Content
	m.PostDate = p.PostedAt.UTC()
}

// ForumCommentModel is the GORM database model for comments and replies
type ForumCommentModel struct {
	ID          uint      `gorm:"primaryKey"`
	PostID      uint      `gorm:"not null;index"`
	UserID      uint      `gorm:"not null;index"`
	ParentID    *uint     `gorm:"index"`
	Comment     string    `gorm:"not null;type:text"`
	CommentDate time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ForumCommentModel) TableName() string {
	return "forum_comment"
}

// ToDomain converts GORM model to domain entity
func (m *ForumCommentModel) ToDomain() *forum.Comment {
	return &forum.Comment{
		ID:          m.ID,
		PostID:      m.PostID,
		UserID:      m.UserID,
		ParentID:    m.ParentID,
		Text:        m.Comment,
		CommentedAt: m.CommentDate,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ForumCommentModel) FromDomain(c *forum.Comment) {
	m.ID = c.ID
	m.PostID = c.PostID
	m.UserID = c.UserID
	m.ParentID = c.ParentID
	m.Comment = c.Text
	m.CommentDate = c.CommentedAt.UTC()
}

// ReactionModel is the GORM database model for comment reactions
type ReactionModel struct {
	ID        uint `gorm:"primaryKey"`
	CommentID uint `gorm:"not null;uniqueIndex:idx_reaction_comment_user"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_reaction_comment_user"`
	Reaction  int  `gorm:"not null;default:0"`
}

// TableName specifies the table name for GORM
func (ReactionModel) TableName() string {
	return "reaction_comment"
}

// ToDomain converts GORM model to domain entity
func (m *ReactionModel) ToDomain() *forum.Reaction {
	return &forum.Reaction{
		ID:        m.ID,
		CommentID: m.CommentID,
		UserID:    m.UserID,
		Value:     m.Reaction,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ReactionModel) FromDomain(r *forum.Reaction) {
	m.ID = r.ID
	m.CommentID = r.CommentID
	m.UserID = r.UserID
	m.Reaction = r.Value
}
