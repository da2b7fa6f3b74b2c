package forum

import "context"

// TopicRepository defines the persistence operations on topics
type TopicRepository interface {
	Create(ctx context.Context, topic *Topic) error
	// List returns every topic ordered by name
	List(ctx context.Context) ([]*Topic, error)
	GetByID(ctx context.Context, topicID uint) (*Topic, error)
	Truncate(ctx context.Context) error
}

// PostRepository defines the persistence operations on posts
type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, postID uint) (*Post, error)
	// ListByTopic returns the posts of a topic, newest first
	ListByTopic(ctx context.Context, topicID uint) ([]*Post, error)
	Truncate(ctx context.Context) error
}

// CommentRepository defines the persistence operations on comments
type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	GetByID(ctx context.Context, commentID uint) (*Comment, error)
	// ListByPost returns the comments of a post in chronological order
	ListByPost(ctx context.Context, postID uint) ([]*Comment, error)
	// DeleteThread removes a comment, its replies and every reaction on them
	DeleteThread(ctx context.Context, comment *Comment) error
	Truncate(ctx context.Context) error
}

// ReactionRepository defines the persistence operations on reactions
type ReactionRepository interface {
	// Upsert stores the reaction of a user on a comment, replacing the previous one
	Upsert(ctx context.Context, reaction *Reaction) error
	ListByComments(ctx context.Context, commentIDs []uint) ([]*Reaction, error)
	Truncate(ctx context.Context) error
}

// ContentRenderer turns user-written post content into safe HTML
type ContentRenderer interface {
	Render(source string) (string, error)
}

// ForumService defines the forum operations exposed to the API layer
type ForumService interface {
	ListTopics(ctx context.Context) ([]*Topic, error)
	CreateTopic(ctx context.Context, name string) (*Topic, error)
	// GetTopic returns a topic and its posts, newest first
	GetTopic(ctx context.Context, topicID uint) (*Topic, []PostSummary, error)
	GetPost(ctx context.Context, postID uint) (*PostView, error)
	CreatePost(ctx context.Context, topicID, userID uint, title, content string) (*Post, error)
	// Comments returns the thread of a post as seen by viewerID
	Comments(ctx context.Context, postID, viewerID uint) ([]CommentView, error)
	SaveReaction(ctx context.Context, commentID, userID uint, value int) error
	// PostComment adds a comment; a nil parentID makes it top-level
	PostComment(ctx context.Context, postID, userID uint, parentID *uint, text string) (*CommentView, error)
	// DeleteComment removes a comment owned by userID together with its replies
	DeleteComment(ctx context.Context, commentID, userID uint) error
}

// DemoSeeder resets the forum to a small demonstration thread
type DemoSeeder interface {
	SeedDemo(ctx context.Context) error
}
