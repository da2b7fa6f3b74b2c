package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/forum"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/users"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/logger"
)

// forumService implements the ForumService interface
type forumService struct {
	topics    forum.TopicRepository
	posts     forum.PostRepository
	comments  forum.CommentRepository
	reactions forum.ReactionRepository
	users     users.UserRepository
	renderer  forum.ContentRenderer
	now       func() time.Time
	logger    logger.Logger
}

// NewForumService creates a new instance of ForumService
func NewForumService(
	topics forum.TopicRepository,
	posts forum.PostRepository,
	comments forum.CommentRepository,
	reactions forum.ReactionRepository,
	userRepo users.UserRepository,
	renderer forum.ContentRenderer,
	logger logger.Logger,
) (forum.ForumService, error) {
	return &forumService{
		topics:    topics,
		posts:     posts,
		comments:  comments,
		reactions: reactions,
		users:     userRepo,
		renderer:  renderer,
		now:       time.Now,
		logger:    logger,
	}, nil
}

func (s *forumService) ListTopics(ctx context.Context) ([]*forum.Topic, error) {
	return s.topics.List(ctx)
}

func (s *forumService) CreateTopic(ctx context.Context, name string) (*forum.Topic, error) {
	topic := &forum.Topic{Topic: strings.TrimSpace(name)}
	if err := s.topics.Create(ctx, topic); err != nil {
		return nil, err
	}
	return topic, nil
}

func (s *forumService) GetTopic(ctx context.Context, topicID uint) (*forum.Topic, []forum.PostSummary, error) {
	topic, err := s.topics.GetByID(ctx, topicID)
	if err != nil {
		return nil, nil, err
	}
	posts, err := s.posts.ListByTopic(ctx, topicID)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.UserID)
	}
	authors, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	summaries := make([]forum.PostSummary, len(posts))
	for i, p := range posts {
		summaries[i] = forum.PostSummary{Post: p, AuthorName: users.AuthorOf(authors[p.UserID]).Name}
	}
	return topic, summaries, nil
}

func (s *forumService) GetPost(ctx context.Context, postID uint) (*forum.PostView, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	topic, err := s.topics.GetByID(ctx, post.TopicID)
	if err != nil {
		return nil, err
	}

	author, err := s.users.GetByID(ctx, post.UserID)
	if err != nil && !errors.Is(err, users.ErrUserNotFound) {
		return nil, err
	}

	html, err := s.renderer.Render(post.Content)
	if err != nil {
		return nil, err
	}
	return &forum.PostView{
		Post:        post,
		Topic:       topic,
		Author:      users.AuthorOf(author),
		ContentHTML: html,
	}, nil
}

func (s *forumService) CreatePost(ctx context.Context, topicID, userID uint, title, content string) (*forum.Post, error) {
	if _, err := s.topics.GetByID(ctx, topicID); err != nil {
		return nil, err
	}

	post := &forum.Post{
		TopicID:  topicID,
		UserID:   userID,
		Title:    strings.TrimSpace(title),
		Content:  content,
		PostedAt: s.now(),
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *forumService) Comments(ctx context.Context, postID, viewerID uint) ([]forum.CommentView, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	commentIDs := make([]uint, len(comments))
	userIDs := make([]uint, 0, len(comments))
	for i, c := range comments {
		commentIDs[i] = c.ID
		userIDs = append(userIDs, c.UserID)
	}

	reactions, err := s.reactions.ListByComments(ctx, commentIDs)
	if err != nil {
		return nil, err
	}
	authors, err := s.users.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	return forum.BuildThread(comments, reactions, authors, viewerID), nil
}

func (s *forumService) SaveReaction(ctx context.Context, commentID, userID uint, value int) error {
	if value < forum.Dislike || value > forum.Like {
		return forum.ErrInvalidReaction
	}
	if _, err := s.comments.GetByID(ctx, commentID); err != nil {
		return err
	}
	return s.reactions.Upsert(ctx, &forum.Reaction{CommentID: commentID, UserID: userID, Value: value})
}

// PostComment attaches replies to a reply to the top-level comment of that reply.
func (s *forumService) PostComment(ctx context.Context, postID, userID uint, parentID *uint, text string) (*forum.CommentView, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	if parentID != nil {
		parent, err := s.comments.GetByID(ctx, *parentID)
		if err != nil {
			if errors.Is(err, forum.ErrCommentNotFound) {
				return nil, forum.ErrParentNotFound
			}
			return nil, err
		}
		if parent.PostID != postID {
			return nil, forum.ErrParentNotFound
		}
		if !parent.IsTopLevel() {
			parentID = parent.ParentID
		}
	}

	comment := &forum.Comment{
		PostID:      postID,
		UserID:      userID,
		ParentID:    parentID,
		Text:        text,
		CommentedAt: s.now(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	author, err := s.users.GetByID(ctx, userID)
	if err != nil && !errors.Is(err, users.ErrUserNotFound) {
		return nil, err
	}
	return &forum.CommentView{Comment: comment, Author: users.AuthorOf(author)}, nil
}

func (s *forumService) DeleteComment(ctx context.Context, commentID, userID uint) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return forum.ErrNotOwner
	}
	if err := s.comments.DeleteThread(ctx, comment); err != nil {
		return fmt.Errorf("failed to delete comment %d: %w", commentID, err)
	}
	return nil
}
