package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/forum"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/infrastructure/persistence/models"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func truncate(ctx context.Context, db *gorm.DB, model interface{}) error {
	return db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(model).Error
}

type gormTopicRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormTopicRepository creates a new GORM-based TopicRepository implementation
func NewGormTopicRepository(db *gorm.DB, logger logger.Logger) (forum.TopicRepository, error) {
	return &gormTopicRepository{db: db, logger: logger}, nil
}

func (r *gormTopicRepository) Create(ctx context.Context, topic *forum.Topic) error {
	if err := topic.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ForumTopicModel{}
	model.FromDomain(topic)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return forum.ErrTopicExists
		}
		return fmt.Errorf("failed to create topic: %w", err)
	}
	topic.ID = model.ID

	r.logger.Info("Created topic with id ", topic.ID)
	return nil
}

func (r *gormTopicRepository) List(ctx context.Context) ([]*forum.Topic, error) {
	var modelList []*models.ForumTopicModel
	if err := r.db.WithContext(ctx).Order("topic asc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch topics: %w", err)
	}

	domainList := make([]*forum.Topic, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormTopicRepository) GetByID(ctx context.Context, topicID uint) (*forum.Topic, error) {
	var model models.ForumTopicModel
	if err := r.db.WithContext(ctx).Where("id = ?", topicID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, forum.ErrTopicNotFound
		}
		return nil, fmt.Errorf("failed to fetch topic: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormTopicRepository) Truncate(ctx context.Context) error {
	if err := truncate(ctx, r.db, &models.ForumTopicModel{}); err != nil {
		return fmt.Errorf("failed to truncate topics: %w", err)
	}
	return nil
}

type gormPostRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormPostRepository creates a new GORM-based PostRepository implementation
func NewGormPostRepository(db *gorm.DB, logger logger.Logger) (forum.PostRepository, error) {
	return &gormPostRepository{db: db, logger: logger}, nil
}

func (r *gormPostRepository) Create(ctx context.Context, post *forum.Post) error {
	if err := post.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ForumPostModel{}
	model.FromDomain(post)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	post.ID = model.ID

	r.logger.Info("Created post with id ", post.ID)
	return nil
}

func (r *gormPostRepository) GetByID(ctx context.Context, postID uint) (*forum.Post, error) {
	var model models.ForumPostModel
	if err := r.db.WithContext(ctx).Where("id = ?", postID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, forum.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormPostRepository) ListByTopic(ctx context.Context, topicID uint) ([]*forum.Post, error) {
	var modelList []*models.ForumPostModel
	err := r.db.WithContext(ctx).
		Where("topic_id = ?", topicID).
		Order("post_date desc, id desc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}

	domainList := make([]*forum.Post, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormPostRepository) Truncate(ctx context.Context) error {
	if err := truncate(ctx, r.db, &models.ForumPostModel{}); err != nil {
		return fmt.Errorf("failed to truncate posts: %w", err)
	}
	return nil
}

type gormCommentRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormCommentRepository creates a new GORM-based CommentRepository implementation
func NewGormCommentRepository(db *gorm.DB, logger logger.Logger) (forum.CommentRepository, error) {
	return &gormCommentRepository{db: db, logger: logger}, nil
}

func (r *gormCommentRepository) Create(ctx context.Context, comment *forum.Comment) error {
	if err := comment.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ForumCommentModel{}
	model.FromDomain(comment)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	comment.ID = model.ID

	r.logger.Debug("Created comment with id ", comment.ID)
	return nil
}

func (r *gormCommentRepository) GetByID(ctx context.Context, commentID uint) (*forum.Comment, error) {
	var model models.ForumCommentModel
	if err := r.db.WithContext(ctx).Where("id = ?", commentID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, forum.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to fetch comment: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormCommentRepository) ListByPost(ctx context.Context, postID uint) ([]*forum.Comment, error) {
	var modelList []*models.ForumCommentModel
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("comment_date asc, id asc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comments: %w", err)
	}

	domainList := make([]*forum.Comment, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormCommentRepository) DeleteThread(ctx context.Context, comment *forum.Comment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := []uint{comment.ID}
		if comment.IsTopLevel() {
			var replyIDs []uint
			err := tx.Model(&models.ForumCommentModel{}).
				Where("parent_id = ?", comment.ID).
				Pluck("id", &replyIDs).Error
			if err != nil {
				return fmt.Errorf("failed to list replies: %w", err)
			}
			ids = append(ids, replyIDs...)
		}

		if err := tx.Where("comment_id IN ?", ids).Delete(&models.ReactionModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete reactions: %w", err)
		}
		if err := tx.Where("id IN ?", ids).Delete(&models.ForumCommentModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete comments: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("Deleted comment thread with id ", comment.ID)
	return nil
}

func (r *gormCommentRepository) Truncate(ctx context.Context) error {
	if err := truncate(ctx, r.db, &models.ForumCommentModel{}); err != nil {
		return fmt.Errorf("failed to truncate comments: %w", err)
	}
	return nil
}

type gormReactionRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormReactionRepository creates a new GORM-based ReactionRepository implementation
func NewGormReactionRepository(db *gorm.DB, logger logger.Logger) (forum.ReactionRepository, error) {
	return &gormReactionRepository{db: db, logger: logger}, nil
}

func (r *gormReactionRepository) Upsert(ctx context.Context, reaction *forum.Reaction) error {
	if err := reaction.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ReactionModel{}
	model.FromDomain(reaction)

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "comment_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"reaction"}),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to save reaction: %w", err)
	}
	return nil
}

func (r *gormReactionRepository) ListByComments(ctx context.Context, commentIDs []uint) ([]*forum.Reaction, error) {
	if len(commentIDs) == 0 {
		return []*forum.Reaction{}, nil
	}

	var modelList []*models.ReactionModel
	if err := r.db.WithContext(ctx).Where("comment_id IN ?", commentIDs).Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch reactions: %w", err)
	}

	domainList := make([]*forum.Reaction, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormReactionRepository) Truncate(ctx context.Context) error {
	if err := truncate(ctx, r.db, &models.ReactionModel{}); err != nil {
		return fmt.Errorf("failed to truncate reactions: %w", err)
	}
	return nil
}
