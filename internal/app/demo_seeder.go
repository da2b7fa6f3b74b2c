package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/forum"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/users"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/logger"
	"github.com/shopspring/decimal"
)

// Demo thread content
const (
	DemoTopic       = "Math"
	DemoPostTitle   = "The wonders of pi"
	DemoPostContent = "Pi is the ratio of the circumference of a circle to its diameter. It has a value 3.14159."
	DemoComment     = "Nice"
	DemoReply       = "Thanks"
)

var demoAuthors = []users.User{
	{Email: "euler@demo.trade-floor.local", FirstName: "Leonhard", LastName: "Euler"},
	{Email: "gauss@demo.trade-floor.local", FirstName: "Carl", LastName: "Gauss"},
}

// demoSeeder implements the DemoSeeder interface
type demoSeeder struct {
	topics       forum.TopicRepository
	posts        forum.PostRepository
	comments     forum.CommentRepository
	reactions    forum.ReactionRepository
	users        users.UserRepository
	hasher       users.PasswordHasher
	startingCash decimal.Decimal
	now          func() time.Time
	logger       logger.Logger
}

// NewDemoSeeder creates a new instance of DemoSeeder
func NewDemoSeeder(
	topics forum.TopicRepository,
	posts forum.PostRepository,
	comments forum.CommentRepository,
	reactions forum.ReactionRepository,
	userRepo users.UserRepository,
	hasher users.PasswordHasher,
	startingCash decimal.Decimal,
	logger logger.Logger,
) (forum.DemoSeeder, error) {
	return &demoSeeder{
		topics:       topics,
		posts:        posts,
		comments:     comments,
		reactions:    reactions,
		users:        userRepo,
		hasher:       hasher,
		startingCash: startingCash,
		now:          time.Now,
		logger:       logger,
	}, nil
}

// SeedDemo empties the forum and writes a post by the first demo author,
// commented by the second and answered by the first.
func (s *demoSeeder) SeedDemo(ctx context.Context) error {
	for _, truncate := range []func(context.Context) error{
		s.reactions.Truncate, s.comments.Truncate, s.posts.Truncate, s.topics.Truncate,
	} {
		if err := truncate(ctx); err != nil {
			return err
		}
	}

	author, err := s.demoUser(ctx, demoAuthors[0])
	if err != nil {
		return err
	}
	commenter, err := s.demoUser(ctx, demoAuthors[1])
	if err != nil {
		return err
	}

	now := s.now()
	topic := &forum.Topic{Topic: DemoTopic}
	if err := s.topics.Create(ctx, topic); err != nil {
		return err
	}
	post := &forum.Post{
		TopicID:  topic.ID,
		UserID:   author.ID,
		Title:    DemoPostTitle,
		Content:  DemoPostContent,
		PostedAt: now,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return err
	}
	comment := &forum.Comment{PostID: post.ID, UserID: commenter.ID, Text: DemoComment, CommentedAt: now}
	if err := s.comments.Create(ctx, comment); err != nil {
		return err
	}
	reply := &forum.Comment{
		PostID:      post.ID,
		UserID:      author.ID,
		ParentID:    &comment.ID,
		Text:        DemoReply,
		CommentedAt: now.Add(time.Second),
	}
	if err := s.comments.Create(ctx, reply); err != nil {
		return err
	}

	s.logger.Info("Seeded demo forum thread in post ", post.ID)
	return nil
}

// demoUser returns the account of a demo author, creating it with an unusable random password.
func (s *demoSeeder) demoUser(ctx context.Context, tmpl users.User) (*users.User, error) {
	existing, err := s.users.GetByEmail(ctx, tmpl.Email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, users.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("failed to hash demo password: %w", err)
	}
	user := tmpl
	user.PasswordHash = hash
	user.Role = users.RoleUser
	user.Cash = s.startingCash
	user.CreatedAt = s.now()
	if err := s.users.Create(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
