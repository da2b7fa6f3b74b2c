//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/forum"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopicSqliteRepository(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	for _, name := range []string{"Stocks", "Math"} {
		require.NoError(t, ctx.TopicRepo.Create(context.Background(), &forum.Topic{Topic: name}))
	}
	err := ctx.TopicRepo.Create(context.Background(), &forum.Topic{Topic: "Math"})
	assert.ErrorIs(t, err, forum.ErrTopicExists)

	topics, err := ctx.TopicRepo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, topics, 2)
	assert.Equal(t, "Math", topics[0].Topic)

	_, err = ctx.TopicRepo.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, forum.ErrTopicNotFound)
}

func TestPostSqliteRepository_ListNewestFirst(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	user := CreateTestUser(t, ctx, "poster@example.com", "1")
	topic := &forum.Topic{Topic: "Math"}
	require.NoError(t, ctx.TopicRepo.Create(context.Background(), topic))

	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	for i, title := range []string{"older", "newer"} {
		post := &forum.Post{
			TopicID:  topic.ID,
			UserID:   user.ID,
			Title:    title,
			Content:  "body",
			PostedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, ctx.PostRepo.Create(context.Background(), post))
	}

	posts, err := ctx.PostRepo.ListByTopic(context.Background(), topic.ID)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "newer", posts[0].Title)

	_, err = ctx.PostRepo.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, forum.ErrPostNotFound)
}

func TestCommentSqliteRepository_DeleteThread(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	user := CreateTestUser(t, ctx, "c@example.com", "1")
	now := time.Now().Truncate(time.Second)

	top := &forum.Comment{PostID: 1, UserID: user.ID, Text: "Nice", CommentedAt: now}
	require.NoError(t, ctx.CommentRepo.Create(context.Background(), top))
	reply := &forum.Comment{PostID: 1, UserID: user.ID, ParentID: &top.ID, Text: "Thanks", CommentedAt: now.Add(time.Second)}
	require.NoError(t, ctx.CommentRepo.Create(context.Background(), reply))
	other := &forum.Comment{PostID: 1, UserID: user.ID, Text: "Other", CommentedAt: now.Add(2 * time.Second)}
	require.NoError(t, ctx.CommentRepo.Create(context.Background(), other))

	require.NoError(t, ctx.ReactionRepo.Upsert(context.Background(), &forum.Reaction{CommentID: reply.ID, UserID: user.ID, Value: forum.Like}))
	require.NoError(t, ctx.ReactionRepo.Upsert(context.Background(), &forum.Reaction{CommentID: other.ID, UserID: user.ID, Value: forum.Like}))

	require.NoError(t, ctx.CommentRepo.DeleteThread(context.Background(), top))

	left, err := ctx.CommentRepo.ListByPost(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, other.ID, left[0].ID)

	reactions, err := ctx.ReactionRepo.ListByComments(context.Background(), []uint{top.ID, reply.ID, other.ID})
	require.NoError(t, err)
	require.Len(t, reactions, 1)
	assert.Equal(t, other.ID, reactions[0].CommentID)
}

func TestReactionSqliteRepository_Upsert(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	require.NoError(t, ctx.ReactionRepo.Upsert(context.Background(), &forum.Reaction{CommentID: 1, UserID: 2, Value: forum.Like}))
	require.NoError(t, ctx.ReactionRepo.Upsert(context.Background(), &forum.Reaction{CommentID: 1, UserID: 2, Value: forum.Dislike}))

	reactions, err := ctx.ReactionRepo.ListByComments(context.Background(), []uint{1})
	require.NoError(t, err)
	require.Len(t, reactions, 1)
	assert.Equal(t, forum.Dislike, reactions[0].Value)

	err = ctx.ReactionRepo.Upsert(context.Background(), &forum.Reaction{CommentID: 1, UserID: 2, Value: 5})
	assert.Error(t, err)
}

func TestForumSqliteRepositories_Truncate(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	require.NoError(t, ctx.TopicRepo.Create(context.Background(), &forum.Topic{Topic: "Math"}))

	require.NoError(t, ctx.ReactionRepo.Truncate(context.Background()))
	require.NoError(t, ctx.CommentRepo.Truncate(context.Background()))
	require.NoError(t, ctx.PostRepo.Truncate(context.Background()))
	require.NoError(t, ctx.TopicRepo.Truncate(context.Background()))

	topics, err := ctx.TopicRepo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, topics)
}
