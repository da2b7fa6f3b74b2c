//go:build integration
// +build integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/forum"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForumService_Topics(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	_, err := services.Forum.CreateTopic(ctx, "  Stocks ")
	require.NoError(t, err)
	_, err = services.Forum.CreateTopic(ctx, "Bonds")
	require.NoError(t, err)

	_, err = services.Forum.CreateTopic(ctx, "Stocks")
	assert.ErrorIs(t, err, forum.ErrTopicExists)

	_, err = services.Forum.CreateTopic(ctx, "   ")
	assert.Error(t, err)

	topics, err := services.Forum.ListTopics(ctx)
	require.NoError(t, err)
	require.Len(t, topics, 2)
	assert.Equal(t, "Bonds", topics[0].Topic)
	assert.Equal(t, "Stocks", topics[1].Topic)
}

func TestForumService_Posts(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	author := RegisterTestUser(t, services, "writer@example.com")

	topic, err := services.Forum.CreateTopic(ctx, "Stocks")
	require.NoError(t, err)

	first, err := services.Forum.CreatePost(ctx, topic.ID, author.ID, "First", "plain text")
	require.NoError(t, err)
	services.Clock.Advance(time.Minute)
	second, err := services.Forum.CreatePost(ctx, topic.ID, author.ID, "Second", "**bold** <script>alert(1)</script>")
	require.NoError(t, err)

	_, err = services.Forum.CreatePost(ctx, 999, author.ID, "Lost", "nowhere")
	assert.ErrorIs(t, err, forum.ErrTopicNotFound)

	got, summaries, err := services.Forum.GetTopic(ctx, topic.ID)
	require.NoError(t, err)
	assert.Equal(t, "Stocks", got.Topic)
	require.Len(t, summaries, 2)
	assert.Equal(t, second.ID, summaries[0].ID)
	assert.Equal(t, first.ID, summaries[1].ID)
	assert.Equal(t, "Test writer", summaries[0].AuthorName)

	view, err := services.Forum.GetPost(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "Stocks", view.Topic.Topic)
	assert.Equal(t, "writer@example.com", view.Author.Email)
	assert.Contains(t, view.ContentHTML, "<strong>bold</strong>")
	assert.NotContains(t, view.ContentHTML, "<script>")

	_, err = services.Forum.GetPost(ctx, 999)
	assert.ErrorIs(t, err, forum.ErrPostNotFound)
}

func TestForumService_CommentThread(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	alice := RegisterTestUser(t, services, "alice@example.com")
	bob := RegisterTestUser(t, services, "bob@example.com")

	topic, err := services.Forum.CreateTopic(ctx, "Stocks")
	require.NoError(t, err)
	post, err := services.Forum.CreatePost(ctx, topic.ID, alice.ID, "Buy AAPL?", "thoughts")
	require.NoError(t, err)

	older, err := services.Forum.PostComment(ctx, post.ID, alice.ID, nil, "first")
	require.NoError(t, err)
	services.Clock.Advance(time.Second)
	newer, err := services.Forum.PostComment(ctx, post.ID, bob.ID, nil, "second")
	require.NoError(t, err)
	services.Clock.Advance(time.Second)
	reply, err := services.Forum.PostComment(ctx, post.ID, bob.ID, &older.ID, "reply")
	require.NoError(t, err)
	assert.Equal(t, "Test bob", reply.Author.Name)

	services.Clock.Advance(time.Second)
	nested, err := services.Forum.PostComment(ctx, post.ID, alice.ID, &reply.ID, "reply to reply")
	require.NoError(t, err)
	require.NotNil(t, nested.ParentID)
	assert.Equal(t, older.ID, *nested.ParentID)

	require.NoError(t, services.Forum.SaveReaction(ctx, newer.ID, alice.ID, forum.Like))
	require.NoError(t, services.Forum.SaveReaction(ctx, newer.ID, bob.ID, forum.Like))
	require.NoError(t, services.Forum.SaveReaction(ctx, older.ID, bob.ID, forum.Dislike))
	require.NoError(t, services.Forum.SaveReaction(ctx, older.ID, bob.ID, forum.NoReaction))

	thread, err := services.Forum.Comments(ctx, post.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, thread, 2)

	assert.Equal(t, newer.ID, thread[0].ID)
	assert.Equal(t, 2, thread[0].Likes)
	assert.Equal(t, forum.Like, thread[0].Reaction)
	assert.Empty(t, thread[0].Replies)

	assert.Equal(t, older.ID, thread[1].ID)
	assert.Equal(t, 0, thread[1].Dislikes)
	require.Len(t, thread[1].Replies, 2)
	assert.Equal(t, reply.ID, thread[1].Replies[0].ID)
	assert.Equal(t, nested.ID, thread[1].Replies[1].ID)
}

func TestForumService_CommentErrors(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	user := RegisterTestUser(t, services, "critic@example.com")

	topic, err := services.Forum.CreateTopic(ctx, "Stocks")
	require.NoError(t, err)
	post, err := services.Forum.CreatePost(ctx, topic.ID, user.ID, "One", "one")
	require.NoError(t, err)
	other, err := services.Forum.CreatePost(ctx, topic.ID, user.ID, "Two", "two")
	require.NoError(t, err)
	elsewhere, err := services.Forum.PostComment(ctx, other.ID, user.ID, nil, "elsewhere")
	require.NoError(t, err)

	missing := uint(999)
	_, err = services.Forum.PostComment(ctx, post.ID, user.ID, &missing, "orphan")
	assert.ErrorIs(t, err, forum.ErrParentNotFound)

	_, err = services.Forum.PostComment(ctx, post.ID, user.ID, &elsewhere.ID, "cross-post")
	assert.ErrorIs(t, err, forum.ErrParentNotFound)

	_, err = services.Forum.PostComment(ctx, 999, user.ID, nil, "lost")
	assert.ErrorIs(t, err, forum.ErrPostNotFound)

	err = services.Forum.SaveReaction(ctx, elsewhere.ID, user.ID, 2)
	assert.ErrorIs(t, err, forum.ErrInvalidReaction)

	err = services.Forum.SaveReaction(ctx, 999, user.ID, forum.Like)
	assert.ErrorIs(t, err, forum.ErrCommentNotFound)

	_, err = services.Forum.Comments(ctx, 999, user.ID)
	assert.ErrorIs(t, err, forum.ErrPostNotFound)
}

func TestForumService_DeleteComment(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	owner := RegisterTestUser(t, services, "owner@example.com")
	stranger := RegisterTestUser(t, services, "stranger@example.com")

	topic, err := services.Forum.CreateTopic(ctx, "Stocks")
	require.NoError(t, err)
	post, err := services.Forum.CreatePost(ctx, topic.ID, owner.ID, "Thread", "body")
	require.NoError(t, err)
	root, err := services.Forum.PostComment(ctx, post.ID, owner.ID, nil, "root")
	require.NoError(t, err)
	reply, err := services.Forum.PostComment(ctx, post.ID, stranger.ID, &root.ID, "reply")
	require.NoError(t, err)
	require.NoError(t, services.Forum.SaveReaction(ctx, reply.ID, owner.ID, forum.Like))

	err = services.Forum.DeleteComment(ctx, root.ID, stranger.ID)
	assert.ErrorIs(t, err, forum.ErrNotOwner)

	err = services.Forum.DeleteComment(ctx, 999, owner.ID)
	assert.ErrorIs(t, err, forum.ErrCommentNotFound)

	require.NoError(t, services.Forum.DeleteComment(ctx, root.ID, owner.ID))

	thread, err := services.Forum.Comments(ctx, post.ID, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, thread)

	err = services.Forum.DeleteComment(ctx, reply.ID, stranger.ID)
	assert.ErrorIs(t, err, forum.ErrCommentNotFound)
}

func TestDemoSeeder_SeedDemo(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	_, err := services.Forum.CreateTopic(ctx, "Leftover")
	require.NoError(t, err)

	require.NoError(t, services.Seeder.SeedDemo(ctx))
	// seeding twice reuses the demo accounts
	require.NoError(t, services.Seeder.SeedDemo(ctx))

	topics, err := services.Forum.ListTopics(ctx)
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, DemoTopic, topics[0].Topic)

	_, posts, err := services.Forum.GetTopic(ctx, topics[0].ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, DemoPostTitle, posts[0].Title)
	assert.Equal(t, "Leonhard Euler", posts[0].AuthorName)

	thread, err := services.Forum.Comments(ctx, posts[0].ID, 0)
	require.NoError(t, err)
	require.Len(t, thread, 1)
	assert.Equal(t, DemoComment, thread[0].Text)
	assert.Equal(t, "Carl Gauss", thread[0].Author.Name)
	require.Len(t, thread[0].Replies, 1)
	assert.Equal(t, DemoReply, thread[0].Replies[0].Text)
}
