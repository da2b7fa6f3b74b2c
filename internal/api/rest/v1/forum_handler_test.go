//go:build unit
// +build unit

package v1

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/forum"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/users"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestForumHandler() (ForumHandler, *MockForumService, *MockUserService) {
	mockForumService := new(MockForumService)
	mockUserService := new(MockUserService)
	return NewForumHandler(mockForumService, mockUserService, time.UTC), mockForumService, mockUserService
}

func TestForumHandler_ListTopics(t *testing.T) {
	handler, mockForumService, _ := newTestForumHandler()
	mockForumService.On("ListTopics", mock.Anything).Return([]*forum.Topic{
		{ID: 2, Topic: "Bonds"}, {ID: 1, Topic: "Stocks"},
	}, nil)

	c, w := testutil.NewJSONContext(t, http.MethodGet, "/forum", nil)
	handler.ListTopics(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"topics": [{"topic_id": 2, "topic": "Bonds"}, {"topic_id": 1, "topic": "Stocks"}]}`, w.Body.String())
}

func TestForumHandler_AddTopic(t *testing.T) {
	handler, mockForumService, _ := newTestForumHandler()
	mockForumService.On("CreateTopic", mock.Anything, "Stocks").Return(&forum.Topic{ID: 1, Topic: "Stocks"}, nil)
	mockForumService.On("CreateTopic", mock.Anything, "Bonds").Return(nil, forum.ErrTopicExists)

	c, w := testutil.NewJSONContext(t, http.MethodPost, "/forum_add_topic", CreateTopicRequest{Topic: "Stocks"})
	withClaims(c, 7, users.RoleUser)
	handler.AddTopic(c)
	assert.Equal(t, http.StatusCreated, w.Code)

	c, w = testutil.NewJSONContext(t, http.MethodPost, "/forum_add_topic", CreateTopicRequest{Topic: "Bonds"})
	withClaims(c, 7, users.RoleUser)
	handler.AddTopic(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestForumHandler_GetTopic(t *testing.T) {
	handler, mockForumService, _ := newTestForumHandler()
	post := &forum.Post{ID: 5, TopicID: 1, UserID: 7, Title: "Buy AAPL?", PostedAt: quoteTime}
	mockForumService.On("GetTopic", mock.Anything, uint(1)).
		Return(&forum.Topic{ID: 1, Topic: "Stocks"}, []forum.PostSummary{{Post: post, AuthorName: "Ada Lovelace"}}, nil)
	mockForumService.On("GetTopic", mock.Anything, uint(9)).Return(nil, nil, forum.ErrTopicNotFound)

	c, w := testutil.NewJSONContext(t, http.MethodGet, "/forum/1", nil)
	c.Params = gin.Params{gin.Param{Key: "topic_id", Value: "1"}}
	handler.GetTopic(c)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp TopicPageResponse
	testutil.DecodeJSON(t, w, &resp)
	require.Len(t, resp.Posts, 1)
	assert.Equal(t, "Ada Lovelace", resp.Posts[0].Name)

	c, w = testutil.NewJSONContext(t, http.MethodGet, "/forum/9", nil)
	c.Params = gin.Params{gin.Param{Key: "topic_id", Value: "9"}}
	handler.GetTopic(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	c, w = testutil.NewJSONContext(t, http.MethodGet, "/forum/abc", nil)
	c.Params = gin.Params{gin.Param{Key: "topic_id", Value: "abc"}}
	handler.GetTopic(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestForumHandler_GetPost(t *testing.T) {
	handler, mockForumService, _ := newTestForumHandler()
	mockForumService.On("GetPost", mock.Anything, uint(5)).Return(&forum.PostView{
		Post:        &forum.Post{ID: 5, TopicID: 1, UserID: 7, Title: "Buy AAPL?", Content: "**yes**", PostedAt: quoteTime},
		Topic:       &forum.Topic{ID: 1, Topic: "Stocks"},
		Author:      users.Author{Name: "Ada Lovelace", Email: "ada@example.com"},
		ContentHTML: "<p><strong>yes</strong></p>\n",
	}, nil)
	mockForumService.On("GetPost", mock.Anything, uint(6)).Return(nil, forum.ErrPostNotFound)

	c, w := testutil.NewJSONContext(t, http.MethodGet, "/forum_post/5", nil)
	c.Params = gin.Params{gin.Param{Key: "post_id", Value: "5"}}
	handler.GetPost(c)
	var resp PostResponse
	testutil.DecodeJSON(t, w, &resp)
	assert.Equal(t, "Ada Lovelace", resp.UserName)
	assert.Equal(t, "Stocks", resp.Topic.Topic)
	assert.Equal(t, "<p><strong>yes</strong></p>\n", resp.ContentHTML)

	c, w = testutil.NewJSONContext(t, http.MethodGet, "/forum_post/6", nil)
	c.Params = gin.Params{gin.Param{Key: "post_id", Value: "6"}}
	handler.GetPost(c)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, BasePath+"/forum", w.Header().Get("Location"))
}

func TestForumHandler_AddPost(t *testing.T) {
	handler, mockForumService, _ := newTestForumHandler()
	mockForumService.On("CreatePost", mock.Anything, uint(1), uint(7), "Title", "Body").
		Return(&forum.Post{ID: 5, TopicID: 1, UserID: 7, Title: "Title", Content: "Body", PostedAt: quoteTime}, nil)

	c, w := testutil.NewJSONContext(t, http.MethodPost, "/forum_add_post/1", CreatePostRequest{Title: "Title", Content: "Body"})
	c.Params = gin.Params{gin.Param{Key: "topic_id", Value: "1"}}
	withClaims(c, 7, users.RoleUser)
	handler.AddPost(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"post_title":"Title"`)
	mockForumService.AssertExpectations(t)
}

func TestForumHandler_GetComments(t *testing.T) {
	handler, mockForumService, mockUserService := newTestForumHandler()
	mockForumService.On("Comments", mock.Anything, uint(5), uint(7)).Return([]forum.CommentView{{
		Comment:  &forum.Comment{ID: 1, PostID: 5, UserID: 8, Text: "Nice", CommentedAt: quoteTime},
		Author:   users.Author{Name: "Carl Gauss", Email: "gauss@example.com"},
		Likes:    1,
		Reaction: 1,
		Replies:  []forum.CommentView{},
	}}, nil)
	mockUserService.On("GetByID", mock.Anything, uint(7)).Return(testUser(), nil)

	c, w := testutil.NewJSONContext(t, http.MethodGet, "/get_comments/5", nil)
	c.Params = gin.Params{gin.Param{Key: "post_id", Value: "5"}}
	withClaims(c, 7, users.RoleUser)
	handler.GetComments(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp CommentsResponse
	testutil.DecodeJSON(t, w, &resp)
	assert.Equal(t, "Ada Lovelace", resp.CurrentUserName)
	require.Len(t, resp.Comments, 1)
	assert.Equal(t, "Carl Gauss", resp.Comments[0].UserName)
	assert.NotNil(t, resp.Comments[0].ReplyList)
	assert.Contains(t, w.Body.String(), `"reply_list":[]`)
}

func TestForumHandler_SaveReaction(t *testing.T) {
	handler, mockForumService, _ := newTestForumHandler()
	mockForumService.On("SaveReaction", mock.Anything, uint(1), uint(7), -1).Return(nil)
	mockForumService.On("SaveReaction", mock.Anything, uint(2), uint(7), 1).Return(forum.ErrCommentNotFound)

	c, w := testutil.NewJSONContext(t, http.MethodPost, "/save_reaction", SaveReactionRequest{CommentID: 1, Reaction: -1})
	withClaims(c, 7, users.RoleUser)
	handler.SaveReaction(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "ok"}`, w.Body.String())

	c, w = testutil.NewJSONContext(t, http.MethodPost, "/save_reaction", SaveReactionRequest{CommentID: 2, Reaction: 1})
	withClaims(c, 7, users.RoleUser)
	handler.SaveReaction(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message": "Save Failed, Comment Not Found."}`, w.Body.String())
}

func TestForumHandler_PostComment(t *testing.T) {
	handler, mockForumService, mockUserService := newTestForumHandler()
	parent := uint(1)
	missing := uint(42)
	mockForumService.On("PostComment", mock.Anything, uint(5), uint(7), &parent, "Thanks").Return(&forum.CommentView{
		Comment: &forum.Comment{ID: 2, PostID: 5, UserID: 7, ParentID: &parent, Text: "Thanks", CommentedAt: quoteTime},
		Author:  users.Author{Name: "Ada Lovelace", Email: "ada@example.com"},
	}, nil)
	mockForumService.On("PostComment", mock.Anything, uint(5), uint(7), &missing, "Lost").Return(nil, forum.ErrParentNotFound)
	mockUserService.On("GetByID", mock.Anything, uint(7)).Return(testUser(), nil)

	parentIdx := int64(1)
	c, w := testutil.NewJSONContext(t, http.MethodPost, "/post_comment/5", PostCommentRequest{Text: "Thanks", ParentIdx: &parentIdx})
	c.Params = gin.Params{gin.Param{Key: "post_id", Value: "5"}}
	withClaims(c, 7, users.RoleUser)
	handler.PostComment(c)
	assert.Equal(t, http.StatusCreated, w.Code)
	var resp PostCommentResponse
	testutil.DecodeJSON(t, w, &resp)
	assert.Equal(t, int64(1), resp.ParentIdx)
	assert.Equal(t, "ada@example.com", resp.UserEmail)

	missingIdx := int64(42)
	c, w = testutil.NewJSONContext(t, http.MethodPost, "/post_comment/5", PostCommentRequest{Text: "Lost", ParentIdx: &missingIdx})
	c.Params = gin.Params{gin.Param{Key: "post_id", Value: "5"}}
	withClaims(c, 7, users.RoleUser)
	handler.PostComment(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"user_name": "Ada Lovelace", "user_email": "ada@example.com", "note": "Post Failed, Parent Not Found"}`, w.Body.String())
}

func TestForumHandler_DeleteComment(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"Deleted", nil, http.StatusOK, MsgOK},
		{"Missing", forum.ErrCommentNotFound, http.StatusNotFound, "Delete Failed, Post Not Found."},
		{"Not owner", forum.ErrNotOwner, http.StatusForbidden, "Delete Failed, Owner does not match."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mockForumService, _ := newTestForumHandler()
			mockForumService.On("DeleteComment", mock.Anything, uint(3), uint(7)).Return(tt.err)

			c, w := testutil.NewJSONContext(t, http.MethodDelete, "/delete_comment?comment_id=3", nil)
			withClaims(c, 7, users.RoleUser)
			handler.DeleteComment(c)

			assert.Equal(t, tt.status, w.Code)
			var resp InfoResponse
			testutil.DecodeJSON(t, w, &resp)
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}
