package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/forum"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/users"
)

// Messages expected by the forum front-end
const (
	MsgOK                 = "ok"
	MsgSaveFailed         = "Save Failed, Comment Not Found."
	MsgParentNotFound     = "Post Failed, Parent Not Found"
	MsgDeleteNotFound     = "Delete Failed, Post Not Found."
	MsgDeleteOwnerInvalid = "Delete Failed, Owner does not match."
)

// ForumHandler defines the interface for handling forum operations
type ForumHandler interface {
	ListTopics(ctx *gin.Context)
	AddTopic(ctx *gin.Context)
	GetTopic(ctx *gin.Context)
	GetPost(ctx *gin.Context)
	AddPost(ctx *gin.Context)
	GetComments(ctx *gin.Context)
	SaveReaction(ctx *gin.Context)
	PostComment(ctx *gin.Context)
	DeleteComment(ctx *gin.Context)
}

type forumHandler struct {
	forumService forum.ForumService
	userService  users.UserService
	location     *time.Location
}

// NewForumHandler creates a new ForumHandler rendering dates in location
func NewForumHandler(forumService forum.ForumService, userService users.UserService, location *time.Location) ForumHandler {
	return &forumHandler{forumService: forumService, userService: userService, location: location}
}

// parseID reads a positive integer id, answering 400 when it is malformed
func parseID(ctx *gin.Context, name, raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid %s: %q", name, raw)})
		return 0, false
	}
	return uint(id), true
}

// currentAuthor returns the display identity of the signed in user
func (handler *forumHandler) currentAuthor(ctx *gin.Context) (users.Author, error) {
	user, err := handler.userService.GetByID(ctx, currentUserID(ctx))
	if err != nil && !errors.Is(err, users.ErrUserNotFound) {
		return users.Author{}, err
	}
	return users.AuthorOf(user), nil
}

// ListTopics handles the GET request listing topics alphabetically
// @Summary Forum topics
// @Tags Forum
// @Produce json
// @Success 200 {object} TopicsResponse
// @Router /forum [get]
func (handler *forumHandler) ListTopics(ctx *gin.Context) {
	topics, err := handler.forumService.ListTopics(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: fmt.Sprintf("error listing topics: %v", err)})
		return
	}

	response := TopicsResponse{Topics: make([]TopicResponse, len(topics))}
	for i, t := range topics {
		response.Topics[i] = TopicResponse{ID: t.ID, Topic: t.Topic}
	}
	ctx.JSON(http.StatusOK, response)
}

// AddTopic handles the POST request creating a topic
// @Summary Create topic
// @Tags Forum
// @Accept json
// @Produce json
// @Param requestBody body CreateTopicRequest true "Topic"
// @Success 201 {object} TopicResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /forum_add_topic [post]
func (handler *forumHandler) AddTopic(ctx *gin.Context) {
	var request CreateTopicRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid topic: %v", err)})
		return
	}
	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	topic, err := handler.forumService.CreateTopic(ctx, request.Topic)
	if errors.Is(err, forum.ErrTopicExists) {
		ctx.JSON(http.StatusConflict, ErrorResponse{Message: err.Error()})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("error creating topic: %v", err)})
		return
	}
	ctx.JSON(http.StatusCreated, TopicResponse{ID: topic.ID, Topic: topic.Topic})
}

// GetTopic handles the GET request for a topic and its posts
// @Summary Topic page
// @Tags Forum
// @Produce json
// @Param topic_id path int true "Topic ID"
// @Success 200 {object} TopicPageResponse
// @Failure 404 {object} ErrorResponse
// @Router /forum/{topic_id} [get]
func (handler *forumHandler) GetTopic(ctx *gin.Context) {
	topicID, ok := parseID(ctx, "topic id", ctx.Param("topic_id"))
	if !ok {
		return
	}

	topic, posts, err := handler.forumService.GetTopic(ctx, topicID)
	if errors.Is(err, forum.ErrTopicNotFound) {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error()})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: fmt.Sprintf("error loading topic: %v", err)})
		return
	}

	response := TopicPageResponse{ID: topic.ID, Topic: topic.Topic, Posts: make([]PostSummaryResponse, len(posts))}
	for i, p := range posts {
		response.Posts[i] = PostSummaryResponse{
			ID:     p.ID,
			Title:  p.Title,
			Date:   formatDate(p.PostedAt, handler.location),
			UserID: p.UserID,
			Name:   p.AuthorName,
		}
	}
	ctx.JSON(http.StatusOK, response)
}

// GetPost handles the GET request for a single post
// @Summary Post page
// @Tags Forum
// @Produce json
// @Param post_id path int true "Post ID"
// @Success 200 {object} PostResponse
// @Success 302
// @Router /forum_post/{post_id} [get]
func (handler *forumHandler) GetPost(ctx *gin.Context) {
	postID, ok := parseID(ctx, "post id", ctx.Param("post_id"))
	if !ok {
		return
	}

	view, err := handler.forumService.GetPost(ctx, postID)
	if errors.Is(err, forum.ErrPostNotFound) || errors.Is(err, forum.ErrTopicNotFound) {
		ctx.Redirect(http.StatusFound, BasePath+"/forum")
		return
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: fmt.Sprintf("error loading post: %v", err)})
		return
	}

	ctx.JSON(http.StatusOK, PostResponse{
		Post:        newPostBody(view.Post, handler.location),
		UserName:    view.Author.Name,
		Topic:       TopicResponse{ID: view.Topic.ID, Topic: view.Topic.Topic},
		ContentHTML: view.ContentHTML,
	})
}

// AddPost handles the POST request creating a post in a topic
// @Summary Create post
// @Tags Forum
// @Accept json
// @Produce json
// @Param topic_id path int true "Topic ID"
// @Param requestBody body CreatePostRequest true "Post"
// @Success 201 {object} PostBody
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /forum_add_post/{topic_id} [post]
func (handler *forumHandler) AddPost(ctx *gin.Context) {
	topicID, ok := parseID(ctx, "topic id", ctx.Param("topic_id"))
	if !ok {
		return
	}

	var request CreatePostRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid post: %v", err)})
		return
	}
	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	post, err := handler.forumService.CreatePost(ctx, topicID, currentUserID(ctx), request.Title, request.Content)
	if errors.Is(err, forum.ErrTopicNotFound) {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error()})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("error creating post: %v", err)})
		return
	}
	ctx.JSON(http.StatusCreated, newPostBody(post, handler.location))
}

// GetComments handles the GET request for the comment thread of a post
// @Summary Comment thread
// @Tags Forum
// @Produce json
// @Param post_id path int true "Post ID"
// @Success 200 {object} CommentsResponse
// @Failure 404 {object} ErrorResponse
// @Router /get_comments/{post_id} [get]
func (handler *forumHandler) GetComments(ctx *gin.Context) {
	postID, ok := parseID(ctx, "post id", ctx.Param("post_id"))
	if !ok {
		return
	}

	thread, err := handler.forumService.Comments(ctx, postID, currentUserID(ctx))
	if errors.Is(err, forum.ErrPostNotFound) {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error()})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: fmt.Sprintf("error loading comments: %v", err)})
		return
	}
	author, err := handler.currentAuthor(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: fmt.Sprintf("error loading user: %v", err)})
		return
	}

	response := CommentsResponse{
		Comments:         make([]CommentResponse, len(thread)),
		CurrentUserName:  author.Name,
		CurrentUserEmail: author.Email,
	}
	for i, c := range thread {
		response.Comments[i] = newCommentResponse(c, handler.location)
	}
	ctx.JSON(http.StatusOK, response)
}

// SaveReaction handles the POST request liking or disliking a comment
// @Summary Save reaction
// @Tags Forum
// @Accept json
// @Produce json
// @Param requestBody body SaveReactionRequest true "Reaction"
// @Success 200 {object} InfoResponse
// @Failure 404 {object} ErrorResponse
// @Router /save_reaction [post]
func (handler *forumHandler) SaveReaction(ctx *gin.Context) {
	var request SaveReactionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid reaction: %v", err)})
		return
	}
	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	err := handler.forumService.SaveReaction(ctx, request.CommentID, currentUserID(ctx), request.Reaction)
	switch {
	case errors.Is(err, forum.ErrCommentNotFound):
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: MsgSaveFailed})
	case errors.Is(err, forum.ErrInvalidReaction):
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
	case err != nil:
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: fmt.Sprintf("error saving reaction: %v", err)})
	default:
		ctx.JSON(http.StatusOK, InfoResponse{Message: MsgOK})
	}
}

// PostComment handles the POST request commenting on a post or replying to a comment
// @Summary Post comment
// @Tags Forum
// @Accept json
// @Produce json
// @Param post_id path int true "Post ID"
// @Param requestBody body PostCommentRequest true "Comment"
// @Success 201 {object} PostCommentResponse
// @Failure 404 {object} PostCommentFailedResponse
// @Router /post_comment/{post_id} [post]
func (handler *forumHandler) PostComment(ctx *gin.Context) {
	postID, ok := parseID(ctx, "post id", ctx.Param("post_id"))
	if !ok {
		return
	}

	var request PostCommentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid comment: %v", err)})
		return
	}
	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	view, err := handler.forumService.PostComment(ctx, postID, currentUserID(ctx), request.ParentID(), request.Text)
	if errors.Is(err, forum.ErrParentNotFound) {
		author, authorErr := handler.currentAuthor(ctx)
		if authorErr != nil {
			ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: fmt.Sprintf("error loading user: %v", authorErr)})
			return
		}
		ctx.JSON(http.StatusNotFound, PostCommentFailedResponse{
			UserName:  author.Name,
			UserEmail: author.Email,
			Note:      MsgParentNotFound,
		})
		return
	}
	if errors.Is(err, forum.ErrPostNotFound) {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error()})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("error posting comment: %v", err)})
		return
	}

	ctx.JSON(http.StatusCreated, PostCommentResponse{
		ID:        view.ID,
		PostID:    view.PostID,
		ParentIdx: parentIdx(view.Comment),
		Date:      formatDate(view.CommentedAt, handler.location),
		UserID:    view.UserID,
		UserName:  view.Author.Name,
		UserEmail: view.Author.Email,
	})
}

// DeleteComment handles the DELETE request removing a comment and its replies
// @Summary Delete comment
// @Tags Forum
// @Produce json
// @Param comment_id query int true "Comment ID"
// @Success 200 {object} InfoResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /delete_comment [delete]
func (handler *forumHandler) DeleteComment(ctx *gin.Context) {
	commentID, ok := parseID(ctx, "comment id", ctx.Query("comment_id"))
	if !ok {
		return
	}

	err := handler.forumService.DeleteComment(ctx, commentID, currentUserID(ctx))
	switch {
	case errors.Is(err, forum.ErrCommentNotFound):
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: MsgDeleteNotFound})
	case errors.Is(err, forum.ErrNotOwner):
		ctx.JSON(http.StatusForbidden, ErrorResponse{Message: MsgDeleteOwnerInvalid})
	case err != nil:
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: fmt.Sprintf("error deleting comment: %v", err)})
	default:
		ctx.JSON(http.StatusOK, InfoResponse{Message: MsgOK})
	}
}
