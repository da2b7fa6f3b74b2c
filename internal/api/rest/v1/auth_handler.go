package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/users"
)

// AuthHandler defines the interface for handling account operations
type AuthHandler interface {
	Register(ctx *gin.Context)
	Login(ctx *gin.Context)
	VerifyEmail(ctx *gin.Context)
	GetUserInfo(ctx *gin.Context)
	UpdateUserProfile(ctx *gin.Context)
	Index(ctx *gin.Context)
}

type authHandler struct {
	userService users.UserService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService users.UserService) AuthHandler {
	return &authHandler{userService: userService}
}

// Register handles the POST request creating an account
// @Summary Register a trader account
// @Tags Auth
// @Accept json
// @Produce json
// @Param requestBody body RegisterRequest true "Account data"
// @Success 201 {object} UserInfoResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/register [post]
func (handler *authHandler) Register(ctx *gin.Context) {
	var request RegisterRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid registration data: %v", err)})
		return
	}

	user, err := handler.userService.Register(ctx, request.toRegistration())
	if errors.Is(err, users.ErrEmailTaken) {
		ctx.JSON(http.StatusConflict, ErrorResponse{Message: err.Error()})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("error registering user: %v", err)})
		return
	}

	ctx.JSON(http.StatusCreated, newUserInfoResponse(user))
}

// Login handles the POST request exchanging credentials for a token
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param requestBody body LoginRequest true "Credentials"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (handler *authHandler) Login(ctx *gin.Context) {
	var request LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid login data: %v", err)})
		return
	}
	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	token, _, err := handler.userService.Login(ctx, request.Email, request.Password)
	if errors.Is(err, users.ErrInvalidCredentials) {
		ctx.JSON(http.StatusUnauthorized, ErrorResponse{Message: err.Error()})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: fmt.Sprintf("error logging in: %v", err)})
		return
	}

	ctx.JSON(http.StatusOK, TokenResponse{Token: token})
}

// VerifyEmail handles the GET request checking whether an email is registered
// @Summary Check email availability
// @Tags Auth
// @Produce json
// @Param email query string true "Email"
// @Success 200 {object} EmailExistsResponse
// @Router /verify_email [get]
func (handler *authHandler) VerifyEmail(ctx *gin.Context) {
	email := ctx.Query("email")
	if email == "" {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "email query parameter is required"})
		return
	}

	exists, err := handler.userService.EmailExists(ctx, email)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: fmt.Sprintf("error checking email: %v", err)})
		return
	}
	ctx.JSON(http.StatusOK, EmailExistsResponse{Exists: exists})
}

// GetUserInfo handles the GET request describing the signed in user
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} UserInfoResponse
// @Failure 401 {object} ErrorResponse
// @Router /get_user_info [get]
func (handler *authHandler) GetUserInfo(ctx *gin.Context) {
	user, err := handler.userService.GetByID(ctx, currentUserID(ctx))
	if errors.Is(err, users.ErrUserNotFound) {
		ctx.JSON(http.StatusUnauthorized, ErrorResponse{Message: "account no longer exists"})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: fmt.Sprintf("error loading user: %v", err)})
		return
	}
	ctx.JSON(http.StatusOK, newUserInfoResponse(user))
}

// UpdateUserProfile handles the POST request editing names and profile picture
// @Summary Update profile
// @Tags Auth
// @Accept json
// @Produce json
// @Param requestBody body UpdateProfileRequest true "Profile"
// @Success 200 {object} UserInfoResponse
// @Failure 400 {object} ErrorResponse
// @Router /update_user_profile [post]
func (handler *authHandler) UpdateUserProfile(ctx *gin.Context) {
	var request UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid profile data: %v", err)})
		return
	}

	user, err := handler.userService.UpdateProfile(ctx, currentUserID(ctx), users.ProfileUpdate{
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Pfp:       request.Pfp,
	})
	if errors.Is(err, users.ErrUserNotFound) {
		ctx.JSON(http.StatusUnauthorized, ErrorResponse{Message: "account no longer exists"})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("error updating profile: %v", err)})
		return
	}
	ctx.JSON(http.StatusOK, newUserInfoResponse(user))
}

// Index handles the GET request for the landing page
// @Summary Landing page data
// @Tags Auth
// @Produce json
// @Success 200 {object} IndexResponse
// @Router /index [get]
func (handler *authHandler) Index(ctx *gin.Context) {
	response := IndexResponse{
		LoginURL:       BasePath + "/auth/login",
		SignupURL:      BasePath + "/auth/register",
		VerifyEmailURL: BasePath + "/verify_email",
	}

	if claims, ok := currentClaims(ctx); ok {
		user, err := handler.userService.GetByID(ctx, claims.UserID)
		if err != nil && !errors.Is(err, users.ErrUserNotFound) {
			ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: fmt.Sprintf("error loading user: %v", err)})
			return
		}
		if user != nil {
			info := newUserInfoResponse(user)
			response.User = &info
		}
	}

	ctx.JSON(http.StatusOK, response)
}
