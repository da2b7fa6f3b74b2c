//go:build unit
// +build unit

package v1

import (
	"errors"
	"net/http"
	"testing"

	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/users"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testUser() *users.User {
	return &users.User{
		ID:        7,
		Email:     "ada@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Role:      users.RoleUser,
		Cash:      decimal.RequireFromString("10000"),
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	mockUserService := new(MockUserService)
	handler := NewAuthHandler(mockUserService)

	mockUserService.On("Register", mock.Anything, users.Registration{
		Email: "ada@example.com", Password: "password1", FirstName: "Ada", LastName: "Lovelace",
	}).Return(testUser(), nil)

	c, w := testutil.NewJSONContext(t, http.MethodPost, "/auth/register", RegisterRequest{
		Email: "ada@example.com", Password: "password1", FirstName: "Ada", LastName: "Lovelace",
	})
	handler.Register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp UserInfoResponse
	testutil.DecodeJSON(t, w, &resp)
	assert.Equal(t, uint(7), resp.ID)
	assert.Equal(t, "$10,000.00", resp.CashDisplay)
	mockUserService.AssertExpectations(t)
}

func TestAuthHandler_Register_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"Duplicate email", users.ErrEmailTaken, http.StatusConflict},
		{"Invalid fields", errors.New("validation failed: [Field: Password, Tag: min]"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserService := new(MockUserService)
			handler := NewAuthHandler(mockUserService)
			mockUserService.On("Register", mock.Anything, mock.Anything).Return(nil, tt.err)

			c, w := testutil.NewJSONContext(t, http.MethodPost, "/auth/register", RegisterRequest{Email: "ada@example.com"})
			handler.Register(c)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	mockUserService := new(MockUserService)
	handler := NewAuthHandler(mockUserService)

	mockUserService.On("Login", mock.Anything, "ada@example.com", "password1").Return("signed.jwt", testUser(), nil)
	mockUserService.On("Login", mock.Anything, "ada@example.com", "wrong-pass").Return("", nil, users.ErrInvalidCredentials)

	c, w := testutil.NewJSONContext(t, http.MethodPost, "/auth/login", LoginRequest{Email: "ada@example.com", Password: "password1"})
	handler.Login(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"token": "signed.jwt"}`, w.Body.String())

	c, w = testutil.NewJSONContext(t, http.MethodPost, "/auth/login", LoginRequest{Email: "ada@example.com", Password: "wrong-pass"})
	handler.Login(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	c, w = testutil.NewJSONContext(t, http.MethodPost, "/auth/login", LoginRequest{Email: "ada@example.com"})
	handler.Login(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	mockUserService.AssertExpectations(t)
}

func TestAuthHandler_VerifyEmail(t *testing.T) {
	mockUserService := new(MockUserService)
	handler := NewAuthHandler(mockUserService)
	mockUserService.On("EmailExists", mock.Anything, "ada@example.com").Return(true, nil)

	c, w := testutil.NewJSONContext(t, http.MethodGet, "/verify_email?email=ada@example.com", nil)
	handler.VerifyEmail(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"exists": true}`, w.Body.String())

	c, w = testutil.NewJSONContext(t, http.MethodGet, "/verify_email", nil)
	handler.VerifyEmail(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_GetUserInfo(t *testing.T) {
	mockUserService := new(MockUserService)
	handler := NewAuthHandler(mockUserService)
	mockUserService.On("GetByID", mock.Anything, uint(7)).Return(testUser(), nil)

	c, w := testutil.NewJSONContext(t, http.MethodGet, "/get_user_info", nil)
	withClaims(c, 7, users.RoleUser)
	handler.GetUserInfo(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp UserInfoResponse
	testutil.DecodeJSON(t, w, &resp)
	assert.Equal(t, "Lovelace", resp.LastName)
	assert.Equal(t, float64(10000), resp.Cash)
}

func TestAuthHandler_UpdateUserProfile(t *testing.T) {
	mockUserService := new(MockUserService)
	handler := NewAuthHandler(mockUserService)

	pfp := "data:image/png;base64,iVBORw0KGgo="
	updated := testUser()
	updated.Pfp = pfp
	mockUserService.On("UpdateProfile", mock.Anything, uint(7), users.ProfileUpdate{
		FirstName: "Ada", LastName: "King", Pfp: &pfp,
	}).Return(updated, nil)

	c, w := testutil.NewJSONContext(t, http.MethodPost, "/update_user_profile", UpdateProfileRequest{
		FirstName: "Ada", LastName: "King", Pfp: &pfp,
	})
	withClaims(c, 7, users.RoleUser)
	handler.UpdateUserProfile(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), pfp)
	mockUserService.AssertExpectations(t)
}

func TestAuthHandler_Index(t *testing.T) {
	mockUserService := new(MockUserService)
	handler := NewAuthHandler(mockUserService)
	mockUserService.On("GetByID", mock.Anything, uint(7)).Return(testUser(), nil)

	c, w := testutil.NewJSONContext(t, http.MethodGet, "/index", nil)
	handler.Index(c)
	assert.Equal(t, http.StatusOK, w.Code)
	var anonymous IndexResponse
	testutil.DecodeJSON(t, w, &anonymous)
	assert.Nil(t, anonymous.User)
	assert.Equal(t, BasePath+"/auth/login", anonymous.LoginURL)

	c, w = testutil.NewJSONContext(t, http.MethodGet, "/index", nil)
	withClaims(c, 7, users.RoleUser)
	handler.Index(c)
	var signedIn IndexResponse
	testutil.DecodeJSON(t, w, &signedIn)
	if assert.NotNil(t, signedIn.User) {
		assert.Equal(t, "ada@example.com", signedIn.User.Email)
	}
}
