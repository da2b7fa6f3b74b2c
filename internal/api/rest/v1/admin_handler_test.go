//go:build unit
// +build unit

package v1

import (
	"errors"
	"net/http"
	"testing"

	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/users"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAdminHandler_Run(t *testing.T) {
	mockPortfolioService := new(MockPortfolioService)
	mockSeeder := new(MockDemoSeeder)
	handler := NewAdminHandler(mockPortfolioService, mockSeeder)

	mockPortfolioService.On("DumpTransactions", mock.Anything).Return(nil).Once()
	mockSeeder.On("SeedDemo", mock.Anything).Return(errors.New("disk full")).Once()

	c, w := testutil.NewJSONContext(t, http.MethodPost, "/admin", AdminRequest{Action: ActionDumpTransactions})
	withClaims(c, 1, users.RoleAdmin)
	handler.Run(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "dump_transactions completed"}`, w.Body.String())

	c, w = testutil.NewJSONContext(t, http.MethodPost, "/admin", AdminRequest{Action: ActionSeedForum})
	withClaims(c, 1, users.RoleAdmin)
	handler.Run(c)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "disk full")

	c, w = testutil.NewJSONContext(t, http.MethodPost, "/admin", AdminRequest{Action: "drop_tables"})
	withClaims(c, 1, users.RoleAdmin)
	handler.Run(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	mockPortfolioService.AssertExpectations(t)
	mockSeeder.AssertExpectations(t)
}
