//go:build unit
// +build unit

package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quoteRequest struct {
	Symbol string `validate:"required,ticker"`
	Note   string `validate:"omitempty,notblank"`
}

func TestTickerValidation(t *testing.T) {
	tests := []struct {
		symbol string
		valid  bool
	}{
		{"AAPL", true},
		{"^GSPC", true},
		{"BRK.B", true},
		{"V", true},
		{"aapl", false},
		{"TOOLONG", false},
		{"BRK.BB", false},
		{"^", false},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			err := ValidateStruct(&quoteRequest{Symbol: tt.symbol})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "Field: Symbol, Tag: ticker")
			}
		})
	}
}

func TestNotBlankValidation(t *testing.T) {
	err := ValidateStruct(&quoteRequest{Symbol: "MSFT", Note: "   "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Field: Note, Tag: notblank")

	assert.NoError(t, ValidateStruct(&quoteRequest{Symbol: "MSFT", Note: "earnings"}))
}

func TestGet_ReturnsSharedInstance(t *testing.T) {
	assert.Same(t, Get(), Get())
}
