package validators

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	instance     *validator.Validate
	instanceOnce sync.Once

	tickerPattern = regexp.MustCompile(`^\^?[A-Z]{1,5}(\.[A-Z])?$`)
)

// Get returns the shared validator with the custom tags of this module registered.
func Get() *validator.Validate {
	instanceOnce.Do(func() {
		v := validator.New()
		// registration only fails for empty tags or nil funcs
		_ = v.RegisterValidation("ticker", TickerValidation)
		_ = v.RegisterValidation("notblank", NotBlankValidation)
		instance = v
	})
	return instance
}

// ValidateStruct validates s and flattens field errors into a single message
func ValidateStruct(s interface{}) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		messages := make([]string, 0, len(validationErrors))
		for _, fieldErr := range validationErrors {
			messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
		}
		return fmt.Errorf("validation failed: %v", messages)
	}
	return fmt.Errorf("validation error: %w", err)
}

// TickerValidation accepts exchange symbols such as AAPL, BRK.B and index symbols such as ^GSPC.
func TickerValidation(fl validator.FieldLevel) bool {
	return tickerPattern.MatchString(fl.Field().String())
}

// NotBlankValidation rejects strings made only of whitespace.
func NotBlankValidation(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
