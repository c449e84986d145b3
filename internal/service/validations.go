package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	errorvalues "github.com/limbo/momentum/internal/error_values"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
	})
}

// validateStruct folds validator field errors into a single value that
// handlers can recognize as a bad-request condition.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		joined := errorvalues.ErrValidation
		for _, fieldErr := range validationErrors {
			joined = fmt.Errorf("%w; field %s failed on %s", joined, fieldErr.Field(), fieldErr.Tag())
		}
		return joined
	}
	return errors.New("validation unexpected error: " + err.Error())
}
