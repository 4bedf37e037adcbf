package api

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/fsdevblog/gumball-machine/internal/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// validateMaxBytes в отличии от тэга max, который проверяет длину в рунах, проверяет длину в байтах.
func validateMaxBytes(fl validator.FieldLevel) bool {
	maxBytes, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	str, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return len(str) <= maxBytes
}

// decimalValue отдает валидатору decimal.Decimal строкой, иначе валидатор обходит поля структуры
// и не применяет к ней теги.
func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

// validateNonNegative проверяет, что decimal поле не отрицательное.
func validateNonNegative(fl validator.FieldLevel) bool {
	str, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	d, err := decimal.NewFromString(str)
	return err == nil && !d.IsNegative()
}

func validateOperation(fl validator.FieldLevel) bool {
	str, ok := fl.Field().Interface().(string)
	return ok && domain.Operation(str).IsKnown()
}

func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("validator registration: unexpected validator engine")
	}
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	validations := map[string]validator.Func{
		"max_bytes":    validateMaxBytes,
		"non_negative": validateNonNegative,
		"operation":    validateOperation,
	}
	for tag, fn := range validations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("validator registration `%s`: %w", tag, err)
		}
	}
	return nil
}
