package handlers

import (
	"fmt"

	"github.com/SscSPs/transactions_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the money, quantity and currency_code tags to gin's validator.
// It is safe to call more than once.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	for tag, fn := range map[string]validator.Func{
		"money":         validateMoney,
		"quantity":      validateQuantity,
		"currency_code": validateCurrencyCode,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s validator: %w", tag, err)
		}
	}
	return nil
}

// validateMoney checks the amount syntax only; range and sign depend on the currency
// and are checked by the service.
func validateMoney(fl validator.FieldLevel) bool {
	_, err := domain.ParseMoney(fl.Field().String(), domain.EGP)
	return err == nil
}

func validateQuantity(fl validator.FieldLevel) bool {
	_, err := domain.ParseQuantity(fl.Field().String())
	return err == nil
}

func validateCurrencyCode(fl validator.FieldLevel) bool {
	_, err := domain.ParseCurrency(fl.Field().String())
	return err == nil
}
