package dto

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/vidanueva/church_admin_app/internal/core/domain"
)

// RegisterCustomValidations hooks domain value checks into gin's binding
// engine so malformed enum-like fields are rejected at bind time, before any
// service code runs. Call once at startup.
func RegisterCustomValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("currencycode", func(fl validator.FieldLevel) bool {
		value := strings.ToUpper(strings.TrimSpace(fl.Field().String()))
		return domain.ValidCurrency(domain.Currency(value))
	})
	v.RegisterValidation("deposittype", func(fl validator.FieldLevel) bool {
		value := strings.ToUpper(strings.TrimSpace(fl.Field().String()))
		return domain.ValidDepositType(domain.DepositType(value))
	})
	v.RegisterValidation("requeststatus", func(fl validator.FieldLevel) bool {
		value := strings.ToUpper(strings.TrimSpace(fl.Field().String()))
		return domain.ValidRequestStatus(domain.RequestStatus(value))
	})
}
