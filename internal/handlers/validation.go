package handlers

import (
	"fmt"
	"reflect"
	"strings"

	"catalog/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// newValidator returns a validator that understands decimal prices.
func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	// Registered for a fixed tag name, so the error is always nil.
	_ = v.RegisterValidation("price", validatePrice)
	return v
}

// validatePrice runs after the decimal type func, so the field normally arrives
// as a float64.
func validatePrice(fl validator.FieldLevel) bool {
	switch value := fl.Field().Interface().(type) {
	case float64:
		return models.ValidPrice(decimal.NewFromFloat(value))
	case decimal.Decimal:
		return models.ValidPrice(value)
	default:
		return false
	}
}

// validationMessages maps each failing field to a readable reason.
func validationMessages(err error) map[string]string {
	messages := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		messages["body"] = err.Error()
		return messages
	}

	for _, e := range validationErrors {
		field := e.Field()
		switch e.Tag() {
		case "required":
			messages[field] = fmt.Sprintf("%s is required", field)
		case "min":
			messages[field] = fmt.Sprintf("%s must not be empty", field)
		case "price":
			messages[field] = fmt.Sprintf("%s must have at most %d decimal places and %d integer digits",
				field, models.PriceScale, models.PricePrecision-models.PriceScale)
		case "gte":
			messages[field] = fmt.Sprintf("%s must be greater than or equal to %s", field, e.Param())
		default:
			messages[field] = fmt.Sprintf("Field '%s' failed on the '%s' tag", field, e.Tag())
		}
	}
	return messages
}
