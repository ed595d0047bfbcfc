package handlers

import (
	"fmt"
	"strings"

	"pantry/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// formFieldNames maps struct field names to the form field names used as
// keys in error maps. Fields not listed here just lowercase.
var formFieldNames = map[string]string{
	"LoginField":  "login_field",
	"NewName":     "new_name",
	"NewCategory": "new_category",
}

// validationMessages maps "<StructField>.<tag>" to the user-facing
// message shown next to the field.
var validationMessages = map[string]string{
	"Username.required":    "Username required.",
	"Username.min":         "Username must be between 3 and 32 characters.",
	"Username.max":         "Username must be between 3 and 32 characters.",
	"Email.required":       "Email address required.",
	"Email.email":          "Please enter a valid email address.",
	"Password.required":    "Password required.",
	"Password.password":    "Password must be between 8 and 32 characters and include a lowercase letter, an uppercase letter, a number, and a non-alphanumeric character.",
	"Confirm.eqfield":      "Passwords must match.",
	"LoginField.required":  "Username or Email required.",
	"Ingredient.required":  "There is nothing to add!",
	"Ingredient.min":       "Hmm, not sure if that's an item.",
	"Ingredient.max":       "Hmm, not sure if that's an item.",
	"Item.required":        "There is nothing to add!",
	"Item.min":             "Hmm, not sure if that's an item.",
	"Item.max":             "Hmm, not sure if that's an item.",
	"Quantity.required":    "Enter a quantity.",
	"Category.required":    "Please select a category!",
	"NewName.required":     "New name required.",
	"NewName.min":          "Hmm, not sure if that's an item.",
	"NewName.max":          "Hmm, not sure if that's an item.",
	"NewCategory.required": "Please select a category!",
}

// collectErrors turns a validator error into a field-keyed message map.
// The first failure per field wins, matching how the form displayed one
// message per input.
func collectErrors(err error) map[string]string {
	out := make(map[string]string)
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["form"] = err.Error()
		return out
	}
	for _, e := range verrs {
		field, ok := formFieldNames[e.StructField()]
		if !ok {
			field = strings.ToLower(e.StructField())
		}
		if _, exists := out[field]; exists {
			continue
		}
		msg, ok := validationMessages[e.StructField()+"."+e.Tag()]
		if !ok {
			msg = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		out[field] = msg
	}
	return out
}

// fieldErrorStatus picks the HTTP status for a service-level validation
// failure: conflicts for duplicates, plain bad request otherwise.
func fieldErrorStatus(fieldErrs services.FieldErrors) int {
	for _, msg := range fieldErrs {
		if strings.Contains(msg, "already") {
			return fiber.StatusConflict
		}
	}
	return fiber.StatusBadRequest
}

// newValidator builds the validator shared by the handlers, with the
// account password policy registered as the "password" tag.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return services.ValidPassword(fl.Field().String())
	})
	return v
}
