package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/fatemaakther1/Social-Media-App/internal/apperror"
	"github.com/fatemaakther1/Social-Media-App/internal/password"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// newValidator returns a validator that reports fields by their JSON names and knows the
// username rule.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	// Usernames are letters, digits, underscores and dashes.
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	// bcrypt limits passwords by bytes, max= counts characters.
	_ = v.RegisterValidation("bcryptlen", func(fl validator.FieldLevel) bool {
		return password.FitsBcrypt(fl.Field().String())
	})
	return v
}

// bind parses the JSON body into req and validates it.
func bind(c *fiber.Ctx, v *validator.Validate, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return apperror.InvalidRequest("Invalid request body")
	}
	if err := v.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return apperror.Internal(err)
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			if _, seen := fields[fe.Field()]; !seen {
				fields[fe.Field()] = fieldMessage(fe)
			}
		}
		return apperror.ValidationFailed("", fields)
	}
	return nil
}

var fieldLabels = map[string]string{
	"email":                 "Email",
	"password":              "Password",
	"password_confirmation": "Password confirmation",
	"username":              "Username",
	"currentPassword":       "Current password",
	"newPassword":           "New password",
	"confirmPassword":       "Password confirmation",
	"writtenText":           "Written text",
	"mediaLocation":         "Media location",
	"commentText":           "Comment text",
}

func fieldMessage(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Please provide a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s cannot be longer than %s characters", label, fe.Param())
	case "eqfield":
		return label + " does not match"
	case "bcryptlen":
		return fmt.Sprintf("%s cannot be longer than %d bytes", label, password.MaxBytes)
	case "username":
		return "Username can only contain letters, numbers, underscores, and dashes"
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}
