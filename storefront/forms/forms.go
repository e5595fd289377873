// Package forms checks form input before anything is submitted and keeps a
// message per field for inline display.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"

	"plant_nursery/model"
)

// FieldError is one inline message.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		return StrongPassword(fl.Field().String())
	})
	return v
}

// StrongPassword requires at least 8 characters with a letter and a digit.
func StrongPassword(password string) bool {
	var letter, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return len([]rune(password)) >= 8 && letter && digit
}

var messages = map[string]string{
	"required":       "is required",
	"email":          "must be a valid email address",
	"strongpassword": "must be at least 8 characters with a letter and a digit",
	"eqfield":        "does not match",
	"numeric":        "must contain digits only",
	"oneof":          "is not an allowed value",
}

func message(fe validator.FieldError) string {
	if m, ok := messages[fe.Tag()]; ok {
		return m
	}
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	}
	return "is invalid"
}

// Check validates form and returns nil or a *multierror.Error of
// *FieldError, one per failing field.
func Check(form interface{}) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	var result *multierror.Error
	for _, fe := range fieldErrs {
		result = multierror.Append(result, &FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return result.ErrorOrNil()
}

// FieldErrors maps field names to their message for inline display.
func FieldErrors(err error) map[string]string {
	out := make(map[string]string)
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		return out
	}
	for _, e := range merr.Errors {
		var fe *FieldError
		if errors.As(e, &fe) {
			out[fe.Field] = fe.Message
		}
	}
	return out
}

type Login struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type Signup struct {
	Name     string `form:"name" validate:"required,min=3,max=50"`
	Email    string `form:"email" validate:"required,email"`
	Phone    string `form:"phone" validate:"omitempty,numeric,min=10,max=15"`
	Password string `form:"password" validate:"required,strongpassword"`
	Confirm  string `form:"confirmPassword" validate:"required,eqfield=Password"`
}

func (s Signup) Request() model.SignupRequestBody {
	return model.SignupRequestBody{UserRequestBody: model.UserRequestBody{
		Name: s.Name, Email: s.Email, Phone: s.Phone, Password: s.Password,
	}}
}

type PasswordChange struct {
	Current string `form:"currentPassword" validate:"required"`
	New     string `form:"newPassword" validate:"required,strongpassword"`
	Confirm string `form:"confirmPassword" validate:"required,eqfield=New"`
}

type Category struct {
	Name        string `form:"name" validate:"required,max=60"`
	Type        string `form:"type" validate:"required,oneof=Pots Flowers Plants Utensils Tools Seeds Fertilizers Others"`
	Description string `form:"description"`
}

func (c Category) Request() model.CategoryRequest {
	return model.CategoryRequest{Name: c.Name, Type: model.CategoryType(c.Type), Description: c.Description}
}
