package models

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateEventDraft checks the fields required to store an event. The
// category is optional and defaults to Concert.
func ValidateEventDraft(d *EventDraft) error {
	d.Title = strings.TrimSpace(d.Title)
	d.Date = strings.TrimSpace(d.Date)
	d.Location = strings.TrimSpace(d.Location)
	d.Image = strings.TrimSpace(d.Image)
	d.Description = strings.TrimSpace(d.Description)

	var errs ValidationErrors
	if err := validate.Struct(d); err != nil {
		errs = append(errs, fieldErrors(err)...)
	}
	if d.Category == "" {
		d.Category = CategoryConcert
	} else if c, err := ParseCategory(string(d.Category)); err != nil {
		errs = append(errs, err.(*ValidationError))
	} else {
		d.Category = c
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateHolder checks the buyer-supplied name and email of a purchase.
func ValidateHolder(name, email string) error {
	return validateContact(name, email, "holder_name", "holder_email")
}

// ValidateSeller checks the name and email of a seller registration.
func ValidateSeller(name, email string) error {
	return validateContact(name, email, "name", "email")
}

func validateContact(name, email, nameField, emailField string) error {
	var errs ValidationErrors
	if strings.TrimSpace(name) == "" {
		errs = append(errs, &ValidationError{Field: nameField, Message: "is required"})
	}
	if strings.TrimSpace(email) == "" {
		errs = append(errs, &ValidationError{Field: emailField, Message: "is required"})
	} else if err := validate.Var(strings.TrimSpace(email), "email"); err != nil {
		errs = append(errs, &ValidationError{Field: emailField, Message: "is not a valid email address"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func fieldErrors(err error) ValidationErrors {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ValidationErrors{{Field: "input", Message: err.Error()}}
	}
	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, &ValidationError{Field: fe.Field(), Message: describe(fe)})
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "uri":
		return "must be a valid URI"
	}
	return "failed " + fe.Tag() + " check"
}
