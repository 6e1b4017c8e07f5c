package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Draft is the editable form of a note: what a user types before submitting.
type Draft struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content"`
	Deadline string `json:"deadline" validate:"required,deadline"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("deadline", func(fl validator.FieldLevel) bool {
		_, err := ParseDeadline(fl.Field().String(), nil)
		return err == nil
	})
	return v
}

// Normalize returns the draft with surrounding whitespace removed from the title.
func (d Draft) Normalize() Draft {
	d.Title = strings.TrimSpace(d.Title)
	d.Deadline = strings.TrimSpace(d.Deadline)
	return d
}

// Validate checks the normalized draft. The returned error wraps ErrInvalidNote.
func (d Draft) Validate() error {
	err := validate.Struct(d.Normalize())
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidNote, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "deadline":
			msgs = append(msgs, fmt.Sprintf("%s %q is not a date (want %s)", field, fe.Value(), DateLayout))
		default:
			msgs = append(msgs, field+" failed "+fe.Tag())
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidNote, strings.Join(msgs, ", "))
}
