package services

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
)

// Custom validation tags and their messages.
const (
	notBlankTag  = "notblank"
	notBlankText = "{0} must not be blank"

	percentTag  = "percent"
	percentText = "{0} must be a number between 0 and 100"

	gradeTag  = "grade"
	gradeText = "{0} must be a number or a fraction such as 42/50"
)

// inputValidator checks user input before it reaches a store.
type inputValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// calculatorInput is the user-editable part of a calculator.
type calculatorInput struct {
	Name         string `json:"name" validate:"notblank,max=100"`
	DesiredGrade string `json:"desiredGrade" validate:"omitempty,numeric"`
}

// assignmentInput is the user-editable part of an assignment row.
type assignmentInput struct {
	Name    string `json:"name" validate:"max=200"`
	Weight  string `json:"weight" validate:"omitempty,percent"`
	Grade   string `json:"grade" validate:"omitempty,grade"`
	DueDate string `json:"dueDate" validate:"max=100"`
}

func newInputValidator() *inputValidator {
	locale := en.New()
	uni := ut.New(locale, locale)
	translator, _ := uni.GetTranslator("en")

	validate := validator.New()
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Report JSON field names rather than Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v := &inputValidator{validate: validate, translator: translator}
	v.register(notBlankTag, notBlankText, func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	v.register(percentTag, percentText, func(fl validator.FieldLevel) bool {
		f, err := strconv.ParseFloat(strings.TrimSpace(fl.Field().String()), 64)
		return err == nil && f >= 0 && f <= 100
	})
	v.register(gradeTag, gradeText, func(fl validator.FieldLevel) bool {
		return domain.IsValidGrade(fl.Field().String())
	})
	return v
}

// register adds a custom tag with an English message.
func (v *inputValidator) register(tag, text string, fn validator.Func) {
	_ = v.validate.RegisterValidation(tag, fn)
	_ = v.validate.RegisterTranslation(
		tag, v.translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// check validates a struct and maps field errors onto domain.ErrInvalidInput.
func (v *inputValidator) check(input any) error {
	err := v.validate.Struct(input)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fe.Translate(v.translator))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
}

func (v *inputValidator) checkAssignment(a domain.Assignment) error {
	return v.check(assignmentInput{
		Name:    a.Name,
		Weight:  a.Weight,
		Grade:   a.Grade,
		DueDate: a.DueDate,
	})
}
