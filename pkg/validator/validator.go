package validator

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// DefaultTranscriptLength is the minimum trimmed length enforced by the transcript rule
const DefaultTranscriptLength = 10

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance. Error messages use json field names.
func New() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	// transcript or transcript=N: at least N non-blank characters after trimming
	mustRegister(v, "transcript", validateTranscript)
	return &CustomValidator{v: v}
}

// mustRegister panics on a registration error so a bad tag never disables a rule
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validator: register %q: %v", tag, err))
	}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok {
		return fmt.Errorf("%s", Describe(errs))
	}
	return err
}

func validateTranscript(fl validator.FieldLevel) bool {
	minLength := DefaultTranscriptLength
	if p := fl.Param(); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			minLength = n
		}
	}
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= minLength
}

// Describe renders validation errors as one readable line
func Describe(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		msgs = append(msgs, describeField(fe))
	}
	return strings.Join(msgs, "; ")
}

func describeField(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "transcript":
		minLength := fe.Param()
		if minLength == "" {
			minLength = strconv.Itoa(DefaultTranscriptLength)
		}
		return fmt.Sprintf("%s must contain at least %s characters", field, minLength)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "dive":
		return fmt.Sprintf("%s contains an invalid item", field)
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}
