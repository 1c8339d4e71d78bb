package httpx

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{5,19}$`)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

// Validate checks struct tags and reports the first failing field as an
// ErrValidation.
func Validate(target any) error {
	err := validatorInstance().Struct(target)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return Validation("invalid request")
	}
	return Validation("%s", fieldMessage(fieldErrs[0]))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "gt":
		return field + " must be greater than " + fe.Param()
	case "gte":
		return field + " must be at least " + fe.Param()
	case "ne":
		return field + " must not be " + fe.Param()
	case "nefield":
		return field + " must differ from " + fieldName(fe.Param())
	case "ltefield":
		return field + " must not exceed " + fieldName(fe.Param())
	case "oneof":
		return field + " must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		return field + " must be at least " + fe.Param() + boundUnit(fe)
	case "max":
		return field + " must be at most " + fe.Param() + boundUnit(fe)
	case "datetime":
		return field + " must be a date in " + layoutName(fe.Param()) + " form"
	case "e164", "phone":
		return field + " must be a valid phone number"
	default:
		return field + " is invalid"
	}
}

// boundUnit names what a min or max tag counts for the field's kind.
func boundUnit(fe validator.FieldError) string {
	switch fe.Kind() {
	case reflect.String:
		return " characters"
	case reflect.Slice, reflect.Array, reflect.Map:
		return " items"
	default:
		return ""
	}
}

// fieldName converts a Go field name used in cross-field tags to its
// snake_case wire name.
func fieldName(goName string) string {
	var b strings.Builder
	prevUpper := true
	for _, r := range goName {
		upper := r >= 'A' && r <= 'Z'
		if upper {
			if !prevUpper {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		prevUpper = upper
		b.WriteRune(r)
	}
	return b.String()
}

func layoutName(layout string) string {
	return strings.NewReplacer("2006", "YYYY", "01", "MM", "02", "DD").Replace(layout)
}
