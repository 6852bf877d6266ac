package validation

import (
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/atoz-lab/backend/pkg/errorx"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

type Violation struct {
	Field   string
	Message string
}

// Rule is a predicate which has already been evaluated. A failed rule turns
// into a Violation.
type Rule struct {
	Field   string
	Message string
	Valid   bool
}

func Check(field string, valid bool, message string) Rule {
	return Rule{Field: field, Valid: valid, Message: message}
}

// Ruler is implemented by requests that need rules which cannot be expressed
// as struct tags.
type Ruler interface {
	Rules() []Rule
}

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New()

	// notblank rejects strings made only of whitespace, which required
	// accepts.
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate evaluates the struct tags of req, then its Rules if req is a Ruler.
// Violations keep the declaration order.
func Validate(req any) []Violation {
	var violations []Violation

	if isStruct(req) {
		err := structValidator.Struct(req)
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrs {
				violations = append(violations, Violation{
					Field:   fe.Field(),
					Message: tagMessage(fe),
				})
			}
		}
	}

	if ruler, ok := req.(Ruler); ok {
		for _, rule := range ruler.Rules() {
			if !rule.Valid {
				violations = append(violations, Violation{Field: rule.Field, Message: rule.Message})
			}
		}
	}

	return violations
}

// Error converts violations into a validation error grouped by field. It
// returns nil if there is no violation.
func Error(violations []Violation) error {
	if len(violations) == 0 {
		return nil
	}

	fields := map[string][]string{}
	for _, v := range violations {
		fields[v.Field] = append(fields[v.Field], v.Message)
	}

	return errorx.NewValidation(fields)
}

// Password checks the password policy. Character classes are ASCII, any
// other character counts as non alphanumeric.
func Password(field, password string) []Rule {
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case 'A' <= r && r <= 'Z':
			upper = true
		case 'a' <= r && r <= 'z':
			lower = true
		case '0' <= r && r <= '9':
			digit = true
		default:
			special = true
		}
	}

	return []Rule{
		Check(field, utf8.RuneCountInString(password) >= 6, "Password must be at least 6 characters"),
		Check(field, upper, "Password must contain 1 uppercase letter"),
		Check(field, lower, "Password must contain 1 lowercase letter"),
		Check(field, digit, "Password must contain 1 number"),
		Check(field, special, "Password must contain 1 non alphanumeric character"),
	}
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s must not be empty", fe.Field())
	case "email":
		return fmt.Sprintf("%s is not a valid email address", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func isStruct(v any) bool {
	t := reflect.TypeOf(v)
	if t == nil {
		return false
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}
