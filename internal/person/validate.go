package person

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// NameMode selects how name fields are matched. Anchored requires the whole
// value to be made of name characters; Substring accepts any value that
// contains at least one run of name characters, even amid other noise.
type NameMode int

const (
	NameModeAnchored NameMode = iota
	NameModeSubstring
)

func ParseNameMode(s string) (NameMode, error) {
	switch s {
	case "", "anchored":
		return NameModeAnchored, nil
	case "substring":
		return NameModeSubstring, nil
	default:
		return NameModeAnchored, fmt.Errorf("unknown name validation mode %q", s)
	}
}

var (
	nameAnchoredRegex  = regexp.MustCompile(`^[A-Za-z'\-\s]+$`)
	nameSubstringRegex = regexp.MustCompile(`[A-Za-z'\-\s]+`)
	emailRegex         = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	departmentRegex    = regexp.MustCompile(`^[A-Za-z\d\s&'\-]+$`)

	// The add and update pages accept slightly different phone shapes: the
	// add page treats the country code as optional, the update page requires
	// at least one country-code digit before the area code.
	phoneAddRegex    = regexp.MustCompile(`^\+?\d{0,3}\s?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}$`)
	phoneUpdateRegex = regexp.MustCompile(`^\+?\d{1,3}?\s?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}$`)
)

func ValidName(s string, mode NameMode) bool {
	if mode == NameModeSubstring {
		return nameSubstringRegex.MatchString(s)
	}
	return nameAnchoredRegex.MatchString(s)
}

func ValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

func ValidPhoneAdd(s string) bool {
	return phoneAddRegex.MatchString(s)
}

func ValidPhoneUpdate(s string) bool {
	return phoneUpdateRegex.MatchString(s)
}

func ValidDepartment(s string) bool {
	return departmentRegex.MatchString(s)
}

// ValidAge reports whether s is an integer strictly greater than zero.
func ValidAge(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n > 0
}

// NewFormValidator builds the validator used on the add path, where every
// field must pass at once.
func NewFormValidator(mode NameMode) *validator.Validate {
	v := validator.New()

	v.RegisterValidation("person_name", func(fl validator.FieldLevel) bool {
		return ValidName(fl.Field().String(), mode)
	})
	v.RegisterValidation("loose_email", func(fl validator.FieldLevel) bool {
		return ValidEmail(fl.Field().String())
	})
	v.RegisterValidation("phone_add", func(fl validator.FieldLevel) bool {
		return ValidPhoneAdd(fl.Field().String())
	})
	v.RegisterValidation("department", func(fl validator.FieldLevel) bool {
		return ValidDepartment(fl.Field().String())
	})
	v.RegisterValidation("positive_int", func(fl validator.FieldLevel) bool {
		return ValidAge(fl.Field().String())
	})

	return v
}
