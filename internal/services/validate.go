package services

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/soaringjerry/Sondage/internal/utils"
)

// French landline/mobile numbers, optionally +33 prefixed and grouped by two.
var frenchPhone = regexp.MustCompile(`^(0|\+33)[1-9]([-. ]?[0-9]{2}){4}$`)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		if err := validate.RegisterValidation("frphone", func(fl validator.FieldLevel) bool {
			return frenchPhone.MatchString(fl.Field().String())
		}); err != nil {
			panic(fmt.Sprintf("register frphone validation: %v", err))
		}
	})
	return validate
}

type credentials struct {
	Name  string `validate:"required"`
	Phone string `validate:"required"`
}

// ValidateCredentials checks the login form: both fields non-blank and a
// well-formed phone number.
func ValidateCredentials(name, phone string) error {
	v := validatorInstance()
	if err := v.Struct(credentials{Name: strings.TrimSpace(name), Phone: strings.TrimSpace(phone)}); err != nil {
		return NewInvalidError(utils.T("login.missing_fields"))
	}
	if err := v.Var(phone, "frphone"); err != nil {
		return NewInvalidError(utils.T("login.invalid_phone"))
	}
	return nil
}

// NormalizeQuestion drops blank options and rejects a question left without any.
func NormalizeQuestion(in QuestionInput) (QuestionInput, error) {
	opts := make([]string, 0, len(in.Options))
	for _, o := range in.Options {
		if strings.TrimSpace(o) == "" {
			continue
		}
		opts = append(opts, o)
	}
	if len(opts) == 0 {
		return in, NewInvalidError(utils.T("question.no_options"))
	}
	in.Options = opts
	return in, nil
}
