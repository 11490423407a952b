package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names so messages and params match the request body
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct returns one ErrorItem per failing field, using messages[param]
// when present.
func validateStruct(v any, messages map[string]string) []ErrorItem {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return []ErrorItem{{Msg: err.Error()}}
	}

	items := make([]ErrorItem, 0, len(ves))
	seen := make(map[string]bool, len(ves))
	for _, fe := range ves {
		param := fe.Field()
		if seen[param] {
			continue
		}
		seen[param] = true

		msg, ok := messages[param]
		if !ok {
			msg = fmt.Sprintf("Invalid value for %s", param)
		}
		items = append(items, ErrorItem{Msg: msg, Param: param, Location: "body"})
	}
	return items
}

func hasParam(items []ErrorItem, param string) bool {
	for _, it := range items {
		if it.Param == param {
			return true
		}
	}
	return false
}

// PasswordPolicy is the signup password rule.
type PasswordPolicy struct {
	MinLength    int
	Alphanumeric bool
}

func (p PasswordPolicy) rule() string {
	// bcrypt rejects anything longer than 72 bytes
	rule := fmt.Sprintf("required,min=%d,max=72", p.MinLength)
	if p.Alphanumeric {
		rule += ",alphanum"
	}
	return rule
}

func (p PasswordPolicy) message() string {
	if p.Alphanumeric {
		return fmt.Sprintf("Enter an alphanumeric password of atleast %d letters", p.MinLength)
	}
	return fmt.Sprintf("Enter a password of atleast %d letters", p.MinLength)
}

// Check returns a validation item when password breaks the policy.
func (p PasswordPolicy) Check(password string) *ErrorItem {
	if err := validate.Var(password, p.rule()); err != nil {
		return &ErrorItem{Msg: p.message(), Param: "password", Location: "body"}
	}
	return nil
}
