package model

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidEvent is wrapped by every schema validation failure.
var ErrInvalidEvent = errors.New("invalid hyperreal record")

var (
	agentIDPattern   = regexp.MustCompile(`^(player|coach|referee|commentator)-[a-z0-9-]+$`)
	matchTimePattern = regexp.MustCompile(`^[0-9]{1,3}:[0-5][0-9]$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names so errors read like the wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "agentid", func(fl validator.FieldLevel) bool {
		return agentIDPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "matchtime", func(fl validator.FieldLevel) bool {
		return matchTimePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "timestamp", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(time.RFC3339, fl.Field().String())
		return err == nil
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// ValidAgentID reports whether id matches the agent id pattern.
func ValidAgentID(id string) bool { return agentIDPattern.MatchString(id) }

// Validate checks the shape of an Event, MatchState or any other record in
// this package. The returned error wraps ErrInvalidEvent and names every
// failing field.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", trimRoot(fe.Namespace()), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidEvent, strings.Join(msgs, "; "))
}

// trimRoot drops the struct type prefix from a validator namespace.
func trimRoot(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
