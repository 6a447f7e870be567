// Package bind decodes JSON request bodies and validates them with go-playground/validator.
// Failures come back as perr errors naming the offending json field
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "meetgrid/internal/platform/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// FieldLevel aliases validator.FieldLevel for custom tags
type FieldLevel = validator.FieldLevel

// ValidatorSvc pairs the validator with its english translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc
)

// Get returns the shared validator, building it on first use
func Get() *ValidatorSvc {
	vOnce.Do(func() {
		loc := en.New()
		trans, _ := ut.New(loc, loc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonName)
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		message(v, trans, "min", "{0} must be at least {1}")
		message(v, trans, "max", "{0} must be at most {1}")
		message(v, trans, "datetime", "{0} must be a date like 2025-01-31")
		register(v, trans, "clock", isClock, "{0} must be a time like 09:30")

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// RegisterValidation adds a custom tag with its english message
func RegisterValidation(tag string, fn validator.Func, msg string) error {
	s := Get()
	if err := s.Validator.RegisterValidation(tag, fn); err != nil {
		return err
	}
	message(s.Validator, s.Translator, tag, msg)
	return nil
}

func register(v *validator.Validate, trans ut.Translator, tag string, fn validator.Func, msg string) {
	_ = v.RegisterValidation(tag, fn)
	message(v, trans, tag, msg)
}

// message overrides the english text for tag, {0} is the field and {1} the tag param
func message(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field(), fe.Param())
			return s
		},
	)
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "":
		return f.Name
	case "-":
		return ""
	}
	return name
}

// isClock accepts HH:mm from 00:00 to 24:00
func isClock(fl FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	return m < 60 && (h < 24 || (h == 24 && m == 0))
}

// MaxBodyBytes caps request bodies
const MaxBodyBytes = 1 << 20

// ParseJSON decodes exactly one JSON value into T, rejecting unknown fields, then validates it
func ParseJSON[T any](r *http.Request) (T, error) {
	var dst T
	if r.Body == nil || r.Body == http.NoBody {
		return dst, perr.JSONErrf("empty body")
	}
	defer r.Body.Close()

	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes+1))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&dst); err != nil {
		return dst, decodeError(err)
	}
	if dec.More() {
		return dst, perr.JSONErrf("unexpected trailing data")
	}
	if err := Struct(dst); err != nil {
		return dst, err
	}
	return dst, nil
}

// Struct validates v and returns the first failure as a perr validation error
func Struct(v any) error {
	err := Get().Validator.Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "validator misuse")
	}
	field, msg := FieldAndMessage(err)
	return perr.Invalid(field, "%s", msg)
}

// FieldAndMessage returns the json path and english message of the first failure
// nested paths drop the root type name, Input.slots[2] becomes slots[2]
func FieldAndMessage(err error) (field, message string) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "", err.Error()
	}
	fe := verrs[0]
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		ns = rest
	}
	return ns, fe.Translate(Get().Translator)
}

func decodeError(err error) error {
	var syn *json.SyntaxError
	var typ *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return perr.JSONErrf("empty body")
	case errors.As(err, &syn):
		return perr.JSONErrf("malformed JSON at offset %d", syn.Offset)
	case errors.As(err, &typ):
		return perr.WithField(perr.JSONErrf("%s must be %s", typ.Field, typ.Type), typ.Field)
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		f := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return perr.WithField(perr.JSONErrf("unknown field %s", f), f)
	case errors.Is(err, io.ErrUnexpectedEOF):
		return perr.JSONErrf("truncated JSON")
	}
	return perr.JSONErrf("invalid JSON: %v", err)
}
