package admin

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
)

// Enum is implemented by closed string sets such as order statuses. Fields
// tagged `validate:"enum"` must hold a valid member.
type Enum interface {
	Valid() bool
}

// FormValue is implemented by field types with their own text form in the
// dialog, such as an order's line items.
type FormValue interface {
	ParseFormValue(text string) error
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func formValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		// decimals are validated as numbers: `validate:"gte=0"`
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.InexactFloat64()
			}
			return nil
		}, decimal.Decimal{})
		_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
			e, ok := fl.Field().Interface().(Enum)
			return ok && e.Valid()
		})
		validate = v
	})
	return validate
}

// ValidateForm enforces what native form controls would: required fields,
// numeric ranges and enumerated choices.
func ValidateForm(form any) error {
	if err := formValidator().Struct(form); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}
	return nil
}

// DecodeForm overlays string field values, keyed by json name, onto form.
// Fields not present in values keep their current value. Numbers are parsed
// from their text, comma separated text fills string lists, and FormValue or
// encoding.TextUnmarshaler types parse themselves.
func DecodeForm[F any](values map[string]string, form *F) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		ZeroFields:       true,
		Result:           form,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			formValueHook,
			mapstructure.TextUnmarshallerHookFunc(),
			commaListHook,
			emptyToNilHook,
		),
	})
	if err != nil {
		return fmt.Errorf("failed to build form decoder: %w", err)
	}
	if err := dec.Decode(values); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}
	return nil
}

func formValueHook(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
	if f.Kind() != reflect.String {
		return data, nil
	}
	result := reflect.New(t).Interface()
	fv, ok := result.(FormValue)
	if !ok {
		return data, nil
	}
	if err := fv.ParseFormValue(data.(string)); err != nil {
		return nil, err
	}
	return result, nil
}

// An empty optional field clears the pointer instead of storing a zero. It
// must run last: a nil result ends the hook chain.
func emptyToNilHook(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
	if f.Kind() == reflect.String && t.Kind() == reflect.Ptr && data.(string) == "" {
		return nil, nil
	}
	return data, nil
}

func commaListHook(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
	if f.Kind() != reflect.String || t.Kind() != reflect.Slice || t.Elem().Kind() != reflect.String {
		return data, nil
	}
	return SplitList(data.(string)), nil
}

// SplitList splits a comma separated list, trimming blanks and dropping
// empty entries.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
