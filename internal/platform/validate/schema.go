// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/pkg/slug"
)

// engine bundles the struct validator with its English translator.
type engine struct {
	validate *validator.Validate
	trans    ut.Translator
}

// sharedEngine is built once; validator caches struct metadata internally.
var sharedEngine = sync.OnceValue(newEngine)

func newEngine() *engine {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")

	validate := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names ("category_id"), not Go names ("CategoryID").
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return field.Name
		}
		return name
	})

	_ = en_translations.RegisterDefaultTranslations(validate, trans)

	_ = validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slug.Valid(fl.Field().String())
	})
	_ = validate.RegisterTranslation("slug", trans,
		func(translator ut.Translator) error {
			return translator.Add("slug", "{0} must contain only lowercase letters, digits and hyphens", true)
		},
		func(translator ut.Translator, fe validator.FieldError) string {
			message, _ := translator.T("slug", fe.Field())
			return message
		},
	)

	return &engine{validate: validate, trans: trans}
}

// Struct evaluates the `validate` tags of v.
//
// Every violated rule becomes one [apperr.FieldError], in field order.
func Struct(v any) error {
	e := sharedEngine()

	err := e.validate.Struct(v)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return apperr.Internal(fmt.Errorf("validate_struct_misuse: %w", err))
	}

	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		return apperr.Internal(err)
	}

	details := make([]apperr.FieldError, 0, len(violations))
	for _, violation := range violations {
		details = append(details, apperr.FieldError{
			Field:   fieldPath(violation),
			Message: violation.Translate(e.trans),
			Kind:    kindOf(violation),
		})
	}
	return apperr.ValidationError("Validation failed", details...)
}

// Entity validates v and converts it into [Params].
//
// Nil pointers are treated as absent. Slices are serialized to JSON array text.
func Entity(v any) (Params, error) {
	if err := Struct(v); err != nil {
		return nil, err
	}
	return toParams(v)
}

// fieldPath drops the root struct name: "articleInput.tags[1]" -> "tags[1]".
func fieldPath(violation validator.FieldError) string {
	_, path, ok := strings.Cut(violation.Namespace(), ".")
	if !ok {
		return violation.Field()
	}
	return path
}

// kindOf classifies the failed tag.
func kindOf(violation validator.FieldError) string {
	switch violation.Tag() {
	case "required", "required_if", "required_with", "required_without":
		return apperr.KindRequired
	case "min", "max", "len":
		switch violation.Kind() {
		case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
			return apperr.KindLength
		}
		return apperr.KindRange
	case "gt", "gte", "lt", "lte":
		return apperr.KindRange
	case "oneof":
		return apperr.KindEnum
	default:
		return apperr.KindFormat
	}
}

var timeType = reflect.TypeOf(time.Time{})

// toParams walks the exported, json-tagged fields of a struct.
func toParams(v any) (Params, error) {
	value := reflect.ValueOf(v)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return Params{}, nil
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, apperr.Internal(fmt.Errorf("validate: %T is not a struct", v))
	}

	params := make(Params, value.NumField())
	structType := value.Type()

	for i := range value.NumField() {
		field := structType.Field(i)
		if !field.IsExported() {
			continue
		}

		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = field.Name
		}

		fieldValue := value.Field(i)
		if fieldValue.Kind() == reflect.Pointer {
			if fieldValue.IsNil() {
				continue
			}
			fieldValue = fieldValue.Elem()
		}

		switch {
		case fieldValue.Type() == timeType:
			params[name] = fieldValue.Interface()
		case fieldValue.Kind() == reflect.Slice:
			if fieldValue.IsNil() {
				continue
			}
			encoded, err := json.Marshal(fieldValue.Interface())
			if err != nil {
				return nil, apperr.Internal(fmt.Errorf("validate: encode %s: %w", name, err))
			}
			params[name] = string(encoded)
		case fieldValue.CanInt():
			params[name] = fieldValue.Int()
		case fieldValue.Kind() == reflect.String:
			params[name] = fieldValue.String()
		default:
			params[name] = fieldValue.Interface()
		}
	}

	return params, nil
}
