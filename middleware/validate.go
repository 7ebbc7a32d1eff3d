// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/danielhkuo/quickly-vote/models"
)

var ErrInvalidBody = errors.New("invalid request body")

// ValidationError carries one translated message per failed field
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Details, "; ")
}

// Validator checks request bodies against their validate tags and renders
// failures as English messages keyed by JSON field name.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

func NewValidator() *Validator {
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	// A poll must stay open for some time
	validate.RegisterStructValidation(func(sl validator.StructLevel) {
		length := sl.Current().Interface().(models.PollLength)
		if length.Duration() <= 0 {
			sl.ReportError(length.Hours, "hours", "Hours", "pollLength", "")
		}
	}, models.PollLength{})

	_ = validate.RegisterTranslation("pollLength", trans, func(t ut.Translator) error {
		return t.Add("pollLength", "pollLength must be at least one hour", true)
	}, func(t ut.Translator, fe validator.FieldError) string {
		msg, _ := t.T("pollLength")
		return msg
	})

	return &Validator{validate: validate, trans: trans}
}

// Validate runs struct validation on v
func (v *Validator) Validate(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	details := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, fe.Translate(v.trans))
	}
	return &ValidationError{Details: details}
}

// DecodeAndValidate parses the JSON body into dst and validates it
func (v *Validator) DecodeAndValidate(r *http.Request, dst interface{}) error {
	if err := ParseJSONBody(r, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return v.Validate(dst)
}

// BadRequestResponse writes a 400 for a body that failed to decode or validate
func BadRequestResponse(w http.ResponseWriter, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		JSONResponse(w, http.StatusBadRequest, models.ErrorResponse{
			Error:   http.StatusText(http.StatusBadRequest),
			Message: "validation failed",
			Details: verr.Details,
		})
		return
	}
	ErrorResponse(w, http.StatusBadRequest, err.Error())
}
