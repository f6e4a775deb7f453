package validate

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Tags maps struct tag names to rules.
var Tags = map[string]Rule{
	"notblank":     Required,
	"cpf":          CPF,
	"phone":        Phone,
	"email_loose":  Email,
	"password":     Password,
	"url_optional": URL,
	"positive":     PositiveNumber,
	"positive_int": PositiveInteger,
}

// Validator checks tagged structs with the rules above. Every field is
// visited; the first failing tag of a field provides its message.
// It satisfies echo.Validator.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(fieldName)
	for tag, rule := range Tags {
		rule := rule
		err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return rule(fl.Field().String()).Valid
		}, true)
		if err != nil {
			panic(err)
		}
	}
	return &Validator{v: v}
}

// Validate returns nil or an Errors value.
func (cv *Validator) Validate(i interface{}) error {
	errs := cv.Struct(i)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Struct validates s and returns the failures in field order.
func (cv *Validator) Struct(s interface{}) Errors {
	err := cv.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{{Field: "_", Message: err.Error()}}
	}
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: messageFor(fe)})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	if rule, ok := Tags[fe.Tag()]; ok {
		value, _ := fe.Value().(string)
		if r := rule(value); r.Message != "" {
			return r.Message
		}
	}
	if fe.Tag() == "required" {
		return MsgRequired
	}
	return "Invalid value."
}

// fieldName prefers the form tag, then json, then the Go name.
func fieldName(f reflect.StructField) string {
	for _, key := range []string{"form", "json"} {
		name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}
