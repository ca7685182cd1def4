package domain

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Query limits
const (
	MaxLimit = 100
)

var digitsPattern = regexp.MustCompile(`^\d+$`)

// messages maps "<field>.<tag>" to the text shown to API clients.
var messages = map[string]string{
	"title.required":       "Título deve ser uma string",
	"title.notblank":       "Título não pode estar vazio",
	"title.trimmax":        "Título deve ter no máximo 255 caracteres",
	"description.required": "Descrição deve ser uma string",
	"description.notblank": "Descrição não pode estar vazia",
	"price.required":       "Preço deve ser um número",
	"price.positive":       "Preço deve ser um valor positivo",
	"price.cents":          "Preço deve ter no máximo 2 casas decimais",
	"id.required":          "ID deve conter apenas números",
	"id.digits":            "ID deve conter apenas números",
	"id.posint":            "ID deve ser um número positivo",
	"page.pageno":          "Página deve ser um número positivo",
	"limit.limitno":        "Limite deve ser entre 1 e 100",
}

// Message returns the client-facing text for a failed rule on a field.
func Message(field, tag string) string {
	if m, ok := messages[field+"."+tag]; ok {
		return m
	}
	return fmt.Sprintf("valor inválido (%s)", tag)
}

// Validation runs the struct-tag rules shared by every request schema.
type Validation struct {
	validator *validator.Validate
}

func NewValidation() *Validation {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)

	v.RegisterValidation("notblank", validateNotBlank)
	v.RegisterValidation("trimmax", validateTrimMax)
	v.RegisterValidation("positive", validatePositive)
	v.RegisterValidation("cents", validateCents)
	v.RegisterValidation("digits", validateDigits)
	v.RegisterValidation("posint", validatePositiveInt)
	v.RegisterValidation("pageno", validatePageNumber)
	v.RegisterValidation("limitno", validateLimit)

	return &Validation{validator: v}
}

// ValidationError is a single failed rule on a single field
type ValidationError struct {
	Field   string
	Tag     string
	Message string
}

// Error implements the error interface
func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// ValidationErrors is a slice of ValidationError
type ValidationErrors []ValidationError

// Errors converts the slice to client-facing strings
func (ve ValidationErrors) Errors() []string {
	errs := make([]string, 0, len(ve))
	for _, v := range ve {
		errs = append(errs, v.Error())
	}
	return errs
}

// Validate checks i against its validate tags. Every rule of a field is
// evaluated, so a value breaking several rules yields one error per rule.
// A missing required value yields only the required error. Fields are
// reported by their json name. A nil result means every rule passed.
func (v *Validation) Validate(i interface{}) ValidationErrors {
	rv := reflect.Indirect(reflect.ValueOf(i))
	if rv.Kind() != reflect.Struct {
		return ValidationErrors{{Tag: "struct", Message: fmt.Sprintf("cannot validate %T", i)}}
	}

	var errs ValidationErrors
	rt := rv.Type()
	for n := 0; n < rt.NumField(); n++ {
		sf := rt.Field(n)
		rules := sf.Tag.Get("validate")
		if rules == "" || rules == "-" || !sf.IsExported() {
			continue
		}
		errs = append(errs, v.validateField(jsonFieldName(sf), rv.Field(n), strings.Split(rules, ","))...)
	}

	return errs
}

func (v *Validation) validateField(name string, fv reflect.Value, rules []string) ValidationErrors {
	var (
		required, omitempty bool
		checks              []string
	)
	for _, r := range rules {
		switch r {
		case "required":
			required = true
		case "omitempty":
			omitempty = true
		default:
			checks = append(checks, r)
		}
	}

	// a non-nil pointer counts as present even when it points to a zero value
	missing := fv.IsZero()
	if fv.Kind() == reflect.Ptr && !fv.IsNil() {
		fv, missing = fv.Elem(), false
	}
	if missing {
		if required {
			return ValidationErrors{newValidationError(name, "required")}
		}
		if omitempty || fv.Kind() == reflect.Ptr {
			return nil
		}
	}

	var errs ValidationErrors
	value := fv.Interface()
	for _, check := range checks {
		if err := v.validator.Var(value, check); err != nil {
			errs = append(errs, newValidationError(name, strings.SplitN(check, "=", 2)[0]))
		}
	}

	return errs
}

func newValidationError(field, tag string) ValidationError {
	return ValidationError{Field: field, Tag: tag, Message: Message(field, tag)}
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// trimmax=N bounds the rune length of the value once surrounding whitespace
// is removed.
func validateTrimMax(fl validator.FieldLevel) bool {
	max, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) <= max
}

func validatePositive(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return d.IsPositive()
}

// cents rejects any amount that would change when rounded to two decimals.
func validateCents(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return d.Equal(d.Round(PriceScale))
}

func validateDigits(fl validator.FieldLevel) bool {
	return digitsPattern.MatchString(fl.Field().String())
}

// posint only judges digit strings; anything else is reported by digits.
func validatePositiveInt(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if !digitsPattern.MatchString(s) {
		return true
	}
	n, err := strconv.ParseInt(s, 10, 64)
	return err == nil && n > 0
}

// pageno accepts an empty value, which falls back to the default page.
func validatePageNumber(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	n, err := strconv.Atoi(s)
	return err == nil && n > 0
}

func validateLimit(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	n, err := strconv.Atoi(s)
	return err == nil && n > 0 && n <= MaxLimit
}
