package core

import (
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	pt_BR_translations "github.com/go-playground/validator/v10/translations/pt_BR"
	"github.com/pkg/errors"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	// custom validation tags & texts
	notBlankTag  = "notblank"
	notBlankText = "este campo não pode ficar em branco"

	EmailRegex   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	emailFmtTag  = "emailfmt"
	emailFmtText = "por favor, insira um e-mail válido"

	httpLinksTag  = "httplinks"
	httpLinksText = "cada linha deve conter um link http(s) válido"

	requiredTag     = "required"
	requiredText    = "este campo é obrigatório"
	datetimeTag     = "datetime"
	datetimeText    = "data ou hora em formato inválido"
	eqFieldTag      = "eqfield"
	eqFieldText     = "os valores não coincidem"
	subjectTag      = "disciplina"
	subjectText     = "selecione uma disciplina"
	errInvalidInput = errors.New("dados inválidos")
)

// Instantiate the validator for use.
func init() {
	Validate = validator.New()

	// Register the portuguese error messages for validation errors.
	ptBR := pt_BR.New()
	uni := ut.New(ptBR, ptBR)
	Translator, _ = uni.GetTranslator("pt_BR")
	_ = pt_BR_translations.RegisterDefaultTranslations(Validate, Translator)

	// Use JSON tag names for errors instead of Go struct names.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = Validate.RegisterValidation(notBlankTag, notBlankValidation)
	RegisterCustomTranslation(notBlankTag, notBlankText)

	_ = Validate.RegisterValidation(emailFmtTag, emailFmtValidation)
	RegisterCustomTranslation(emailFmtTag, emailFmtText)

	_ = Validate.RegisterValidation(httpLinksTag, httpLinksValidation)
	RegisterCustomTranslation(httpLinksTag, httpLinksText)

	_ = Validate.RegisterValidation(subjectTag, subjectValidation)
	RegisterCustomTranslation(subjectTag, subjectText)

	RegisterCustomTranslation(requiredTag, requiredText, true)
	RegisterCustomTranslation(datetimeTag, datetimeText, true)
	RegisterCustomTranslation(eqFieldTag, eqFieldText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = Validate.RegisterTranslation(
		tag, Translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// ValidateStruct validates `s` and converts validator errors into a *ValidationError.
func ValidateStruct(s interface{}) error {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return err
	}
	return TranslateErrors(vErrs)
}

// TranslateErrors turns validator.ValidationErrors into a *ValidationError with translated messages.
func TranslateErrors(vErrs validator.ValidationErrors) error {
	flds := make([]FieldError, 0, len(vErrs))
	for _, vErr := range vErrs {
		flds = append(flds, FieldError{Field: vErr.Field(), Error: vErr.Translate(Translator)})
	}
	sortFieldErrors(flds)
	return NewValidationError(errInvalidInput, flds...)
}

// IsEmail reports whether `s` looks like an e-mail address.
func IsEmail(s string) bool {
	return EmailRegex.MatchString(s)
}

// Custom Global Validators

func notBlankValidation(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func emailFmtValidation(fl validator.FieldLevel) bool {
	return IsEmail(fl.Field().String())
}

// subjectValidation checks that a subject (discId) has been selected.
func subjectValidation(fl validator.FieldLevel) bool {
	return fl.Field().Int() > 0
}

// httpLinksValidation checks that every non-blank line is an absolute http(s) URL.
func httpLinksValidation(fl validator.FieldLevel) bool {
	for _, line := range SplitLines(fl.Field().String()) {
		u, err := url.ParseRequestURI(line)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return false
		}
	}
	return true
}
