package validation

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"visitor-registration/pkg/models"
)

var (
	mobilePattern   = regexp.MustCompile(`^1\d{10}$`)
	idNumberPattern = regexp.MustCompile(`^(\d{15}|\d{17}[\dXx])$`)
	platePattern    = regexp.MustCompile(`^[\x{4e00}-\x{9fa5}][A-Z][A-Z0-9]{5,6}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their wire name so errors line up with the form inputs.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "mobile", mobilePattern)
	mustRegister(v, "idnumber", idNumberPattern)
	mustRegister(v, "plate", platePattern)
	return v
}

func mustRegister(v *validator.Validate, tag string, pattern *regexp.Regexp) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return pattern.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
}

// Errors maps a form field name to its error message. Empty means valid.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "invalid submission: " + strings.Join(parts, "; ")
}

// Validate checks the required fields and format rules of a submission.
// It has no side effects and may be called on every change.
func Validate(sub models.VisitorSubmission, lang string) Errors {
	errs := Errors{}

	err := validate.Struct(sub)
	if err == nil {
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// Only reachable on programmer error (non-struct input).
		panic(err)
	}

	msgs := messagesFor(lang)
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			errs[fe.Field()] = msgs.required
			continue
		}
		errs[fe.Field()] = msgs.invalid[fe.Field()]
	}
	return errs
}
