// Package validation checks user-submitted forms with go-playground/validator.
// Field errors carry JSON field names so the shell can show them next to inputs.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/AngelinAnto/OneAdmit/internal/model"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validate   *validator.Validate
	translator ut.Translator

	clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

// custom validation tags
const (
	notBlankTag         = "notblank"
	accreditationTag    = "accreditation"
	announcementTypeTag = "announcement_type"
	clockTag            = "clock"
	feesRangeTag        = "fees_range"
	timeRangeTag        = "time_range"
)

var customMessages = map[string]string{
	notBlankTag:         "this field cannot be blank",
	accreditationTag:    "unknown accreditation",
	announcementTypeTag: "unknown announcement type",
	clockTag:            "time must be in HH:MM format",
	feesRangeTag:        "maximum annual fees must not be below the minimum",
	timeRangeTag:        "end time must be after start time",
}

func init() {
	validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(notBlankTag, notBlank)
	_ = validate.RegisterValidation(accreditationTag, knownAccreditation)
	_ = validate.RegisterValidation(announcementTypeTag, knownAnnouncementType)
	_ = validate.RegisterValidation(clockTag, clock)

	validate.RegisterStructValidation(collegeFormValidation, model.CollegeForm{})
	validate.RegisterStructValidation(examSlotFormValidation, model.ExamSlotForm{})

	registerFn := func(ut.Translator) error { return nil }
	for tag := range customMessages {
		_ = validate.RegisterTranslation(tag, translator, registerFn, translateCustom)
	}
}

type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Error)
	}
	return strings.Join(parts, "; ")
}

// Check validates a form. It returns *ValidationError listing every failing field, or nil.
func Check(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fe.Field(), Error: fe.Translate(translator)})
	}
	return &ValidationError{Fields: fields}
}

// IsValidationError reports whether err carries field errors
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

func translateCustom(_ ut.Translator, fe validator.FieldError) string {
	return customMessages[fe.Tag()]
}

func notBlank(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

func knownAccreditation(fl validator.FieldLevel) bool {
	return model.Accreditation(fl.Field().String()).Valid()
}

func knownAnnouncementType(fl validator.FieldLevel) bool {
	return model.AnnouncementType(fl.Field().String()).Valid()
}

func clock(fl validator.FieldLevel) bool {
	return clockPattern.MatchString(fl.Field().String())
}

func collegeFormValidation(sl validator.StructLevel) {
	form, ok := sl.Current().Interface().(model.CollegeForm)
	if !ok {
		return
	}
	if form.AnnualFeesMin != nil && form.AnnualFeesMax != nil && *form.AnnualFeesMin > *form.AnnualFeesMax {
		sl.ReportError(form.AnnualFeesMax, "annual_fees_max", "AnnualFeesMax", feesRangeTag, "")
	}
}

func examSlotFormValidation(sl validator.StructLevel) {
	form, ok := sl.Current().Interface().(model.ExamSlotForm)
	if !ok {
		return
	}
	// HH:MM strings compare in clock order
	if clockPattern.MatchString(form.StartTime) && clockPattern.MatchString(form.EndTime) && form.EndTime <= form.StartTime {
		sl.ReportError(form.EndTime, "end_time", "EndTime", timeRangeTag, "")
	}
}
