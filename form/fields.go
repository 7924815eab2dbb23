package form

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fulldump/dataform/record"
)

const DateLayout = "2006-01-02"

var Genders = []string{"Male", "Female"}

// Fields holds the values typed into the form.
type Fields struct {
	FullName    string `json:"fullName" validate:"required"`
	ID          string `json:"id" validate:"required"`
	Gender      string `json:"gender" validate:"required,oneof=Male Female"`
	Province    string `json:"province" validate:"required"`
	DateOfBirth string `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
}

type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks every field is filled, the gender is one of Genders and the
// date of birth is a calendar date. The gender is normalized to its canonical
// spelling first.
func (f *Fields) Validate() error {

	if gender, ok := canonicalGender(f.Gender); ok {
		f.Gender = gender
	}

	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	missing := []string{}
	for _, fieldErr := range fieldErrs {
		if fieldErr.Tag() == "required" {
			missing = append(missing, fieldErr.Field())
		}
	}
	if len(missing) > 0 {
		return &ValidationError{
			Message: "All fields must be filled out.",
			Fields:  missing,
		}
	}

	fieldErr := fieldErrs[0]
	switch fieldErr.Tag() {
	case "oneof":
		return &ValidationError{
			Message: fmt.Sprintf("Gender must be one of %s.", strings.Join(Genders, ", ")),
			Fields:  []string{fieldErr.Field()},
		}
	case "datetime":
		return &ValidationError{
			Message: "Date of birth must be a valid YYYY-MM-DD date.",
			Fields:  []string{fieldErr.Field()},
		}
	}

	return &ValidationError{
		Message: fmt.Sprintf("Field %s is not valid.", fieldErr.Field()),
		Fields:  []string{fieldErr.Field()},
	}
}

func canonicalGender(g string) (string, bool) {
	for _, candidate := range Genders {
		if strings.EqualFold(candidate, g) {
			return candidate, true
		}
	}
	return "", false
}

func (f *Fields) Record() record.Record {
	return record.New(f.FullName, f.ID, f.Gender, f.Province, f.DateOfBirth)
}

func (f *Fields) Clear() {
	*f = Fields{}
}

// FromRecord fills the form from a stored record. Damaged records and dates
// the date picker could not show are rejected.
func FromRecord(r record.Record) (Fields, error) {

	if err := r.Err(); err != nil {
		return Fields{}, err
	}

	f := Fields{
		FullName:    r[record.FullName],
		ID:          r[record.ID],
		Gender:      r[record.Gender],
		Province:    r[record.Province],
		DateOfBirth: r[record.DateOfBirth],
	}

	if err := validate.Var(f.DateOfBirth, "datetime="+DateLayout); err != nil {
		return Fields{}, fmt.Errorf("date of birth '%s': %w", f.DateOfBirth, err)
	}

	if gender, ok := canonicalGender(f.Gender); ok {
		f.Gender = gender
	}

	return f, nil
}
