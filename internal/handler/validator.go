package handler

import (
	"errors"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/locvowork/employee_management_backend/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RequestValidator adapts go-playground/validator to echo.Validator.
type RequestValidator struct {
	v *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New()

	// report fields by their JSON name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(domain.Date); ok {
			return d.String()
		}
		return nil
	}, domain.Date{})

	return &RequestValidator{v: v}
}

func (rv *RequestValidator) Validate(i interface{}) error {
	return rv.v.Struct(i)
}

// fieldLabels overrides the label derived from a JSON name.
var fieldLabels = map[string]string{
	"dateOfBirth":  "Date of Birth",
	"departmentId": "Department",
}

// fieldMessages overrides the message for a field and tag pair.
var fieldMessages = map[string]string{
	"departmentId.min": "Please select a valid department",
	// salary is stored with two decimals, so anything under a cent rounds to zero
	"salary.gte": "Salary must be greater than 0",
}

var titleCaser = cases.Title(language.English)

// FieldErrors converts validator errors into JSON field name -> message. The
// first failing rule per field wins.
func FieldErrors(err error) (map[string]string, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = fieldMessage(fe)
	}
	return out, true
}

func fieldMessage(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}

	label := fieldLabel(fe.Field())
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "max":
		return label + " must be " + fe.Param() + " characters or less"
	case "email":
		return "Invalid email format"
	case "min":
		return label + " must be at least " + fe.Param()
	}
	return label + " is invalid"
}

// fieldLabel turns "departmentCode" into "Department Code".
func fieldLabel(jsonName string) string {
	if label, ok := fieldLabels[jsonName]; ok {
		return label
	}
	var sb strings.Builder
	for i, r := range jsonName {
		if i > 0 && unicode.IsUpper(r) {
			sb.WriteRune(' ')
		}
		sb.WriteRune(r)
	}
	return titleCaser.String(sb.String())
}
