package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"hrrecords/internal/domain/apperr"
	"hrrecords/internal/platform/messages"
	"hrrecords/internal/transport/http/api"
)

// ValidationError is an invalid payload with per-field reasons.
type ValidationError struct {
	Message string
	Fields  []api.FieldIssue
}

func (e *ValidationError) Error() string {
	return e.Message
}

// phonePattern accepts Belarusian mobile numbers in +375 or 80 form.
var phonePattern = regexp.MustCompile(`^(\+375|80)(29|25|44|33)(\d{3})(\d{2})(\d{2})$`)

// NewValidate builds a validator that reports JSON field names and treats
// decimal amounts as numbers.
func NewValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

// Decode reads a JSON body into dst and validates it.
func (k *Kit) Decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return apperr.InvalidData(k.Messages.Get(messages.RequestPayloadInvalid, nil))
	}
	return k.Check(dst)
}

// Check validates an already decoded payload.
func (k *Kit) Check(dst any) error {
	err := k.Validate.Struct(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]api.FieldIssue, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, api.FieldIssue{Field: fe.Field(), Reason: reason(fe)})
	}
	return k.Invalid(fields...)
}

// Invalid builds a validation error from field issues, sorted by field.
func (k *Kit) Invalid(fields ...api.FieldIssue) error {
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
	return &ValidationError{
		Message: k.Messages.Get(messages.RequestPayloadInvalid, nil),
		Fields:  fields,
	}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "oneof":
		return "must be one of " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "gt":
		return "must be greater than " + fe.Param()
	case "phone":
		return "must be a phone number like +375291234567"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

