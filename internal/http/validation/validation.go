package validation

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"usersvc/internal/http/responses"
)

var validate = newValidator()

// newValidator builds a validator that reports fields by their JSON
// names, so clients see "full_name" rather than "FullName".
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// BindAndValidate reads the JSON body into dst and runs constraint checks
// from `validate:"..."` tags. On failure it writes a 422 envelope with the
// per-field error list and returns false.
func BindAndValidate[T any](w http.ResponseWriter, r *http.Request, dst *T) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		responses.WriteValidationError(w, []responses.FieldError{
			{Field: "body", Message: "invalid JSON payload"},
		})
		return false
	}

	if err := validate.Struct(dst); err != nil {
		responses.WriteValidationError(w, toFieldErrors(err))
		return false
	}

	return true
}

func toFieldErrors(err error) []responses.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []responses.FieldError{{Field: "body", Message: err.Error()}}
	}

	fields := make([]responses.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, responses.FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: constraintMessage(fe),
		})
	}
	return fields
}

func constraintMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	default:
		return "failed on the '" + fe.Tag() + "' constraint"
	}
}
