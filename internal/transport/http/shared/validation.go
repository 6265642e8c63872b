package shared

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"staffsync/internal/transport/http/api"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report issues under the wire field names, not Go struct names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateStruct runs the payload's validate tags and returns one issue per
// failing field.
func ValidateStruct(payload any) []api.Issue {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []api.Issue{{Reason: "invalid payload"}}
	}

	issues := make([]api.Issue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, api.Issue{Field: fe.Field(), Reason: reason(fe)})
	}
	return issues
}

// Reject writes the 400 validation envelope when issues exist and reports
// whether the request was rejected.
func Reject(w http.ResponseWriter, issues []api.Issue) bool {
	if len(issues) == 0 {
		return false
	}
	api.FailWithIssues(w, http.StatusBadRequest, "payload validation failed", issues)
	return true
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}
