package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/deepgram/gemini-mcp/internal/domain/tools/models"
	"github.com/go-playground/validator/v10"
)

// validator caches struct metadata, so one instance is shared.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct validates req and reports the first failing field as ErrInvalidArgument.
func Struct(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		field := validationErrs[0]
		switch field.Tag() {
		case "required", "min":
			return models.InvalidArgument("%s parameter is required", field.Field())
		default:
			return models.InvalidArgument("%s parameter is invalid", field.Field())
		}
	}

	return models.InvalidArgument("%v", err)
}
