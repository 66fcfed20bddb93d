package validation

import (
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared by all schemas and the transport layer.
// *validator.Validate is safe for concurrent use once its custom rules and tag
// name func are registered, so everything is registered here and nowhere else.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("cents", hasCentsPrecision)
	v.RegisterTagNameFunc(requestFieldName)
	return v
}

// requestFieldName reports struct fields by their query, form or json name.
func requestFieldName(f reflect.StructField) string {
	for _, tag := range []string{"query", "form", "json"} {
		if name, _, _ := strings.Cut(f.Tag.Get(tag), ","); name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

// hasCentsPrecision accepts numbers with at most two fractional digits, so
// that converting to minor units is exact.
func hasCentsPrecision(fl validator.FieldLevel) bool {
	f := fl.Field()
	switch f.Kind() {
	case reflect.Float32, reflect.Float64:
		scaled := f.Float() * 100
		return math.Abs(scaled-math.Round(scaled)) < 1e-6
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}

// Validator exposes the shared rule engine so transport code can validate
// struct-tagged requests with the same custom rules.
func Validator() *validator.Validate {
	return validate
}
