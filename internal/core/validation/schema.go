// Package validation turns raw, untyped form fields into typed values or a
// field-keyed error set.
//
// A Schema is declarative: each Field names its kind and an ordered list of
// rules expressed as go-playground/validator tags. Parsing is a pure function
// of the schema and the raw input; it never fails partially.
package validation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Kind selects how a raw string is interpreted before rules run.
type Kind int

const (
	// String values are checked as-is.
	String Kind = iota
	// Number values are coerced to float64 first. Empty or absent input
	// coerces to 0 so that bound rules report it.
	Number
)

// Rule is a single constraint: a validator tag and the message reported when
// the value does not satisfy it. An empty Message falls back to a generic one.
type Rule struct {
	Tag     string
	Message string
}

// Field describes one expected input field.
type Field struct {
	Name string
	Kind Kind
	// Missing is reported when a String field is absent from the input.
	Missing string
	// Invalid is reported when a Number field cannot be coerced.
	Invalid string
	Rules   []Rule
}

// Schema is an ordered set of fields. The zero value accepts nothing.
type Schema struct {
	fields []Field
}

// NewSchema builds a schema from fields in declaration order.
func NewSchema(fields ...Field) Schema {
	return Schema{fields: append([]Field(nil), fields...)}
}

// Omit returns a copy of s without the named fields. The remaining fields keep
// their rules and messages unchanged.
func (s Schema) Omit(names ...string) Schema {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}
	out := make([]Field, 0, len(s.fields))
	for _, f := range s.fields {
		if _, ok := drop[f.Name]; !ok {
			out = append(out, f)
		}
	}
	return Schema{fields: out}
}

// Fields returns the field names of s in declaration order.
func (s Schema) Fields() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Parse validates raw against s. On any violation the result carries one
// entry per violated field and no values.
func (s Schema) Parse(raw map[string]string) Result {
	values := make(map[string]any, len(s.fields))
	errs := FieldErrors{}

	for _, f := range s.fields {
		value, ok := s.coerce(f, raw, errs)
		if !ok {
			continue
		}
		for _, r := range f.Rules {
			if err := validate.Var(value, r.Tag); err != nil {
				errs.Add(f.Name, ruleMessage(f.Name, r, err))
			}
		}
		values[f.Name] = value
	}

	if len(errs) > 0 {
		return Result{errors: errs}
	}
	return Result{values: values}
}

// coerce extracts the typed value of f from raw. It records a field error and
// returns false when no typed value exists to run rules against.
func (s Schema) coerce(f Field, raw map[string]string, errs FieldErrors) (any, bool) {
	v, present := raw[f.Name]

	switch f.Kind {
	case Number:
		v = strings.TrimSpace(v)
		if v == "" {
			return float64(0), true
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			errs.Add(f.Name, orDefault(f.Invalid, f.Name+" must be a number"))
			return nil, false
		}
		return n, true
	default:
		if !present {
			errs.Add(f.Name, orDefault(f.Missing, f.Name+" is required"))
			return nil, false
		}
		return v, true
	}
}

func ruleMessage(field string, r Rule, err error) string {
	if r.Message != "" {
		return r.Message
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return fieldError(field, ve[0])
	}
	return fmt.Sprintf("%s is invalid", field)
}

// fieldError converts a single validator failure into a human-readable message.
func fieldError(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a date in the form %s", field, fe.Param())
	case "cents":
		return field + " cannot have more than two decimal places"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
