package validation

// FieldErrors maps a field name to its messages in the order they were found.
type FieldErrors map[string][]string

// Add appends msg to the messages of field.
func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// Has reports whether field has at least one message.
func (fe FieldErrors) Has(field string) bool {
	return len(fe[field]) > 0
}

// Result is the outcome of Schema.Parse: either typed values for exactly the
// schema's fields, or a non-empty error set.
type Result struct {
	values map[string]any
	errors FieldErrors
}

// Valid reports whether parsing succeeded.
func (r Result) Valid() bool {
	return len(r.errors) == 0
}

// Errors returns the field errors of a failed parse, or nil.
func (r Result) Errors() FieldErrors {
	return r.errors
}

// String returns the parsed value of a String field, or "" when absent.
func (r Result) String(name string) string {
	s, _ := r.values[name].(string)
	return s
}

// Float returns the parsed value of a Number field, or 0 when absent.
func (r Result) Float(name string) float64 {
	f, _ := r.values[name].(float64)
	return f
}

// Has reports whether the success payload contains name.
func (r Result) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}
