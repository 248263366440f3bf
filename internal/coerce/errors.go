package coerce

import "fmt"

// ParseError reports model output that could not be recovered as a JSON
// object. When the repair pass also failed, both errors are kept.
type ParseError struct {
	Reason string
	First  error
	Second error
}

func (e *ParseError) Error() string {
	switch {
	case e.First != nil && e.Second != nil:
		return fmt.Sprintf("%s: %v; after repair: %v", e.Reason, e.First, e.Second)
	case e.First != nil:
		return fmt.Sprintf("%s: %v", e.Reason, e.First)
	default:
		return e.Reason
	}
}

func (e *ParseError) Unwrap() []error {
	var errs []error
	if e.First != nil {
		errs = append(errs, e.First)
	}
	if e.Second != nil {
		errs = append(errs, e.Second)
	}
	return errs
}

// SchemaError reports a JSON object that breaks the item contract.
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return "schema: " + e.Reason
	}
	return fmt.Sprintf("schema: %s: %s", e.Field, e.Reason)
}
