package fixture

import (
	"fmt"
	"time"
)

// ErrorBuilder builds ErrorFixture values.
//
// Defaults: a generic error with code ERR_GENERIC and a current UTC
// timestamp. The convenience methods stamp canned type/code/message/details
// combinations through the plain setters.
type ErrorBuilder struct {
	base
}

func Error() *ErrorBuilder {
	b := &ErrorBuilder{}
	b.fields = Fields{
		"type":      "GenericError",
		"code":      "ERR_GENERIC",
		"message":   "An error occurred",
		"details":   map[string]any{},
		"timestamp": time.Now().UTC(),
	}
	return b
}

func (b *ErrorBuilder) WithField(name string, value any) *ErrorBuilder {
	b.set(name, value)
	return b
}

func (b *ErrorBuilder) WithMessage(message string) *ErrorBuilder {
	b.set("message", message)
	return b
}

// ValidationFailure stamps a field-validation error.
func (b *ErrorBuilder) ValidationFailure(field, message string) *ErrorBuilder {
	b.set("type", "ValidationError")
	b.set("code", "ERR_VALIDATION")
	b.set("message", fmt.Sprintf("Validation failed for field: %s", field))
	b.set("details", map[string]any{"field": field, "error": message})
	return b
}

// NotFound stamps a missing-resource error referencing resource.
func (b *ErrorBuilder) NotFound(resource string) *ErrorBuilder {
	b.set("type", "NotFoundError")
	b.set("code", "ERR_NOT_FOUND")
	b.set("message", fmt.Sprintf("%s not found", resource))
	b.set("details", map[string]any{"resource": resource})
	return b
}

// PermissionDenied stamps a permission error for action.
func (b *ErrorBuilder) PermissionDenied(action string) *ErrorBuilder {
	b.set("type", "PermissionError")
	b.set("code", "ERR_PERMISSION")
	b.set("message", fmt.Sprintf("Permission denied for action: %s", action))
	b.set("details", map[string]any{"action": action})
	return b
}

func (b *ErrorBuilder) Build() (ErrorFixture, error) {
	return buildErrorFixture(b.snapshot())
}

func (b *ErrorBuilder) BuildMany(count int, modifier Modifier) ([]ErrorFixture, error) {
	return buildMany(b.snapshot(), count, modifier, buildErrorFixture)
}

func buildErrorFixture(fields Fields) (ErrorFixture, error) {
	d := newDecoder("ErrorFixture", fields, "type", "code", "message", "details", "timestamp")

	e := ErrorFixture{
		Type:      d.str("type"),
		Code:      d.str("code"),
		Message:   d.str("message"),
		Details:   d.anyMap("details"),
		Timestamp: d.instant("timestamp"),
	}

	if e.Type == "" {
		d.fail("type", "type must not be empty")
	}
	if e.Code == "" {
		d.fail("code", "code must not be empty")
	}
	if e.Message == "" {
		d.fail("message", "message must not be empty")
	}

	if err := d.finish(); err != nil {
		return ErrorFixture{}, err
	}
	return e, nil
}
