package fixture

import (
	"net/http"
	"time"
)

// ResponseBuilder builds APIResponse fixtures.
//
// Defaults: 200 with a JSON content type, empty body, 100ms elapsed.
// The convenience methods are sugar over the plain setters and produce
// exactly what the equivalent WithStatus/WithBody chain would.
type ResponseBuilder struct {
	base
}

func Response() *ResponseBuilder {
	b := &ResponseBuilder{}
	b.fields = Fields{
		"status_code": http.StatusOK,
		"headers":     map[string]string{"Content-Type": "application/json"},
		"body":        map[string]any{},
		"elapsed":     100 * time.Millisecond,
	}
	return b
}

func (b *ResponseBuilder) WithField(name string, value any) *ResponseBuilder {
	b.set(name, value)
	return b
}

func (b *ResponseBuilder) WithStatus(statusCode int) *ResponseBuilder {
	b.set("status_code", statusCode)
	return b
}

func (b *ResponseBuilder) WithBody(body map[string]any) *ResponseBuilder {
	b.set("body", body)
	return b
}

func (b *ResponseBuilder) WithElapsed(elapsed time.Duration) *ResponseBuilder {
	b.set("elapsed", elapsed)
	return b
}

// Success sets a 200 status with a success envelope around data.
func (b *ResponseBuilder) Success(data any) *ResponseBuilder {
	return b.WithStatus(http.StatusOK).WithBody(map[string]any{"success": true, "data": data})
}

// Error sets an error envelope with the given message and status.
func (b *ResponseBuilder) Error(message string, statusCode int) *ResponseBuilder {
	return b.WithStatus(statusCode).WithBody(map[string]any{"success": false, "error": message})
}

// NotFound sets a canned 404 response.
func (b *ResponseBuilder) NotFound() *ResponseBuilder {
	return b.Error("Resource not found", http.StatusNotFound)
}

// Unauthorized sets a canned 401 response.
func (b *ResponseBuilder) Unauthorized() *ResponseBuilder {
	return b.Error("Unauthorized", http.StatusUnauthorized)
}

func (b *ResponseBuilder) Build() (APIResponse, error) {
	return buildResponse(b.snapshot())
}

func (b *ResponseBuilder) BuildMany(count int, modifier Modifier) ([]APIResponse, error) {
	return buildMany(b.snapshot(), count, modifier, buildResponse)
}

func buildResponse(fields Fields) (APIResponse, error) {
	d := newDecoder("APIResponse", fields, "status_code", "headers", "body", "elapsed")

	r := APIResponse{
		StatusCode: int(d.integer("status_code")),
		Headers:    d.stringMap("headers"),
		Body:       d.anyMap("body"),
		Elapsed:    d.duration("elapsed"),
	}

	if r.StatusCode < 100 || r.StatusCode > 599 {
		d.fail("status_code", "status code must be between 100 and 599")
	}
	if r.Elapsed < 0 {
		d.fail("elapsed", "elapsed must not be negative")
	}

	if err := d.finish(); err != nil {
		return APIResponse{}, err
	}
	return r, nil
}
