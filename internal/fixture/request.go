package fixture

import (
	"net/http"
	"strings"
)

// RequestBuilder builds APIRequest fixtures.
//
// Defaults: POST /api/v1/test with a JSON content type, empty body and query.
type RequestBuilder struct {
	base
}

func Request() *RequestBuilder {
	b := &RequestBuilder{}
	b.fields = Fields{
		"method":   http.MethodPost,
		"endpoint": "/api/v1/test",
		"headers":  map[string]string{"Content-Type": "application/json"},
		"body":     map[string]any{},
		"query":    map[string]string{},
	}
	return b
}

func (b *RequestBuilder) WithField(name string, value any) *RequestBuilder {
	b.set(name, value)
	return b
}

// Get turns the fixture into a GET request against endpoint.
func (b *RequestBuilder) Get(endpoint string) *RequestBuilder {
	b.set("method", http.MethodGet)
	b.set("endpoint", endpoint)
	return b
}

// Post turns the fixture into a POST request against endpoint.
func (b *RequestBuilder) Post(endpoint string) *RequestBuilder {
	b.set("method", http.MethodPost)
	b.set("endpoint", endpoint)
	return b
}

func (b *RequestBuilder) WithHeader(key, value string) *RequestBuilder {
	headers := b.fields["headers"].(map[string]string)
	copied := make(map[string]string, len(headers)+1)
	for k, v := range headers {
		copied[k] = v
	}
	copied[key] = value
	b.set("headers", copied)
	return b
}

func (b *RequestBuilder) WithBody(body map[string]any) *RequestBuilder {
	b.set("body", body)
	return b
}

func (b *RequestBuilder) WithQuery(params map[string]string) *RequestBuilder {
	b.set("query", params)
	return b
}

// WithAuth adds a Bearer authorization header.
func (b *RequestBuilder) WithAuth(token string) *RequestBuilder {
	return b.WithHeader("Authorization", "Bearer "+token)
}

func (b *RequestBuilder) Build() (APIRequest, error) {
	return buildRequest(b.snapshot())
}

func (b *RequestBuilder) BuildMany(count int, modifier Modifier) ([]APIRequest, error) {
	return buildMany(b.snapshot(), count, modifier, buildRequest)
}

func buildRequest(fields Fields) (APIRequest, error) {
	d := newDecoder("APIRequest", fields, "method", "endpoint", "headers", "body", "query")

	r := APIRequest{
		Method:   d.str("method"),
		Endpoint: d.str("endpoint"),
		Headers:  d.stringMap("headers"),
		Body:     d.anyMap("body"),
		Query:    d.stringMap("query"),
	}

	if !oneOf(r.Method, http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete) {
		d.fail("method", "method must be one of GET, POST, PUT, PATCH, DELETE")
	}
	if !strings.HasPrefix(r.Endpoint, "/") {
		d.fail("endpoint", "endpoint must start with /")
	}

	if err := d.finish(); err != nil {
		return APIRequest{}, err
	}
	return r, nil
}
