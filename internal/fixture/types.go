package fixture

import "time"

// Target shapes built by the non-domain builders. Tests pass these into
// whatever code under test expects the corresponding value shape.

// Measurement is a generic unit-tagged value object fixture.
type Measurement struct {
	Value     float64
	Unit      string
	Precision int
}

// APIRequest is a transport-agnostic request fixture.
type APIRequest struct {
	Method   string
	Endpoint string
	Headers  map[string]string
	Body     map[string]any
	Query    map[string]string
}

// APIResponse is a transport-agnostic response fixture.
type APIResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       map[string]any
	Elapsed    time.Duration
}

// AppConfig is a configuration fixture mirroring the shape services load at
// startup.
type AppConfig struct {
	Environment  string
	Debug        bool
	LogLevel     string
	DatabaseURL  string
	CacheEnabled bool
	Features     map[string]bool
}

// ErrorFixture is a serialized-error fixture for exercising error-rendering
// paths.
type ErrorFixture struct {
	Type      string
	Code      string
	Message   string
	Details   map[string]any
	Timestamp time.Time
}
