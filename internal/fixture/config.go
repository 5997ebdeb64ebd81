package fixture

// ConfigBuilder builds AppConfig fixtures.
//
// Defaults mirror a local test environment: debug on, DEBUG log level,
// in-memory database, cache off, no feature flags.
type ConfigBuilder struct {
	base
}

func Config() *ConfigBuilder {
	b := &ConfigBuilder{}
	b.fields = Fields{
		"environment":   "test",
		"debug":         true,
		"log_level":     "DEBUG",
		"database_url":  "sqlite://:memory:",
		"cache_enabled": false,
		"features":      map[string]bool{},
	}
	return b
}

func (b *ConfigBuilder) WithField(name string, value any) *ConfigBuilder {
	b.set(name, value)
	return b
}

// Production switches to production settings: debug off, INFO logs.
func (b *ConfigBuilder) Production() *ConfigBuilder {
	b.set("environment", "production")
	b.set("debug", false)
	b.set("log_level", "INFO")
	return b
}

// Development switches to development settings: debug on, DEBUG logs.
func (b *ConfigBuilder) Development() *ConfigBuilder {
	b.set("environment", "development")
	b.set("debug", true)
	b.set("log_level", "DEBUG")
	return b
}

func (b *ConfigBuilder) WithDatabase(url string) *ConfigBuilder {
	b.set("database_url", url)
	return b
}

func (b *ConfigBuilder) WithCache(enabled bool) *ConfigBuilder {
	b.set("cache_enabled", enabled)
	return b
}

func (b *ConfigBuilder) WithFeature(name string, enabled bool) *ConfigBuilder {
	features := b.fields["features"].(map[string]bool)
	copied := make(map[string]bool, len(features)+1)
	for k, v := range features {
		copied[k] = v
	}
	copied[name] = enabled
	b.set("features", copied)
	return b
}

func (b *ConfigBuilder) Build() (AppConfig, error) {
	return buildConfig(b.snapshot())
}

func (b *ConfigBuilder) BuildMany(count int, modifier Modifier) ([]AppConfig, error) {
	return buildMany(b.snapshot(), count, modifier, buildConfig)
}

func buildConfig(fields Fields) (AppConfig, error) {
	d := newDecoder("AppConfig", fields,
		"environment", "debug", "log_level", "database_url", "cache_enabled", "features")

	c := AppConfig{
		Environment:  d.str("environment"),
		Debug:        d.boolean("debug"),
		LogLevel:     d.str("log_level"),
		DatabaseURL:  d.str("database_url"),
		CacheEnabled: d.boolean("cache_enabled"),
		Features:     d.boolMap("features"),
	}

	if !oneOf(c.Environment, "test", "development", "staging", "production") {
		d.fail("environment", "environment must be one of test, development, staging, production")
	}
	if !oneOf(c.LogLevel, "DEBUG", "INFO", "WARN", "ERROR") {
		d.fail("log_level", "log level must be one of DEBUG, INFO, WARN, ERROR")
	}
	if c.DatabaseURL == "" {
		d.fail("database_url", "database URL must not be empty")
	}

	if err := d.finish(); err != nil {
		return AppConfig{}, err
	}
	return c, nil
}
