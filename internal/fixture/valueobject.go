package fixture

// ValueObjectBuilder builds Measurement fixtures.
//
// Defaults: value 0, unit "count", precision 2.
type ValueObjectBuilder struct {
	base
}

func ValueObject() *ValueObjectBuilder {
	b := &ValueObjectBuilder{}
	b.fields = Fields{
		"value":     0.0,
		"unit":      "count",
		"precision": 2,
	}
	return b
}

func (b *ValueObjectBuilder) WithField(name string, value any) *ValueObjectBuilder {
	b.set(name, value)
	return b
}

func (b *ValueObjectBuilder) WithValue(value float64) *ValueObjectBuilder {
	b.set("value", value)
	return b
}

func (b *ValueObjectBuilder) WithUnit(unit string) *ValueObjectBuilder {
	b.set("unit", unit)
	return b
}

func (b *ValueObjectBuilder) WithPrecision(precision int) *ValueObjectBuilder {
	b.set("precision", precision)
	return b
}

func (b *ValueObjectBuilder) Build() (Measurement, error) {
	return buildMeasurement(b.snapshot())
}

func (b *ValueObjectBuilder) BuildMany(count int, modifier Modifier) ([]Measurement, error) {
	return buildMany(b.snapshot(), count, modifier, buildMeasurement)
}

func buildMeasurement(fields Fields) (Measurement, error) {
	d := newDecoder("Measurement", fields, "value", "unit", "precision")

	m := Measurement{
		Value:     d.float("value"),
		Unit:      d.str("unit"),
		Precision: int(d.integer("precision")),
	}

	if m.Unit == "" {
		d.fail("unit", "unit must not be empty")
	}
	if m.Precision < 0 {
		d.fail("precision", "precision must not be negative")
	}

	if err := d.finish(); err != nil {
		return Measurement{}, err
	}
	return m, nil
}
