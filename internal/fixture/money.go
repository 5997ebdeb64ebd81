package fixture

import (
	"regexp"

	"github.com/marcuskbra/skeleton-challenge/internal/domain"
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// MoneyBuilder builds domain.Money fixtures.
//
// Defaults: 10.00 USD. Build enforces the Money schema: a non-negative
// amount in minor units and a 3-letter uppercase currency code.
type MoneyBuilder struct {
	base
}

func Money() *MoneyBuilder {
	b := &MoneyBuilder{}
	b.fields = Fields{
		"amount":   int64(1000),
		"currency": "USD",
	}
	return b
}

func (b *MoneyBuilder) WithField(name string, value any) *MoneyBuilder {
	b.set(name, value)
	return b
}

func (b *MoneyBuilder) WithAmount(amount int64) *MoneyBuilder {
	b.set("amount", amount)
	return b
}

func (b *MoneyBuilder) WithCurrency(currency string) *MoneyBuilder {
	b.set("currency", currency)
	return b
}

func (b *MoneyBuilder) Build() (domain.Money, error) {
	return buildMoney(b.snapshot())
}

func (b *MoneyBuilder) BuildMany(count int, modifier Modifier) ([]domain.Money, error) {
	return buildMany(b.snapshot(), count, modifier, buildMoney)
}

func buildMoney(fields Fields) (domain.Money, error) {
	d := newDecoder("Money", fields, "amount", "currency")

	amount := d.integer("amount")
	currency := d.str("currency")

	if amount < 0 {
		d.fail("amount", "amount must not be negative")
	}
	if !currencyPattern.MatchString(currency) {
		d.fail("currency", "currency must match ^[A-Z]{3}$")
	}

	if err := d.finish(); err != nil {
		return domain.Money{}, err
	}
	m, err := domain.NewMoney(amount, currency)
	if err != nil {
		// the checks above mirror NewMoney; reaching here means they drifted
		return domain.Money{}, &BuildError{Target: "Money", FieldErrors: map[string]string{"money": err.Error()}}
	}
	return m, nil
}
