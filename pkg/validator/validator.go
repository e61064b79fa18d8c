package validator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// NonNegative rejects negative charge fields before they reach the ledger.
func NonNegative(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%s must not be negative", field)
	}
	return nil
}

// Positive rejects zero or negative payment amounts.
func Positive(field string, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("%s must be positive", field)
	}
	return nil
}
