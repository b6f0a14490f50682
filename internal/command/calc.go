package command

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrCalcUsage = errors.New("calc expects an amount and a symbol")

// Amounts are printed in full digits in logs, queries and replies, so both
// the token length and the exponent are bounded.
const (
	maxAmountLen      = 64
	maxAmountExponent = 30
)

// CalcArgs are the validated parameters of /calc.
type CalcArgs struct {
	Amount decimal.Decimal
	Symbol string
}

// ParseCalcArgs splits param into exactly two whitespace-separated tokens:
// a numeric amount (integer or decimal) and a symbol kept verbatim.
func ParseCalcArgs(param string) (CalcArgs, error) {
	fields := strings.Fields(param)
	if len(fields) != 2 {
		return CalcArgs{}, ErrCalcUsage
	}

	if len(fields[0]) > maxAmountLen {
		return CalcArgs{}, ErrCalcUsage
	}
	amount, err := decimal.NewFromString(fields[0])
	if err != nil {
		return CalcArgs{}, ErrCalcUsage
	}
	if exp := amount.Exponent(); exp > maxAmountExponent || exp < -maxAmountExponent {
		return CalcArgs{}, ErrCalcUsage
	}

	return CalcArgs{Amount: amount, Symbol: fields[1]}, nil
}
