package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CalcTax returns the flat-percentage tax on gross. Defined for any gross,
// including zero and negative amounts; the percent is applied as-is.
func CalcTax(gross, taxPercent decimal.Decimal) decimal.Decimal {
	return gross.Mul(taxPercent).Div(hundred)
}

// Compute derives one employee's pay breakdown from the stored rates:
// HRA and bonus are percentages of basic, gross = basic + HRA + bonus,
// tax is a flat percentage of gross, net = gross - tax.
func Compute(e Employee) (Breakdown, error) {
	if !e.BasicSalary.IsPositive() {
		return Breakdown{}, fmt.Errorf("%w: employee %s basic salary %s must be positive", ErrInvalidEmployeeData, e.ID, e.BasicSalary)
	}
	hra := e.BasicSalary.Mul(e.HRAPercent).Div(hundred)
	bonus := e.BasicSalary.Mul(e.BonusPercent).Div(hundred)
	gross := e.BasicSalary.Add(hra).Add(bonus)
	tax := CalcTax(gross, e.TaxPercent)
	return Breakdown{
		HRA:   hra,
		Bonus: bonus,
		Gross: gross,
		Tax:   tax,
		Net:   gross.Sub(tax),
	}, nil
}
