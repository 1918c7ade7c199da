package directory

import (
	"time"

	"github.com/shopspring/decimal"
)

type Department struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type Employee struct {
	ID           string          `json:"id"`
	FullName     string          `json:"fullName"`
	BasicSalary  decimal.Decimal `json:"basicSalary"`
	HRAPercent   decimal.Decimal `json:"hraPercent"`
	BonusPercent decimal.Decimal `json:"bonusPercent"`
	TaxPercent   decimal.Decimal `json:"taxPercent"`
	DepartmentID string          `json:"departmentId,omitempty"`
	JoinedOn     time.Time       `json:"joinedOn"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// Rate defaults applied when a new employee omits them. They are written
// onto the row at creation time, never read back as ambient configuration.
var (
	DefaultHRAPercent   = decimal.NewFromInt(30)
	DefaultBonusPercent = decimal.NewFromInt(10)
	DefaultTaxPercent   = decimal.NewFromInt(10)
)

// NewEmployee carries the creation attributes. Nil rate pointers take the
// documented defaults; explicit zero rates are kept as zero.
type NewEmployee struct {
	FullName     string
	BasicSalary  decimal.Decimal
	HRAPercent   *decimal.Decimal
	BonusPercent *decimal.Decimal
	TaxPercent   *decimal.Decimal
	DepartmentID string
	JoinedOn     time.Time
}

type RateUpdate struct {
	HRAPercent   *decimal.Decimal
	BonusPercent *decimal.Decimal
	TaxPercent   *decimal.Decimal
	BasicSalary  *decimal.Decimal
}
