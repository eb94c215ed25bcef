package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

type Invoice struct {
	ID        string
	ProjectID *string
	Client    string
	Amount    decimal.Decimal
	Paid      bool
	IssuedAt  time.Time
}

// IsRecognized reports whether the invoice counts as revenue.
func (i *Invoice) IsRecognized() bool {
	return i.Paid
}
