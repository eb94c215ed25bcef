package invoice

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type InvoiceRequest struct {
	ProjectID *string         `json:"project_id,omitempty"`
	Client    string          `json:"client"`
	Amount    decimal.Decimal `json:"amount"`
	Paid      bool            `json:"paid"`
	IssuedAt  *time.Time      `json:"issued_at,omitempty"` // defaults to creation time
}

func (r *InvoiceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Client) {
		errs.Add("client", "client is required")
	}
	if r.Amount.IsNegative() {
		errs.Add("amount", ErrNegativeAmount.Message)
	}
	if r.ProjectID != nil && validator.IsEmpty(*r.ProjectID) {
		errs.Add("project_id", "project_id must not be blank")
	}

	return errs.Err()
}

// ToInvoice converts a validated request. A nil IssuedAt stays zero and is
// filled in by the caller.
func (r *InvoiceRequest) ToInvoice() Invoice {
	inv := Invoice{
		Client: strings.TrimSpace(r.Client),
		Amount: r.Amount,
		Paid:   r.Paid,
	}
	if r.ProjectID != nil {
		id := strings.TrimSpace(*r.ProjectID)
		inv.ProjectID = &id
	}
	if r.IssuedAt != nil {
		inv.IssuedAt = *r.IssuedAt
	}
	return inv
}

type InvoiceResponse struct {
	ID        string          `json:"id"`
	ProjectID *string         `json:"project_id,omitempty"`
	Client    string          `json:"client"`
	Amount    decimal.Decimal `json:"amount"`
	Paid      bool            `json:"paid"`
	IssuedAt  time.Time       `json:"issued_at"`
}

func ToResponse(inv Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:        inv.ID,
		ProjectID: inv.ProjectID,
		Client:    inv.Client,
		Amount:    inv.Amount,
		Paid:      inv.Paid,
		IssuedAt:  inv.IssuedAt,
	}
}
