package invoice

import "context"

// InvoiceRepository is the invoice part of the directory store.
type InvoiceRepository interface {
	ListInvoices(ctx context.Context) ([]Invoice, error)
	GetInvoice(ctx context.Context, id string) (Invoice, error)
	CreateInvoice(ctx context.Context, newInvoice Invoice) (Invoice, error)
	UpdateInvoice(ctx context.Context, inv Invoice) error
	DeleteInvoice(ctx context.Context, id string) error
}
