package postgresql

import (
	"context"

	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/invoice"
	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const invoiceColumns = `id, project_id, client, amount, paid, issued_at`

type invoiceRepositoryImpl struct {
	db database.Pool
}

func NewInvoiceRepository(db database.Pool) invoice.InvoiceRepository {
	return &invoiceRepositoryImpl{db: db}
}

func scanInvoice(row pgx.Row) (invoice.Invoice, error) {
	var inv invoice.Invoice
	err := row.Scan(&inv.ID, &inv.ProjectID, &inv.Client, &inv.Amount, &inv.Paid, &inv.IssuedAt)
	return inv, err
}

// ListInvoices implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) ListInvoices(ctx context.Context) ([]invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+invoiceColumns+` FROM invoices ORDER BY issued_at, id`)
	if err != nil {
		return nil, mapStoreError("list invoices", err, invoice.ErrInvoiceNotFound)
	}
	defer rows.Close()

	invoices := make([]invoice.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, mapStoreError("list invoices", err, invoice.ErrInvoiceNotFound)
		}
		invoices = append(invoices, inv)
	}

	if err = rows.Err(); err != nil {
		return nil, mapStoreError("list invoices", err, invoice.ErrInvoiceNotFound)
	}

	return invoices, nil
}

// GetInvoice implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) GetInvoice(ctx context.Context, id string) (invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	inv, err := scanInvoice(q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
	if err != nil {
		return invoice.Invoice{}, mapStoreError("get invoice", err, invoice.ErrInvoiceNotFound)
	}
	return inv, nil
}

// CreateInvoice implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) CreateInvoice(ctx context.Context, newInvoice invoice.Invoice) (invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO invoices (id, project_id, client, amount, paid, issued_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + invoiceColumns

	created, err := scanInvoice(q.QueryRow(ctx, query,
		newInvoice.ID, newInvoice.ProjectID, newInvoice.Client,
		newInvoice.Amount, newInvoice.Paid, newInvoice.IssuedAt,
	))
	if err != nil {
		return invoice.Invoice{}, mapStoreError("create invoice", err, invoice.ErrInvoiceNotFound)
	}
	return created, nil
}

// UpdateInvoice implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) UpdateInvoice(ctx context.Context, inv invoice.Invoice) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE invoices
		SET project_id = $1, client = $2, amount = $3, paid = $4, issued_at = $5
		WHERE id = $6
	`

	tag, err := q.Exec(ctx, query, inv.ProjectID, inv.Client, inv.Amount, inv.Paid, inv.IssuedAt, inv.ID)
	if err != nil {
		return mapStoreError("update invoice", err, invoice.ErrInvoiceNotFound)
	}
	if tag.RowsAffected() == 0 {
		return invoice.ErrInvoiceNotFound
	}
	return nil
}

// DeleteInvoice implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) DeleteInvoice(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return mapStoreError("delete invoice", err, invoice.ErrInvoiceNotFound)
	}
	if tag.RowsAffected() == 0 {
		return invoice.ErrInvoiceNotFound
	}
	return nil
}
