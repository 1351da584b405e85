package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"invoice-admin/internal/models"
)

type InvoiceRepository interface {
	Create(ctx context.Context, inv *models.NewInvoice) error
	Update(ctx context.Context, id string, inv *models.NewInvoice) error
	Delete(ctx context.Context, id string) error
	GetAll(ctx context.Context) ([]models.Invoice, error)
}

type pgInvoiceRepository struct {
	db *pgxpool.Pool
}

func NewInvoiceRepository(db *pgxpool.Pool) InvoiceRepository {
	return &pgInvoiceRepository{db: db}
}

func (r *pgInvoiceRepository) Create(ctx context.Context, inv *models.NewInvoice) error {
	query := `
		INSERT INTO invoices (customer_id, amount, status, date)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(ctx, query, inv.CustomerID, inv.AmountCents, inv.Status, inv.Date)
	if err != nil {
		return fmt.Errorf("error executing insert invoice query: %w", err)
	}
	return nil
}

func (r *pgInvoiceRepository) Update(ctx context.Context, id string, inv *models.NewInvoice) error {
	query := `
		UPDATE invoices
		SET customer_id = $1, amount = $2, status = $3
		WHERE id = $4
	`
	_, err := r.db.Exec(ctx, query, inv.CustomerID, inv.AmountCents, inv.Status, id)
	if err != nil {
		return fmt.Errorf("error executing update invoice query: %w", err)
	}
	return nil
}

func (r *pgInvoiceRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM invoices WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error executing delete invoice query: %w", err)
	}
	return nil
}

func (r *pgInvoiceRepository) GetAll(ctx context.Context) ([]models.Invoice, error) {
	query := `
		SELECT id, customer_id, amount, status, date, created_at, updated_at
		FROM invoices
		ORDER BY date DESC, created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying invoices: %w", err)
	}
	defer rows.Close()

	var invoices []models.Invoice
	for rows.Next() {
		var inv models.Invoice
		var date time.Time
		err := rows.Scan(
			&inv.ID, &inv.CustomerID, &inv.Amount, &inv.Status, &date,
			&inv.CreatedAt, &inv.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning invoice row: %w", err)
		}
		inv.Date = date.Format("2006-01-02")
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", err)
	}
	return invoices, nil
}
