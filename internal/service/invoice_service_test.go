package service

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-admin/internal/form"
	"invoice-admin/internal/models"
)

type updateCall struct {
	id  string
	inv models.NewInvoice
}

// fakeInvoiceRepo records every statement the pipeline issues.
type fakeInvoiceRepo struct {
	creates []models.NewInvoice
	updates []updateCall
	deletes []string
	err     error
}

func (f *fakeInvoiceRepo) Create(_ context.Context, inv *models.NewInvoice) error {
	f.creates = append(f.creates, *inv)
	return f.err
}

func (f *fakeInvoiceRepo) Update(_ context.Context, id string, inv *models.NewInvoice) error {
	f.updates = append(f.updates, updateCall{id: id, inv: *inv})
	return f.err
}

func (f *fakeInvoiceRepo) Delete(_ context.Context, id string) error {
	f.deletes = append(f.deletes, id)
	return f.err
}

func (f *fakeInvoiceRepo) GetAll(_ context.Context) ([]models.Invoice, error) {
	return nil, f.err
}

type fakeCustomerRepo struct{}

func (fakeCustomerRepo) GetAll(_ context.Context) ([]models.Customer, error) {
	return nil, nil
}

type fakeInvalidator struct {
	paths []string
}

func (f *fakeInvalidator) Invalidate(path string) {
	f.paths = append(f.paths, path)
}

func newTestService(repo *fakeInvoiceRepo, views *fakeInvalidator, delay time.Duration) *invoiceService {
	return &invoiceService{
		invoiceRepo:  repo,
		customerRepo: fakeCustomerRepo{},
		views:        views,
		updateDelay:  delay,
		now:          func() time.Time { return time.Date(2024, 3, 15, 22, 30, 0, 0, time.UTC) },
	}
}

func validSubmission() url.Values {
	return url.Values{
		"customerId": {"c1"},
		"amount":     {"10"},
		"status":     {"pending"},
	}
}

func TestCreateInvoice_Valid(t *testing.T) {
	repo := &fakeInvoiceRepo{}
	views := &fakeInvalidator{}
	svc := newTestService(repo, views, 0)

	out := svc.CreateInvoice(context.Background(), validSubmission())

	require.Len(t, repo.creates, 1)
	created := repo.creates[0]
	assert.Equal(t, "c1", created.CustomerID)
	assert.Equal(t, int64(1000), created.AmountCents)
	assert.Equal(t, models.StatusPending, created.Status)
	assert.Equal(t, "2024-03-15", created.Date)

	assert.Equal(t, []string{InvoicesPath}, views.paths)
	assert.Equal(t, InvoicesPath, out.Redirect)
	assert.Nil(t, out.Errors)
	assert.Empty(t, out.Message)
}

func TestCreateInvoice_InvalidSubmission(t *testing.T) {
	repo := &fakeInvoiceRepo{}
	views := &fakeInvalidator{}
	svc := newTestService(repo, views, 0)

	out := svc.CreateInvoice(context.Background(), url.Values{})

	assert.Empty(t, repo.creates, "nothing may be persisted on validation failure")
	assert.Empty(t, views.paths, "no invalidation on validation failure")
	assert.Empty(t, out.Redirect)
	assert.Equal(t, form.MsgCreateFailed, out.Message)
	assert.Contains(t, out.Errors, "customerId")
	assert.Contains(t, out.Errors, "amount")
	assert.Contains(t, out.Errors, "status")
}

func TestCreateInvoice_CentsConversion(t *testing.T) {
	repo := &fakeInvoiceRepo{}
	svc := newTestService(repo, &fakeInvalidator{}, 0)

	values := validSubmission()
	values.Set("amount", "12.34")
	svc.CreateInvoice(context.Background(), values)

	require.Len(t, repo.creates, 1)
	assert.Equal(t, int64(1234), repo.creates[0].AmountCents)
}

func TestCreateInvoice_PersistFailureStillRedirects(t *testing.T) {
	repo := &fakeInvoiceRepo{err: errors.New("connection refused")}
	views := &fakeInvalidator{}
	svc := newTestService(repo, views, 0)

	out := svc.CreateInvoice(context.Background(), validSubmission())

	// The insert failed, yet the caller sees the full success path. This
	// pins the swallow policy: a persistence error is logged, never
	// surfaced.
	require.Len(t, repo.creates, 1)
	assert.Equal(t, []string{InvoicesPath}, views.paths)
	assert.Equal(t, InvoicesPath, out.Redirect)
	assert.Nil(t, out.Errors)
}

func TestUpdateInvoice_Valid(t *testing.T) {
	repo := &fakeInvoiceRepo{}
	views := &fakeInvalidator{}
	svc := newTestService(repo, views, 0)

	out := svc.UpdateInvoice(context.Background(), "inv-1", validSubmission())

	require.Len(t, repo.updates, 1)
	assert.Equal(t, "inv-1", repo.updates[0].id)
	assert.Equal(t, int64(1000), repo.updates[0].inv.AmountCents)
	assert.Equal(t, models.StatusPending, repo.updates[0].inv.Status)

	assert.Equal(t, []string{InvoicesPath}, views.paths)
	assert.Equal(t, InvoicesPath, out.Redirect)
}

func TestUpdateInvoice_WaitsBeforeValidating(t *testing.T) {
	const delay = 50 * time.Millisecond
	svc := newTestService(&fakeInvoiceRepo{}, &fakeInvalidator{}, delay)

	start := time.Now()
	out := svc.UpdateInvoice(context.Background(), "inv-1", url.Values{})
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, delay, "delay runs before validation, even for bad input")
	assert.Equal(t, form.MsgUpdateFailed, out.Message)
}

func TestUpdateInvoice_InvalidSubmission(t *testing.T) {
	repo := &fakeInvoiceRepo{}
	views := &fakeInvalidator{}
	svc := newTestService(repo, views, 0)

	values := validSubmission()
	values.Set("status", "overdue")
	out := svc.UpdateInvoice(context.Background(), "inv-1", values)

	assert.Empty(t, repo.updates)
	assert.Empty(t, views.paths)
	assert.Empty(t, out.Redirect)
	assert.Equal(t, form.MsgUpdateFailed, out.Message)
	assert.Equal(t, []string{"Invoice status must be Pending or Paid."}, out.Errors["status"])
}

func TestUpdateInvoice_PersistFailureStillRedirects(t *testing.T) {
	repo := &fakeInvoiceRepo{err: errors.New("deadlock detected")}
	views := &fakeInvalidator{}
	svc := newTestService(repo, views, 0)

	out := svc.UpdateInvoice(context.Background(), "inv-1", validSubmission())

	require.Len(t, repo.updates, 1)
	assert.Equal(t, []string{InvoicesPath}, views.paths)
	assert.Equal(t, InvoicesPath, out.Redirect)
}

func TestDeleteInvoice(t *testing.T) {
	repo := &fakeInvoiceRepo{}
	views := &fakeInvalidator{}
	svc := newTestService(repo, views, 0)

	svc.DeleteInvoice(context.Background(), "inv-1")

	assert.Equal(t, []string{"inv-1"}, repo.deletes)
	assert.Equal(t, []string{InvoicesPath}, views.paths)
}

func TestDeleteInvoice_PersistFailureStillInvalidates(t *testing.T) {
	repo := &fakeInvoiceRepo{err: errors.New("connection refused")}
	views := &fakeInvalidator{}
	svc := newTestService(repo, views, 0)

	svc.DeleteInvoice(context.Background(), "inv-1")

	assert.Equal(t, []string{InvoicesPath}, views.paths)
}
