package service

import (
	"context"
	"log"
	"net/url"
	"time"

	"invoice-admin/internal/form"
	"invoice-admin/internal/models"
	"invoice-admin/internal/repository"
)

// InvoicesPath is the listing view every mutation invalidates and the
// create/update success path redirects to.
const InvoicesPath = "/dashboard/invoices"

// Invalidator marks a cached view of a path as stale.
type Invalidator interface {
	Invalidate(path string)
}

// Outcome is the result of a mutation. Exactly one shape applies: field
// errors with a summary message, or a redirect path. A non-empty Redirect is
// terminal — the caller navigates and does nothing else with the request.
type Outcome struct {
	Errors   form.FieldErrors `json:"errors,omitempty"`
	Message  string           `json:"message,omitempty"`
	Redirect string           `json:"-"`
}

type InvoiceService interface {
	CreateInvoice(ctx context.Context, values url.Values) Outcome
	UpdateInvoice(ctx context.Context, id string, values url.Values) Outcome
	DeleteInvoice(ctx context.Context, id string)
	ListInvoices(ctx context.Context) ([]models.Invoice, error)
	ListCustomers(ctx context.Context) ([]models.Customer, error)
}

type invoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	views        Invalidator
	updateDelay  time.Duration
	now          func() time.Time
}

func NewInvoiceService(invoiceRepo repository.InvoiceRepository, customerRepo repository.CustomerRepository, views Invalidator, updateDelay time.Duration) InvoiceService {
	return &invoiceService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		views:        views,
		updateDelay:  updateDelay,
		now:          time.Now,
	}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, values url.Values) Outcome {
	parsed, fieldErrs := form.ValidateInvoice(values)
	if fieldErrs != nil {
		return Outcome{Errors: fieldErrs, Message: form.MsgCreateFailed}
	}

	inv := &models.NewInvoice{
		CustomerID:  parsed.CustomerID,
		AmountCents: parsed.AmountCents(),
		Status:      parsed.Status,
		Date:        s.now().UTC().Format("2006-01-02"),
	}

	if err := s.invoiceRepo.Create(ctx, inv); err != nil {
		// Persistence failures are logged and not surfaced; the caller is
		// redirected either way. See the swallow-policy note in DESIGN.md.
		log.Printf("[ERROR] insert invoice failed: %v", err)
	}

	s.views.Invalidate(InvoicesPath)
	return Outcome{Redirect: InvoicesPath}
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, id string, values url.Values) Outcome {
	// Artificial latency so the UI's pending state stays visible. Runs
	// before validation and has no cancellation hook.
	if s.updateDelay > 0 {
		time.Sleep(s.updateDelay)
	}

	parsed, fieldErrs := form.ValidateInvoice(values)
	if fieldErrs != nil {
		return Outcome{Errors: fieldErrs, Message: form.MsgUpdateFailed}
	}

	inv := &models.NewInvoice{
		CustomerID:  parsed.CustomerID,
		AmountCents: parsed.AmountCents(),
		Status:      parsed.Status,
	}

	if err := s.invoiceRepo.Update(ctx, id, inv); err != nil {
		log.Printf("[ERROR] update invoice %s failed: %v", id, err)
	}

	s.views.Invalidate(InvoicesPath)
	return Outcome{Redirect: InvoicesPath}
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, id string) {
	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		log.Printf("[ERROR] delete invoice %s failed: %v", id, err)
	}

	s.views.Invalidate(InvoicesPath)
}

func (s *invoiceService) ListInvoices(ctx context.Context) ([]models.Invoice, error) {
	return s.invoiceRepo.GetAll(ctx)
}

func (s *invoiceService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return s.customerRepo.GetAll(ctx)
}
