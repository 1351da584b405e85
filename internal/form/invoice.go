package form

import (
	"errors"
	"net/url"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"invoice-admin/internal/models"
)

// FieldErrors accumulates every rule violation per submission field.
type FieldErrors map[string][]string

const (
	FieldCustomerID = "customerId"
	FieldAmount     = "amount"
	FieldStatus     = "status"
)

const (
	MsgCreateFailed = "Missing Fields. Failed to create invoice."
	MsgUpdateFailed = "Missing Fields. Failed to update invoice."
)

// invoiceForm mirrors the caller-facing fields of a submission. The id and
// date fields of a full invoice are supplied internally and never read from
// the form, so they have no rules here.
type invoiceForm struct {
	CustomerID string `form:"customerId" validate:"required"`
	Amount     string `form:"amount"`
	Status     string `form:"status" validate:"required,oneof=pending paid"`
}

var messages = map[string]map[string]string{
	FieldCustomerID: {
		"required": "Please select a customer.",
	},
	FieldStatus: {
		"required": "Please select an invoice status.",
		"oneof":    "Invoice status must be Pending or Paid.",
	},
}

const msgAmount = "Please enter an amount greater than $0."

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("form")
	})
	return v
}

// Invoice is the normalized output of a successful validation. Amount keeps
// full decimal precision until the pipeline converts it to cents.
type Invoice struct {
	CustomerID string
	Amount     decimal.Decimal
	Status     models.InvoiceStatus
}

func (i Invoice) AmountCents() int64 {
	return i.Amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// ValidateInvoice checks a raw submission against the invoice schema. It is a
// pure function of its input: no I/O, and every failing field is reported,
// not just the first.
func ValidateInvoice(values url.Values) (*Invoice, FieldErrors) {
	f := invoiceForm{
		CustomerID: values.Get(FieldCustomerID),
		Amount:     values.Get(FieldAmount),
		Status:     values.Get(FieldStatus),
	}

	fieldErrs := FieldErrors{}
	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fieldErrs[fe.Field()] = append(fieldErrs[fe.Field()], messages[fe.Field()][fe.Tag()])
			}
		}
	}

	amount, err := decimal.NewFromString(f.Amount)
	if err != nil || !amount.IsPositive() {
		fieldErrs[FieldAmount] = append(fieldErrs[FieldAmount], msgAmount)
	}

	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	return &Invoice{
		CustomerID: f.CustomerID,
		Amount:     amount,
		Status:     models.InvoiceStatus(f.Status),
	}, nil
}
