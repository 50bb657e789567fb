package service

import (
	"errors"
	"time"

	"github.com/Sreemathipalanisamy/gst-service-register/internal/app/model"
	"github.com/Sreemathipalanisamy/gst-service-register/internal/app/repository"
	"github.com/Sreemathipalanisamy/gst-service-register/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrInvoiceNotFound    = errors.New("invoice not found")
	ErrDuplicateInvoiceNo = errors.New("invoice number already exists for this gstin")
	ErrInvoiceNoRequired  = errors.New("invoice number is required")
	ErrInvoiceLocked      = errors.New("invoice is saved and read-only")
	ErrAlreadySaved       = errors.New("invoice is already saved")
	ErrNoLineItems        = errors.New("invoice has no line items")
	ErrInvalidItemIndex   = errors.New("line item index out of range")
	ErrInvalidLineItem    = errors.New("line item is invalid")
	ErrInvalidStatus      = errors.New("unknown status value")
	ErrInvalidIssueDate   = errors.New("issue date must be YYYY-MM-DD")
	ErrInvalidAmountPaid  = errors.New("amount paid must not be negative")
)

// InvoiceHeaderInput carries the editable header fields. Nil pointers mean
// "leave unchanged" on update; on create, sensible defaults apply.
type InvoiceHeaderInput struct {
	IssueDate     *string
	Status        *model.InvoiceStatus
	PaymentStatus *model.PaymentStatus
	BillingState  *string
	AmountPaid    *float64
}

// LineItemInput carries a product row as entered by the vendor. Derived
// amounts are computed server-side, never accepted from the client.
type LineItemInput struct {
	SKU         string
	Name        string
	Category    model.ProductCategory
	BuyingPrice float64
	UnitPrice   float64
	Quantity    int
	Discount    float64
}

type InvoiceService interface {
	Create(gstin, invoiceNo string, header InvoiceHeaderInput) (*model.Invoice, error)
	List(gstin string) ([]model.Invoice, error)
	Get(gstin, invoiceNo string) (*model.Invoice, error)
	UpdateHeader(gstin, invoiceNo string, header InvoiceHeaderInput) (*model.Invoice, error)
	AddItem(gstin, invoiceNo string, item LineItemInput) (*model.Invoice, error)
	RemoveItem(gstin, invoiceNo string, index int) (*model.Invoice, error)
	Save(gstin, invoiceNo string) (*model.Invoice, error)
	SweepOverdue(grace time.Duration) (int, error)
}

type invoiceService struct {
	invoiceRepo      repository.InvoiceRepository
	registrationRepo repository.RegistrationRepository
}

func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	registrationRepo repository.RegistrationRepository,
) InvoiceService {
	return &invoiceService{
		invoiceRepo:      invoiceRepo,
		registrationRepo: registrationRepo,
	}
}

// Create opens a new mutable draft with an empty product list. The invoice
// number must be unique among the registration's invoices.
func (s *invoiceService) Create(gstin, invoiceNo string, header InvoiceHeaderInput) (*model.Invoice, error) {
	logger.Info("Creating invoice", map[string]interface{}{
		"gstin":      gstin,
		"invoice_no": invoiceNo,
	})

	if invoiceNo == "" {
		return nil, ErrInvoiceNoRequired
	}

	registration, err := s.findRegistration(gstin)
	if err != nil {
		return nil, err
	}

	exists, err := s.invoiceRepo.ExistsByGSTINAndNo(gstin, invoiceNo)
	if err != nil {
		return nil, err
	}
	if exists {
		logger.Warn("Invoice creation failed: duplicate invoice number", map[string]interface{}{
			"gstin":      gstin,
			"invoice_no": invoiceNo,
		})
		return nil, ErrDuplicateInvoiceNo
	}

	invoice := &model.Invoice{
		GSTIN:         gstin,
		InvoiceNo:     invoiceNo,
		IssueDate:     time.Now().Format("2006-01-02"),
		Status:        model.InvoiceStatusDraft,
		PaymentStatus: model.PaymentStatusPending,
		BillingState:  registration.State,
		ITC:           registration.ITC,
	}

	if err := s.applyHeader(invoice, header); err != nil {
		return nil, err
	}

	invoice.Recalculate(registration.State)

	if err := s.invoiceRepo.Create(invoice); err != nil {
		return nil, err
	}

	logger.Info("Invoice created successfully", map[string]interface{}{
		"gstin":      gstin,
		"invoice_no": invoiceNo,
		"invoice_id": invoice.ID,
	})
	return invoice, nil
}

func (s *invoiceService) List(gstin string) ([]model.Invoice, error) {
	return s.invoiceRepo.FindByGSTIN(gstin)
}

func (s *invoiceService) Get(gstin, invoiceNo string) (*model.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByGSTINAndNo(gstin, invoiceNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	return invoice, nil
}

// UpdateHeader edits header fields of a mutable invoice and recomputes the
// totals (the billing state participates in the intra/inter-state rule).
func (s *invoiceService) UpdateHeader(gstin, invoiceNo string, header InvoiceHeaderInput) (*model.Invoice, error) {
	invoice, registration, err := s.findMutable(gstin, invoiceNo)
	if err != nil {
		return nil, err
	}

	if err := s.applyHeader(invoice, header); err != nil {
		return nil, err
	}

	invoice.Recalculate(registration.State)

	if err := s.invoiceRepo.Update(invoice); err != nil {
		return nil, err
	}

	logger.Info("Invoice header updated", map[string]interface{}{
		"gstin":      gstin,
		"invoice_no": invoiceNo,
	})
	return invoice, nil
}

// AddItem appends a product to a mutable invoice and recomputes the totals.
func (s *invoiceService) AddItem(gstin, invoiceNo string, item LineItemInput) (*model.Invoice, error) {
	invoice, registration, err := s.findMutable(gstin, invoiceNo)
	if err != nil {
		return nil, err
	}

	if item.Quantity <= 0 || item.UnitPrice < 0 || item.Discount < 0 || item.BuyingPrice < 0 {
		return nil, ErrInvalidLineItem
	}
	if item.Category != "" && !model.IsValidProductCategory(item.Category) {
		return nil, ErrInvalidLineItem
	}

	invoice.LineItems = append(invoice.LineItems, model.LineItem{
		InvoiceID:   invoice.ID,
		SKU:         item.SKU,
		Name:        item.Name,
		Category:    item.Category,
		BuyingPrice: item.BuyingPrice,
		UnitPrice:   item.UnitPrice,
		Quantity:    item.Quantity,
		Discount:    item.Discount,
	})

	invoice.Recalculate(registration.State)

	if err := s.invoiceRepo.Update(invoice); err != nil {
		return nil, err
	}

	logger.Info("Line item added to invoice", map[string]interface{}{
		"gstin":      gstin,
		"invoice_no": invoiceNo,
		"sku":        item.SKU,
		"item_count": len(invoice.LineItems),
	})
	return invoice, nil
}

// RemoveItem removes a product by position and recomputes the totals.
func (s *invoiceService) RemoveItem(gstin, invoiceNo string, index int) (*model.Invoice, error) {
	invoice, registration, err := s.findMutable(gstin, invoiceNo)
	if err != nil {
		return nil, err
	}

	if index < 0 || index >= len(invoice.LineItems) {
		return nil, ErrInvalidItemIndex
	}

	invoice.LineItems = append(invoice.LineItems[:index], invoice.LineItems[index+1:]...)
	invoice.Recalculate(registration.State)

	if err := s.invoiceRepo.Update(invoice); err != nil {
		return nil, err
	}

	logger.Info("Line item removed from invoice", map[string]interface{}{
		"gstin":      gstin,
		"invoice_no": invoiceNo,
		"index":      index,
		"item_count": len(invoice.LineItems),
	})
	return invoice, nil
}

// Save locks the invoice. Saving requires at least one line item; saving an
// already-saved invoice reports ErrAlreadySaved and changes nothing. There is
// no operation that unlocks a saved invoice.
func (s *invoiceService) Save(gstin, invoiceNo string) (*model.Invoice, error) {
	invoice, err := s.Get(gstin, invoiceNo)
	if err != nil {
		return nil, err
	}

	if invoice.Saved() {
		logger.Warn("Redundant save attempt on saved invoice", map[string]interface{}{
			"gstin":      gstin,
			"invoice_no": invoiceNo,
		})
		return nil, ErrAlreadySaved
	}

	if len(invoice.LineItems) == 0 {
		return nil, ErrNoLineItems
	}

	registration, err := s.findRegistration(gstin)
	if err != nil {
		return nil, err
	}

	invoice.Recalculate(registration.State)
	now := time.Now()
	invoice.SavedAt = &now

	if err := s.invoiceRepo.Update(invoice); err != nil {
		return nil, err
	}

	logger.Info("Invoice saved and locked", map[string]interface{}{
		"gstin":      gstin,
		"invoice_no": invoiceNo,
		"net_amount": invoice.NetAmount,
		"item_count": len(invoice.LineItems),
	})
	return invoice, nil
}

// SweepOverdue marks saved, unpaid invoices issued before the grace cutoff as
// overdue. Returns how many invoices were flipped.
func (s *invoiceService) SweepOverdue(grace time.Duration) (int, error) {
	cutoff := time.Now().Add(-grace).Format("2006-01-02")

	candidates, err := s.invoiceRepo.FindOverdueCandidates(cutoff)
	if err != nil {
		return 0, err
	}

	flipped := 0
	for _, invoice := range candidates {
		if err := s.invoiceRepo.UpdatePaymentStatus(invoice.ID, model.PaymentStatusOverdue); err != nil {
			logger.Error("Failed to mark invoice overdue", err, map[string]interface{}{
				"invoice_id": invoice.ID,
				"invoice_no": invoice.InvoiceNo,
			})
			continue
		}
		flipped++
	}

	if flipped > 0 {
		logger.Info("Overdue sweep completed", map[string]interface{}{
			"cutoff":  cutoff,
			"flipped": flipped,
		})
	}
	return flipped, nil
}

func (s *invoiceService) findRegistration(gstin string) (*model.Registration, error) {
	registration, err := s.registrationRepo.FindByGSTIN(gstin)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return registration, nil
}

// findMutable loads the invoice and its registration, rejecting any mutation
// against a saved invoice.
func (s *invoiceService) findMutable(gstin, invoiceNo string) (*model.Invoice, *model.Registration, error) {
	invoice, err := s.Get(gstin, invoiceNo)
	if err != nil {
		return nil, nil, err
	}

	if invoice.Saved() {
		logger.Warn("Mutation rejected: invoice is saved", map[string]interface{}{
			"gstin":      gstin,
			"invoice_no": invoiceNo,
		})
		return nil, nil, ErrInvoiceLocked
	}

	registration, err := s.findRegistration(gstin)
	if err != nil {
		return nil, nil, err
	}

	return invoice, registration, nil
}

func (s *invoiceService) applyHeader(invoice *model.Invoice, header InvoiceHeaderInput) error {
	if header.IssueDate != nil {
		if _, err := time.Parse("2006-01-02", *header.IssueDate); err != nil {
			return ErrInvalidIssueDate
		}
		invoice.IssueDate = *header.IssueDate
	}
	if header.Status != nil {
		if !model.IsValidInvoiceStatus(*header.Status) {
			return ErrInvalidStatus
		}
		invoice.Status = *header.Status
	}
	if header.PaymentStatus != nil {
		if !model.IsValidPaymentStatus(*header.PaymentStatus) {
			return ErrInvalidStatus
		}
		invoice.PaymentStatus = *header.PaymentStatus
	}
	if header.BillingState != nil {
		if !model.IsValidState(*header.BillingState) {
			return ErrInvalidState
		}
		invoice.BillingState = *header.BillingState
	}
	if header.AmountPaid != nil {
		if *header.AmountPaid < 0 {
			return ErrInvalidAmountPaid
		}
		invoice.AmountPaid = *header.AmountPaid
	}
	return nil
}
