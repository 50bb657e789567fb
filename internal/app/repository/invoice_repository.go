package repository

import (
	"github.com/Sreemathipalanisamy/gst-service-register/internal/app/model"
	"github.com/Sreemathipalanisamy/gst-service-register/pkg/logger"
	"gorm.io/gorm"
)

type InvoiceRepository interface {
	Create(invoice *model.Invoice) error
	FindByGSTIN(gstin string) ([]model.Invoice, error)
	FindByGSTINAndNo(gstin, invoiceNo string) (*model.Invoice, error)
	ExistsByGSTINAndNo(gstin, invoiceNo string) (bool, error)
	Update(invoice *model.Invoice) error
	UpdatePaymentStatus(id uint, status model.PaymentStatus) error
	FindOverdueCandidates(issuedBefore string) ([]model.Invoice, error)
}

type invoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) preloadInvoice() *gorm.DB {
	return r.db.Preload("LineItems", func(db *gorm.DB) *gorm.DB {
		return db.Order("line_items.id ASC")
	})
}

func (r *invoiceRepository) Create(invoice *model.Invoice) error {
	logger.Debug("Creating invoice in database", map[string]interface{}{
		"gstin":      invoice.GSTIN,
		"invoice_no": invoice.InvoiceNo,
	})

	if err := r.db.Create(invoice).Error; err != nil {
		logger.Error("Failed to create invoice in database", err, map[string]interface{}{
			"gstin":      invoice.GSTIN,
			"invoice_no": invoice.InvoiceNo,
		})
		return err
	}

	logger.Debug("Invoice created in database", map[string]interface{}{
		"invoice_id": invoice.ID,
		"gstin":      invoice.GSTIN,
		"invoice_no": invoice.InvoiceNo,
	})
	return nil
}

func (r *invoiceRepository) FindByGSTIN(gstin string) ([]model.Invoice, error) {
	var invoices []model.Invoice
	if err := r.preloadInvoice().Where("gstin = ?", gstin).
		Order("created_at DESC").
		Find(&invoices).Error; err != nil {
		logger.Error("Failed to find invoices by GSTIN in database", err, map[string]interface{}{
			"gstin": gstin,
		})
		return nil, err
	}

	logger.Debug("Invoices found by GSTIN in database", map[string]interface{}{
		"gstin": gstin,
		"count": len(invoices),
	})
	return invoices, nil
}

func (r *invoiceRepository) FindByGSTINAndNo(gstin, invoiceNo string) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := r.preloadInvoice().
		Where("gstin = ? AND invoice_no = ?", gstin, invoiceNo).
		First(&invoice).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find invoice in database", err, map[string]interface{}{
				"gstin":      gstin,
				"invoice_no": invoiceNo,
			})
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) ExistsByGSTINAndNo(gstin, invoiceNo string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.Invoice{}).
		Where("gstin = ? AND invoice_no = ?", gstin, invoiceNo).
		Count(&count).Error; err != nil {
		logger.Error("Failed to count invoices in database", err, map[string]interface{}{
			"gstin":      gstin,
			"invoice_no": invoiceNo,
		})
		return false, err
	}
	return count > 0, nil
}

// Update persists the full invoice record including its line items. Items are
// replaced wholesale so removed rows do not linger.
func (r *invoiceRepository) Update(invoice *model.Invoice) error {
	logger.Debug("Updating invoice in database", map[string]interface{}{
		"invoice_id": invoice.ID,
		"gstin":      invoice.GSTIN,
		"invoice_no": invoice.InvoiceNo,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("invoice_id = ?", invoice.ID).
			Delete(&model.LineItem{}).Error; err != nil {
			return err
		}
		// Zero the item IDs so the replace inserts fresh rows.
		for i := range invoice.LineItems {
			invoice.LineItems[i].ID = 0
			invoice.LineItems[i].InvoiceID = invoice.ID
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(invoice).Error
	})
	if err != nil {
		logger.Error("Failed to update invoice in database", err, map[string]interface{}{
			"invoice_id": invoice.ID,
			"gstin":      invoice.GSTIN,
		})
		return err
	}

	logger.Debug("Invoice updated in database", map[string]interface{}{
		"invoice_id": invoice.ID,
		"item_count": len(invoice.LineItems),
	})
	return nil
}

func (r *invoiceRepository) UpdatePaymentStatus(id uint, status model.PaymentStatus) error {
	if err := r.db.Model(&model.Invoice{}).Where("id = ?", id).
		Update("payment_status", status).Error; err != nil {
		logger.Error("Failed to update invoice payment status in database", err, map[string]interface{}{
			"invoice_id":     id,
			"payment_status": status,
		})
		return err
	}

	logger.Debug("Invoice payment status updated in database", map[string]interface{}{
		"invoice_id":     id,
		"payment_status": status,
	})
	return nil
}

// FindOverdueCandidates returns saved invoices that are still awaiting payment
// and were issued before the cutoff date (YYYY-MM-DD, lexicographic compare).
func (r *invoiceRepository) FindOverdueCandidates(issuedBefore string) ([]model.Invoice, error) {
	var invoices []model.Invoice
	if err := r.db.
		Where("saved_at IS NOT NULL").
		Where("payment_status IN ?", []model.PaymentStatus{model.PaymentStatusPending, model.PaymentStatusPartial}).
		Where("issue_date < ?", issuedBefore).
		Find(&invoices).Error; err != nil {
		logger.Error("Failed to find overdue candidates in database", err, map[string]interface{}{
			"issued_before": issuedBefore,
		})
		return nil, err
	}
	return invoices, nil
}
