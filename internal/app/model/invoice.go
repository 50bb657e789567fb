package model

import (
	"time"

	"github.com/Sreemathipalanisamy/gst-service-register/internal/tax"
	"gorm.io/gorm"
)

type InvoiceStatus string // invoice business status
type PaymentStatus string // payment progress status

const (
	InvoiceStatusDraft    InvoiceStatus = "Draft"
	InvoiceStatusPending  InvoiceStatus = "Pending"
	InvoiceStatusApproved InvoiceStatus = "Approved"
	InvoiceStatusRejected InvoiceStatus = "Rejected"

	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusPartial PaymentStatus = "Partial"
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusOverdue PaymentStatus = "Overdue"
)

// Invoice aggregates line items under a registration's GSTIN. The invoice
// number is user-chosen and unique per GSTIN. SavedAt is the mutability gate:
// nil means the invoice is a mutable draft, non-nil means it was saved and is
// read-only forever (no unlock exists).
type Invoice struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	GSTIN        string        `gorm:"type:varchar(15);not null;uniqueIndex:idx_invoices_gstin_invoice_no" json:"gstin"`
	InvoiceNo    string        `gorm:"type:varchar(50);not null;uniqueIndex:idx_invoices_gstin_invoice_no" json:"invoice_no"`
	IssueDate    string        `gorm:"type:varchar(10);not null" json:"date"` // YYYY-MM-DD
	Status       InvoiceStatus `gorm:"type:varchar(20);default:'Draft'" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);default:'Pending'" json:"payment_status"`
	BillingState string        `gorm:"type:varchar(60)" json:"state"`
	ITC          ITCElection   `gorm:"type:varchar(20)" json:"itc"` // copied from the registration at creation
	AmountPaid   float64       `json:"amount_paid"`

	// Aggregate totals, always recomputed from the line items.
	BuyingPrice float64 `json:"buying_price"`
	Amount      float64 `json:"amount"`
	CGST        float64 `json:"cgst"`
	SGST        float64 `json:"sgst"`
	IGST        float64 `json:"igst"`
	NetAmount   float64 `json:"net_amount"`

	SavedAt *time.Time `json:"saved_at,omitempty"`

	LineItems []LineItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"products"`
}

func (Invoice) TableName() string {
	return "invoices"
}

// Saved reports whether the invoice has been locked by a save.
func (i *Invoice) Saved() bool {
	return i.SavedAt != nil
}

// Recalculate rederives every line item's amounts and the invoice aggregates
// from current quantities, prices and jurisdictions. homeState is the owning
// registration's state.
func (i *Invoice) Recalculate(homeState string) {
	lines := make([]tax.Line, len(i.LineItems))
	for idx := range i.LineItems {
		item := &i.LineItems[idx]
		item.Derive()
		lines[idx] = tax.Line{
			BuyingPrice:        item.BuyingPrice,
			Quantity:           item.Quantity,
			PriceAfterDiscount: item.PriceAfterDiscount,
			CGST:               item.CGST,
			SGST:               item.SGST,
			IGST:               item.IGST,
		}
	}

	totals := tax.ComputeInvoiceTotals(lines, i.BillingState, homeState)
	i.BuyingPrice = totals.BuyingPrice
	i.Amount = totals.Amount
	i.CGST = totals.CGST
	i.SGST = totals.SGST
	i.IGST = totals.IGST
	i.NetAmount = totals.NetAmount
}
