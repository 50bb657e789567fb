package model

import (
	"time"

	"github.com/Sreemathipalanisamy/gst-service-register/internal/tax"
	"gorm.io/gorm"
)

type ProductCategory string

const (
	CategoryElectronics ProductCategory = "Electronics"
	CategoryClothing    ProductCategory = "Clothing"
	CategoryFood        ProductCategory = "Food & Beverages"
	CategoryHomeGarden  ProductCategory = "Home & Garden"
	CategoryAutomotive  ProductCategory = "Automotive"
	CategoryBooks       ProductCategory = "Books"
	CategorySports      ProductCategory = "Sports"
	CategoryHealth      ProductCategory = "Health & Beauty"
	CategoryToys        ProductCategory = "Toys"
	CategoryServices    ProductCategory = "Services"
)

// LineItem is a product row on an invoice. The invoice exclusively owns its
// line items. PriceAfterDiscount, CGST, SGST and IGST are derived fields:
// they are never accepted from a client and are rederived from unit price,
// quantity and discount on every mutation.
type LineItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	InvoiceID uint           `gorm:"not null;index" json:"invoice_id"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	SKU         string          `gorm:"type:varchar(50);not null" json:"sku"`
	Name        string          `gorm:"not null" json:"product_name"`
	Category    ProductCategory `gorm:"type:varchar(30)" json:"category"`
	BuyingPrice float64         `json:"buying_price"` // cost per unit
	UnitPrice   float64         `gorm:"not null" json:"unit_price"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	Discount    float64         `json:"discount"` // absolute amount, not percentage

	PriceAfterDiscount float64 `json:"price_after_discount"`
	CGST               float64 `json:"cgst"`
	SGST               float64 `json:"sgst"`
	IGST               float64 `json:"igst"`
}

func (LineItem) TableName() string {
	return "line_items"
}

// Derive recomputes the derived fields from unit price, quantity and discount.
func (p *LineItem) Derive() {
	totals := tax.ComputeProductTotals(p.UnitPrice, p.Quantity, p.Discount)
	p.PriceAfterDiscount = totals.PriceAfterDiscount
	p.CGST = totals.CGST
	p.SGST = totals.SGST
	p.IGST = totals.IGST
}
