package model

import (
	"time"

	"gorm.io/gorm"
)

type VendorType string  // vendor business category
type ITCElection string // input-tax-credit election

const (
	VendorRetailer        VendorType = "Retailer"
	VendorWholesaler      VendorType = "Wholesaler"
	VendorManufacturer    VendorType = "Manufacturer"
	VendorServiceProvider VendorType = "Service Provider"
	VendorTrader          VendorType = "Trader"
	VendorEcommerce       VendorType = "E-commerce Supplier"
	VendorExporter        VendorType = "Exporter"
	VendorImporter        VendorType = "Importer"

	ITCOptedIn  ITCElection = "Opted In"
	ITCOptedOut ITCElection = "Opted Out"
)

// Registration is a vendor's GST tax identity. It anchors invoices by GSTIN
// and is immutable after creation: no update surface exists.
type Registration struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	GSTIN         string      `gorm:"type:varchar(15);not null;uniqueIndex" json:"gstin"` // 15-char tax identifier
	VendorType    VendorType  `gorm:"type:varchar(30);not null" json:"vendor_type"`
	Email         string      `gorm:"not null" json:"email"`
	Turnover      float64     `gorm:"not null" json:"turnover"`                         // declared annual turnover
	State         string      `gorm:"type:varchar(60);not null" json:"state"`           // home jurisdiction
	ITC           ITCElection `gorm:"type:varchar(20);not null" json:"itc"`             // input-tax-credit election
	EmailVerified bool        `gorm:"default:false;not null" json:"email_verified"`     // external verification outcome
	VerifiedAt    *time.Time  `json:"verified_at,omitempty"`

	Invoices []Invoice `gorm:"foreignKey:GSTIN;references:GSTIN" json:"invoices,omitempty"`
}

func (Registration) TableName() string {
	return "registrations"
}
