package model

// IndianStates is the fixed set of billing and home jurisdictions, matching
// the state names used on GST registrations.
var IndianStates = []string{
	"Andhra Pradesh",
	"Arunachal Pradesh",
	"Assam",
	"Bihar",
	"Chhattisgarh",
	"Goa",
	"Gujarat",
	"Haryana",
	"Himachal Pradesh",
	"Jharkhand",
	"Karnataka",
	"Kerala",
	"Madhya Pradesh",
	"Maharashtra",
	"Manipur",
	"Meghalaya",
	"Mizoram",
	"Nagaland",
	"Odisha",
	"Punjab",
	"Rajasthan",
	"Sikkim",
	"Tamil Nadu",
	"Telangana",
	"Tripura",
	"Uttar Pradesh",
	"Uttarakhand",
	"West Bengal",
	"Andaman and Nicobar Islands",
	"Chandigarh",
	"Dadra and Nagar Haveli and Daman and Diu",
	"Delhi",
	"Jammu and Kashmir",
	"Ladakh",
	"Lakshadweep",
	"Puducherry",
}

var indianStateSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(IndianStates))
	for _, s := range IndianStates {
		set[s] = struct{}{}
	}
	return set
}()

// IsValidState reports whether s names a known jurisdiction.
func IsValidState(s string) bool {
	_, ok := indianStateSet[s]
	return ok
}

// IsValidVendorType reports whether v is a known vendor category.
func IsValidVendorType(v VendorType) bool {
	switch v {
	case VendorRetailer, VendorWholesaler, VendorManufacturer, VendorServiceProvider,
		VendorTrader, VendorEcommerce, VendorExporter, VendorImporter:
		return true
	}
	return false
}

// IsValidITCElection reports whether e is a known ITC election.
func IsValidITCElection(e ITCElection) bool {
	return e == ITCOptedIn || e == ITCOptedOut
}

// IsValidInvoiceStatus reports whether s is a known invoice status.
func IsValidInvoiceStatus(s InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusPending, InvoiceStatusApproved, InvoiceStatusRejected:
		return true
	}
	return false
}

// IsValidPaymentStatus reports whether s is a known payment status.
func IsValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPartial, PaymentStatusPaid, PaymentStatusOverdue:
		return true
	}
	return false
}

// IsValidProductCategory reports whether c is a known product category.
func IsValidProductCategory(c ProductCategory) bool {
	switch c {
	case CategoryElectronics, CategoryClothing, CategoryFood, CategoryHomeGarden,
		CategoryAutomotive, CategoryBooks, CategorySports, CategoryHealth,
		CategoryToys, CategoryServices:
		return true
	}
	return false
}
