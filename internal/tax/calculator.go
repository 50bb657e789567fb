// Package tax computes GST amounts for invoice line items and aggregates
// them into invoice totals. All functions are pure: money stays in float64
// with no internal rounding, so recomputing from the same inputs always
// yields identical results. Display formatting is the caller's concern.
package tax

// Statutory GST rates. CGST and SGST apply together on intra-state supply,
// IGST alone on inter-state supply.
const (
	CGSTRate = 0.09
	SGSTRate = 0.09
	IGSTRate = 0.18
)

// ProductTotals holds the derived amounts for a single line item. All three
// tax components are precomputed; which ones count toward the invoice is
// decided at aggregation time by the supply type.
type ProductTotals struct {
	PriceAfterDiscount float64 `json:"price_after_discount"`
	CGST               float64 `json:"cgst"`
	SGST               float64 `json:"sgst"`
	IGST               float64 `json:"igst"`
}

// ComputeProductTotals derives the discounted price and tax components for a
// line item. The discount is an absolute amount, not a percentage, and is not
// clamped: a discount larger than the gross value yields a negative
// price-after-discount, which is intentionally passed through.
func ComputeProductTotals(unitPrice float64, quantity int, discount float64) ProductTotals {
	priceAfterDiscount := unitPrice*float64(quantity) - discount
	return ProductTotals{
		PriceAfterDiscount: priceAfterDiscount,
		CGST:               priceAfterDiscount * CGSTRate,
		SGST:               priceAfterDiscount * SGSTRate,
		IGST:               priceAfterDiscount * IGSTRate,
	}
}

// Line is the per-item input to invoice aggregation.
type Line struct {
	BuyingPrice        float64
	Quantity           int
	PriceAfterDiscount float64
	CGST               float64
	SGST               float64
	IGST               float64
}

// InvoiceTotals holds invoice-level aggregates. Exactly one of {CGST+SGST}
// or {IGST} is non-zero for a non-empty, non-degenerate invoice.
type InvoiceTotals struct {
	BuyingPrice float64 `json:"buying_price"`
	Amount      float64 `json:"amount"`
	CGST        float64 `json:"cgst"`
	SGST        float64 `json:"sgst"`
	IGST        float64 `json:"igst"`
	NetAmount   float64 `json:"net_amount"`
}

// IsInterState reports whether a supply from homeState billed to billingState
// is inter-state. Two empty states compare equal and count as intra-state.
func IsInterState(billingState, homeState string) bool {
	return billingState != homeState
}

// ComputeInvoiceTotals aggregates line items into invoice totals under the
// intra/inter-state decision rule. Aggregation is commutative: the order of
// lines does not affect the result.
func ComputeInvoiceTotals(lines []Line, billingState, homeState string) InvoiceTotals {
	var totals InvoiceTotals
	interState := IsInterState(billingState, homeState)

	for _, line := range lines {
		totals.BuyingPrice += line.BuyingPrice * float64(line.Quantity)
		totals.Amount += line.PriceAfterDiscount

		if interState {
			totals.IGST += line.IGST
		} else {
			totals.CGST += line.CGST
			totals.SGST += line.SGST
		}
	}

	totals.NetAmount = totals.Amount + totals.CGST + totals.SGST + totals.IGST
	return totals
}
