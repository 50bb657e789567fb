package tax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeProductTotals(t *testing.T) {
	tests := []struct {
		name      string
		unitPrice float64
		quantity  int
		discount  float64
		want      ProductTotals
	}{
		{
			name:      "Standard product",
			unitPrice: 120,
			quantity:  10,
			discount:  50,
			want: ProductTotals{
				PriceAfterDiscount: 1150,
				CGST:               103.5,
				SGST:               103.5,
				IGST:               207,
			},
		},
		{
			name:      "Zero quantity",
			unitPrice: 500,
			quantity:  0,
			discount:  0,
			want:      ProductTotals{},
		},
		{
			name:      "No discount",
			unitPrice: 100,
			quantity:  1,
			discount:  0,
			want: ProductTotals{
				PriceAfterDiscount: 100,
				CGST:               9,
				SGST:               9,
				IGST:               18,
			},
		},
		{
			name:      "Discount exceeding gross value is not clamped",
			unitPrice: 100,
			quantity:  10,
			discount:  2000,
			want: ProductTotals{
				PriceAfterDiscount: -1000,
				CGST:               -90,
				SGST:               -90,
				IGST:               -180,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeProductTotals(tt.unitPrice, tt.quantity, tt.discount)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeProductTotals_Deterministic(t *testing.T) {
	first := ComputeProductTotals(33.33, 7, 12.345)
	second := ComputeProductTotals(33.33, 7, 12.345)
	assert.Equal(t, first, second)
}

func TestComputeProductTotals_IGSTEqualsCombinedRate(t *testing.T) {
	got := ComputeProductTotals(120, 10, 50)
	assert.Equal(t, got.CGST+got.SGST, got.IGST)
}

func sampleLines() []Line {
	a := ComputeProductTotals(120, 10, 50)
	b := ComputeProductTotals(80, 5, 0)
	return []Line{
		{BuyingPrice: 100, Quantity: 10, PriceAfterDiscount: a.PriceAfterDiscount, CGST: a.CGST, SGST: a.SGST, IGST: a.IGST},
		{BuyingPrice: 60, Quantity: 5, PriceAfterDiscount: b.PriceAfterDiscount, CGST: b.CGST, SGST: b.SGST, IGST: b.IGST},
	}
}

func TestComputeInvoiceTotals_IntraState(t *testing.T) {
	a := ComputeProductTotals(120, 10, 50)
	lines := []Line{{BuyingPrice: 100, Quantity: 10, PriceAfterDiscount: a.PriceAfterDiscount, CGST: a.CGST, SGST: a.SGST, IGST: a.IGST}}

	totals := ComputeInvoiceTotals(lines, "Maharashtra", "Maharashtra")

	assert.Equal(t, float64(1000), totals.BuyingPrice)
	assert.Equal(t, float64(1150), totals.Amount)
	assert.Equal(t, 103.5, totals.CGST)
	assert.Equal(t, 103.5, totals.SGST)
	assert.Zero(t, totals.IGST)
	assert.Equal(t, float64(1357), totals.NetAmount)
}

func TestComputeInvoiceTotals_InterState(t *testing.T) {
	a := ComputeProductTotals(120, 10, 50)
	lines := []Line{{BuyingPrice: 100, Quantity: 10, PriceAfterDiscount: a.PriceAfterDiscount, CGST: a.CGST, SGST: a.SGST, IGST: a.IGST}}

	totals := ComputeInvoiceTotals(lines, "Maharashtra", "Kerala")

	assert.Zero(t, totals.CGST)
	assert.Zero(t, totals.SGST)
	assert.Equal(t, float64(207), totals.IGST)
	assert.Equal(t, float64(1357), totals.NetAmount)
}

func TestComputeInvoiceTotals_EmptyStatesAreIntraState(t *testing.T) {
	totals := ComputeInvoiceTotals(sampleLines(), "", "")

	assert.NotZero(t, totals.CGST)
	assert.NotZero(t, totals.SGST)
	assert.Zero(t, totals.IGST)
}

func TestComputeInvoiceTotals_EmptyLines(t *testing.T) {
	totals := ComputeInvoiceTotals(nil, "Kerala", "Kerala")
	assert.Equal(t, InvoiceTotals{}, totals)
}

func TestComputeInvoiceTotals_OrderIndependent(t *testing.T) {
	lines := sampleLines()
	reversed := []Line{lines[1], lines[0]}

	assert.Equal(t,
		ComputeInvoiceTotals(lines, "Tamil Nadu", "Kerala"),
		ComputeInvoiceTotals(reversed, "Tamil Nadu", "Kerala"),
	)
}

func TestComputeInvoiceTotals_MutuallyExclusiveComponents(t *testing.T) {
	lines := sampleLines()

	intra := ComputeInvoiceTotals(lines, "Goa", "Goa")
	assert.Zero(t, intra.IGST)
	assert.NotZero(t, intra.CGST+intra.SGST)

	inter := ComputeInvoiceTotals(lines, "Goa", "Punjab")
	assert.Zero(t, inter.CGST+inter.SGST)
	assert.NotZero(t, inter.IGST)
}

func TestComputeInvoiceTotals_Idempotent(t *testing.T) {
	lines := sampleLines()
	first := ComputeInvoiceTotals(lines, "Delhi", "Kerala")
	second := ComputeInvoiceTotals(lines, "Delhi", "Kerala")
	assert.Equal(t, first, second)
}

func TestIsInterState(t *testing.T) {
	assert.False(t, IsInterState("Kerala", "Kerala"))
	assert.True(t, IsInterState("Kerala", "Maharashtra"))
	assert.False(t, IsInterState("", ""))
	assert.True(t, IsInterState("Kerala", ""))
}
