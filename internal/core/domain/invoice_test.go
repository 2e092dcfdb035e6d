package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeTax(t *testing.T) {
	tests := []struct {
		subtotal string
		tax      string
	}{
		{"800.00", "104.00"},
		{"0", "0"},
		{"25.00", "3.25"},
		{"0.05", "0.01"},
		{"19.99", "2.60"},
	}

	for _, tt := range tests {
		t.Run(tt.subtotal, func(t *testing.T) {
			assert.True(t, dec(tt.tax).Equal(ComputeTax(dec(tt.subtotal))),
				"tax for %s: got %s", tt.subtotal, ComputeTax(dec(tt.subtotal)))
		})
	}
}

func TestTaxRate(t *testing.T) {
	assert.Equal(t, "0.13", TaxRate().String())
	assert.Equal(t, "13", TaxRate().Shift(2).String())
}

func TestNewInvoice(t *testing.T) {
	items := []LineItem{
		{Entry: CatalogEntry{Code: "P001", UnitPrice: dec("800.00")}, Quantity: 1},
	}

	inv := NewInvoice(items)

	assert.Equal(t, "800.00", inv.Subtotal.StringFixed(2))
	assert.Equal(t, "104.00", inv.Tax.StringFixed(2))
	assert.Equal(t, "904.00", inv.Total.StringFixed(2))
	assert.Len(t, inv.Items, 1)
}

func TestNewInvoice_MultipleLines(t *testing.T) {
	items := []LineItem{
		{Entry: CatalogEntry{Code: "P002", UnitPrice: dec("25.00")}, Quantity: 3},
		{Entry: CatalogEntry{Code: "P010", UnitPrice: dec("15.00")}, Quantity: 2},
	}

	inv := NewInvoice(items)

	// 75 + 30 = 105, tax 13.65
	assert.Equal(t, "105.00", inv.Subtotal.StringFixed(2))
	assert.Equal(t, "13.65", inv.Tax.StringFixed(2))
	assert.Equal(t, "118.65", inv.Total.StringFixed(2))
}

func TestNewInvoice_Empty(t *testing.T) {
	inv := NewInvoice(nil)

	assert.True(t, inv.Subtotal.IsZero())
	assert.True(t, inv.Tax.IsZero())
	assert.True(t, inv.Total.IsZero())
}

func TestLineItem_Subtotal(t *testing.T) {
	item := LineItem{Entry: CatalogEntry{UnitPrice: dec("60.00")}, Quantity: 4}
	assert.Equal(t, "240.00", item.Subtotal().StringFixed(2))
}

func TestParseReservationPolicy(t *testing.T) {
	p, ok := ParseReservationPolicy("reserve")
	assert.True(t, ok)
	assert.Equal(t, ReservationReserve, p)

	p, ok = ParseReservationPolicy("permissive")
	assert.True(t, ok)
	assert.Equal(t, ReservationPermissive, p)

	_, ok = ParseReservationPolicy("strict")
	assert.False(t, ok)
}

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()

	assert.Len(t, catalog, 10)
	assert.Equal(t, "P001", catalog[0].Code)
	assert.Equal(t, 5, catalog[0].AvailableQuantity)
	assert.Equal(t, "800.00", catalog[0].UnitPrice.StringFixed(2))

	seen := make(map[string]bool)
	for _, e := range catalog {
		assert.False(t, seen[e.Code], "duplicate code %s", e.Code)
		seen[e.Code] = true
	}
}
