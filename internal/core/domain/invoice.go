package domain

import "github.com/shopspring/decimal"

var taxRate = decimal.RequireFromString("0.13")

// TaxRate returns the fixed sales tax applied at checkout (13% VAT).
func TaxRate() decimal.Decimal {
	return taxRate
}

// Invoice is the priced summary of a cart shown before a purchase is
// confirmed.
type Invoice struct {
	Items    []LineItem
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// NewInvoice prices items: tax is rounded to two decimal places and added
// to the subtotal.
func NewInvoice(items []LineItem) Invoice {
	subtotal := SumSubtotals(items)
	tax := ComputeTax(subtotal)
	return Invoice{
		Items:    items,
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// ComputeTax returns subtotal * TaxRate() rounded to cents.
func ComputeTax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(taxRate).Round(2)
}
