package console

import (
	"fmt"
	"io"

	"github.com/rl1809/console-cart/internal/core/domain"
)

const (
	catalogRow = "%-6s  %-24s  %10s  %8s\n"
	cartRow    = "%-6s  %-24s  %8s  %12s  %12s\n"
	invoiceRow = "%-20s  $%s\n"
)

// RenderCatalog prints entries as a fixed-width table.
func RenderCatalog(w io.Writer, entries []domain.CatalogEntry) {
	fmt.Fprintf(w, catalogRow, "Code", "Name", "Price", "Qty")
	fmt.Fprintf(w, catalogRow, "------", "----", "-----", "---")
	for _, e := range entries {
		fmt.Fprintf(w, catalogRow, e.Code, e.Name, e.UnitPrice.StringFixed(2), fmt.Sprint(e.AvailableQuantity))
	}
}

func renderCart(w io.Writer, items []domain.LineItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, "Cart is empty.")
		return
	}

	fmt.Fprintf(w, cartRow, "Code", "Name", "Qty", "Unit price", "Subtotal")
	fmt.Fprintf(w, cartRow, "------", "----", "---", "----------", "--------")
	for _, item := range items {
		fmt.Fprintf(w, cartRow,
			item.Entry.Code,
			item.Entry.Name,
			fmt.Sprint(item.Quantity),
			item.Entry.UnitPrice.StringFixed(2),
			item.Subtotal().StringFixed(2),
		)
	}
	fmt.Fprintf(w, "%-62s  %12s\n", "Cart total:", domain.SumSubtotals(items).StringFixed(2))
}

func renderInvoice(w io.Writer, invoice domain.Invoice) {
	taxLabel := fmt.Sprintf("Tax (VAT %s%%):", domain.TaxRate().Shift(2).String())
	fmt.Fprintf(w, invoiceRow, "Subtotal:", invoice.Subtotal.StringFixed(2))
	fmt.Fprintf(w, invoiceRow, taxLabel, invoice.Tax.StringFixed(2))
	fmt.Fprintf(w, invoiceRow, "Total:", invoice.Total.StringFixed(2))
}
